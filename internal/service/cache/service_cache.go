package cache

import (
	"context"
	"errors"
	"time"

	pkgcache "MarketPulse/pkg/cache"
)

// ServiceCache adapts a pkg/cache Service to the BytesCache API.
// Payloads are stored as raw strings so no extra encoding round-trip happens.
type ServiceCache struct {
	svc pkgcache.Service
}

var _ BytesCache = (*ServiceCache)(nil)

func NewServiceCache(svc pkgcache.Service) *ServiceCache {
	return &ServiceCache{svc: svc}
}

// NewMemory returns an in-process BytesCache backed by the LRU memory cache.
func NewMemory() *ServiceCache {
	return NewServiceCache(pkgcache.NewMemoryCache())
}

// NewLayered returns a BytesCache backed by the memory+Redis layered cache.
func NewLayered(rc *pkgcache.RedisCache) *ServiceCache {
	return NewServiceCache(pkgcache.NewLayeredCache(rc))
}

func (c *ServiceCache) GetBytes(key string) ([]byte, bool, error) {
	var s string
	err := c.svc.Get(context.Background(), key, &s)
	if err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(s), true, nil
}

func (c *ServiceCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	return c.svc.Set(context.Background(), key, string(value), ttl)
}
