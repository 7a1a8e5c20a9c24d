package service

import (
	"context"

	"MarketPulse/internal/domain/models"
)

// MarketDataProvider fetches OHLCV history for a ticker. An empty slice with
// a nil error means the provider had no data; the core treats that as
// insufficient data, not as a failure.
type MarketDataProvider interface {
	GetPriceBars(ctx context.Context, ticker, period, interval string) ([]models.PriceBar, error)
}

// NewsProvider fetches recent articles for a ticker, most relevant first.
type NewsProvider interface {
	GetNews(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error)
}
