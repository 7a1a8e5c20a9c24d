package cache

import (
	"testing"
	"time"
)

func TestServiceCacheRoundTrip(t *testing.T) {
	c := NewMemory()

	if _, ok, err := c.GetBytes("missing"); err != nil || ok {
		t.Fatalf("GetBytes(missing) = ok=%v err=%v, want miss", ok, err)
	}

	payload := []byte(`{"status":200}`)
	if err := c.SetBytes("resp:AAPL", payload, time.Minute); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}

	got, ok, err := c.GetBytes("resp:AAPL")
	if err != nil || !ok {
		t.Fatalf("GetBytes = ok=%v err=%v, want hit", ok, err)
	}
	if string(got) != string(payload) {
		t.Fatalf("GetBytes = %q, want %q", got, payload)
	}
}

func TestServiceCacheExpiry(t *testing.T) {
	c := NewMemory()

	if err := c.SetBytes("short", []byte("x"), 10*time.Millisecond); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	if _, ok, err := c.GetBytes("short"); err != nil || ok {
		t.Fatalf("GetBytes after expiry = ok=%v err=%v, want miss", ok, err)
	}
}
