package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "timestamp": [1700000000, 1700086400, 1700172800],
      "indicators": {
        "quote": [{
          "open":   [100.0, 101.0, null],
          "high":   [102.0, 103.0, null],
          "low":    [99.0,  100.0, null],
          "close":  [101.0, 102.5, null],
          "volume": [1000000, 1200000, null]
        }]
      }
    }],
    "error": null
  }
}`

func TestGetPriceBars(t *testing.T) {
	var gotPath, gotRange, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		gotInterval = r.URL.Query().Get("interval")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartFixture))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	bars, err := c.GetPriceBars(context.Background(), "AAPL", "6mo", "1d")
	if err != nil {
		t.Fatalf("GetPriceBars: %v", err)
	}
	if gotPath != "/v8/finance/chart/AAPL" {
		t.Errorf("path = %q", gotPath)
	}
	if gotRange != "6mo" || gotInterval != "1d" {
		t.Errorf("query = range=%q interval=%q", gotRange, gotInterval)
	}

	// The third bar has a null close and is dropped.
	if len(bars) != 2 {
		t.Fatalf("len(bars) = %d, want 2", len(bars))
	}
	if bars[0].Close != 101.0 || bars[1].Close != 102.5 {
		t.Errorf("closes = %v/%v", bars[0].Close, bars[1].Close)
	}
	if bars[1].Volume != 1200000 {
		t.Errorf("volume = %v", bars[1].Volume)
	}
	if bars[0].Timestamp.Unix() != 1700000000 {
		t.Errorf("timestamp = %v", bars[0].Timestamp)
	}
}

func TestGetPriceBarsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	if _, err := c.GetPriceBars(context.Background(), "NOPE", "6mo", "1d"); err == nil {
		t.Fatal("expected error from chart error payload")
	}
}

func TestGetPriceBarsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	bars, err := c.GetPriceBars(context.Background(), "AAPL", "6mo", "1d")
	if err != nil {
		t.Fatalf("GetPriceBars: %v", err)
	}
	if bars != nil {
		t.Errorf("bars = %v, want nil for empty result", bars)
	}
}
