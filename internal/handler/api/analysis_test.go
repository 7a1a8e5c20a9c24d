package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MarketPulse/internal/domain/models"
	icache "MarketPulse/internal/service/cache"
	"MarketPulse/internal/usecase"
	"MarketPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

type fakeMarket struct {
	bars  []models.PriceBar
	calls int
}

func (f *fakeMarket) GetPriceBars(ctx context.Context, ticker, period, interval string) ([]models.PriceBar, error) {
	f.calls++
	return f.bars, nil
}

type fakeNews struct{}

func (fakeNews) GetNews(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error) {
	return nil, nil
}

func testBars(n int) []models.PriceBar {
	bars := make([]models.PriceBar, n)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = models.PriceBar{
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
			Open:      100, High: 101, Low: 99, Close: 100,
			Volume: 1_000_000,
		}
	}
	return bars
}

func newTestHandler(t *testing.T, market *fakeMarket) *AnalysisHandler {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	analyzer := usecase.NewAnalyzer(market, fakeNews{}, log)
	return NewAnalysisHandler(log, analyzer)
}

func doRequest(h *AnalysisHandler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIndicatorsEndpoint(t *testing.T) {
	h := newTestHandler(t, &fakeMarket{bars: testBars(30)})
	rec := doRequest(h, "/api/indicators?ticker=AAPL")

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Status int `json:"status"`
		Data   struct {
			RSI14 float64 `json:"rsi_14"`
			Trend string  `json:"trend"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("envelope status = %d", resp.Status)
	}
	if resp.Data.RSI14 != 50 {
		t.Errorf("rsi_14 = %v, want 50 for flat series", resp.Data.RSI14)
	}
	if resp.Data.Trend != models.TrendNeutral {
		t.Errorf("trend = %q", resp.Data.Trend)
	}
}

func TestIndicatorsMissingTicker(t *testing.T) {
	h := newTestHandler(t, &fakeMarket{bars: testBars(30)})
	rec := doRequest(h, "/api/indicators")

	var resp struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Errorf("envelope status = %d, want 400", resp.Status)
	}
}

func TestAnalysisInsufficientData(t *testing.T) {
	h := newTestHandler(t, &fakeMarket{})
	rec := doRequest(h, "/api/analysis?ticker=NONE")

	var resp struct {
		Status int `json:"status"`
		Data   []struct {
			Code string `json:"code"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != http.StatusUnprocessableEntity {
		t.Errorf("envelope status = %d, want 422", resp.Status)
	}
	if len(resp.Data) != 1 || resp.Data[0].Code != "ERR_INSUFFICIENT_DATA" {
		t.Errorf("error payload = %+v", resp.Data)
	}
}

func TestAnalysisResponseCached(t *testing.T) {
	market := &fakeMarket{bars: testBars(30)}
	h := newTestHandler(t, market)
	h.SetCache(icache.NewMemory())

	first := doRequest(h, "/api/analysis?ticker=AAPL")
	if first.Code != http.StatusOK {
		t.Fatalf("first code = %d", first.Code)
	}
	callsAfterFirst := market.calls

	second := doRequest(h, "/api/analysis?ticker=AAPL")
	if second.Code != http.StatusOK {
		t.Fatalf("second code = %d", second.Code)
	}
	if market.calls != callsAfterFirst {
		t.Errorf("provider called on cache hit: %d -> %d", callsAfterFirst, market.calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached response differs from original")
	}
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t, &fakeMarket{bars: testBars(30)})
	rec := doRequest(h, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
}
