package indicators

import (
	"errors"
	"math"
	"testing"
	"time"

	"MarketPulse/internal/domain/models"
)

func barsFromCloses(closes ...float64) []models.PriceBar {
	bars := make([]models.PriceBar, len(closes))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = models.PriceBar{
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1_000_000,
		}
	}
	return bars
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestComputeEmptySeries(t *testing.T) {
	e := NewEngine()
	if _, err := e.Compute(nil); !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("Compute(nil) error = %v, want ErrInsufficientData", err)
	}
}

func TestComputeShortHistoryDefaults(t *testing.T) {
	e := NewEngine()
	set, err := e.Compute(barsFromCloses(100, 101, 102, 103, 104))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if set.RSI14 != 50 {
		t.Errorf("RSI14 = %v, want neutral 50", set.RSI14)
	}
	if set.SMA20 != 104 || set.SMA50 != 104 {
		t.Errorf("SMA fallbacks = %v/%v, want latest close 104", set.SMA20, set.SMA50)
	}
	if !almostEqual(set.BollingerUpper, 104*1.05, 1e-9) || !almostEqual(set.BollingerLower, 104*0.95, 1e-9) {
		t.Errorf("Bollinger fallback = %v/%v, want ±5%% of close", set.BollingerUpper, set.BollingerLower)
	}
	if !almostEqual(set.ATR14, 104*0.02, 1e-9) {
		t.Errorf("ATR14 fallback = %v, want 2%% of close", set.ATR14)
	}
	if set.CurrentPrice != 104 {
		t.Errorf("CurrentPrice = %v, want 104", set.CurrentPrice)
	}
}

func TestRSI(t *testing.T) {
	rising := make([]float64, 20)
	falling := make([]float64, 20)
	flat := make([]float64, 20)
	for i := range rising {
		rising[i] = 100 + float64(i)
		falling[i] = 200 - float64(i)
		flat[i] = 150
	}

	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{"short history neutral", []float64{1, 2, 3}, 50},
		{"all gains", rising, 100},
		{"all losses", falling, 0},
		{"flat neutral", flat, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RSI(tt.closes, 14); !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("RSI = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRSIMixedWindow(t *testing.T) {
	// 15 closes, deltas over the last 14: seven +2 and seven -1.
	closes := []float64{100}
	for i := 0; i < 7; i++ {
		closes = append(closes, closes[len(closes)-1]+2)
		closes = append(closes, closes[len(closes)-1]-1)
	}
	closes = closes[:15]
	got := RSI(closes, 14)
	// avgGain = 14/14 = 1, avgLoss = 7/14 = 0.5, RS = 2, RSI = 100 - 100/3.
	want := 100.0 - 100.0/3.0
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("RSI = %v, want %v", got, want)
	}
}

func TestEMAAdjustedWeighting(t *testing.T) {
	// span 3 means alpha = 0.5; the adjusted form over [1,2,3] ends at
	// (3 + 0.5·2 + 0.25·1) / (1 + 0.5 + 0.25).
	got := EMA([]float64{1, 2, 3}, 3)
	want := 4.25 / 1.75
	if !almostEqual(got, want, 1e-12) {
		t.Errorf("EMA = %v, want %v", got, want)
	}
}

func TestEMAFlatSeriesExact(t *testing.T) {
	// A constant series must stay exactly at its value, with no rounding
	// drift, so the close-vs-EMA20 trend comparison lands on NEUTRAL.
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100
	}
	if got := EMA(closes, 20); got != 100 {
		t.Fatalf("EMA(flat 100) = %.20g, want exactly 100", got)
	}

	set, err := NewEngine().Compute(barsFromCloses(closes...))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if set.EMA20 != 100 {
		t.Errorf("EMA20 = %.20g, want exactly 100", set.EMA20)
	}
	if set.Trend != models.TrendNeutral {
		t.Errorf("Trend = %q, want %q", set.Trend, models.TrendNeutral)
	}
}

func TestMACDFlatSeries(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100
	}
	macd, signal, hist := MACD(closes, 12, 26, 9)
	if !almostEqual(macd, 0, 1e-9) || !almostEqual(signal, 0, 1e-9) || !almostEqual(hist, 0, 1e-9) {
		t.Errorf("MACD flat series = %v/%v/%v, want zeros", macd, signal, hist)
	}
}

func TestBollingerBands(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}
	upper, middle, lower := Bollinger(closes, 20, 2)
	if upper != 100 || middle != 100 || lower != 100 {
		t.Errorf("flat bands = %v/%v/%v, want all 100", upper, middle, lower)
	}

	// Alternating 99/101 has mean 100 and sample stddev sqrt(20/19).
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 99
		} else {
			closes[i] = 101
		}
	}
	upper, middle, lower = Bollinger(closes, 20, 2)
	std := math.Sqrt(20.0 / 19.0)
	if !almostEqual(middle, 100, 1e-9) {
		t.Errorf("middle = %v, want 100", middle)
	}
	if !almostEqual(upper, 100+2*std, 1e-9) || !almostEqual(lower, 100-2*std, 1e-9) {
		t.Errorf("bands = %v/%v, want 100±2·%v", upper, lower, std)
	}
}

func TestATRRollingMean(t *testing.T) {
	bars := barsFromCloses(
		100, 100, 100, 100, 100, 100, 100,
		100, 100, 100, 100, 100, 100, 100,
	)
	// Every bar has high-low = 2 and no close-to-close gaps.
	got := ATR(bars, 14)
	if !almostEqual(got, 2, 1e-9) {
		t.Errorf("ATR = %v, want 2", got)
	}
}

func TestTrendAndRSIStatus(t *testing.T) {
	e := NewEngine()

	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)*2
	}
	set, err := e.Compute(barsFromCloses(closes...))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if set.Trend != models.TrendBullish {
		t.Errorf("Trend = %q, want BULLISH", set.Trend)
	}
	if set.RSIStatus != models.RSIOverbought {
		t.Errorf("RSIStatus = %q, want OVERBOUGHT (RSI=%v)", set.RSIStatus, set.RSI14)
	}

	for i := range closes {
		closes[i] = 200 - float64(i)*2
	}
	set, err = e.Compute(barsFromCloses(closes...))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if set.Trend != models.TrendBearish {
		t.Errorf("Trend = %q, want BEARISH", set.Trend)
	}
	if set.RSIStatus != models.RSIOversold {
		t.Errorf("RSIStatus = %q, want OVERSOLD (RSI=%v)", set.RSIStatus, set.RSI14)
	}
}
