package volume

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"MarketPulse/internal/domain/models"
)

func makeBars(n int, price, vol float64) []models.PriceBar {
	bars := make([]models.PriceBar, n)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = models.PriceBar{
			Timestamp: base.Add(time.Duration(i) * 24 * time.Hour),
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price,
			Volume:    vol,
		}
	}
	return bars
}

func TestAnalyzeShortHistory(t *testing.T) {
	a := NewAnalyzer()
	if _, err := a.Analyze(makeBars(19, 100, 1e6)); !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("Analyze(19 bars) error = %v, want ErrInsufficientData", err)
	}
}

func TestAnalyzeFlatSeries(t *testing.T) {
	a := NewAnalyzer()
	snap, err := a.Analyze(makeBars(30, 100, 1e6))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if snap.Trend != models.VolumeTrendFlat || snap.TrendStrength != 0 {
		t.Errorf("trend = %q/%v, want Flat/0", snap.Trend, snap.TrendStrength)
	}
	if snap.VolumeRatio != 1 {
		t.Errorf("VolumeRatio = %v, want 1", snap.VolumeRatio)
	}
	if snap.Strength != "Normal" || snap.Signal != "Average trading activity" {
		t.Errorf("strength = %q/%q, want Normal/Average trading activity", snap.Strength, snap.Signal)
	}
	if snap.VOSignal != "Volume stable" {
		t.Errorf("VOSignal = %q, want Volume stable", snap.VOSignal)
	}
	if snap.PVRelationship != "Neutral" || snap.Conviction != "Medium" {
		t.Errorf("pv = %q/%q, want Neutral/Medium", snap.PVRelationship, snap.Conviction)
	}
	if snap.VolumeSpike {
		t.Error("VolumeSpike = true on flat series")
	}
}

func TestAnalyzeVolumeSpike(t *testing.T) {
	a := NewAnalyzer()
	bars := makeBars(30, 100, 1e6)
	last := len(bars) - 1
	bars[last].Volume = 5e6
	bars[last].Close = 103 // up day on heavy volume

	snap, err := a.Analyze(bars)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	// avg20 = (19·1e6 + 5e6)/20 = 1.2e6, ratio = 5/1.2.
	wantRatio := 5e6 / 1.2e6
	if math.Abs(snap.VolumeRatio-wantRatio) > 1e-9 {
		t.Errorf("VolumeRatio = %v, want %v", snap.VolumeRatio, wantRatio)
	}
	if snap.Strength != "Extremely High" || snap.Signal != "Strong breakout/breakdown potential" {
		t.Errorf("strength = %q/%q", snap.Strength, snap.Signal)
	}
	if !snap.VolumeSpike {
		t.Error("VolumeSpike = false, want true")
	}
	if snap.Trend != models.VolumeTrendIncreasing || math.Abs(snap.TrendStrength-400) > 1e-9 {
		t.Errorf("trend = %q/%v, want Increasing/400", snap.Trend, snap.TrendStrength)
	}
	if snap.PVRelationship != "Bullish confirmation" || snap.Conviction != "High" {
		t.Errorf("pv = %q/%q, want Bullish confirmation/High", snap.PVRelationship, snap.Conviction)
	}
}

func TestAnalyzeWeakSelling(t *testing.T) {
	a := NewAnalyzer()
	bars := makeBars(30, 100, 1e6)
	last := len(bars) - 1
	bars[last].Volume = 5e5
	bars[last].Close = 98

	snap, err := a.Analyze(bars)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if snap.Trend != models.VolumeTrendDecreasing || math.Abs(snap.TrendStrength-50) > 1e-9 {
		t.Errorf("trend = %q/%v, want Decreasing/50", snap.Trend, snap.TrendStrength)
	}
	if snap.Strength != "Low" {
		t.Errorf("Strength = %q, want Low", snap.Strength)
	}
	if snap.PVRelationship != "Weak selling" || snap.Conviction != "Low" {
		t.Errorf("pv = %q/%q, want Weak selling/Low", snap.PVRelationship, snap.Conviction)
	}
}

func TestStrengthLadderCutoffs(t *testing.T) {
	tests := []struct {
		ratio        float64
		wantStrength string
	}{
		{2.5, "Extremely High"},
		{2.0, "High"}, // boundary is exclusive
		{1.6, "High"},
		{1.5, "Normal"},
		{1.0, "Normal"},
		{0.8, "Low"},
		{0.3, "Low"},
	}
	for _, tt := range tests {
		if got, _ := classifyStrength(tt.ratio); got != tt.wantStrength {
			t.Errorf("classifyStrength(%v) = %q, want %q", tt.ratio, got, tt.wantStrength)
		}
	}
}

func TestOscillatorLadder(t *testing.T) {
	tests := []struct {
		vo   float64
		want string
	}{
		{15, "Volume expanding rapidly"},
		{7, "Volume trending higher"},
		{0, "Volume stable"},
		{-7, "Volume declining"},
		{-15, "Volume drying up"},
	}
	for _, tt := range tests {
		if got := classifyOscillator(tt.vo); got != tt.want {
			t.Errorf("classifyOscillator(%v) = %q, want %q", tt.vo, got, tt.want)
		}
	}
}

func TestSummary(t *testing.T) {
	a := NewAnalyzer()

	if got := a.Summary(makeBars(5, 100, 1e6)); got != "Insufficient data" {
		t.Errorf("Summary(short) = %q", got)
	}

	bars := makeBars(30, 100, 1e6)
	bars[len(bars)-1].Volume = 5e6
	if got := a.Summary(bars); !strings.HasPrefix(got, "High volume breakout") {
		t.Errorf("Summary(spike) = %q, want High volume breakout prefix", got)
	}

	if got := a.Summary(makeBars(30, 100, 1e6)); got != "Normal volume, flat trend" {
		t.Errorf("Summary(flat) = %q", got)
	}
}

func TestOBV(t *testing.T) {
	bars := makeBars(4, 100, 10)
	bars[1].Close = 101 // up: +10
	bars[2].Close = 99  // down: -10
	bars[3].Close = 99  // flat: carry

	got := OBV(bars)
	want := []float64{10, 20, 10, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("OBV = %v, want %v", got, want)
		}
	}
	if OBV(nil) != nil {
		t.Error("OBV(nil) != nil")
	}
}

func TestVWAP(t *testing.T) {
	bars := []models.PriceBar{
		{High: 12, Low: 8, Close: 10, Volume: 100}, // typical 10
		{High: 22, Low: 18, Close: 20, Volume: 100},
	}
	got := VWAP(bars)
	if got[0] != 10 {
		t.Errorf("VWAP[0] = %v, want 10", got[0])
	}
	if got[1] != 15 {
		t.Errorf("VWAP[1] = %v, want 15", got[1])
	}
}
