package signals

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"MarketPulse/internal/domain/models"
)

func TestTechnicalSignalStrongBuy(t *testing.T) {
	s := NewSynthesizer()
	ind := models.IndicatorSet{
		RSI14:          15,  // extremely oversold +0.3
		MACD:           1.0, // above signal +0.2
		MACDSignal:     0.5,
		BollingerUpper: 110,
		BollingerLower: 100,
		CurrentPrice:   101, // near lower band +0.1
		SMA20:          105, // above SMA50 +0.15
		SMA50:          100,
	}
	sig, err := s.technicalSignal(ind, time.Now())
	if err != nil {
		t.Fatalf("technicalSignal: %v", err)
	}
	if sig.SignalType != models.SignalStrongBuy {
		t.Errorf("SignalType = %q, want STRONG_BUY (score %v)", sig.SignalType, *sig.TechnicalScore)
	}
	if math.Abs(*sig.TechnicalScore-0.75) > 1e-9 {
		t.Errorf("TechnicalScore = %v, want 0.75", *sig.TechnicalScore)
	}
	if sig.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want capped 1.0", sig.Confidence)
	}
}

func TestTechnicalSignalHoldOnMixed(t *testing.T) {
	s := NewSynthesizer()
	ind := models.IndicatorSet{
		RSI14:          50,
		MACD:           0.5, // +0.2
		MACDSignal:     0.0,
		BollingerUpper: 110,
		BollingerLower: 90,
		CurrentPrice:   100, // mid band, no contribution
		SMA20:          99,  // below SMA50 -0.15
		SMA50:          100,
	}
	sig, err := s.technicalSignal(ind, time.Now())
	if err != nil {
		t.Fatalf("technicalSignal: %v", err)
	}
	if sig.SignalType != models.SignalHold {
		t.Fatalf("SignalType = %q, want HOLD (score %v)", sig.SignalType, *sig.TechnicalScore)
	}
	found := false
	for _, r := range sig.Reasoning {
		if r == "Technical indicators show mixed signals" {
			found = true
		}
	}
	if !found {
		t.Errorf("Reasoning = %v, missing mixed-signals line", sig.Reasoning)
	}
}

func TestTechnicalSignalZeroWidthBandFails(t *testing.T) {
	s := NewSynthesizer()
	ind := models.IndicatorSet{
		RSI14:          50,
		BollingerUpper: 100,
		BollingerLower: 100,
		CurrentPrice:   100,
	}
	if _, err := s.technicalSignal(ind, time.Now()); err == nil {
		t.Fatal("expected error for zero-width band")
	}

	// Through Synthesize the failure degrades to a guarded HOLD.
	out := s.Synthesize(Inputs{Indicators: &ind})
	if len(out) != 2 {
		t.Fatalf("len(out) = %d", len(out))
	}
	tech := out[0]
	if tech.SignalType != models.SignalHold || tech.Confidence != 0 {
		t.Errorf("technical = %q/%v, want HOLD/0", tech.SignalType, tech.Confidence)
	}
	if !strings.Contains(tech.Reasoning[0], "technical signal generation failed") {
		t.Errorf("Reasoning = %v", tech.Reasoning)
	}
}

func TestVolumeSignalBuy(t *testing.T) {
	s := NewSynthesizer()
	vol := models.VolumeSnapshot{
		VolumeRatio: 2.5,                         // +0.3
		Trend:       models.VolumeTrendIncreasing, // +0.1
		VolumeSpike: true,                         // +0.2
	}
	sig := s.volumeSignal(vol, time.Now())
	if sig.SignalType != models.SignalBuy {
		t.Errorf("SignalType = %q, want BUY", sig.SignalType)
	}
	if math.Abs(*sig.VolumeScore-0.6) > 1e-9 {
		t.Errorf("VolumeScore = %v, want 0.6", *sig.VolumeScore)
	}
	if sig.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", sig.Confidence)
	}
}

func TestMomentumSignalLadder(t *testing.T) {
	s := NewSynthesizer()
	tests := []struct {
		name string
		m    models.PriceMomentum
		want string
	}{
		{
			"strong buy",
			models.PriceMomentum{PriceChangePct1D: 6, PriceChangePct5D: 12, CurrentPrice: 99, High52W: 100},
			models.SignalStrongBuy, // 0.3 + 0.2 + 0.1
		},
		{
			"sell",
			models.PriceMomentum{PriceChangePct1D: -3, CurrentPrice: 60, High52W: 100},
			models.SignalSell, // -0.2 - 0.1
		},
		{
			"hold",
			models.PriceMomentum{PriceChangePct1D: 1, CurrentPrice: 80, High52W: 100},
			models.SignalHold,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if sig := s.momentumSignal(tt.m, time.Now()); sig.SignalType != tt.want {
				t.Errorf("SignalType = %q, want %q", sig.SignalType, tt.want)
			}
		})
	}
}

func TestSentimentSignalAmplifiers(t *testing.T) {
	s := NewSynthesizer()
	ms := models.MarketSentiment{
		SentimentScore: 0.6, // buckets to 0.3
		NewsCount:      15,  // ×1.2
		Confidence:     0.9, // ×1.1
	}
	sig := s.sentimentSignal(ms, time.Now())
	want := 0.3 * 1.2 * 1.1
	if math.Abs(*sig.SentimentScore-want) > 1e-9 {
		t.Errorf("SentimentScore = %v, want %v", *sig.SentimentScore, want)
	}
	if sig.SignalType != models.SignalBuy {
		t.Errorf("SignalType = %q, want BUY", sig.SignalType)
	}
	if math.Abs(sig.Confidence-math.Min(want*2, 1)) > 1e-9 {
		t.Errorf("Confidence = %v", sig.Confidence)
	}
}

func TestNewsSignal(t *testing.T) {
	s := NewSynthesizer()

	sig := s.newsSignal(nil, time.Now())
	if sig.SignalType != models.SignalHold || sig.Confidence != 0 {
		t.Errorf("empty news = %q/%v, want HOLD/0", sig.SignalType, sig.Confidence)
	}

	impacts := []models.NewsImpact{
		{ImpactScore: 0.7, KeywordsFound: []string{"earnings", "revenue", "guidance"}},
		{ImpactScore: 0.5, KeywordsFound: []string{"merger", "acquisition", "ceo", "earnings"}},
	}
	// avg impact 0.6 (+0.3), six unique topics (+0.1).
	sig = s.newsSignal(impacts, time.Now())
	if sig.SignalType != models.SignalBuy {
		t.Errorf("SignalType = %q, want BUY", sig.SignalType)
	}
}

func TestSynthesizeAppendsOverall(t *testing.T) {
	s := NewSynthesizer()
	score := 0.6
	in := Inputs{
		Indicators: &models.IndicatorSet{RSI14: 25, MACD: 1, MACDSignal: 0, SMA20: 105, SMA50: 100, BollingerUpper: 110, BollingerLower: 100, CurrentPrice: 105},
		Volume:     &models.VolumeSnapshot{VolumeRatio: 2.5, Trend: models.VolumeTrendIncreasing, VolumeSpike: true},
		Momentum:   &models.PriceMomentum{PriceChangePct1D: 6, PriceChangePct5D: 12, CurrentPrice: 99, High52W: 100},
		Sentiment:  &models.MarketSentiment{SentimentScore: score, NewsCount: 15, Confidence: 0.9},
	}
	out := s.Synthesize(in)
	if len(out) != 5 {
		t.Fatalf("len(out) = %d, want 4 sources + overall", len(out))
	}
	overall := out[len(out)-1]
	if !strings.HasPrefix(overall.Reasoning[0], "AI Analysis Summary: 4 signals analyzed") {
		t.Errorf("overall reasoning[0] = %q", overall.Reasoning[0])
	}
	if !strings.HasPrefix(overall.Reasoning[len(overall.Reasoning)-1], "Overall AI Score:") {
		t.Errorf("overall reasoning tail = %q", overall.Reasoning[len(overall.Reasoning)-1])
	}
	for i, sig := range out {
		if sig.Confidence < 0 || sig.Confidence > 1 {
			t.Errorf("signal %d confidence %v out of [0,1]", i, sig.Confidence)
		}
	}
}

func TestSynthesizeIdempotent(t *testing.T) {
	s := NewSynthesizer()
	in := Inputs{
		Indicators: &models.IndicatorSet{RSI14: 75, MACD: -1, MACDSignal: 0, SMA20: 95, SMA50: 100, BollingerUpper: 110, BollingerLower: 100, CurrentPrice: 109},
		Volume:     &models.VolumeSnapshot{VolumeRatio: 0.4, Trend: models.VolumeTrendDecreasing},
	}
	a := s.Synthesize(in)
	b := s.Synthesize(in)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].SignalType != b[i].SignalType || a[i].Confidence != b[i].Confidence {
			t.Errorf("signal %d differs: %q/%v vs %q/%v", i, a[i].SignalType, a[i].Confidence, b[i].SignalType, b[i].Confidence)
		}
		if !reflect.DeepEqual(a[i].Reasoning, b[i].Reasoning) {
			t.Errorf("signal %d reasoning differs", i)
		}
	}
}

func TestSynthesizeNeutralInputsOverallHold(t *testing.T) {
	s := NewSynthesizer()
	in := Inputs{
		Volume: &models.VolumeSnapshot{VolumeRatio: 1.0, Trend: models.VolumeTrendFlat},
	}
	out := s.Synthesize(in)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want source + overall", len(out))
	}
	overall := out[1]
	if overall.SignalType != models.SignalHold || overall.Confidence != 0 {
		t.Errorf("overall = %q/%v, want HOLD/0", overall.SignalType, overall.Confidence)
	}
	if overall.Reasoning[0] != "Insufficient data for AI analysis" {
		t.Errorf("overall reasoning = %v", overall.Reasoning)
	}
}

func TestGuardedRecoversPanic(t *testing.T) {
	s := NewSynthesizer()
	sig := s.guarded("technical", time.Now(), func() (models.AISignal, error) {
		panic("boom")
	})
	if sig.SignalType != models.SignalHold || sig.Confidence != 0 {
		t.Fatalf("recovered signal = %q/%v, want HOLD/0", sig.SignalType, sig.Confidence)
	}
	if len(sig.Reasoning) != 1 || !strings.Contains(sig.Reasoning[0], "technical signal generation failed") {
		t.Errorf("Reasoning = %v", sig.Reasoning)
	}
}

func TestTagBasedRules(t *testing.T) {
	s := NewSynthesizer()

	bullish := models.IndicatorSet{RSI14: 25, Trend: models.TrendBullish, MACD: 1, MACDSignal: 0}
	bearish := models.IndicatorSet{RSI14: 75, Trend: models.TrendBearish, MACD: -1, MACDSignal: 0}
	neutral := models.IndicatorSet{RSI14: 50, Trend: models.TrendNeutral, MACD: 1, MACDSignal: 0}

	tests := []struct {
		name       string
		ind        models.IndicatorSet
		sentiments []string
		want       string
	}{
		{"oversold bullish positive", bullish, []string{models.SentimentPositive}, models.SignalStrongBuy},
		{"overbought bearish negative", bearish, []string{models.SentimentNegative}, models.SignalStrongSell},
		{"bullish positive", models.IndicatorSet{RSI14: 50, Trend: models.TrendBullish, MACD: 1, MACDSignal: 0}, []string{models.SentimentPositive}, models.SignalBuy},
		{"bearish negative", models.IndicatorSet{RSI14: 50, Trend: models.TrendBearish, MACD: 1, MACDSignal: 0}, []string{models.SentimentNegative}, models.SignalSell},
		{"no consensus", neutral, nil, models.SignalHold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.TagBased("AAPL", tt.ind, tt.sentiments)
			if got.Signal != tt.want {
				t.Errorf("Signal = %q (tags %v), want %q", got.Signal, got.Signals, tt.want)
			}
			if got.Ticker != "AAPL" {
				t.Errorf("Ticker = %q", got.Ticker)
			}
		})
	}
}

func TestTagBasedAlwaysHasMACDTag(t *testing.T) {
	s := NewSynthesizer()
	got := s.TagBased("MSFT", models.IndicatorSet{RSI14: 50, Trend: models.TrendNeutral}, nil)
	found := false
	for _, tag := range got.Signals {
		if tag == models.TagMACDBullish || tag == models.TagMACDBearish {
			found = true
		}
	}
	if !found {
		t.Errorf("Signals = %v, want a MACD tag", got.Signals)
	}
}

func TestTagBasedHoldReasoning(t *testing.T) {
	s := NewSynthesizer()
	got := s.TagBased("TSLA", models.IndicatorSet{RSI14: 50, Trend: models.TrendNeutral}, nil)
	if got.Signal != models.SignalHold {
		t.Fatalf("Signal = %q, want HOLD", got.Signal)
	}
	last := got.Reasoning[len(got.Reasoning)-1]
	if last != "Mixed signals - recommend holding" {
		t.Errorf("last reasoning = %q", last)
	}
}
