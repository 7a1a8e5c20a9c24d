package signals

import (
	"fmt"
	"math"
	"time"

	"MarketPulse/internal/domain/models"
)

// Signal thresholds shared by the per-source generators.
const (
	strongThreshold  = 0.4
	signalThreshold  = 0.2
	overallStrong    = 0.7
	overallThreshold = 0.3
)

// Inputs carries the analysis views one synthesis pass works from. Nil
// fields skip their source.
type Inputs struct {
	Indicators  *models.IndicatorSet
	Volume      *models.VolumeSnapshot
	Momentum    *models.PriceMomentum
	Sentiment   *models.MarketSentiment
	NewsImpacts []models.NewsImpact
}

// Synthesizer turns analysis views into scored trading signals, one per
// available source plus a confidence-weighted overall signal. Stateless,
// safe for concurrent use.
type Synthesizer struct{}

func NewSynthesizer() *Synthesizer { return &Synthesizer{} }

// Synthesize runs every available source and appends the overall signal.
// Each source runs behind a recover guard, so a panic in one source
// degrades that source to a zero-confidence HOLD instead of failing the
// pass. Output order is fixed: technical, volume, momentum, sentiment,
// news, overall.
func (s *Synthesizer) Synthesize(in Inputs) []models.AISignal {
	now := time.Now()
	var out []models.AISignal

	if in.Indicators != nil {
		out = append(out, s.guarded("technical", now, func() (models.AISignal, error) {
			return s.technicalSignal(*in.Indicators, now)
		}))
	}
	if in.Volume != nil {
		out = append(out, s.guarded("volume", now, func() (models.AISignal, error) {
			return s.volumeSignal(*in.Volume, now), nil
		}))
	}
	if in.Momentum != nil {
		out = append(out, s.guarded("momentum", now, func() (models.AISignal, error) {
			return s.momentumSignal(*in.Momentum, now), nil
		}))
	}
	if in.Sentiment != nil {
		out = append(out, s.guarded("sentiment", now, func() (models.AISignal, error) {
			return s.sentimentSignal(*in.Sentiment, now), nil
		}))
	}
	if in.NewsImpacts != nil {
		out = append(out, s.guarded("news", now, func() (models.AISignal, error) {
			return s.newsSignal(in.NewsImpacts, now), nil
		}))
	}

	if len(out) > 0 {
		out = append(out, s.overallSignal(out, now))
	}
	return out
}

// guarded degrades a failing or panicking source to HOLD with zero
// confidence so the remaining sources still synthesize.
func (s *Synthesizer) guarded(source string, now time.Time, fn func() (models.AISignal, error)) (sig models.AISignal) {
	defer func() {
		if r := recover(); r != nil {
			sig = failedSource(source, fmt.Sprintf("%v", r), now)
		}
	}()
	sig, err := fn()
	if err != nil {
		return failedSource(source, err.Error(), now)
	}
	return sig
}

func failedSource(source, cause string, now time.Time) models.AISignal {
	return models.AISignal{
		SignalType:  models.SignalHold,
		Confidence:  0,
		Reasoning:   []string{fmt.Sprintf("%s signal generation failed: %s", source, cause)},
		GeneratedAt: now,
	}
}

func (s *Synthesizer) technicalSignal(ind models.IndicatorSet, now time.Time) (models.AISignal, error) {
	var reasoning []string
	var score float64

	switch {
	case ind.RSI14 > 80:
		reasoning = append(reasoning, fmt.Sprintf("RSI extremely overbought at %.1f", ind.RSI14))
		score -= 0.3
	case ind.RSI14 > 70:
		reasoning = append(reasoning, fmt.Sprintf("RSI overbought at %.1f", ind.RSI14))
		score -= 0.2
	case ind.RSI14 < 20:
		reasoning = append(reasoning, fmt.Sprintf("RSI extremely oversold at %.1f", ind.RSI14))
		score += 0.3
	case ind.RSI14 < 30:
		reasoning = append(reasoning, fmt.Sprintf("RSI oversold at %.1f", ind.RSI14))
		score += 0.2
	}

	if ind.MACD > ind.MACDSignal {
		reasoning = append(reasoning, "MACD bullish crossover")
		score += 0.2
	} else {
		reasoning = append(reasoning, "MACD bearish crossover")
		score -= 0.2
	}

	// A zero-width band (zero-variance window) has no defined position;
	// the source fails rather than fabricating one.
	width := ind.BollingerUpper - ind.BollingerLower
	if width <= 0 {
		return models.AISignal{}, fmt.Errorf("bollinger band width %.4f is not positive", width)
	}
	position := (ind.CurrentPrice - ind.BollingerLower) / width
	if position > 0.8 {
		reasoning = append(reasoning, "Price near upper Bollinger Band")
		score -= 0.1
	} else if position < 0.2 {
		reasoning = append(reasoning, "Price near lower Bollinger Band")
		score += 0.1
	}

	if ind.SMA20 > ind.SMA50 {
		reasoning = append(reasoning, "SMA 20 above SMA 50 - bullish trend")
		score += 0.15
	} else {
		reasoning = append(reasoning, "SMA 20 below SMA 50 - bearish trend")
		score -= 0.15
	}

	signalType := classifyScore(score, strongThreshold, signalThreshold)
	if signalType == models.SignalHold {
		reasoning = append(reasoning, "Technical indicators show mixed signals")
	}

	return models.AISignal{
		SignalType:     signalType,
		Confidence:     scoreConfidence(score),
		Reasoning:      reasoning,
		TechnicalScore: &score,
		GeneratedAt:    now,
	}, nil
}

func (s *Synthesizer) volumeSignal(vol models.VolumeSnapshot, now time.Time) models.AISignal {
	var reasoning []string
	var score float64

	switch {
	case vol.VolumeRatio > 2.0:
		reasoning = append(reasoning, fmt.Sprintf("Volume spike detected: %.1fx average", vol.VolumeRatio))
		score += 0.3
	case vol.VolumeRatio > 1.5:
		reasoning = append(reasoning, fmt.Sprintf("High volume: %.1fx average", vol.VolumeRatio))
		score += 0.2
	case vol.VolumeRatio < 0.5:
		reasoning = append(reasoning, fmt.Sprintf("Low volume: %.1fx average", vol.VolumeRatio))
		score -= 0.1
	}

	switch vol.Trend {
	case models.VolumeTrendIncreasing:
		reasoning = append(reasoning, "Volume trend is increasing")
		score += 0.1
	case models.VolumeTrendDecreasing:
		reasoning = append(reasoning, "Volume trend is decreasing")
		score -= 0.1
	}

	if vol.VolumeSpike {
		reasoning = append(reasoning, "Significant volume spike detected")
		score += 0.2
	}

	// Heavy volume tends to precede the move, so the buy bar sits higher
	// than the sell bar.
	signalType := models.SignalHold
	switch {
	case score >= 0.3:
		signalType = models.SignalBuy
	case score <= -0.2:
		signalType = models.SignalSell
	default:
		reasoning = append(reasoning, "Volume analysis shows neutral conditions")
	}

	return models.AISignal{
		SignalType:  signalType,
		Confidence:  scoreConfidence(score),
		Reasoning:   reasoning,
		VolumeScore: &score,
		GeneratedAt: now,
	}
}

func (s *Synthesizer) momentumSignal(m models.PriceMomentum, now time.Time) models.AISignal {
	var reasoning []string
	var score float64

	switch {
	case m.PriceChangePct1D > 5.0:
		reasoning = append(reasoning, fmt.Sprintf("Strong positive momentum: +%.1f%%", m.PriceChangePct1D))
		score += 0.3
	case m.PriceChangePct1D > 2.0:
		reasoning = append(reasoning, fmt.Sprintf("Positive momentum: +%.1f%%", m.PriceChangePct1D))
		score += 0.2
	case m.PriceChangePct1D < -5.0:
		reasoning = append(reasoning, fmt.Sprintf("Strong negative momentum: %.1f%%", m.PriceChangePct1D))
		score -= 0.3
	case m.PriceChangePct1D < -2.0:
		reasoning = append(reasoning, fmt.Sprintf("Negative momentum: %.1f%%", m.PriceChangePct1D))
		score -= 0.2
	}

	if m.PriceChangePct5D > 10.0 {
		reasoning = append(reasoning, fmt.Sprintf("Strong 5-day momentum: +%.1f%%", m.PriceChangePct5D))
		score += 0.2
	} else if m.PriceChangePct5D < -10.0 {
		reasoning = append(reasoning, fmt.Sprintf("Strong 5-day decline: %.1f%%", m.PriceChangePct5D))
		score -= 0.2
	}

	if m.High52W > 0 {
		distance := (m.CurrentPrice - m.High52W) / m.High52W
		if distance > -0.05 {
			reasoning = append(reasoning, "Near 52-week high")
			score += 0.1
		} else if distance < -0.3 {
			reasoning = append(reasoning, "Significantly below 52-week high")
			score -= 0.1
		}
	}

	signalType := classifyScore(score, strongThreshold, signalThreshold)
	if signalType == models.SignalHold {
		reasoning = append(reasoning, "Price momentum shows mixed signals")
	}

	return models.AISignal{
		SignalType:  signalType,
		Confidence:  scoreConfidence(score),
		Reasoning:   reasoning,
		GeneratedAt: now,
	}
}

func (s *Synthesizer) sentimentSignal(ms models.MarketSentiment, now time.Time) models.AISignal {
	var reasoning []string
	score := ms.SentimentScore

	// Bucket strong readings; weak readings keep their raw score.
	switch {
	case score > 0.5:
		reasoning = append(reasoning, fmt.Sprintf("Strong positive sentiment: %.2f", score))
		score = 0.3
	case score > 0.2:
		reasoning = append(reasoning, fmt.Sprintf("Positive sentiment: %.2f", score))
		score = 0.2
	case score < -0.5:
		reasoning = append(reasoning, fmt.Sprintf("Strong negative sentiment: %.2f", score))
		score = -0.3
	case score < -0.2:
		reasoning = append(reasoning, fmt.Sprintf("Negative sentiment: %.2f", score))
		score = -0.2
	}

	if ms.NewsCount > 10 {
		reasoning = append(reasoning, fmt.Sprintf("High news activity: %d articles", ms.NewsCount))
		score *= 1.2
	} else if ms.NewsCount < 3 {
		reasoning = append(reasoning, fmt.Sprintf("Low news activity: %d articles", ms.NewsCount))
		score *= 0.8
	}

	if ms.Confidence > 0.8 {
		reasoning = append(reasoning, fmt.Sprintf("High confidence sentiment: %.2f", ms.Confidence))
		score *= 1.1
	} else if ms.Confidence < 0.5 {
		reasoning = append(reasoning, fmt.Sprintf("Low confidence sentiment: %.2f", ms.Confidence))
		score *= 0.7
	}

	signalType := models.SignalHold
	switch {
	case score >= 0.3:
		signalType = models.SignalBuy
	case score <= -0.3:
		signalType = models.SignalSell
	default:
		reasoning = append(reasoning, "Sentiment analysis shows neutral conditions")
	}

	return models.AISignal{
		SignalType:     signalType,
		Confidence:     scoreConfidence(score),
		Reasoning:      reasoning,
		SentimentScore: &score,
		GeneratedAt:    now,
	}
}

func (s *Synthesizer) newsSignal(impacts []models.NewsImpact, now time.Time) models.AISignal {
	if len(impacts) == 0 {
		return models.AISignal{
			SignalType:  models.SignalHold,
			Confidence:  0,
			Reasoning:   []string{"No news analysis available"},
			GeneratedAt: now,
		}
	}

	var reasoning []string
	var score float64

	var impactSum float64
	topics := map[string]struct{}{}
	for _, impact := range impacts {
		impactSum += impact.ImpactScore
		for _, kw := range impact.KeywordsFound {
			topics[kw] = struct{}{}
		}
	}
	avgImpact := impactSum / float64(len(impacts))
	if avgImpact > 0.5 {
		reasoning = append(reasoning, fmt.Sprintf("High impact news: %.2f average impact", avgImpact))
		score += 0.3
	}

	if len(topics) > 5 {
		reasoning = append(reasoning, fmt.Sprintf("High topic diversity: %d unique topics", len(topics)))
		score += 0.1
	}

	signalType := models.SignalHold
	switch {
	case score >= 0.2:
		signalType = models.SignalBuy
	case score <= -0.2:
		signalType = models.SignalSell
	default:
		reasoning = append(reasoning, "News analysis shows neutral impact")
	}

	return models.AISignal{
		SignalType:  signalType,
		Confidence:  scoreConfidence(score),
		Reasoning:   reasoning,
		GeneratedAt: now,
	}
}

// overallSignal combines the per-source signals into one confidence-weighted
// verdict. Zero-confidence signals carry no information and are excluded
// from the weighting.
func (s *Synthesizer) overallSignal(sourceSignals []models.AISignal, now time.Time) models.AISignal {
	var reasoning []string
	var weightedSum, totalConfidence float64
	counted := 0

	for _, sig := range sourceSignals {
		if sig.Confidence <= 0 {
			continue
		}
		weightedSum += signalScore(sig.SignalType) * sig.Confidence
		totalConfidence += sig.Confidence
		counted++
		reasoning = append(reasoning, fmt.Sprintf("%s (confidence: %.2f)", sig.SignalType, sig.Confidence))
	}

	if counted == 0 || totalConfidence == 0 {
		return models.AISignal{
			SignalType:  models.SignalHold,
			Confidence:  0,
			Reasoning:   []string{"Insufficient data for AI analysis"},
			GeneratedAt: now,
		}
	}

	overallScore := weightedSum / totalConfidence

	signalType := models.SignalHold
	switch {
	case overallScore >= overallStrong:
		signalType = models.SignalStrongBuy
	case overallScore >= overallThreshold:
		signalType = models.SignalBuy
	case overallScore <= -overallStrong:
		signalType = models.SignalStrongSell
	case overallScore <= -overallThreshold:
		signalType = models.SignalSell
	}

	confidence := math.Min(math.Abs(overallScore)*totalConfidence/float64(len(sourceSignals)), 1.0)

	reasoning = append([]string{fmt.Sprintf("AI Analysis Summary: %d signals analyzed", len(sourceSignals))}, reasoning...)
	reasoning = append(reasoning, fmt.Sprintf("Overall AI Score: %.2f", overallScore))

	return models.AISignal{
		SignalType:  signalType,
		Confidence:  confidence,
		Reasoning:   reasoning,
		GeneratedAt: now,
	}
}

func classifyScore(score, strong, weak float64) string {
	switch {
	case score >= strong:
		return models.SignalStrongBuy
	case score >= weak:
		return models.SignalBuy
	case score <= -strong:
		return models.SignalStrongSell
	case score <= -weak:
		return models.SignalSell
	default:
		return models.SignalHold
	}
}

func scoreConfidence(score float64) float64 {
	return math.Min(math.Abs(score)*2, 1.0)
}

func signalScore(signalType string) float64 {
	switch signalType {
	case models.SignalStrongBuy:
		return 1.0
	case models.SignalBuy:
		return 0.5
	case models.SignalSell:
		return -0.5
	case models.SignalStrongSell:
		return -1.0
	default:
		return 0.0
	}
}
