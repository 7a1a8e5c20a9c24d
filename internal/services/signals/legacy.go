package signals

import (
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
)

// TagBased produces the classic rules-engine signal from indicator state and
// per-article sentiment labels. It predates the scored synthesizer and is
// kept for the dashboard's simple signal view.
func (s *Synthesizer) TagBased(ticker string, ind models.IndicatorSet, sentiments []string) models.Signal {
	var tags []string
	var reasoning []string

	if ind.RSI14 > 70 {
		tags = append(tags, models.TagOverbought)
		reasoning = append(reasoning, "RSI indicates overbought conditions")
	} else if ind.RSI14 < 30 {
		tags = append(tags, models.TagOversold)
		reasoning = append(reasoning, "RSI indicates oversold conditions")
	}

	switch ind.Trend {
	case models.TrendBullish:
		tags = append(tags, models.TagBullishTrend)
		reasoning = append(reasoning, "Price above 20-day EMA indicates bullish trend")
	case models.TrendBearish:
		tags = append(tags, models.TagBearishTrend)
		reasoning = append(reasoning, "Price below 20-day EMA indicates bearish trend")
	}

	// One MACD tag is always present.
	if ind.MACD > ind.MACDSignal {
		tags = append(tags, models.TagMACDBullish)
		reasoning = append(reasoning, "MACD line above signal line")
	} else {
		tags = append(tags, models.TagMACDBearish)
		reasoning = append(reasoning, "MACD line below signal line")
	}

	var positive, negative int
	for _, label := range sentiments {
		switch label {
		case models.SentimentPositive:
			positive++
		case models.SentimentNegative:
			negative++
		}
	}
	if positive > negative {
		tags = append(tags, models.TagPositiveNews)
		reasoning = append(reasoning, fmt.Sprintf("More positive news (%d positive vs %d negative)", positive, negative))
	} else if negative > positive {
		tags = append(tags, models.TagNegativeNews)
		reasoning = append(reasoning, fmt.Sprintf("More negative news (%d negative vs %d positive)", negative, positive))
	}

	verdict := models.SignalHold
	switch {
	case hasAll(tags, models.TagOversold, models.TagBullishTrend, models.TagPositiveNews):
		verdict = models.SignalStrongBuy
	case hasAll(tags, models.TagOverbought, models.TagBearishTrend, models.TagNegativeNews):
		verdict = models.SignalStrongSell
	case hasAll(tags, models.TagBullishTrend, models.TagPositiveNews):
		verdict = models.SignalBuy
	case hasAll(tags, models.TagBearishTrend, models.TagNegativeNews):
		verdict = models.SignalSell
	default:
		reasoning = append(reasoning, "Mixed signals - recommend holding")
	}

	return models.Signal{
		Ticker:      ticker,
		Signal:      verdict,
		Signals:     tags,
		Reasoning:   reasoning,
		GeneratedAt: time.Now(),
	}
}

func hasAll(tags []string, want ...string) bool {
	for _, w := range want {
		found := false
		for _, t := range tags {
			if t == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
