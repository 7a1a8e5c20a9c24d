package models

import "time"

// Sentiment labels.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// SentimentResult is the per-article sentiment verdict. Score is the signed
// net lexicon score (unbounded), Confidence is |score| clamped to [0,1] and
// forced to 0 for NEUTRAL. Emotions maps emotion name to a [0,1] intensity.
type SentimentResult struct {
	Sentiment     string             `json:"sentiment"`
	Score         float64            `json:"score"`
	Confidence    float64            `json:"confidence"`
	Magnitude     float64            `json:"magnitude"`
	Emotions      map[string]float64 `json:"emotions"`
	Keywords      []string           `json:"keywords"`
	ContextImpact float64            `json:"context_impact"`
	PositiveScore float64            `json:"positive_score"`
	NegativeScore float64            `json:"negative_score"`
}

// SentimentContext carries request-scoped flags that modulate the
// context-impact score.
type SentimentContext struct {
	IsEarningsSeason bool `json:"is_earnings_season"`
	IsMarketOpen     bool `json:"is_market_open"`
}

// MarketSentiment aggregates per-article sentiment over one news batch.
// The three ratios sum to 1 for any non-empty batch.
type MarketSentiment struct {
	OverallSentiment string    `json:"overall_sentiment"`
	SentimentScore   float64   `json:"sentiment_score"`
	Confidence       float64   `json:"confidence"`
	NewsCount        int       `json:"news_count"`
	PositiveRatio    float64   `json:"positive_ratio"`
	NegativeRatio    float64   `json:"negative_ratio"`
	NeutralRatio     float64   `json:"neutral_ratio"`
	LastUpdated      time.Time `json:"last_updated"`
}
