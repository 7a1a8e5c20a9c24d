package models

import "time"

// Signal types, ordered from strongest buy to strongest sell.
const (
	SignalStrongBuy  = "STRONG_BUY"
	SignalBuy        = "BUY"
	SignalHold       = "HOLD"
	SignalSell       = "SELL"
	SignalStrongSell = "STRONG_SELL"
)

// Discrete tags derived by the legacy tag-based signal variant.
const (
	TagOverbought   = "OVERBOUGHT"
	TagOversold     = "OVERSOLD"
	TagBullishTrend = "BULLISH_TREND"
	TagBearishTrend = "BEARISH_TREND"
	TagMACDBullish  = "MACD_BULLISH"
	TagMACDBearish  = "MACD_BEARISH"
	TagPositiveNews = "POSITIVE_NEWS"
	TagNegativeNews = "NEGATIVE_NEWS"
)

// AISignal is a score-based advisory signal: one per source plus one overall.
// Reasoning is the ordered, never-truncated audit trail for the score.
// Component score pointers are set only by the source that computed them.
type AISignal struct {
	SignalType     string    `json:"signal_type"`
	Confidence     float64   `json:"confidence"`
	Reasoning      []string  `json:"reasoning"`
	TechnicalScore *float64  `json:"technical_score,omitempty"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	VolumeScore    *float64  `json:"volume_score,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Signal is the legacy tag-based variant: discrete condition tags mapped to a
// recommendation by exact-match rules.
type Signal struct {
	Ticker      string    `json:"ticker"`
	Signal      string    `json:"signal"`
	Signals     []string  `json:"signals"`
	Reasoning   []string  `json:"reasoning"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AnalysisBundle is the full per-ticker analysis the API layer serializes:
// every derived view over one fetch of bars and news.
type AnalysisBundle struct {
	Ticker          string            `json:"ticker"`
	Indicators      *IndicatorSet     `json:"indicators,omitempty"`
	Volume          *VolumeSnapshot   `json:"volume,omitempty"`
	Momentum        *PriceMomentum    `json:"momentum,omitempty"`
	MarketSentiment *MarketSentiment  `json:"market_sentiment,omitempty"`
	Articles        []NewsArticle     `json:"articles,omitempty"`
	ArticleResults  []SentimentResult `json:"article_results,omitempty"`
	NewsImpacts     []NewsImpact      `json:"news_impacts,omitempty"`
	AISignals       []AISignal        `json:"ai_signals"`
	LegacySignal    *Signal           `json:"signal,omitempty"`
	Errors          map[string]string `json:"errors,omitempty"`
	GeneratedAt     time.Time         `json:"generated_at"`
}
