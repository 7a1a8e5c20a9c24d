package models

import "time"

// NewsArticle is a raw article record from the news provider. Immutable input
// to the sentiment engine.
type NewsArticle struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// News impact levels.
const (
	ImpactHigh   = "HIGH"
	ImpactMedium = "MEDIUM"
	ImpactLow    = "LOW"
)

// NewsImpact scores the potential market impact of one article, independent
// of its sentiment polarity. All scores are clamped to [0,1].
type NewsImpact struct {
	ImpactScore     float64            `json:"impact_score"`
	ImpactLevel     string             `json:"impact_level"`
	MarketRelevance float64            `json:"market_relevance"`
	Urgency         float64            `json:"urgency"`
	SectorImpact    map[string]float64 `json:"sector_impact"`
	KeywordsFound   []string           `json:"keywords_found"`
}
