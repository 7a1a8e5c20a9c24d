package sentiment

import (
	"time"

	"MarketPulse/internal/domain/models"
)

// AggregateMarket folds per-article sentiment into one market-level view:
// mean net score, label ratios, and mean per-article confidence. An empty
// article list is fully neutral with a neutral ratio of 1.
func (a *Analyzer) AggregateMarket(articles []models.NewsArticle) models.MarketSentiment {
	now := time.Now()
	if len(articles) == 0 {
		return models.MarketSentiment{
			OverallSentiment: models.SentimentNeutral,
			NeutralRatio:     1.0,
			LastUpdated:      now,
		}
	}

	var scoreSum, confidenceSum float64
	var positive, negative, neutral int
	for _, article := range articles {
		res := a.Analyze(article.Title+" "+article.Content, nil)
		scoreSum += res.Score
		confidenceSum += res.Confidence
		switch res.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNegative:
			negative++
		default:
			neutral++
		}
	}

	total := float64(len(articles))
	overallScore := scoreSum / total

	overall := models.SentimentNeutral
	switch {
	case overallScore > neutralBand:
		overall = models.SentimentPositive
	case overallScore < -neutralBand:
		overall = models.SentimentNegative
	}

	return models.MarketSentiment{
		OverallSentiment: overall,
		SentimentScore:   overallScore,
		Confidence:       confidenceSum / total,
		NewsCount:        len(articles),
		PositiveRatio:    float64(positive) / total,
		NegativeRatio:    float64(negative) / total,
		NeutralRatio:     float64(neutral) / total,
		LastUpdated:      now,
	}
}
