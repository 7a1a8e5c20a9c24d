package sentiment

import (
	"math"
	"strings"

	"MarketPulse/internal/domain/models"
)

const (
	impactHighThreshold   = 0.7
	impactMediumThreshold = 0.4
)

// AssessImpact estimates the market impact of one article from its title and
// content: weighted category keywords normalized to [0, 1], plus market
// relevance, urgency, and per-sector exposure.
func (a *Analyzer) AssessImpact(article models.NewsArticle) models.NewsImpact {
	text := normalize(article.Title + " " + article.Content)

	var raw float64
	found := []string{}
	for _, t := range impactWeights {
		if strings.Contains(text, t.Word) {
			raw += t.Weight
			found = append(found, t.Word)
		}
	}
	score := math.Min(raw/10.0, 1.0)

	level := models.ImpactLow
	switch {
	case score > impactHighThreshold:
		level = models.ImpactHigh
	case score > impactMediumThreshold:
		level = models.ImpactMedium
	}

	return models.NewsImpact{
		ImpactScore:     score,
		ImpactLevel:     level,
		MarketRelevance: keywordScore(text, relevanceKeywords, 0.1),
		Urgency:         keywordScore(text, urgencyKeywords, 0.2),
		SectorImpact:    sectorImpact(text),
		KeywordsFound:   found,
	}
}

func keywordScore(text string, keywords []string, perHit float64) float64 {
	var score float64
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			score += perHit
		}
	}
	return math.Min(score, 1.0)
}

// sectorImpact maps sector name to exposure at 0.1 per keyword hit, clamped
// to 1. Sectors with no hits are omitted.
func sectorImpact(text string) map[string]float64 {
	out := map[string]float64{}
	for _, s := range sectorKeywords {
		var impact float64
		for _, kw := range s.Keywords {
			if strings.Contains(text, kw) {
				impact += 0.1
			}
		}
		if impact > 0 {
			out[s.Sector] = math.Min(impact, 1.0)
		}
	}
	return out
}
