package sentiment

import (
	"math"
	"regexp"
	"strings"

	"MarketPulse/internal/domain/models"
)

// Net score beyond ±0.1 decides polarity; anything inside the band is
// neutral with zero confidence.
const neutralBand = 0.1

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Analyzer scores financial text against the weighted lexicon. Stateless,
// safe for concurrent use.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Classify returns the polarity label and its confidence for one text.
// Confidence is min(|net|, 1) and is forced to zero for NEUTRAL.
func (a *Analyzer) Classify(text string) (string, float64) {
	res := a.Analyze(text, nil)
	return res.Sentiment, res.Confidence
}

// Analyze runs the full scoring pass: polarity scores with intensifier and
// negator multipliers, emotion detection, keyword extraction, and optional
// context weighting. Empty or whitespace-only text is neutral.
func (a *Analyzer) Analyze(text string, ctx *models.SentimentContext) models.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return models.SentimentResult{
			Sentiment: models.SentimentNeutral,
			Emotions:  map[string]float64{},
			Keywords:  []string{},
		}
	}

	normalized := normalize(text)
	multiplier := modifierProduct(normalized)
	positive := termScore(normalized, positiveTerms) * multiplier
	negative := termScore(normalized, negativeTerms) * multiplier

	net := positive - negative
	res := models.SentimentResult{
		Score:         net,
		Magnitude:     math.Abs(positive) + math.Abs(negative),
		Emotions:      detectEmotions(normalized),
		Keywords:      extractKeywords(normalized),
		PositiveScore: positive,
		NegativeScore: negative,
	}

	switch {
	case net > neutralBand:
		res.Sentiment = models.SentimentPositive
		res.Confidence = math.Min(math.Abs(net), 1.0)
	case net < -neutralBand:
		res.Sentiment = models.SentimentNegative
		res.Confidence = math.Min(math.Abs(net), 1.0)
	default:
		res.Sentiment = models.SentimentNeutral
	}

	if ctx != nil {
		res.ContextImpact = contextImpact(normalized, ctx)
	}
	return res
}

// normalize lowercases, strips punctuation to spaces, and collapses runs of
// whitespace.
func normalize(text string) string {
	text = strings.ToLower(text)
	text = nonWordRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

func termScore(text string, terms []weightedTerm) float64 {
	var score float64
	for _, t := range terms {
		if strings.Contains(text, t.Word) {
			score += t.Weight
		}
	}
	return score
}

// modifierProduct multiplies the weights of every intensifier and negator
// present in the text. The product applies to both polarity scores, so an
// even number of negators cancels out.
func modifierProduct(text string) float64 {
	m := 1.0
	for _, t := range intensifierTerms {
		if strings.Contains(text, t.Word) {
			m *= t.Weight
		}
	}
	for _, t := range negatorTerms {
		if strings.Contains(text, t.Word) {
			m *= t.Weight
		}
	}
	return m
}

func extractKeywords(text string) []string {
	keywords := []string{}
	for _, t := range positiveTerms {
		if strings.Contains(text, t.Word) {
			keywords = append(keywords, t.Word)
		}
	}
	for _, t := range negativeTerms {
		if strings.Contains(text, t.Word) {
			keywords = append(keywords, t.Word)
		}
	}
	return keywords
}

// detectEmotions scores five emotion channels at 0.2 per keyword hit, each
// clamped to 1.
func detectEmotions(text string) map[string]float64 {
	emotions := make(map[string]float64, len(emotionKeywords))
	for _, e := range emotionKeywords {
		var score float64
		for _, kw := range e.Keywords {
			if strings.Contains(text, kw) {
				score += 0.2
			}
		}
		emotions[e.Emotion] = math.Min(score, 1.0)
	}
	return emotions
}

// contextImpact weights earnings-season vocabulary and market hours, clamped
// to 1.
func contextImpact(text string, ctx *models.SentimentContext) float64 {
	var impact float64
	if ctx.IsEarningsSeason {
		for _, kw := range earningsKeywords {
			if strings.Contains(text, kw) {
				impact += 0.1
			}
		}
	}
	if ctx.IsMarketOpen {
		impact += 0.1
	}
	return math.Min(impact, 1.0)
}
