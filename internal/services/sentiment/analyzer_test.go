package sentiment

import (
	"math"
	"testing"

	"MarketPulse/internal/domain/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestAnalyzeEmptyText(t *testing.T) {
	a := NewAnalyzer()
	for _, text := range []string{"", "   ", "\t\n"} {
		res := a.Analyze(text, nil)
		if res.Sentiment != models.SentimentNeutral || res.Confidence != 0 || res.Score != 0 {
			t.Errorf("Analyze(%q) = %q/%v/%v, want NEUTRAL/0/0", text, res.Sentiment, res.Confidence, res.Score)
		}
		if len(res.Keywords) != 0 {
			t.Errorf("Analyze(%q) keywords = %v, want none", text, res.Keywords)
		}
	}
}

func TestAnalyzeStrongPositive(t *testing.T) {
	a := NewAnalyzer()
	res := a.Analyze("The company reported a massive breakthrough with soaring profits", nil)

	// breakthrough 0.9 + soar 0.9 + profit 0.7, no modifiers.
	if !almostEqual(res.Score, 2.5) {
		t.Errorf("Score = %v, want 2.5", res.Score)
	}
	if res.Sentiment != models.SentimentPositive {
		t.Errorf("Sentiment = %q, want POSITIVE", res.Sentiment)
	}
	if res.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want capped 1.0", res.Confidence)
	}
	want := map[string]bool{"breakthrough": true, "soar": true, "profit": true}
	for _, kw := range res.Keywords {
		delete(want, kw)
	}
	if len(want) != 0 {
		t.Errorf("Keywords = %v, missing %v", res.Keywords, want)
	}
}

func TestAnalyzeNegatedIntensified(t *testing.T) {
	a := NewAnalyzer()
	res := a.Analyze("not very good, revenue decline and crisis", nil)

	// "not" also matches "no" by containment, so the two negators cancel
	// and "very" scales both sides by 1.5: pos 0.75, neg 2.25, net -1.5.
	if !almostEqual(res.PositiveScore, 0.75) || !almostEqual(res.NegativeScore, 2.25) {
		t.Errorf("scores = %v/%v, want 0.75/2.25", res.PositiveScore, res.NegativeScore)
	}
	if res.Sentiment != models.SentimentNegative {
		t.Errorf("Sentiment = %q, want NEGATIVE", res.Sentiment)
	}
	if res.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", res.Confidence)
	}
	if !almostEqual(res.Magnitude, 3.0) {
		t.Errorf("Magnitude = %v, want 3.0", res.Magnitude)
	}
}

func TestNegatorContainment(t *testing.T) {
	a := NewAnalyzer()

	// "not" carries "no" inside it: both negators fire and the product is
	// positive, so the phrase keeps its surface polarity.
	if res := a.Analyze("not good", nil); res.Sentiment != models.SentimentPositive || !almostEqual(res.Score, 0.5) {
		t.Errorf("Analyze(not good) = %q/%v, want POSITIVE/0.5", res.Sentiment, res.Score)
	}

	// "never" matches only itself, flipping polarity.
	if res := a.Analyze("never good", nil); res.Sentiment != models.SentimentNegative || !almostEqual(res.Score, -0.5) {
		t.Errorf("Analyze(never good) = %q/%v, want NEGATIVE/-0.5", res.Sentiment, res.Score)
	}
}

func TestNeutralZeroConfidence(t *testing.T) {
	a := NewAnalyzer()
	// high 0.5 against risk 0.5 nets out to zero.
	res := a.Analyze("high risk", nil)
	if res.Sentiment != models.SentimentNeutral {
		t.Fatalf("Sentiment = %q, want NEUTRAL", res.Sentiment)
	}
	if res.Confidence != 0 {
		t.Errorf("Confidence = %v, want forced 0 for NEUTRAL", res.Confidence)
	}
}

func TestDetectEmotionsClamped(t *testing.T) {
	a := NewAnalyzer()
	res := a.Analyze("fear worried concerned nervous anxious traders", nil)
	if !almostEqual(res.Emotions["fear"], 1.0) {
		t.Errorf("fear = %v, want clamped 1.0", res.Emotions["fear"])
	}
	if !almostEqual(res.Emotions["anger"], 0) {
		t.Errorf("anger = %v, want 0", res.Emotions["anger"])
	}
	if len(res.Emotions) != 5 {
		t.Errorf("emotion channels = %d, want 5", len(res.Emotions))
	}
}

func TestContextImpact(t *testing.T) {
	a := NewAnalyzer()
	ctx := &models.SentimentContext{IsEarningsSeason: true, IsMarketOpen: true}
	res := a.Analyze("earnings and revenue guidance strong", ctx)
	// Three earnings keywords at 0.1 plus the market-open 0.1.
	if !almostEqual(res.ContextImpact, 0.4) {
		t.Errorf("ContextImpact = %v, want 0.4", res.ContextImpact)
	}

	res = a.Analyze("earnings and revenue guidance strong", nil)
	if res.ContextImpact != 0 {
		t.Errorf("ContextImpact without context = %v, want 0", res.ContextImpact)
	}
}

func TestAssessImpactLevels(t *testing.T) {
	a := NewAnalyzer()
	tests := []struct {
		name      string
		title     string
		wantLevel string
		wantScore float64
	}{
		{
			// crisis 2.0 + scandal 1.8 + investigation 1.6 + lawsuit 1.5 + merger 1.8 = 8.7
			"high", "Merger scandal triggers crisis, investigation and lawsuit", models.ImpactHigh, 0.87,
		},
		{
			// earnings 1.5 + revenue 1.3 + profit 1.4 + guidance 1.6 = 5.8
			"medium", "Earnings beat: revenue and profit top guidance", models.ImpactMedium, 0.58,
		},
		{
			"low", "Company repaints headquarters lobby", models.ImpactLow, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			impact := a.AssessImpact(models.NewsArticle{Title: tt.title})
			if impact.ImpactLevel != tt.wantLevel {
				t.Errorf("ImpactLevel = %q, want %q (score %v)", impact.ImpactLevel, tt.wantLevel, impact.ImpactScore)
			}
			if !almostEqual(impact.ImpactScore, tt.wantScore) {
				t.Errorf("ImpactScore = %v, want %v", impact.ImpactScore, tt.wantScore)
			}
		})
	}
}

func TestAssessImpactAuxScores(t *testing.T) {
	a := NewAnalyzer()
	impact := a.AssessImpact(models.NewsArticle{
		Title:   "Breaking: stock market crash",
		Content: "Trading halted as tech and software stocks plunge on cloud outage",
	})
	// relevance: stock, market, trading at 0.1 each.
	if !almostEqual(impact.MarketRelevance, 0.3) {
		t.Errorf("MarketRelevance = %v, want 0.3", impact.MarketRelevance)
	}
	// urgency: breaking, crash, plunge at 0.2 each.
	if !almostEqual(impact.Urgency, 0.6) {
		t.Errorf("Urgency = %v, want 0.6", impact.Urgency)
	}
	// sector: tech, software, cloud at 0.1 each.
	if !almostEqual(impact.SectorImpact["technology"], 0.3) {
		t.Errorf("SectorImpact[technology] = %v, want 0.3", impact.SectorImpact["technology"])
	}
	if _, ok := impact.SectorImpact["energy"]; ok {
		t.Error("SectorImpact contains energy with no keyword hits")
	}
}

func TestAggregateMarketEmpty(t *testing.T) {
	a := NewAnalyzer()
	ms := a.AggregateMarket(nil)
	if ms.OverallSentiment != models.SentimentNeutral || ms.SentimentScore != 0 || ms.Confidence != 0 {
		t.Errorf("empty aggregate = %q/%v/%v, want NEUTRAL/0/0", ms.OverallSentiment, ms.SentimentScore, ms.Confidence)
	}
	if ms.NeutralRatio != 1.0 || ms.NewsCount != 0 {
		t.Errorf("empty aggregate ratios = %v/%d, want 1.0/0", ms.NeutralRatio, ms.NewsCount)
	}
}

func TestAggregateMarketRatios(t *testing.T) {
	a := NewAnalyzer()
	articles := []models.NewsArticle{
		{Title: "Profits surge on record growth"},
		{Title: "Shares crash amid crisis"},
		{Title: "Quarterly report published"},
		{Title: "Breakthrough rally continues"},
	}
	ms := a.AggregateMarket(articles)
	if ms.NewsCount != 4 {
		t.Fatalf("NewsCount = %d, want 4", ms.NewsCount)
	}
	sum := ms.PositiveRatio + ms.NegativeRatio + ms.NeutralRatio
	if !almostEqual(sum, 1.0) {
		t.Errorf("ratio sum = %v, want 1.0", sum)
	}
	if ms.PositiveRatio != 0.5 || ms.NegativeRatio != 0.25 || ms.NeutralRatio != 0.25 {
		t.Errorf("ratios = %v/%v/%v, want 0.5/0.25/0.25", ms.PositiveRatio, ms.NegativeRatio, ms.NeutralRatio)
	}
	if ms.OverallSentiment != models.SentimentPositive {
		t.Errorf("OverallSentiment = %q (score %v), want POSITIVE", ms.OverallSentiment, ms.SentimentScore)
	}
}
