package sentiment

// weightedTerm pairs a lexicon entry with its weight. Tables are ordered
// slices rather than maps so keyword extraction is deterministic.
type weightedTerm struct {
	Word   string
	Weight float64
}

// Financial polarity lexicon. Matching is substring containment over the
// normalized text, so inflected forms ("soaring", "profits") hit their stem.
var positiveTerms = []weightedTerm{
	{"breakthrough", 0.9}, {"surge", 0.8}, {"rally", 0.8}, {"soar", 0.9}, {"skyrocket", 0.9},
	{"bullish", 0.8}, {"optimistic", 0.7}, {"confident", 0.7}, {"strong", 0.6}, {"robust", 0.7},
	{"growth", 0.6}, {"profit", 0.7}, {"gain", 0.6}, {"rise", 0.5}, {"increase", 0.5},
	{"beat", 0.8}, {"exceed", 0.7}, {"outperform", 0.7}, {"success", 0.6}, {"win", 0.6},
	{"recovery", 0.6}, {"rebound", 0.6}, {"bounce", 0.5}, {"upswing", 0.6}, {"momentum", 0.5},
	{"breakout", 0.7}, {"milestone", 0.6}, {"record", 0.7}, {"high", 0.5}, {"peak", 0.6},
	{"expansion", 0.6}, {"boom", 0.8}, {"thrive", 0.7}, {"flourish", 0.7}, {"prosper", 0.7},
	{"upgrade", 0.7}, {"raise", 0.6}, {"boost", 0.6}, {"enhance", 0.5}, {"improve", 0.5},
	{"positive", 0.5}, {"favorable", 0.6}, {"promising", 0.6}, {"bright", 0.5}, {"solid", 0.5},
	{"good", 0.5},
}

var negativeTerms = []weightedTerm{
	{"crash", 0.9}, {"plunge", 0.8}, {"slump", 0.7}, {"collapse", 0.9}, {"tumble", 0.7},
	{"bearish", 0.8}, {"pessimistic", 0.7}, {"concern", 0.6}, {"worry", 0.6}, {"fear", 0.7},
	{"crisis", 0.9}, {"recession", 0.8}, {"downturn", 0.7}, {"decline", 0.6}, {"fall", 0.5},
	{"loss", 0.7}, {"miss", 0.6}, {"underperform", 0.6}, {"disappoint", 0.6}, {"fail", 0.7},
	{"volatility", 0.5}, {"uncertainty", 0.6}, {"risk", 0.5}, {"pressure", 0.5}, {"stress", 0.6},
	{"weak", 0.6}, {"soft", 0.5}, {"sluggish", 0.6}, {"stagnant", 0.5}, {"flat", 0.4},
	{"downgrade", 0.7}, {"cut", 0.6}, {"reduce", 0.5}, {"lower", 0.5}, {"decrease", 0.5},
	{"negative", 0.5}, {"unfavorable", 0.6}, {"concerning", 0.6}, {"troubling", 0.7}, {"alarming", 0.8},
	{"drop", 0.5}, {"down", 0.4}, {"dip", 0.4}, {"slip", 0.4}, {"retreat", 0.5},
}

// Intensifiers scale both polarity scores; weights below 1 dampen.
var intensifierTerms = []weightedTerm{
	{"very", 1.5}, {"extremely", 2.0}, {"highly", 1.8}, {"significantly", 1.7}, {"substantially", 1.6},
	{"dramatically", 1.8}, {"massively", 2.0}, {"tremendously", 1.9}, {"considerably", 1.6},
	{"slightly", 0.7}, {"somewhat", 0.8}, {"moderately", 0.9}, {"fairly", 0.9}, {"relatively", 0.8},
}

// Negators flip the sign of both polarity scores. Note "not" contains "no",
// so a single "not" in the text applies both and the signs cancel.
var negatorTerms = []weightedTerm{
	{"not", -1.0}, {"no", -1.0}, {"never", -1.0}, {"none", -1.0}, {"nothing", -1.0},
	{"nobody", -1.0}, {"nowhere", -1.0}, {"neither", -1.0}, {"nor", -1.0}, {"without", -1.0},
	{"lack", -0.8}, {"absence", -0.8}, {"missing", -0.7}, {"devoid", -0.8},
}

// Impact weights for market-moving content categories. The raw sum is
// normalized by 10 and clamped to [0, 1].
var impactWeights = []weightedTerm{
	{"earnings", 1.5}, {"revenue", 1.3}, {"profit", 1.4}, {"guidance", 1.6}, {"forecast", 1.4},
	{"merger", 1.8}, {"acquisition", 1.7}, {"partnership", 1.2}, {"deal", 1.3}, {"agreement", 1.1},
	{"ceo", 1.3}, {"executive", 1.2}, {"management", 1.1}, {"leadership", 1.1}, {"board", 1.2},
	{"dividend", 1.2}, {"buyback", 1.3}, {"split", 1.1}, {"spinoff", 1.4}, {"ipo", 1.5},
	{"regulation", 1.4}, {"policy", 1.3}, {"government", 1.5}, {"federal", 1.4}, {"sec", 1.3},
	{"analyst", 1.2}, {"rating", 1.3}, {"upgrade", 1.4}, {"downgrade", 1.4}, {"target", 1.2},
	{"crisis", 2.0}, {"scandal", 1.8}, {"investigation", 1.6}, {"lawsuit", 1.5}, {"fine", 1.4},
}

var emotionKeywords = []struct {
	Emotion  string
	Keywords []string
}{
	{"excitement", []string{"excited", "thrilled", "amazing", "incredible", "fantastic"}},
	{"fear", []string{"fear", "worried", "concerned", "nervous", "anxious"}},
	{"anger", []string{"angry", "furious", "outraged", "frustrated", "disappointed"}},
	{"surprise", []string{"surprised", "shocked", "unexpected", "sudden", "surprising"}},
	{"sadness", []string{"sad", "disappointed", "depressed", "gloomy", "pessimistic"}},
}

var earningsKeywords = []string{"earnings", "revenue", "profit", "guidance", "forecast"}

var relevanceKeywords = []string{
	"stock", "market", "trading", "investor", "portfolio", "equity",
	"share", "price", "volume", "volatility", "trend", "analysis",
}

var urgencyKeywords = []string{
	"urgent", "breaking", "immediate", "critical", "emergency",
	"alert", "warning", "crisis", "crash", "plunge", "surge",
}

var sectorKeywords = []struct {
	Sector   string
	Keywords []string
}{
	{"technology", []string{"tech", "software", "ai", "artificial intelligence", "cloud", "digital", "cyber", "data"}},
	{"finance", []string{"bank", "financial", "credit", "loan", "interest", "rate", "fed", "monetary"}},
	{"healthcare", []string{"pharma", "drug", "medical", "health", "biotech", "clinical", "fda", "treatment"}},
	{"energy", []string{"oil", "gas", "energy", "renewable", "solar", "wind", "fossil", "drilling"}},
	{"retail", []string{"retail", "consumer", "shopping", "store", "sales", "ecommerce", "amazon", "walmart"}},
	{"automotive", []string{"auto", "car", "vehicle", "tesla", "electric", "ev", "manufacturing", "production"}},
}
