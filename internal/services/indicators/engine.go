package indicators

import (
	"math"
	"time"

	"MarketPulse/internal/domain/models"
)

// Window sizes and fallback factors. These are the published contract of the
// indicator snapshot, not tunables.
const (
	rsiPeriod       = 14
	macdFast        = 12
	macdSlow        = 26
	macdSignalSpan  = 9
	emaSpan         = 20
	smaShortWindow  = 20
	smaLongWindow   = 50
	bollingerWindow = 20
	bollingerK      = 2.0
	atrPeriod       = 14

	rsiNeutral        = 50.0
	bollingerFallback = 0.05 // ±5% band around close when history is short
	atrFallback       = 0.02 // 2% of close when history is short
)

// Engine computes technical indicators from an OHLCV series. It is stateless
// and safe for concurrent use.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Compute derives the full indicator snapshot from chronologically ordered
// bars. An empty series returns models.ErrInsufficientData; partial history
// is filled with the documented neutral defaults instead.
func (e *Engine) Compute(bars []models.PriceBar) (models.IndicatorSet, error) {
	if len(bars) == 0 {
		return models.IndicatorSet{}, models.ErrInsufficientData
	}

	closes := models.Closes(bars)
	last := closes[len(closes)-1]

	rsi := RSI(closes, rsiPeriod)
	macd, macdSignal, macdHist := MACD(closes, macdFast, macdSlow, macdSignalSpan)
	ema20 := EMA(closes, emaSpan)
	sma20 := SMA(closes, smaShortWindow, last)
	sma50 := SMA(closes, smaLongWindow, last)
	upper, middle, lower := Bollinger(closes, bollingerWindow, bollingerK)
	atr := ATR(bars, atrPeriod)

	set := models.IndicatorSet{
		RSI14:           finiteOr(rsi, rsiNeutral),
		MACD:            finiteOr(macd, 0),
		MACDSignal:      finiteOr(macdSignal, 0),
		MACDHist:        finiteOr(macdHist, 0),
		EMA20:           finiteOr(ema20, last),
		SMA20:           finiteOr(sma20, last),
		SMA50:           finiteOr(sma50, last),
		BollingerUpper:  finiteOr(upper, last*(1+bollingerFallback)),
		BollingerMiddle: finiteOr(middle, last),
		BollingerLower:  finiteOr(lower, last*(1-bollingerFallback)),
		ATR14:           finiteOr(atr, last*atrFallback),
		CurrentPrice:    last,
		LastUpdated:     time.Now(),
	}
	set.Trend = classifyTrend(last, set.EMA20)
	set.RSIStatus = classifyRSI(set.RSI14)
	return set, nil
}

// RSI computes the 14-period relative strength index over simple rolling
// means of gains and losses. Fewer than period+1 closes yields the neutral
// 50; a window with gains and zero losses yields 100 (the RS→∞ case).
func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 {
		return rsiNeutral
	}
	var gain, loss float64
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	if avgLoss == 0 {
		if avgGain == 0 {
			return rsiNeutral
		}
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// MACD computes the fast/slow EMA difference and its signal line, returning
// the latest (macd, signal, histogram) triple.
func MACD(closes []float64, fast, slow, signalSpan int) (float64, float64, float64) {
	if len(closes) == 0 {
		return 0, 0, 0
	}
	fastSeries := emaSeries(closes, fast)
	slowSeries := emaSeries(closes, slow)
	macdSeries := make([]float64, len(closes))
	for i := range closes {
		macdSeries[i] = fastSeries[i] - slowSeries[i]
	}
	signalSeries := emaSeries(macdSeries, signalSpan)
	last := len(closes) - 1
	return macdSeries[last], signalSeries[last], macdSeries[last] - signalSeries[last]
}

// EMA returns the latest exponential moving average with smoothing
// alpha = 2/(span+1), using the adjusted weighted form so early values are
// defined from the first sample.
func EMA(values []float64, span int) float64 {
	if len(values) == 0 {
		return 0
	}
	s := emaSeries(values, span)
	return s[len(s)-1]
}

func emaSeries(values []float64, span int) []float64 {
	alpha := 2.0 / (float64(span) + 1.0)
	decay := 1.0 - alpha
	out := make([]float64, len(values))
	// Adjusted weighted mean written as an incremental correction. The
	// correction term is zero on a constant series, so the average stays
	// exactly at the input value instead of drifting through rounding.
	var ema float64
	den := 1.0
	for i, v := range values {
		if i == 0 {
			ema = v
		} else {
			den = 1 + decay*den
			ema += (v - ema) / den
		}
		out[i] = ema
	}
	return out
}

// SMA returns the mean of the trailing window, or fallback when the series
// is shorter than the window.
func SMA(values []float64, window int, fallback float64) float64 {
	if len(values) < window {
		return fallback
	}
	var sum float64
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return sum / float64(window)
}

// Bollinger returns (upper, middle, lower) bands: SMA ± k·sample-stddev over
// the trailing window. Short history falls back to a ±5% band around the
// latest close.
func Bollinger(closes []float64, window int, k float64) (float64, float64, float64) {
	last := closes[len(closes)-1]
	if len(closes) < window {
		return last * (1 + bollingerFallback), last, last * (1 - bollingerFallback)
	}
	tail := closes[len(closes)-window:]
	var sum float64
	for _, v := range tail {
		sum += v
	}
	mean := sum / float64(window)
	var sq float64
	for _, v := range tail {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(window-1))
	return mean + k*std, mean, mean - k*std
}

// ATR returns the rolling mean of the true range over the trailing window.
// The first bar's true range is high−low; short history falls back to 2% of
// the latest close.
func ATR(bars []models.PriceBar, period int) float64 {
	if len(bars) < period {
		return bars[len(bars)-1].Close * atrFallback
	}
	tr := make([]float64, len(bars))
	tr[0] = bars[0].High - bars[0].Low
	for i := 1; i < len(bars); i++ {
		prevClose := bars[i-1].Close
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - prevClose)
		lc := math.Abs(bars[i].Low - prevClose)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	var sum float64
	for _, v := range tr[len(tr)-period:] {
		sum += v
	}
	return sum / float64(period)
}

func classifyTrend(last, ema20 float64) string {
	switch {
	case last > ema20:
		return models.TrendBullish
	case last < ema20:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

func classifyRSI(rsi float64) string {
	switch {
	case rsi > 70:
		return models.RSIOverbought
	case rsi < 30:
		return models.RSIOversold
	default:
		return models.RSINeutral
	}
}

// finiteOr guards every derived value: NaN or ±Inf is replaced with the
// documented neutral default before the snapshot reaches callers.
func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
