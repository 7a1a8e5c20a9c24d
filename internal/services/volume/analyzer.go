package volume

import (
	"fmt"
	"strings"

	"MarketPulse/internal/domain/models"
)

const (
	longWindow  = 20
	shortWindow = 5

	spikeRatio = 2.0
)

// Analyzer derives volume behavior of the latest bar against its trailing
// 5- and 20-day averages. Stateless, safe for concurrent use.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Analyze computes the full volume snapshot. Fewer than 20 bars has no
// meaningful baseline and returns models.ErrInsufficientData.
func (a *Analyzer) Analyze(bars []models.PriceBar) (models.VolumeSnapshot, error) {
	if len(bars) < longWindow {
		return models.VolumeSnapshot{}, models.ErrInsufficientData
	}

	vols := models.Volumes(bars)
	today := vols[len(vols)-1]
	yesterday := vols[len(vols)-2]
	avg20 := mean(vols[len(vols)-longWindow:])
	avg5 := mean(vols[len(vols)-shortWindow:])

	snap := models.VolumeSnapshot{
		CurrentVolume: today,
		AvgVolume20D:  avg20,
	}

	// Day-over-day trend. A zero baseline is reported as flat rather than
	// an unbounded percentage.
	switch {
	case yesterday == 0:
		snap.Trend = models.VolumeTrendFlat
	case today > yesterday:
		snap.Trend = models.VolumeTrendIncreasing
		snap.TrendStrength = (today - yesterday) / yesterday * 100
	case today < yesterday:
		snap.Trend = models.VolumeTrendDecreasing
		snap.TrendStrength = (yesterday - today) / yesterday * 100
	default:
		snap.Trend = models.VolumeTrendFlat
	}

	if avg20 > 0 {
		snap.VolumeRatio = today / avg20
		snap.VolumeOscillator = (avg5 - avg20) / avg20 * 100
	}
	snap.Strength, snap.Signal = classifyStrength(snap.VolumeRatio)
	snap.VOSignal = classifyOscillator(snap.VolumeOscillator)
	snap.VolumeSpike = avg20 > 0 && today > avg20*spikeRatio

	prevClose := bars[len(bars)-2].Close
	if prevClose != 0 {
		snap.PriceChangePct = (bars[len(bars)-1].Close - prevClose) / prevClose * 100
	}
	snap.PVRelationship, snap.Conviction = classifyPriceVolume(snap.PriceChangePct, snap.VolumeRatio)

	return snap, nil
}

// Summary renders a one-line volume readout for dashboards.
func (a *Analyzer) Summary(bars []models.PriceBar) string {
	snap, err := a.Analyze(bars)
	if err != nil {
		return "Insufficient data"
	}
	ratio := snap.VolumeRatio
	switch {
	case (snap.Strength == "High" || snap.Strength == "Extremely High") && snap.Trend == models.VolumeTrendIncreasing:
		return fmt.Sprintf("High volume breakout (%.2fx avg)", ratio)
	case snap.Strength == "Low":
		return fmt.Sprintf("Weak volume (%.2fx avg)", ratio)
	default:
		return fmt.Sprintf("%s volume, %s trend", snap.Strength, strings.ToLower(snap.Trend))
	}
}

func classifyStrength(ratio float64) (string, string) {
	switch {
	case ratio > 2.0:
		return "Extremely High", "Strong breakout/breakdown potential"
	case ratio > 1.5:
		return "High", "Above average activity"
	case ratio > 0.8:
		return "Normal", "Average trading activity"
	default:
		return "Low", "Below average interest"
	}
}

func classifyOscillator(vo float64) string {
	switch {
	case vo > 10:
		return "Volume expanding rapidly"
	case vo > 5:
		return "Volume trending higher"
	case vo < -10:
		return "Volume drying up"
	case vo < -5:
		return "Volume declining"
	default:
		return "Volume stable"
	}
}

func classifyPriceVolume(priceChangePct, ratio float64) (string, string) {
	switch {
	case priceChangePct > 0 && ratio > 1.2:
		return "Bullish confirmation", "High"
	case priceChangePct > 0 && ratio < 0.8:
		return "Weak rally", "Low"
	case priceChangePct < 0 && ratio > 1.2:
		return "Bearish pressure", "High"
	case priceChangePct < 0 && ratio < 0.8:
		return "Weak selling", "Low"
	default:
		return "Neutral", "Medium"
	}
}

// OBV computes the running on-balance volume series: volume is added on up
// closes, subtracted on down closes, carried on flat closes.
func OBV(bars []models.PriceBar) []float64 {
	if len(bars) == 0 {
		return nil
	}
	out := make([]float64, len(bars))
	out[0] = bars[0].Volume
	for i := 1; i < len(bars); i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			out[i] = out[i-1] + bars[i].Volume
		case bars[i].Close < bars[i-1].Close:
			out[i] = out[i-1] - bars[i].Volume
		default:
			out[i] = out[i-1]
		}
	}
	return out
}

// VWAP computes the cumulative volume-weighted average of the typical price
// (high+low+close)/3 at each bar.
func VWAP(bars []models.PriceBar) []float64 {
	if len(bars) == 0 {
		return nil
	}
	out := make([]float64, len(bars))
	var cumPV, cumV float64
	for i, b := range bars {
		typical := (b.High + b.Low + b.Close) / 3
		cumPV += typical * b.Volume
		cumV += b.Volume
		if cumV != 0 {
			out[i] = cumPV / cumV
		}
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}
