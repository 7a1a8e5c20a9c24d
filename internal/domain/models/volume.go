package models

// Volume trend direction, day over day.
const (
	VolumeTrendIncreasing = "Increasing"
	VolumeTrendDecreasing = "Decreasing"
	VolumeTrendFlat       = "Flat"
)

// VolumeSnapshot is the derived volume analysis of the last bar against its
// trailing 5- and 20-day averages. Recomputed on every request.
type VolumeSnapshot struct {
	CurrentVolume    float64 `json:"current_volume"`
	AvgVolume20D     float64 `json:"avg_volume_20d"`
	VolumeRatio      float64 `json:"volume_ratio"`
	Trend            string  `json:"trend"`
	TrendStrength    float64 `json:"trend_strength"`
	Strength         string  `json:"strength"`
	Signal           string  `json:"signal"`
	VolumeOscillator float64 `json:"volume_oscillator"`
	VOSignal         string  `json:"vo_signal"`
	PriceChangePct   float64 `json:"price_change_pct"`
	PVRelationship   string  `json:"pv_relationship"`
	Conviction       string  `json:"conviction"`
	VolumeSpike      bool    `json:"volume_spike"`
}
