package util

import "math"

// Round rounds to the given number of decimal places, half away from zero.
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// Round2 rounds to price/percent scale.
func Round2(v float64) float64 { return Round(v, 2) }

// Round4 rounds to oscillator scale.
func Round4(v float64) float64 { return Round(v, 4) }
