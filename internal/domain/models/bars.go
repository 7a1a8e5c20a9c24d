package models

import (
	"errors"
	"time"
)

// ErrInsufficientData is returned when a computation has no safe neutral
// default for the amount of history supplied (e.g. an empty bar series).
// Partial history is handled with documented defaults instead.
var ErrInsufficientData = errors.New("insufficient data")

// PriceBar is one OHLCV sample. Bars arrive chronologically ordered from the
// market-data provider and are treated as immutable.
type PriceBar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Closes extracts the close column.
func Closes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Volumes extracts the volume column.
func Volumes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}
