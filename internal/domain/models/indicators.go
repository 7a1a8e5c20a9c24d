package models

import "time"

// Trend classification relative to the 20-day EMA.
const (
	TrendBullish = "BULLISH"
	TrendBearish = "BEARISH"
	TrendNeutral = "NEUTRAL"
)

// RSI status bands.
const (
	RSIOverbought = "OVERBOUGHT"
	RSIOversold   = "OVERSOLD"
	RSINeutral    = "NEUTRAL"
)

// IndicatorSet is a per-series snapshot of technical indicators, all computed
// from the same trailing window of one bar sequence. Fields that cannot be
// computed from the available history carry their documented neutral default
// (RSI 50, MACD 0, moving averages latest close, Bollinger ±5%, ATR 2%).
type IndicatorSet struct {
	RSI14           float64   `json:"rsi_14"`
	MACD            float64   `json:"macd"`
	MACDSignal      float64   `json:"macd_signal"`
	MACDHist        float64   `json:"macd_histogram"`
	EMA20           float64   `json:"ema_20"`
	SMA20           float64   `json:"sma_20"`
	SMA50           float64   `json:"sma_50"`
	BollingerUpper  float64   `json:"bollinger_upper"`
	BollingerMiddle float64   `json:"bollinger_middle"`
	BollingerLower  float64   `json:"bollinger_lower"`
	ATR14           float64   `json:"atr_14"`
	CurrentPrice    float64   `json:"current_price"`
	Trend           string    `json:"trend"`
	RSIStatus       string    `json:"rsi_status"`
	LastUpdated     time.Time `json:"last_updated"`
}

// PriceMomentum captures short-horizon price change and 52-week range
// position for the momentum signal source.
type PriceMomentum struct {
	CurrentPrice     float64   `json:"current_price"`
	PriceChange1D    float64   `json:"price_change_1d"`
	PriceChangePct1D float64   `json:"price_change_pct_1d"`
	PriceChange5D    float64   `json:"price_change_5d"`
	PriceChangePct5D float64   `json:"price_change_pct_5d"`
	High52W          float64   `json:"high_52w"`
	Low52W           float64   `json:"low_52w"`
	LastUpdated      time.Time `json:"last_updated"`
}
