package usecase

import (
	"MarketPulse/internal/domain/models"
	"MarketPulse/pkg/util"
)

// API-facing snapshots round at assembly: price-scale and percent fields to
// 2 decimals, MACD family to 4. Engines stay full precision so derived
// scores never accumulate rounding error.

func roundIndicators(set *models.IndicatorSet) {
	set.RSI14 = util.Round2(set.RSI14)
	set.MACD = util.Round4(set.MACD)
	set.MACDSignal = util.Round4(set.MACDSignal)
	set.MACDHist = util.Round4(set.MACDHist)
	set.EMA20 = util.Round2(set.EMA20)
	set.SMA20 = util.Round2(set.SMA20)
	set.SMA50 = util.Round2(set.SMA50)
	set.BollingerUpper = util.Round2(set.BollingerUpper)
	set.BollingerMiddle = util.Round2(set.BollingerMiddle)
	set.BollingerLower = util.Round2(set.BollingerLower)
	set.ATR14 = util.Round2(set.ATR14)
	set.CurrentPrice = util.Round2(set.CurrentPrice)
}

func roundVolume(snap *models.VolumeSnapshot) {
	snap.VolumeRatio = util.Round2(snap.VolumeRatio)
	snap.TrendStrength = util.Round2(snap.TrendStrength)
	snap.VolumeOscillator = util.Round2(snap.VolumeOscillator)
	snap.PriceChangePct = util.Round2(snap.PriceChangePct)
}

func roundMomentum(m *models.PriceMomentum) {
	m.CurrentPrice = util.Round2(m.CurrentPrice)
	m.PriceChange1D = util.Round2(m.PriceChange1D)
	m.PriceChangePct1D = util.Round2(m.PriceChangePct1D)
	m.PriceChange5D = util.Round2(m.PriceChange5D)
	m.PriceChangePct5D = util.Round2(m.PriceChangePct5D)
	m.High52W = util.Round2(m.High52W)
	m.Low52W = util.Round2(m.Low52W)
}
