package usecase

import (
	"time"

	"MarketPulse/internal/domain/models"
)

// ComputeMomentum derives price momentum from chronologically ordered bars.
// The 52-week range spans whatever window the bars cover; 5-day figures are
// zero when fewer than six bars exist.
func ComputeMomentum(bars []models.PriceBar) (models.PriceMomentum, error) {
	if len(bars) == 0 {
		return models.PriceMomentum{}, models.ErrInsufficientData
	}

	last := bars[len(bars)-1]
	m := models.PriceMomentum{
		CurrentPrice: last.Close,
		High52W:      last.High,
		Low52W:       last.Low,
		LastUpdated:  time.Now(),
	}
	for _, b := range bars {
		if b.High > m.High52W {
			m.High52W = b.High
		}
		if b.Low < m.Low52W && b.Low > 0 {
			m.Low52W = b.Low
		}
	}

	if len(bars) > 1 {
		prev := bars[len(bars)-2].Close
		m.PriceChange1D = last.Close - prev
		if prev != 0 {
			m.PriceChangePct1D = (last.Close - prev) / prev * 100
		}
	}
	if len(bars) > 5 {
		prev := bars[len(bars)-6].Close
		m.PriceChange5D = last.Close - prev
		if prev != 0 {
			m.PriceChangePct5D = (last.Close/prev - 1) * 100
		}
	}
	return m, nil
}
