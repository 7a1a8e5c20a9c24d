package repository

import (
	"context"

	"MarketPulse/internal/domain/models"
)

// SignalRecorder persists generated signals for later inspection.
type SignalRecorder interface {
	Init(ctx context.Context) error // ensure tables
	Record(ctx context.Context, ticker string, signals []models.AISignal) error
	Close() error
}

// SignalPublisher emits generated signals to downstream consumers.
type SignalPublisher interface {
	Publish(ctx context.Context, ticker string, signals []models.AISignal) error
	Close() error
}
