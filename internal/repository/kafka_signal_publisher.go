package repository

import (
	"context"
	"time"

	"MarketPulse/internal/domain/models"
	domrepo "MarketPulse/internal/domain/repository"
	pkgkafka "MarketPulse/pkg/kafka"
)

// KafkaSignalPublisher implements SignalPublisher over a Kafka topic. Each
// batch is one message keyed by ticker, so downstream consumers see a
// ticker's batches in order.
type KafkaSignalPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

var _ domrepo.SignalPublisher = (*KafkaSignalPublisher)(nil)

func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string) *KafkaSignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

// signalEvent is the wire payload for one ticker's signal batch.
type signalEvent struct {
	Ticker      string            `json:"ticker"`
	Signals     []models.AISignal `json:"signals"`
	PublishedAt time.Time         `json:"published_at"`
}

// Publish emits one signal batch for a ticker.
func (p *KafkaSignalPublisher) Publish(ctx context.Context, ticker string, signals []models.AISignal) error {
	if len(signals) == 0 {
		return nil
	}
	event := signalEvent{
		Ticker:      ticker,
		Signals:     signals,
		PublishedAt: time.Now(),
	}
	return p.producer.Publish(ctx, p.topic, []byte(ticker), event)
}

// Close flushes and closes the underlying producer.
func (p *KafkaSignalPublisher) Close() error { return p.producer.Close() }
