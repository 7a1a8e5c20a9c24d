package scheduler

import (
	"context"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/usecase"
	applogger "MarketPulse/pkg/logger"
	"MarketPulse/pkg/queue"

	"github.com/robfig/cron/v3"
)

// Config controls the periodic ticker refresh.
type Config struct {
	Cron     string
	Tickers  []string
	Period   string
	Interval string
}

// Scheduler triggers a refresh of every configured ticker on a cron
// schedule. With a queue attached, refreshes are enqueued and picked up by
// queue workers; without one, they run inline.
type Scheduler struct {
	cfg      Config
	cron     *cron.Cron
	queue    queue.QueueService
	analyzer *usecase.Analyzer
	log      *applogger.Logger
}

// Option configures Scheduler.
type Option func(*Scheduler)

// WithQueue routes refreshes through a job queue instead of running inline.
func WithQueue(q queue.QueueService) Option {
	return func(s *Scheduler) { s.queue = q }
}

func New(cfg Config, analyzer *usecase.Analyzer, log *applogger.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds()),
		analyzer: analyzer,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start registers the cron entry and begins scheduling.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Cron, s.refreshAll); err != nil {
		return fmt.Errorf("cron spec %q: %w", s.cfg.Cron, err)
	}
	s.cron.Start()
	s.log.Info("scheduler started",
		applogger.String("cron", s.cfg.Cron),
		applogger.Strings("tickers", s.cfg.Tickers),
	)
	return nil
}

// Stop cancels scheduling and waits for a running pass to finish, bounded by
// ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) refreshAll() {
	for _, ticker := range s.cfg.Tickers {
		if s.queue != nil {
			payload := usecase.RefreshPayload{
				Ticker:   ticker,
				Period:   s.cfg.Period,
				Interval: s.cfg.Interval,
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.queue.PublishMessage(ctx, usecase.RefreshMessageType, payload); err != nil {
				s.log.Error("enqueue refresh failed",
					applogger.String("ticker", ticker),
					applogger.Error(err),
				)
			}
			cancel()
			continue
		}
		s.runInline(ticker)
	}
}

func (s *Scheduler) runInline(ticker string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	start := time.Now()
	bundle, err := s.analyzer.Analyze(ctx, models.AnalysisRequest{
		Ticker:   ticker,
		Period:   s.cfg.Period,
		Interval: s.cfg.Interval,
		NewsMax:  20,
	})
	if err != nil {
		s.log.Error("refresh failed",
			applogger.String("ticker", ticker),
			applogger.Error(err),
		)
		return
	}
	s.log.Info("refresh ok",
		applogger.String("ticker", ticker),
		applogger.Int("signals", len(bundle.AISignals)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
}
