package usecase

import (
	"context"
	"time"

	"MarketPulse/internal/domain/models"
	applogger "MarketPulse/pkg/logger"
	"MarketPulse/pkg/metrics"
	"MarketPulse/pkg/queue"
)

// RefreshMessageType identifies ticker refresh messages on the job queue.
const RefreshMessageType = "analysis.refresh"

// RefreshPayload is the queue payload for one ticker refresh.
type RefreshPayload struct {
	Ticker   string `json:"ticker"`
	Period   string `json:"period"`
	Interval string `json:"interval"`
}

// RefreshJob consumes refresh messages and runs a full analysis pass,
// pushing results through the analyzer's recorder and publisher.
type RefreshJob struct {
	analyzer *Analyzer
	rec      *metrics.Recorder
	log      *applogger.Logger
}

var _ queue.Job = (*RefreshJob)(nil)

func NewRefreshJob(analyzer *Analyzer, rec *metrics.Recorder, log *applogger.Logger) *RefreshJob {
	return &RefreshJob{analyzer: analyzer, rec: rec, log: log}
}

func (j *RefreshJob) Name() string { return "analysis-refresh" }

func (j *RefreshJob) Type() string { return RefreshMessageType }

// Handle runs one analysis for the payload's ticker. Errors are returned so
// the queue can retry transient failures.
func (j *RefreshJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[RefreshPayload](payload)
	if err != nil {
		return err
	}

	start := time.Now()
	bundle, err := j.analyzer.Analyze(ctx, models.AnalysisRequest{
		Ticker:   p.Ticker,
		Period:   p.Period,
		Interval: p.Interval,
		NewsMax:  20,
	})
	if j.rec != nil {
		j.rec.RecordLatency("refresh", time.Since(start).Seconds())
	}
	if err != nil {
		if j.rec != nil {
			j.rec.RecordError("refresh")
		}
		j.log.Error("scheduled refresh failed",
			applogger.String("ticker", p.Ticker),
			applogger.Error(err),
		)
		return err
	}

	if j.rec != nil {
		j.rec.RecordAnalysis(p.Ticker, "scheduler")
		if bundle.Indicators != nil {
			j.rec.RecordLastPrice(p.Ticker, bundle.Indicators.CurrentPrice)
		}
		if n := len(bundle.AISignals); n > 0 {
			overall := bundle.AISignals[n-1]
			j.rec.RecordOverallSignal(p.Ticker, overall.SignalType, overall.Confidence)
		}
	}
	j.log.Info("scheduled refresh ok",
		applogger.String("ticker", p.Ticker),
		applogger.Int("signals", len(bundle.AISignals)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return nil
}
