package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	dservice "MarketPulse/internal/domain/service"
	"MarketPulse/internal/services/indicators"
	"MarketPulse/internal/services/sentiment"
	"MarketPulse/internal/services/signals"
	"MarketPulse/internal/services/volume"
	"MarketPulse/pkg/logger"
)

// Analyzer is the orchestration layer: one fetch of bars and news per
// request, every derived view computed from that single snapshot.
type Analyzer struct {
	market dservice.MarketDataProvider
	news   dservice.NewsProvider

	indicators *indicators.Engine
	volume     *volume.Analyzer
	sentiment  *sentiment.Analyzer
	synth      *signals.Synthesizer

	recorder  drepo.SignalRecorder
	publisher drepo.SignalPublisher

	log     *logger.Logger
	timeout time.Duration
}

// AnalyzerOption configures Analyzer.
type AnalyzerOption func(*Analyzer)

// NewAnalyzer wires the orchestrator over providers and engines.
func NewAnalyzer(market dservice.MarketDataProvider, news dservice.NewsProvider, log *logger.Logger, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		market:     market,
		news:       news,
		indicators: indicators.NewEngine(),
		volume:     volume.NewAnalyzer(),
		sentiment:  sentiment.NewAnalyzer(),
		synth:      signals.NewSynthesizer(),
		log:        log,
		timeout:    15 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithTimeout caps one analysis pass end to end.
func WithTimeout(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) { a.timeout = d }
}

// WithRecorder enables signal history recording.
func WithRecorder(r drepo.SignalRecorder) AnalyzerOption {
	return func(a *Analyzer) { a.recorder = r }
}

// WithPublisher enables signal event publishing.
func WithPublisher(p drepo.SignalPublisher) AnalyzerOption {
	return func(a *Analyzer) { a.publisher = p }
}

// Analyze assembles the full bundle for one ticker: bars and news fetched
// concurrently, then indicators, volume, momentum, sentiment, news impact,
// AI signals, and the tag-based signal. A failed news fetch degrades the
// sentiment-side views and is reported in Errors; failed bars fail the call.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisBundle, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	res, err := a.fetch(ctx, req.Ticker, req.Period, req.Interval, req.NewsMax)
	if err != nil {
		return nil, err
	}
	bars, articles := res.Bars, res.Articles
	if len(bars) == 0 {
		return nil, fmt.Errorf("analyze %s: %w", req.Ticker, models.ErrInsufficientData)
	}

	bundle := &models.AnalysisBundle{
		Ticker:      req.Ticker,
		Errors:      map[string]string{},
		GeneratedAt: time.Now(),
	}
	if res.NewsErr != nil {
		bundle.Errors["news"] = res.NewsErr.Error()
		a.log.Warn("news fetch failed", logger.String("ticker", req.Ticker), logger.Error(res.NewsErr))
	}

	in := signals.Inputs{}

	if set, err := a.indicators.Compute(bars); err == nil {
		roundIndicators(&set)
		bundle.Indicators = &set
		in.Indicators = &set
	} else {
		bundle.Errors["indicators"] = err.Error()
	}

	if snap, err := a.volume.Analyze(bars); err == nil {
		roundVolume(&snap)
		bundle.Volume = &snap
		in.Volume = &snap
	} else {
		bundle.Errors["volume"] = err.Error()
	}

	if m, err := ComputeMomentum(bars); err == nil {
		roundMomentum(&m)
		bundle.Momentum = &m
		in.Momentum = &m
	} else {
		bundle.Errors["momentum"] = err.Error()
	}

	if res.NewsErr == nil {
		bundle.Articles = articles
		results := make([]models.SentimentResult, 0, len(articles))
		labels := make([]string, 0, len(articles))
		impacts := make([]models.NewsImpact, 0, len(articles))
		for _, article := range articles {
			sr := a.sentiment.Analyze(article.Title+" "+article.Content, nil)
			results = append(results, sr)
			labels = append(labels, sr.Sentiment)
			impacts = append(impacts, a.sentiment.AssessImpact(article))
		}
		ms := a.sentiment.AggregateMarket(articles)
		bundle.ArticleResults = results
		bundle.NewsImpacts = impacts
		bundle.MarketSentiment = &ms
		in.Sentiment = &ms
		in.NewsImpacts = impacts

		if bundle.Indicators != nil {
			sig := a.synth.TagBased(req.Ticker, *bundle.Indicators, labels)
			bundle.LegacySignal = &sig
		}
	}

	bundle.AISignals = a.synth.Synthesize(in)
	a.persistSignals(ctx, req.Ticker, bundle.AISignals)

	if len(bundle.Errors) == 0 {
		bundle.Errors = nil
	}
	return bundle, nil
}

// Indicators computes the rounded indicator snapshot for one ticker.
func (a *Analyzer) Indicators(ctx context.Context, req models.IndicatorsRequest) (*models.IndicatorSet, error) {
	bars, err := a.bars(ctx, req.Ticker, req.Period, req.Interval)
	if err != nil {
		return nil, err
	}
	set, err := a.indicators.Compute(bars)
	if err != nil {
		return nil, fmt.Errorf("indicators %s: %w", req.Ticker, err)
	}
	roundIndicators(&set)
	return &set, nil
}

// Volume computes the rounded volume snapshot for one ticker.
func (a *Analyzer) Volume(ctx context.Context, req models.VolumeRequest) (*models.VolumeSnapshot, error) {
	bars, err := a.bars(ctx, req.Ticker, req.Period, req.Interval)
	if err != nil {
		return nil, err
	}
	snap, err := a.volume.Analyze(bars)
	if err != nil {
		return nil, fmt.Errorf("volume %s: %w", req.Ticker, err)
	}
	roundVolume(&snap)
	return &snap, nil
}

// Sentiment fetches news and returns the market aggregate plus per-article
// results.
func (a *Analyzer) Sentiment(ctx context.Context, req models.SentimentRequest) (*models.MarketSentiment, []models.SentimentResult, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	articles, err := a.news.GetNews(ctx, req.Ticker, req.NewsMax)
	if err != nil {
		return nil, nil, fmt.Errorf("sentiment %s: %w", req.Ticker, err)
	}
	results := make([]models.SentimentResult, 0, len(articles))
	for _, article := range articles {
		results = append(results, a.sentiment.Analyze(article.Title+" "+article.Content, nil))
	}
	ms := a.sentiment.AggregateMarket(articles)
	return &ms, results, nil
}

// NewsImpacts fetches news and scores per-article market impact.
func (a *Analyzer) NewsImpacts(ctx context.Context, req models.NewsImpactRequest) ([]models.NewsImpact, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	articles, err := a.news.GetNews(ctx, req.Ticker, req.NewsMax)
	if err != nil {
		return nil, fmt.Errorf("news impact %s: %w", req.Ticker, err)
	}
	impacts := make([]models.NewsImpact, 0, len(articles))
	for _, article := range articles {
		impacts = append(impacts, a.sentiment.AssessImpact(article))
	}
	return impacts, nil
}

// AISignals runs a full analysis and returns only the scored signals.
func (a *Analyzer) AISignals(ctx context.Context, req models.AnalysisRequest) ([]models.AISignal, error) {
	bundle, err := a.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	return bundle.AISignals, nil
}

// LegacySignal computes the tag-based signal for one ticker. A failed news
// fetch yields an empty label set rather than an error, matching the
// dashboard's tolerance for missing headlines.
func (a *Analyzer) LegacySignal(ctx context.Context, req models.SignalsRequest) (*models.Signal, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	res, err := a.fetch(ctx, req.Ticker, req.Period, req.Interval, 20)
	if err != nil {
		return nil, err
	}
	set, err := a.indicators.Compute(res.Bars)
	if err != nil {
		return nil, fmt.Errorf("signals %s: %w", req.Ticker, err)
	}

	var labels []string
	if res.NewsErr == nil {
		for _, article := range res.Articles {
			label, _ := a.sentiment.Classify(article.Title + " " + article.Content)
			labels = append(labels, label)
		}
	} else {
		a.log.Warn("news fetch failed", logger.String("ticker", req.Ticker), logger.Error(res.NewsErr))
	}

	sig := a.synth.TagBased(req.Ticker, set, labels)
	return &sig, nil
}

func (a *Analyzer) bars(ctx context.Context, ticker, period, interval string) ([]models.PriceBar, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	bars, err := a.market.GetPriceBars(ctx, ticker, period, interval)
	if err != nil {
		return nil, fmt.Errorf("price bars %s: %w", ticker, err)
	}
	return bars, nil
}

// fetchResult is one concurrent pull of bars and news. NewsErr is carried
// inside the result so callers can degrade on missing headlines instead of
// failing the whole request.
type fetchResult struct {
	Bars     []models.PriceBar
	Articles []models.NewsArticle
	NewsErr  error
}

// fetch pulls bars and news concurrently. A bars failure fails the call; a
// news failure only fills fetchResult.NewsErr.
func (a *Analyzer) fetch(ctx context.Context, ticker, period, interval string, newsMax int) (fetchResult, error) {
	var (
		wg      sync.WaitGroup
		res     fetchResult
		barsErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		res.Bars, barsErr = a.market.GetPriceBars(ctx, ticker, period, interval)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		res.Articles, res.NewsErr = a.news.GetNews(ctx, ticker, newsMax)
	}()
	wg.Wait()

	if barsErr != nil {
		return fetchResult{}, fmt.Errorf("price bars %s: %w", ticker, barsErr)
	}
	return res, nil
}

// persistSignals records and publishes best-effort; failures are logged,
// never surfaced to the caller.
func (a *Analyzer) persistSignals(ctx context.Context, ticker string, sigs []models.AISignal) {
	if len(sigs) == 0 {
		return
	}
	if a.recorder != nil {
		if err := a.recorder.Record(ctx, ticker, sigs); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error("record signals", logger.String("ticker", ticker), logger.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, ticker, sigs); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error("publish signals", logger.String("ticker", ticker), logger.Error(err))
		}
	}
}
