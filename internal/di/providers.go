package di

import (
	"context"
	"fmt"
	"time"

	dservice "MarketPulse/internal/domain/service"
	"MarketPulse/internal/handler/api"
	internalrepo "MarketPulse/internal/repository"
	"MarketPulse/internal/scheduler"
	icache "MarketPulse/internal/service/cache"
	"MarketPulse/internal/service/newsfeed"
	"MarketPulse/internal/service/yahoo"
	"MarketPulse/internal/usecase"
	pkgcache "MarketPulse/pkg/cache"
	pkgch "MarketPulse/pkg/clickhouse"
	"MarketPulse/pkg/config"
	xhttp "MarketPulse/pkg/http"
	pkgkafka "MarketPulse/pkg/kafka"
	applogger "MarketPulse/pkg/logger"
	"MarketPulse/pkg/metrics"
	"MarketPulse/pkg/queue"
	"MarketPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lcfg := &applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	}
	if lcfg.Level == "" {
		lcfg.Level = "info"
	}
	if lcfg.Format == "" {
		lcfg.Format = "console"
	}
	if lcfg.Output == "" {
		lcfg.Output = "stdout"
	}
	return applogger.New(lcfg)
}

// ProvideMarketData creates the chart API client.
func ProvideMarketData(cfg *config.Config) dservice.MarketDataProvider {
	opts := []yahoo.Option{
		yahoo.WithBaseURL(cfg.MarketData.BaseURL),
	}
	if cfg.MarketData.UserAgent != "" {
		opts = append(opts, yahoo.WithUserAgent(cfg.MarketData.UserAgent))
	}
	if cfg.MarketData.Timeout > 0 {
		opts = append(opts, yahoo.WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(cfg.MarketData.Timeout))))
	}
	return yahoo.New(opts...)
}

// ProvideNewsFeed creates the RSS news client.
func ProvideNewsFeed(cfg *config.Config) dservice.NewsProvider {
	opts := []newsfeed.Option{
		newsfeed.WithFeedURL(cfg.NewsFeed.BaseURL),
	}
	if cfg.NewsFeed.Timeout > 0 {
		opts = append(opts, newsfeed.WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(cfg.NewsFeed.Timeout))))
	}
	return newsfeed.New(opts...)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideSignalRecorder creates the ClickHouse-backed signal history store,
// or nil when ClickHouse is disabled.
func ProvideSignalRecorder(chClient *pkgch.Client, log *applogger.Logger) (*internalrepo.CHSignalStore, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewCHSignalStore(chClient)
	store.SetLogger(log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("signal store schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSignalPublisher creates the Kafka signal publisher, or nil when
// Kafka is disabled.
func ProvideSignalPublisher(producer *pkgkafka.Producer, cfg *config.Config) *internalrepo.KafkaSignalPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.Topic)
}

// ProvideRedisCache creates the shared Redis connection, or nil when
// disabled.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Redis.Host),
		pkgcache.WithRedisPort(cfg.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
		pkgcache.WithRedisPrefix("marketpulse"),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, nil
}

// ProvideResponseCache picks the handler byte cache: layered memory+Redis
// when Redis is available, in-process memory otherwise.
func ProvideResponseCache(rc *pkgcache.RedisCache) icache.BytesCache {
	if rc != nil {
		return icache.NewLayered(rc)
	}
	return icache.NewMemory()
}

// ProvideMetricsRecorder creates the Prometheus recorder.
func ProvideMetricsRecorder() *metrics.Recorder {
	return metrics.New()
}

// ProvideAnalyzer wires the analysis orchestrator with optional persistence.
func ProvideAnalyzer(
	market dservice.MarketDataProvider,
	news dservice.NewsProvider,
	recorder *internalrepo.CHSignalStore,
	publisher *internalrepo.KafkaSignalPublisher,
	cfg *config.Config,
	log *applogger.Logger,
) *usecase.Analyzer {
	opts := []usecase.AnalyzerOption{}
	if cfg.Analysis.Timeout > 0 {
		opts = append(opts, usecase.WithTimeout(cfg.Analysis.Timeout))
	}
	if recorder != nil {
		opts = append(opts, usecase.WithRecorder(recorder))
	}
	if publisher != nil {
		opts = append(opts, usecase.WithPublisher(publisher))
	}
	return usecase.NewAnalyzer(market, news, log, opts...)
}

// ProvideRefreshJob creates the queue job that refreshes one ticker.
func ProvideRefreshJob(analyzer *usecase.Analyzer, rec *metrics.Recorder, log *applogger.Logger) *usecase.RefreshJob {
	return usecase.NewRefreshJob(analyzer, rec, log)
}

// ProvideJobQueue creates the Redis-backed refresh queue, or nil when Redis
// is disabled.
func ProvideJobQueue(cfg *config.Config, rc *pkgcache.RedisCache, job *usecase.RefreshJob, log *applogger.Logger) *queue.RedisQueue {
	if rc == nil {
		return nil
	}
	workers := cfg.Scheduler.Workers
	if workers <= 0 {
		workers = 2
	}
	rq := queue.NewRedisQueue(log,
		&queue.QueueConfig{
			Workers:    workers,
			QueueSize:  100,
			RetryLimit: 3,
			RetryDelay: 30 * time.Second,
		},
		rc.Client(),
		queue.ModeProducerConsumer,
		queue.WithKeyPrefix("marketpulse:refresh"),
	)
	rq.RegisterJob(job)
	return rq
}

// ProvideScheduler creates the cron refresh scheduler, or nil when disabled.
func ProvideScheduler(cfg *config.Config, analyzer *usecase.Analyzer, q *queue.RedisQueue, log *applogger.Logger) *scheduler.Scheduler {
	if !cfg.Scheduler.Enabled {
		return nil
	}
	scfg := scheduler.Config{
		Cron:     cfg.Scheduler.Cron,
		Tickers:  cfg.Scheduler.Tickers,
		Period:   cfg.Scheduler.Period,
		Interval: cfg.Scheduler.Interval,
	}
	if scfg.Period == "" {
		scfg.Period = "6mo"
	}
	if scfg.Interval == "" {
		scfg.Interval = "1d"
	}
	opts := []scheduler.Option{}
	if q != nil {
		opts = append(opts, scheduler.WithQueue(q))
	}
	return scheduler.New(scfg, analyzer, log, opts...)
}

// ProvideAnalysisHandler creates the HTTP handler with response caching.
func ProvideAnalysisHandler(log *applogger.Logger, analyzer *usecase.Analyzer, cache icache.BytesCache, cfg *config.Config) *api.AnalysisHandler {
	h := api.NewAnalysisHandler(log, analyzer)
	h.SetCache(cache)
	if cfg.Analysis.CacheTTL.Analysis > 0 {
		h.SetCacheTTL(cfg.Analysis.CacheTTL.Analysis)
	}
	return h
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	handler *api.AnalysisHandler,
	sched *scheduler.Scheduler,
	q *queue.RedisQueue,
	chClient *pkgch.Client,
) *server.App {
	app := server.New(cfg, log, handler)
	if sched != nil {
		app.SetScheduler(sched)
	}
	if q != nil {
		app.SetJobQueue(q)
	}
	if chClient != nil {
		app.SetClickHouse(chClient)
	}
	return app
}
