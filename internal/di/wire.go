//go:build wireinject
// +build wireinject

package di

import (
	"MarketPulse/pkg/config"
	"MarketPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetricsRecorder,

		// Providers for external data
		ProvideMarketData,
		ProvideNewsFeed,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideRedisCache,
		ProvideResponseCache,

		// Repositories
		ProvideSignalRecorder,
		ProvideSignalPublisher,

		// Use cases and scheduling
		ProvideAnalyzer,
		ProvideRefreshJob,
		ProvideJobQueue,
		ProvideScheduler,

		// HTTP and application server
		ProvideAnalysisHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
