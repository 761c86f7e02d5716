//go:build wireinject
// +build wireinject

package di

import (
	"Tickfunds/pkg/config"
	"Tickfunds/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application with
// a cleanup that closes infrastructure clients.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,
		ProvideRedisCache,
		ProvideCache,
		ProvideKafkaConsumer,
		ProvideClickHouseClient,
		ProvideQueue,

		// Repositories
		ProvideCatalog,
		ProvideAccountStore,
		ProvideSessionStore,
		ProvideActivityStore,
		ProvideActivityPublisher,
		ProvideBankResolver,

		// Activity pipeline
		ProvideActivityProcessor,
		ProvideActivityPipeline,
		ProvideActivityRecorder,
		ProvideActivitySinkHandler,

		// Use cases
		ProvideVerifier,
		ProvideFundService,
		ProvideRiskService,
		ProvideLoanService,
		ProvideFixedIncomeService,
		ProvideGoldService,
		ProvideOrderService,
		ProvidePortfolioService,
		ProvideAlertService,
		ProvideAccountService,
		ProvideOnboardingService,
		ProvidePMSService,
		ProvideSearchService,

		// HTTP
		ProvideLimiter,
		ProvideHandlers,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
