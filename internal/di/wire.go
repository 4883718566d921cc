//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"FinCast/internal/usecase"
	"FinCast/pkg/config"
	"FinCast/pkg/server"

	"github.com/google/wire"
)

var coreSet = wire.NewSet(
	// Ambient
	ProvideLogger,
	ProvideMetrics,

	// Infrastructure clients
	ProvideRedisCache,
	ProvideClickHouseClient,
	ProvideKafkaProducer,

	// Repositories
	ProvideForecastCache,
	ProvideModelStore,
	ProvideRunArchive,
	ProvideEventPublisher,

	// Use cases
	ProvideForecaster,
	ProvidePipelineConfig,
	usecase.NewPipeline,
	ProvideState,
	ProvideForecastService,
	usecase.NewDashboard,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(ctx context.Context, cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		coreSet,

		// HTTP
		ProvideHTTPHandler,
		ProvideRateLimiter,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeTraining runs the pipeline once without the HTTP surface.
func InitializeTraining(ctx context.Context, cfg *config.Config) (*Training, func(), error) {
	wire.Build(
		coreSet,
		wire.Struct(new(Training), "*"),
	)
	return nil, nil, nil
}
