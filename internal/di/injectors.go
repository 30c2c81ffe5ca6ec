//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"vestd/internal"
	"vestd/internal/audit"
	"vestd/internal/controllers"
	"vestd/internal/providers"
	"vestd/internal/services"
	"vestd/internal/structures"
	"vestd/internal/treasury"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewLedgerProvider,
		providers.NewClockProvider,
		audit.NewJournal,

		services.NewContractService,
		treasury.NewZstdCompressor,
		treasury.NewFileManager,
		treasury.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
