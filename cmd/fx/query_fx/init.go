package query_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"localexplorer/internal/repositories"
	"localexplorer/internal/services"
)

var Module = fx.Provide(
	provideQueryService)

func provideQueryService(repo repositories.PlaceRepository, syncService services.SyncServiceInterface, logger *zap.Logger) services.QueryServiceInterface {
	return services.NewQueryService(repo, syncService, logger)
}
