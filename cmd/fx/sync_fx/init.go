package sync_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"localexplorer/internal/repositories"
	"localexplorer/internal/services"
)

var Module = fx.Provide(
	provideSyncService)

func provideSyncService(repo repositories.PlaceRepository, catalog services.CatalogServiceInterface, logger *zap.Logger) services.SyncServiceInterface {
	return services.NewSyncService(repo, catalog, logger)
}
