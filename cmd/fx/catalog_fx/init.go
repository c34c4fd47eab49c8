package catalog_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"localexplorer/internal/services"
	"localexplorer/pkg/config"
)

var Module = fx.Provide(
	provideCatalogClient)

func provideCatalogClient(cfg *config.Config, logger *zap.Logger) services.CatalogServiceInterface {
	return services.NewFoursquareClient(cfg, logger)
}
