package places_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"localexplorer/internal/repositories"
	"localexplorer/internal/services"
)

var Module = fx.Provide(
	providePlaceRepo, providePlaceService, provideFavoriteService)

func providePlaceRepo(db *gorm.DB) repositories.PlaceRepository {
	return repositories.NewPlaceRepository(db)
}

func providePlaceService(placeRepo repositories.PlaceRepository) services.PlaceServiceInterface {
	return services.NewPlaceService(placeRepo)
}

func provideFavoriteService(placeRepo repositories.PlaceRepository) services.FavoriteServiceInterface {
	return services.NewFavoriteService(placeRepo)
}
