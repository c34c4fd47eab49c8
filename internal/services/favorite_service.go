package services

import (
	"context"
	"fmt"

	"localexplorer/internal/models/response_models"
	"localexplorer/internal/repositories"
	"localexplorer/pkg/utils"
)

type FavoriteServiceInterface interface {
	// ToggleFavorite flips the durable favorite flag and returns the new
	// value. An unknown id yields utils.ErrPlaceNotFound and no state change.
	ToggleFavorite(ctx context.Context, id string) (bool, error)

	// ToggleLoaded flips an already-loaded copy in memory for immediate
	// display. The durable write stays the source of truth; live queries
	// reconcile any divergence once it lands.
	ToggleLoaded(place *response_models.Place) bool
}

type FavoriteService struct {
	repo repositories.PlaceRepository
}

func NewFavoriteService(repo repositories.PlaceRepository) FavoriteServiceInterface {
	return &FavoriteService{repo: repo}
}

func (f *FavoriteService) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	place, err := f.repo.ByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if place == nil {
		return false, utils.ErrPlaceNotFound
	}

	next := !place.IsFavorite
	if err := f.repo.SetFavorite(ctx, id, next); err != nil {
		return false, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return next, nil
}

func (f *FavoriteService) ToggleLoaded(place *response_models.Place) bool {
	place.IsFavorite = !place.IsFavorite
	return place.IsFavorite
}
