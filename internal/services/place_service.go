package services

import (
	"context"
	"fmt"

	"localexplorer/internal/models/db_models"
	"localexplorer/internal/models/response_models"
	"localexplorer/internal/repositories"
	"localexplorer/pkg/utils"
)

type PlaceServiceInterface interface {
	// ListPlaces is the one-shot read: name-ordered, optionally narrowed by
	// a name substring and a category filter ("All" or empty means no
	// category filter).
	ListPlaces(ctx context.Context, search, category string) ([]response_models.Place, error)
	GetPlaceByID(ctx context.Context, id string) (response_models.Place, error)
	ListFavorites(ctx context.Context) ([]response_models.Place, error)
	Categories() []string
}

type PlaceService struct {
	repo repositories.PlaceRepository
}

func NewPlaceService(repo repositories.PlaceRepository) PlaceServiceInterface {
	return &PlaceService{repo: repo}
}

func (p *PlaceService) ListPlaces(ctx context.Context, search, category string) ([]response_models.Place, error) {
	if category == "" {
		category = db_models.CategoryAll
	}
	if !db_models.IsValidCategoryFilter(category) {
		return nil, utils.ErrInvalidCategory
	}

	var (
		places []db_models.Place
		err    error
	)
	switch {
	case search != "":
		places, err = p.repo.Search(ctx, search)
	case category != db_models.CategoryAll:
		places, err = p.repo.ByCategory(ctx, category)
	default:
		places, err = p.repo.AllOrdered(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.Place, 0, len(places))
	for _, place := range places {
		if !matchesCategory(place, category) {
			continue
		}
		out = append(out, toResponsePlace(place))
	}
	return out, nil
}

func (p *PlaceService) GetPlaceByID(ctx context.Context, id string) (response_models.Place, error) {
	place, err := p.repo.ByID(ctx, id)
	if err != nil {
		return response_models.Place{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if place == nil {
		return response_models.Place{}, utils.ErrPlaceNotFound
	}
	return toResponsePlace(*place), nil
}

func (p *PlaceService) ListFavorites(ctx context.Context) ([]response_models.Place, error) {
	places, err := p.repo.FavoritesOnly(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.Place, 0, len(places))
	for _, place := range places {
		out = append(out, toResponsePlace(place))
	}
	return out, nil
}

func (p *PlaceService) Categories() []string {
	return append([]string{db_models.CategoryAll}, db_models.Categories...)
}
