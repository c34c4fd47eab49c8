package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"localexplorer/internal/models/db_models"
	"localexplorer/internal/repositories"
	"localexplorer/pkg/utils"
)

type SyncServiceInterface interface {
	// SeedIfEmpty bootstraps the cache from the remote catalog when, and
	// only when, it holds no records. Redundant calls are no-ops. A failed
	// or empty remote round seeds the fallback set instead; after any seed
	// attempt the store is never left empty.
	SeedIfEmpty(ctx context.Context) error
}

type SyncService struct {
	repo    repositories.PlaceRepository
	catalog CatalogServiceInterface
	logger  *zap.Logger

	// seedMu is the single-flight guard: the emptiness check alone would
	// race between two concurrent first callers.
	seedMu sync.Mutex
}

func NewSyncService(repo repositories.PlaceRepository, catalog CatalogServiceInterface, logger *zap.Logger) SyncServiceInterface {
	return &SyncService{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

func (s *SyncService) SeedIfEmpty(ctx context.Context) error {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	existing, err := s.repo.AllOrdered(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if len(existing) > 0 {
		return nil
	}

	// one remote round, never retried here
	places, err := s.catalog.FetchAll(ctx)
	if err != nil || len(places) == 0 {
		if err != nil {
			s.logger.Warn("catalog seed failed, using fallback set", zap.Error(err))
		} else {
			s.logger.Warn("catalog returned no places, using fallback set")
		}
		places = FallbackPlaces()
	} else {
		s.logger.Info("seeding places from catalog", zap.Int("count", len(places)))
	}

	if err := s.repo.UpsertMany(ctx, places); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

// FallbackPlaces is the fixed seed used when the remote catalog is
// unreachable or unconfigured.
func FallbackPlaces() []db_models.Place {
	return []db_models.Place{
		{
			ID:          "3",
			Name:        "Royal Botanic Gardens",
			Description: strPtr("Beautiful botanical gardens with diverse plant collections, peaceful walking paths, and stunning city views."),
			Latitude:    -37.8304,
			Longitude:   144.9796,
			ImageURL:    strPtr("https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=800"),
			Category:    db_models.CategoryPark,
		},
		{
			ID:          "7",
			Name:        "Melbourne Museum",
			Description: strPtr("Interactive museum showcasing natural and cultural history. Features dinosaur exhibitions and indigenous culture."),
			Latitude:    -37.8033,
			Longitude:   144.9717,
			ImageURL:    strPtr("https://images.unsplash.com/photo-1565035010268-a3816f98589a?w=800"),
			Category:    db_models.CategoryMuseum,
		},
		{
			ID:          "9",
			Name:        "Queen Victoria Market",
			Description: strPtr("Historic market with fresh produce, gourmet foods, and unique souvenirs. A Melbourne institution since 1878."),
			Latitude:    -37.8076,
			Longitude:   144.9568,
			ImageURL:    strPtr("https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800"),
			Category:    db_models.CategoryShopping,
		},
	}
}

func strPtr(s string) *string {
	return &s
}
