package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"localexplorer/internal/models/db_models"
)

type PlaceRepository interface {
	AllOrdered(ctx context.Context) ([]db_models.Place, error)
	ByCategory(ctx context.Context, category string) ([]db_models.Place, error)
	FavoritesOnly(ctx context.Context) ([]db_models.Place, error)
	Search(ctx context.Context, substring string) ([]db_models.Place, error)
	ByID(ctx context.Context, id string) (*db_models.Place, error)

	Upsert(ctx context.Context, place *db_models.Place) error
	UpsertMany(ctx context.Context, places []db_models.Place) error
	SetFavorite(ctx context.Context, id string, value bool) error
	DeleteAll(ctx context.Context) error

	// Changes delivers one signal per committed write, coalesced, until ctx
	// is cancelled. Subscribers re-read whatever query they care about.
	Changes(ctx context.Context) <-chan struct{}

	// Watch turns a query into a live result set: the current snapshot on
	// subscription, then a fresh one after every write.
	Watch(ctx context.Context, query QueryFunc) <-chan []db_models.Place
}

type placeRepository struct {
	db  *gorm.DB
	hub *changeHub
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db, hub: newChangeHub()}
}

func (r *placeRepository) AllOrdered(ctx context.Context) ([]db_models.Place, error) {
	var places []db_models.Place
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) ByCategory(ctx context.Context, category string) ([]db_models.Place, error) {
	var places []db_models.Place
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("name ASC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) FavoritesOnly(ctx context.Context) ([]db_models.Place, error) {
	var places []db_models.Place
	err := r.db.WithContext(ctx).
		Where("is_favorite = ?", true).
		Order("name ASC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

// Search matches on name substring, case-insensitive. lower() keeps the
// behavior identical across sqlite and postgres.
func (r *placeRepository) Search(ctx context.Context, substring string) ([]db_models.Place, error) {
	var places []db_models.Place
	pattern := "%" + strings.ToLower(substring) + "%"
	err := r.db.WithContext(ctx).
		Where("lower(name) LIKE ?", pattern).
		Order("name ASC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) ByID(ctx context.Context, id string) (*db_models.Place, error) {
	var place db_models.Place
	err := r.db.WithContext(ctx).First(&place, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

// Upsert replaces the whole row on an id conflict. Field merges are never
// performed; the incoming record wins in full.
func (r *placeRepository) Upsert(ctx context.Context, place *db_models.Place) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(place).Error
	if err != nil {
		return err
	}
	r.hub.notify()
	return nil
}

func (r *placeRepository) UpsertMany(ctx context.Context, places []db_models.Place) error {
	if len(places) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&places).Error
	if err != nil {
		return err
	}
	r.hub.notify()
	return nil
}

// SetFavorite is a no-op for unknown ids: zero rows affected, nil error.
func (r *placeRepository) SetFavorite(ctx context.Context, id string, value bool) error {
	result := r.db.WithContext(ctx).
		Model(&db_models.Place{}).
		Where("id = ?", id).
		Update("is_favorite", value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		r.hub.notify()
	}
	return nil
}

func (r *placeRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&db_models.Place{}).Error
	if err != nil {
		return err
	}
	r.hub.notify()
	return nil
}

func (r *placeRepository) Changes(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)
	id, signal := r.hub.subscribe()

	go func() {
		defer close(out)
		defer r.hub.unsubscribe(id)
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return out
}

func (r *placeRepository) Watch(ctx context.Context, query QueryFunc) <-chan []db_models.Place {
	return watch(ctx, r.hub, query)
}
