package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"localexplorer/internal/models/db_models"
)

func setupPlaceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&db_models.Place{})
	require.NoError(t, err)

	return db
}

func strPtr(s string) *string {
	return &s
}

func testPlace(id, name, category string) db_models.Place {
	return db_models.Place{
		ID:          id,
		Name:        name,
		Description: strPtr("description of " + name),
		Latitude:    -37.81,
		Longitude:   144.96,
		ImageURL:    strPtr("https://example.com/" + id + ".jpg"),
		Category:    category,
	}
}

func TestPlaceRepository_Upsert(t *testing.T) {
	repo := NewPlaceRepository(setupPlaceTestDB(t))
	ctx := context.Background()

	t.Run("round trips all fields", func(t *testing.T) {
		place := testPlace("p1", "Queen Victoria Market", db_models.CategoryShopping)
		require.NoError(t, repo.Upsert(ctx, &place))

		found, err := repo.ByID(ctx, "p1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, place.Name, found.Name)
		assert.Equal(t, *place.Description, *found.Description)
		assert.Equal(t, place.Latitude, found.Latitude)
		assert.Equal(t, place.Longitude, found.Longitude)
		assert.Equal(t, *place.ImageURL, *found.ImageURL)
		assert.Equal(t, db_models.CategoryShopping, found.Category)
		assert.False(t, found.IsFavorite)
	})

	t.Run("same id replaces the full record", func(t *testing.T) {
		first := testPlace("p2", "Old Name", db_models.CategoryPark)
		first.IsFavorite = true
		require.NoError(t, repo.Upsert(ctx, &first))

		second := db_models.Place{
			ID:        "p2",
			Name:      "New Name",
			Latitude:  1,
			Longitude: 2,
			Category:  db_models.CategoryMuseum,
		}
		require.NoError(t, repo.Upsert(ctx, &second))

		found, err := repo.ByID(ctx, "p2")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "New Name", found.Name)
		assert.Equal(t, db_models.CategoryMuseum, found.Category)
		// replaced, not merged: old description and favorite flag are gone
		assert.Nil(t, found.Description)
		assert.False(t, found.IsFavorite)
	})
}

func TestPlaceRepository_AllOrdered(t *testing.T) {
	repo := NewPlaceRepository(setupPlaceTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertMany(ctx, []db_models.Place{
		testPlace("1", "Zoo Cafe", db_models.CategoryCafe),
		testPlace("2", "Art Gallery", db_models.CategoryMuseum),
		testPlace("3", "Market Lane", db_models.CategoryShopping),
	}))

	places, err := repo.AllOrdered(ctx)
	require.NoError(t, err)
	require.Len(t, places, 3)
	assert.Equal(t, "Art Gallery", places[0].Name)
	assert.Equal(t, "Market Lane", places[1].Name)
	assert.Equal(t, "Zoo Cafe", places[2].Name)
}

func TestPlaceRepository_Search(t *testing.T) {
	repo := NewPlaceRepository(setupPlaceTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertMany(ctx, []db_models.Place{
		testPlace("1", "Queen Victoria Market", db_models.CategoryShopping),
		testPlace("2", "Royal Botanic Gardens", db_models.CategoryPark),
		testPlace("3", "Melbourne Museum", db_models.CategoryMuseum),
	}))

	t.Run("case-insensitive substring on name", func(t *testing.T) {
		places, err := repo.Search(ctx, "market")
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Queen Victoria Market", places[0].Name)
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		places, err := repo.Search(ctx, "")
		require.NoError(t, err)
		assert.Len(t, places, 3)
	})

	t.Run("no match yields empty set", func(t *testing.T) {
		places, err := repo.Search(ctx, "harbour")
		require.NoError(t, err)
		assert.Empty(t, places)
	})
}

func TestPlaceRepository_ByCategory(t *testing.T) {
	repo := NewPlaceRepository(setupPlaceTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertMany(ctx, []db_models.Place{
		testPlace("1", "Fitzroy Gardens", db_models.CategoryPark),
		testPlace("2", "Royal Botanic Gardens", db_models.CategoryPark),
		testPlace("3", "Melbourne Museum", db_models.CategoryMuseum),
	}))

	places, err := repo.ByCategory(ctx, db_models.CategoryPark)
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Fitzroy Gardens", places[0].Name)
	assert.Equal(t, "Royal Botanic Gardens", places[1].Name)
}

func TestPlaceRepository_Favorites(t *testing.T) {
	repo := NewPlaceRepository(setupPlaceTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertMany(ctx, []db_models.Place{
		testPlace("1", "Fitzroy Gardens", db_models.CategoryPark),
		testPlace("2", "Melbourne Museum", db_models.CategoryMuseum),
	}))

	t.Run("set and list favorites", func(t *testing.T) {
		require.NoError(t, repo.SetFavorite(ctx, "2", true))

		places, err := repo.FavoritesOnly(ctx)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "2", places[0].ID)
		assert.True(t, places[0].IsFavorite)
	})

	t.Run("unknown id is a no-op, not an error", func(t *testing.T) {
		require.NoError(t, repo.SetFavorite(ctx, "missing", true))

		places, err := repo.FavoritesOnly(ctx)
		require.NoError(t, err)
		assert.Len(t, places, 1)
	})
}

func TestPlaceRepository_ByID_Absent(t *testing.T) {
	repo := NewPlaceRepository(setupPlaceTestDB(t))

	found, err := repo.ByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPlaceRepository_DeleteAll(t *testing.T) {
	repo := NewPlaceRepository(setupPlaceTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertMany(ctx, []db_models.Place{
		testPlace("1", "Fitzroy Gardens", db_models.CategoryPark),
		testPlace("2", "Melbourne Museum", db_models.CategoryMuseum),
	}))
	require.NoError(t, repo.DeleteAll(ctx))

	places, err := repo.AllOrdered(ctx)
	require.NoError(t, err)
	assert.Empty(t, places)
}

func nextSnapshot(t *testing.T, ch <-chan []db_models.Place) []db_models.Place {
	t.Helper()
	select {
	case snapshot, ok := <-ch:
		require.True(t, ok, "snapshot channel closed early")
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestPlaceRepository_Watch(t *testing.T) {
	repo := NewPlaceRepository(setupPlaceTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, repo.Upsert(ctx, &db_models.Place{
		ID: "1", Name: "Fitzroy Gardens", Category: db_models.CategoryPark,
	}))

	snapshots := repo.Watch(ctx, repo.AllOrdered)

	t.Run("current result set arrives on subscription", func(t *testing.T) {
		snapshot := nextSnapshot(t, snapshots)
		require.Len(t, snapshot, 1)
		assert.Equal(t, "Fitzroy Gardens", snapshot[0].Name)
	})

	t.Run("writes re-emit", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, &db_models.Place{
			ID: "2", Name: "Melbourne Museum", Category: db_models.CategoryMuseum,
		}))

		deadline := time.After(2 * time.Second)
		for {
			select {
			case snapshot := <-snapshots:
				if len(snapshot) == 2 {
					return
				}
			case <-deadline:
				t.Fatal("never observed the second record")
			}
		}
	})

	t.Run("cancel closes the channel", func(t *testing.T) {
		cancel()

		deadline := time.After(2 * time.Second)
		for {
			select {
			case _, ok := <-snapshots:
				if !ok {
					return
				}
			case <-deadline:
				t.Fatal("channel not closed after cancel")
			}
		}
	})
}

func TestPlaceRepository_Changes(t *testing.T) {
	repo := NewPlaceRepository(setupPlaceTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := repo.Changes(ctx)

	require.NoError(t, repo.Upsert(ctx, &db_models.Place{
		ID: "1", Name: "Fitzroy Gardens", Category: db_models.CategoryPark,
	}))

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change signal after write")
	}
}
