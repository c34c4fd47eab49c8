package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"localexplorer/internal/models/db_models"
	"localexplorer/pkg/config"
)

// InitDatabase opens the place cache. The default backend is an embedded
// sqlite file so the catalog stays available offline; a postgres URL in the
// config switches to a server database for hosted deployments.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.PostgresURL != "" {
		dialector = postgres.Open(cfg.PostgresURL)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening place cache: %w", err)
	}

	if err := db.AutoMigrate(&db_models.Place{}); err != nil {
		return nil, fmt.Errorf("migrating place cache: %w", err)
	}

	return db, nil
}

func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
