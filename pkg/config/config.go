package config

import (
	"os"
	"strconv"
)

// Config carries every process-level setting. Values come from environment
// variables; main loads a .env file first when one exists.
type Config struct {
	Port string

	// PostgresURL switches the cache to a server database when set.
	// Empty means the embedded sqlite file at SQLitePath.
	PostgresURL string
	SQLitePath  string

	// FoursquareAPIKey is the catalog credential. Empty is a detectable
	// configuration error, not a generic fetch failure.
	FoursquareAPIKey string
	CatalogBaseURL   string
	OriginLatLng     string
	CatalogLimit     int
}

const (
	defaultPort           = "8080"
	defaultSQLitePath     = "localexplorer.db"
	defaultCatalogBaseURL = "https://api.foursquare.com"

	// Melbourne CBD, the catalog origin for every category request.
	defaultOriginLatLng = "-37.8136,144.9631"

	defaultCatalogLimit = 3
)

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", defaultPort),
		PostgresURL:      os.Getenv("POSTGRES_URL"),
		SQLitePath:       getEnv("SQLITE_PATH", defaultSQLitePath),
		FoursquareAPIKey: os.Getenv("FOURSQUARE_API_KEY"),
		CatalogBaseURL:   getEnv("CATALOG_BASE_URL", defaultCatalogBaseURL),
		OriginLatLng:     getEnv("ORIGIN_LAT_LNG", defaultOriginLatLng),
		CatalogLimit:     getEnvInt("CATALOG_LIMIT", defaultCatalogLimit),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
