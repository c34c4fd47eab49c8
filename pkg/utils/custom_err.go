package utils

import "errors"

var (
	// ErrAPIKeyMissing means no catalog credential is configured. It is
	// detected before any network call and never retried.
	ErrAPIKeyMissing = errors.New("catalog api key not configured")

	// ErrCatalogUnavailable means every category request failed. A partial
	// failure is absorbed by the catalog client and never reaches callers.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	ErrPlaceNotFound   = errors.New("place not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrDatabaseError   = errors.New("database error")
)
