package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"localexplorer/internal/models/db_models"
	"localexplorer/pkg/config"
	"localexplorer/pkg/utils"
)

// CategoryMappings pairs each storable category with its Foursquare
// category id. FetchAll issues exactly one search per entry.
var CategoryMappings = map[string]string{
	db_models.CategoryCafe:          "13032",
	db_models.CategoryRestaurant:    "13065",
	db_models.CategoryPark:          "16032",
	db_models.CategoryMuseum:        "12026",
	db_models.CategoryShopping:      "17000",
	db_models.CategoryEntertainment: "10000",
}

// defaultCategoryImages backs venues that come without photos.
var defaultCategoryImages = map[string]string{
	db_models.CategoryCafe:          "https://images.unsplash.com/photo-1501339847302-ac426a4a7cbb?w=800",
	db_models.CategoryRestaurant:    "https://images.unsplash.com/photo-1514933651103-005eec06c04b?w=800",
	db_models.CategoryPark:          "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=800",
	db_models.CategoryMuseum:        "https://images.unsplash.com/photo-1565035010268-a3816f98589a?w=800",
	db_models.CategoryShopping:      "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800",
	db_models.CategoryEntertainment: "https://images.unsplash.com/photo-1492684223066-81342ee5ff30?w=800",
}

const (
	searchRadiusMeters = 10000
	searchFields       = "fsq_id,name,location,categories,description,photos"
	photoSize          = "800x600"
	noDescription      = "No description"
)

// Wire models for the Foursquare place search response.

type venueSearchResponse struct {
	Results []venue `json:"results"`
}

type venue struct {
	FsqID       string        `json:"fsq_id"`
	Name        string        `json:"name"`
	Location    venueLocation `json:"location"`
	Description *string       `json:"description"`
	Photos      []venuePhoto  `json:"photos"`
}

type venueLocation struct {
	Address          *string `json:"address"`
	Locality         *string `json:"locality"`
	FormattedAddress *string `json:"formatted_address"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

type venuePhoto struct {
	ID     string `json:"id"`
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (p venuePhoto) imageURL(size string) string {
	return p.Prefix + size + p.Suffix
}

type CatalogServiceInterface interface {
	// FetchCategory returns the normalized places for one category.
	FetchCategory(ctx context.Context, categoryName, categoryID string) ([]db_models.Place, error)

	// FetchAll fans out one request per mapped category. A failing category
	// contributes nothing; the call itself fails only when every category
	// fails, with utils.ErrCatalogUnavailable. An empty credential short
	// circuits to utils.ErrAPIKeyMissing before any request is made.
	FetchAll(ctx context.Context) ([]db_models.Place, error)
}

type FoursquareClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	latLng     string
	limit      int
	logger     *zap.Logger
}

func NewFoursquareClient(cfg *config.Config, logger *zap.Logger) CatalogServiceInterface {
	return &FoursquareClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     cfg.FoursquareAPIKey,
		baseURL:    cfg.CatalogBaseURL,
		latLng:     cfg.OriginLatLng,
		limit:      cfg.CatalogLimit,
		logger:     logger,
	}
}

func (c *FoursquareClient) FetchCategory(ctx context.Context, categoryName, categoryID string) ([]db_models.Place, error) {
	if c.apiKey == "" {
		return nil, utils.ErrAPIKeyMissing
	}

	endpoint := fmt.Sprintf("%s/v3/places/search", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("ll", c.latLng)
	q.Set("categories", categoryID)
	q.Set("radius", fmt.Sprintf("%d", searchRadiusMeters))
	q.Set("limit", fmt.Sprintf("%d", c.limit))
	q.Set("fields", searchFields)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request for %s: %w", categoryName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request for %s: status %d", categoryName, resp.StatusCode)
	}

	var body venueSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding catalog response for %s: %w", categoryName, err)
	}

	places := make([]db_models.Place, 0, len(body.Results))
	for _, v := range body.Results {
		places = append(places, normalizeVenue(v, categoryName))
	}
	return places, nil
}

func (c *FoursquareClient) FetchAll(ctx context.Context) ([]db_models.Place, error) {
	if c.apiKey == "" {
		return nil, utils.ErrAPIKeyMissing
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		places  []db_models.Place
		lastErr error
		failed  int
	)

	for name, id := range CategoryMappings {
		wg.Add(1)
		go func(categoryName, categoryID string) {
			defer wg.Done()

			fetched, err := c.FetchCategory(ctx, categoryName, categoryID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// isolated: one bad category never fails the round
				c.logger.Warn("category fetch failed",
					zap.String("category", categoryName),
					zap.Error(err))
				failed++
				lastErr = err
				return
			}
			places = append(places, fetched...)
		}(name, id)
	}
	wg.Wait()

	if failed == len(CategoryMappings) {
		return nil, fmt.Errorf("%w: %v", utils.ErrCatalogUnavailable, lastErr)
	}
	return places, nil
}

// normalizeVenue maps a raw venue onto a Place. The stored category is the
// mapping key the venue was searched under, never the provider-reported one.
func normalizeVenue(v venue, categoryName string) db_models.Place {
	description := noDescription
	if v.Description != nil && *v.Description != "" {
		description = *v.Description
	} else if v.Location.FormattedAddress != nil && *v.Location.FormattedAddress != "" {
		description = *v.Location.FormattedAddress
	}

	imageURL := defaultCategoryImages[categoryName]
	if len(v.Photos) > 0 {
		imageURL = v.Photos[0].imageURL(photoSize)
	}

	return db_models.Place{
		ID:          v.FsqID,
		Name:        v.Name,
		Description: &description,
		Latitude:    v.Location.Latitude,
		Longitude:   v.Location.Longitude,
		ImageURL:    &imageURL,
		Category:    categoryName,
	}
}
