package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"localexplorer/internal/models/request_models"
	"localexplorer/internal/models/response_models"
	"localexplorer/internal/services"
	"localexplorer/pkg/utils"
)

type PlacesController struct {
	placeService    services.PlaceServiceInterface
	queryService    services.QueryServiceInterface
	favoriteService services.FavoriteServiceInterface
}

func NewPlacesController(
	placeService services.PlaceServiceInterface,
	queryService services.QueryServiceInterface,
	favoriteService services.FavoriteServiceInterface) *PlacesController {

	return &PlacesController{
		placeService:    placeService,
		queryService:    queryService,
		favoriteService: favoriteService,
	}
}

func (p *PlacesController) ListPlaces(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")

	places, err := p.placeService.ListPlaces(c.Request.Context(), search, category)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Places fetched successfully")
}

func (p *PlacesController) GetPlaceByID(c *gin.Context) {
	placeID := c.Param("id")
	if placeID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Place ID is required")
		return
	}

	place, err := p.placeService.GetPlaceByID(c.Request.Context(), placeID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, place, "Place fetched successfully")
}

func (p *PlacesController) ListFavorites(c *gin.Context) {
	places, err := p.placeService.ListFavorites(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Favorites fetched successfully")
}

func (p *PlacesController) ToggleFavorite(c *gin.Context) {
	placeID := c.Param("id")
	if placeID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Place ID is required")
		return
	}

	isFavorite, err := p.favoriteService.ToggleFavorite(c.Request.Context(), placeID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.FavoriteToggle{
		ID:         placeID,
		IsFavorite: isFavorite,
	}, "Favorite toggled successfully")
}

func (p *PlacesController) ListCategories(c *gin.Context) {
	utils.RespondSuccess(c, p.placeService.Categories(), "Categories fetched successfully")
}

func (p *PlacesController) UpdateQuery(c *gin.Context) {
	var req request_models.UpdateQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Search != nil {
		p.queryService.SetSearchQuery(*req.Search)
	}
	if req.Category != nil {
		if err := p.queryService.SetCategory(*req.Category); err != nil {
			utils.HandleServiceError(c, err)
			return
		}
	}

	utils.RespondSuccess(c, gin.H{
		"search":   p.queryService.SearchQuery(),
		"category": p.queryService.Category(),
	}, "Query updated successfully")
}

// StreamPlaces pushes query-engine snapshots as server-sent events until the
// client disconnects.
func (p *PlacesController) StreamPlaces(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	snapshots := p.queryService.Subscribe(c.Request.Context())

	c.Stream(func(w io.Writer) bool {
		snapshot, ok := <-snapshots
		if !ok {
			return false
		}

		payload := gin.H{
			"places":  snapshot.Places,
			"loading": snapshot.Loading,
		}
		if snapshot.Err != nil {
			payload["error"] = snapshot.Err.Error()
		}
		c.SSEvent("places", payload)
		return true
	})
}

func (p *PlacesController) RetrySeed(c *gin.Context) {
	if err := p.queryService.Retry(c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Catalog sync completed")
}
