package response_models

type Place struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ImageURL    *string `json:"image_url,omitempty"`
	Category    string  `json:"category"`
	IsFavorite  bool    `json:"is_favorite"`
}

type FavoriteToggle struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"is_favorite"`
}
