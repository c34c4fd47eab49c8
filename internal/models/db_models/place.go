package db_models

// Place is the cached point-of-interest record. The primary key comes from
// the catalog provider (or a fallback-set literal), never generated locally.
type Place struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description *string
	Latitude    float64
	Longitude   float64
	ImageURL    *string `gorm:"column:image_url"`
	Category    string
	IsFavorite  bool `gorm:"default:false"`
}

func (Place) TableName() string {
	return "places"
}

// CategoryAll is a filter-only pseudo-category. It is never stored on a record.
const CategoryAll = "All"

const (
	CategoryCafe          = "Café"
	CategoryRestaurant    = "Restaurant"
	CategoryPark          = "Park"
	CategoryMuseum        = "Museum"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
)

// Categories is the closed set of storable categories.
var Categories = []string{
	CategoryCafe,
	CategoryRestaurant,
	CategoryPark,
	CategoryMuseum,
	CategoryShopping,
	CategoryEntertainment,
}

func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// IsValidCategoryFilter accepts the closed set plus CategoryAll.
func IsValidCategoryFilter(name string) bool {
	return name == CategoryAll || IsValidCategory(name)
}
