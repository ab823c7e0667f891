package geocoding

import (
	"context"
	"math"

	"github.com/koya1616/koko-pic/internal/models"
)

// searchRadiusKM bounds the viewbox applied when a search is biased around a
// selected location.
const searchRadiusKM = 5.0

// SearchQuery describes a forward geocode lookup.
type SearchQuery struct {
	Query    string             // Query is the free-text place query.
	Language string             // Language is the preferred result language.
	Near     *models.Coordinate // Near biases results around this point when set.
}

// Provider is a geocoding backend. Search resolves a free-text query into
// candidate places; Reverse resolves a coordinate into a display name.
type Provider interface {
	Search(ctx context.Context, query SearchQuery) ([]models.GeocodeResult, error)
	Reverse(ctx context.Context, coord models.Coordinate, language string) (string, error)
}

// Viewbox is a longitude/latitude bounding box around a bias point.
type Viewbox struct {
	Left   float64 // western longitude
	Top    float64 // northern latitude
	Right  float64 // eastern longitude
	Bottom float64 // southern latitude
}

// viewboxAround computes the search bounding box around a coordinate. One
// degree of latitude is ~111.32 km; longitude degrees shrink with cos(lat).
func viewboxAround(coord models.Coordinate) Viewbox {
	deltaLat := searchRadiusKM / 111.32
	deltaLng := searchRadiusKM / (111.32 * math.Cos(coord.Latitude*math.Pi/180))

	return Viewbox{
		Left:   coord.Longitude - deltaLng,
		Top:    coord.Latitude + deltaLat,
		Right:  coord.Longitude + deltaLng,
		Bottom: coord.Latitude - deltaLat,
	}
}
