package geo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/koya1616/koko-pic/internal/models"
)

// earthRadiusMeters is the mean radius of the Earth used for great-circle distances.
const earthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between two points.
func Haversine(a, b models.Coordinate) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	// Floating-point error can push sqrt(h) past 1 for antipodal points,
	// which would take asin out of its domain.
	root := math.Min(math.Sqrt(h), 1.0)

	return 2 * earthRadiusMeters * math.Asin(root)
}

// RankByDistance annotates each request that has a location with its distance
// from the fix, rounded to whole meters, and returns the requests sorted by
// ascending distance. Requests without a location sort last, keeping their
// relative order (the sort is stable). A nil fix returns the input slice
// unchanged so callers can rely on referential stability.
func RankByDistance(requests []models.Request, fix *models.LocationFix) []models.Request {
	if fix == nil {
		return requests
	}

	ranked := make([]models.Request, len(requests))
	for i, request := range requests {
		if request.Location != nil {
			distance := math.Round(Haversine(fix.Coordinate, *request.Location))
			request.Distance = &distance
		}
		ranked[i] = request
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		di := math.Inf(1)
		if ranked[i].Distance != nil {
			di = *ranked[i].Distance
		}
		dj := math.Inf(1)
		if ranked[j].Distance != nil {
			dj = *ranked[j].Distance
		}
		return di < dj
	})

	return ranked
}

// FormatDistance renders a meter count for display: "999m", "1km", "1.5km".
func FormatDistance(meters int) string {
	if meters >= 1000 {
		km := fmt.Sprintf("%.1f", float64(meters)/1000)
		km = strings.TrimSuffix(km, ".0")
		return km + "km"
	}

	return fmt.Sprintf("%dm", meters)
}
