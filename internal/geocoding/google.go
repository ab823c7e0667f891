package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/koya1616/koko-pic/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider initializes a new GoogleProvider with the given API client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Search resolves a free-text query into candidate places using the Google
// Maps Geocoding API. When the query carries a bias location, the request is
// bounded to a viewbox around it.
func (gp *GoogleProvider) Search(ctx context.Context, query SearchQuery) ([]models.GeocodeResult, error) {
	gp.log.DebugContext(ctx, "Searching using Google Maps", "query", query.Query)

	req := maps.GeocodingRequest{Address: query.Query, Language: query.Language}
	if query.Near != nil {
		box := viewboxAround(*query.Near)
		req.Bounds = &maps.LatLngBounds{
			NorthEast: maps.LatLng{Lat: box.Top, Lng: box.Right},
			SouthWest: maps.LatLng{Lat: box.Bottom, Lng: box.Left},
		}
	}

	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode query: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrEmptyResponse
	}

	results := make([]models.GeocodeResult, 0, len(geocodeResponse))
	for _, match := range geocodeResponse {
		results = append(results, models.GeocodeResult{
			DisplayName: match.FormattedAddress,
			Coordinate: models.Coordinate{
				Latitude:  match.Geometry.Location.Lat,
				Longitude: match.Geometry.Location.Lng,
			},
		})
	}

	return results, nil
}

// Reverse resolves a coordinate into a formatted address using the Google
// Maps Reverse Geocoding API.
func (gp *GoogleProvider) Reverse(ctx context.Context, coord models.Coordinate, language string) (string, error) {
	gp.log.DebugContext(ctx, "Reverse geocoding using Google Maps",
		"lat", coord.Latitude, "lng", coord.Longitude)

	req := maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: coord.Latitude, Lng: coord.Longitude},
		Language: language,
	}
	geocodeResponse, err := gp.client.ReverseGeocode(ctx, &req)
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode coordinate: %w", err)
	}

	if len(geocodeResponse) == 0 {
		return "", ErrEmptyResponse
	}

	return geocodeResponse[0].FormattedAddress, nil
}
