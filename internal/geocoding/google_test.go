package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/koya1616/koko-pic/internal/geocoding"
	"github.com/koya1616/koko-pic/internal/models"
	"github.com/koya1616/koko-pic/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func TestGoogleSearch(t *testing.T) {
	mockClient := mocks.NewGoogleAPIClient(t)
	provider := geocoding.NewGoogleProvider(mockClient, slog.Default())
	ctx := t.Context()

	t.Run("api returns error", func(t *testing.T) {
		query := geocoding.SearchQuery{Query: "some invalid place", Language: "en"}
		req := &maps.GeocodingRequest{Address: query.Query, Language: query.Language}

		mockClient.On("Geocode", ctx, req).Return(nil, assert.AnError).Once()

		_, err := provider.Search(ctx, query)

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
		mockClient.AssertExpectations(t)
	})

	t.Run("api returns empty response", func(t *testing.T) {
		query := geocoding.SearchQuery{Query: "some invalid place", Language: "en"}
		req := &maps.GeocodingRequest{Address: query.Query, Language: query.Language}

		mockClient.On("Geocode", ctx, req).Return(nil, nil).Once()

		results, err := provider.Search(ctx, query)

		require.Nil(t, results)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
		mockClient.AssertExpectations(t)
	})

	t.Run("successful search", func(t *testing.T) {
		query := geocoding.SearchQuery{Query: "Shibuya station", Language: "ja"}
		req := &maps.GeocodingRequest{Address: query.Query, Language: query.Language}
		mockResponse := []maps.GeocodingResult{
			{
				FormattedAddress: "Shibuya Station, Tokyo, Japan",
				Geometry:         maps.AddressGeometry{Location: maps.LatLng{Lat: 35.6580, Lng: 139.7016}},
			},
		}

		mockClient.On("Geocode", ctx, req).Return(mockResponse, nil).Once()

		results, err := provider.Search(ctx, query)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Shibuya Station, Tokyo, Japan", results[0].DisplayName)
		require.InEpsilon(t, 35.6580, results[0].Coordinate.Latitude, 0.01)
		require.InEpsilon(t, 139.7016, results[0].Coordinate.Longitude, 0.01)
		mockClient.AssertExpectations(t)
	})

	t.Run("search biased around a point sets bounds", func(t *testing.T) {
		query := geocoding.SearchQuery{
			Query:    "station",
			Language: "ja",
			Near:     &models.Coordinate{Latitude: 35.6812, Longitude: 139.7671},
		}
		mockResponse := []maps.GeocodingResult{
			{
				FormattedAddress: "Tokyo Station, Tokyo, Japan",
				Geometry:         maps.AddressGeometry{Location: maps.LatLng{Lat: 35.6812, Lng: 139.7671}},
			},
		}

		mockClient.On("Geocode", ctx, mock.MatchedBy(func(req *maps.GeocodingRequest) bool {
			if req.Bounds == nil {
				return false
			}
			return req.Bounds.NorthEast.Lat > query.Near.Latitude &&
				req.Bounds.SouthWest.Lat < query.Near.Latitude &&
				req.Bounds.NorthEast.Lng > query.Near.Longitude &&
				req.Bounds.SouthWest.Lng < query.Near.Longitude
		})).Return(mockResponse, nil).Once()

		results, err := provider.Search(ctx, query)

		require.NoError(t, err)
		require.Len(t, results, 1)
		mockClient.AssertExpectations(t)
	})
}

func TestGoogleReverse(t *testing.T) {
	mockClient := mocks.NewGoogleAPIClient(t)
	provider := geocoding.NewGoogleProvider(mockClient, slog.Default())
	ctx := t.Context()
	coord := models.Coordinate{Latitude: 35.6812, Longitude: 139.7671}

	t.Run("api returns error", func(t *testing.T) {
		req := &maps.GeocodingRequest{
			LatLng:   &maps.LatLng{Lat: coord.Latitude, Lng: coord.Longitude},
			Language: "ja",
		}

		mockClient.On("ReverseGeocode", ctx, req).Return(nil, assert.AnError).Once()

		_, err := provider.Reverse(ctx, coord, "ja")

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
		mockClient.AssertExpectations(t)
	})

	t.Run("api returns empty response", func(t *testing.T) {
		req := &maps.GeocodingRequest{
			LatLng:   &maps.LatLng{Lat: coord.Latitude, Lng: coord.Longitude},
			Language: "ja",
		}

		mockClient.On("ReverseGeocode", ctx, req).Return(nil, nil).Once()

		label, err := provider.Reverse(ctx, coord, "ja")

		require.Empty(t, label)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
		mockClient.AssertExpectations(t)
	})

	t.Run("successful reverse geocoding", func(t *testing.T) {
		req := &maps.GeocodingRequest{
			LatLng:   &maps.LatLng{Lat: coord.Latitude, Lng: coord.Longitude},
			Language: "ja",
		}
		mockResponse := []maps.GeocodingResult{
			{FormattedAddress: "Tokyo Station, Chiyoda, Tokyo, Japan"},
			{FormattedAddress: "Chiyoda, Tokyo, Japan"},
		}

		mockClient.On("ReverseGeocode", ctx, req).Return(mockResponse, nil).Once()

		label, err := provider.Reverse(ctx, coord, "ja")

		require.NoError(t, err)
		assert.Equal(t, "Tokyo Station, Chiyoda, Tokyo, Japan", label)
		mockClient.AssertExpectations(t)
	})
}
