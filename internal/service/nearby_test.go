package service_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/koya1616/koko-pic/internal/models"
	"github.com/koya1616/koko-pic/internal/service"
	"github.com/koya1616/koko-pic/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearbyList(t *testing.T) {
	logger := slog.Default()
	ctx := t.Context()

	t.Run("ranks requests by distance when a fix exists", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		fix := &models.LocationFix{
			Coordinate: models.Coordinate{Latitude: 0, Longitude: 0},
			Source:     models.FixSourceGPS,
			CapturedAt: time.Now(),
		}
		directory := []models.Request{
			{ID: 1, Location: &models.Coordinate{Latitude: 0, Longitude: 0.02}},
			{ID: 2, Location: &models.Coordinate{Latitude: 0, Longitude: 0.01}},
		}

		mockRepo.On("ListRequests", ctx, &fix.Coordinate).Return(directory, nil).Once()

		nearby := service.NewNearby(logger, mockRepo)
		requests, err := nearby.List(ctx, fix)

		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, 2, requests[0].ID)
		assert.Equal(t, 1, requests[1].ID)
		require.NotNil(t, requests[0].Distance)
	})

	t.Run("ranks the seed directory from Tokyo Station", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		fix := &models.LocationFix{
			Coordinate: models.Coordinate{Latitude: 35.6812, Longitude: 139.7671},
			Source:     models.FixSourceGPS,
			CapturedAt: time.Now(),
		}

		mockRepo.On("ListRequests", ctx, &fix.Coordinate).Return(models.SampleRequests(), nil).Once()

		nearby := service.NewNearby(logger, mockRepo)
		requests, err := nearby.List(ctx, fix)

		require.NoError(t, err)
		require.Len(t, requests, 6)
		// Shinjuku, Nagoya, Osaka, Tokushima, Sapporo, Naha.
		wantOrder := []int{1, 3, 2, 4, 5, 6}
		for i, want := range wantOrder {
			assert.Equal(t, want, requests[i].ID)
		}
	})

	t.Run("returns directory order without a fix", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)
		directory := []models.Request{
			{ID: 1, Location: &models.Coordinate{Latitude: 0, Longitude: 0.02}},
			{ID: 2, Location: &models.Coordinate{Latitude: 0, Longitude: 0.01}},
		}

		mockRepo.On("ListRequests", ctx, (*models.Coordinate)(nil)).Return(directory, nil).Once()

		nearby := service.NewNearby(logger, mockRepo)
		requests, err := nearby.List(ctx, nil)

		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, 1, requests[0].ID)
		assert.Nil(t, requests[0].Distance)
	})

	t.Run("propagates directory errors", func(t *testing.T) {
		mockRepo := mocks.NewInterface(t)

		mockRepo.On("ListRequests", ctx, (*models.Coordinate)(nil)).Return(nil, assert.AnError).Once()

		nearby := service.NewNearby(logger, mockRepo)
		requests, err := nearby.List(ctx, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, requests)
	})
}
