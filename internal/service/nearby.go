package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/koya1616/koko-pic/internal/geo"
	"github.com/koya1616/koko-pic/internal/models"
	"github.com/koya1616/koko-pic/internal/repository"
)

// Nearby serves the home screen request list: it reads the directory and
// ranks the requests by distance from the user's fix. Without a fix the list
// is returned as stored, unranked.
type Nearby struct {
	log  *slog.Logger
	repo repository.Interface
}

// NewNearby creates a Nearby service over the request directory.
func NewNearby(log *slog.Logger, repo repository.Interface) *Nearby {
	return &Nearby{log: log, repo: repo}
}

// List returns the photo requests ranked by distance from fix. A nil fix
// returns the directory order with no distance annotations.
func (n *Nearby) List(ctx context.Context, fix *models.LocationFix) ([]models.Request, error) {
	var near *models.Coordinate
	if fix != nil {
		near = &fix.Coordinate
	}

	requests, err := n.repo.ListRequests(ctx, near)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	n.log.DebugContext(ctx, "Fetched requests from directory", "count", len(requests), "ranked", fix != nil)

	return geo.RankByDistance(requests, fix), nil
}
