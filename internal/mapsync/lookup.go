package mapsync

import (
	"context"
	"log/slog"
	"sync"

	"github.com/koya1616/koko-pic/internal/geocoding"
	"github.com/koya1616/koko-pic/internal/models"
)

// Sequencer hands out monotonically increasing lookup tags and answers
// whether a tag is still the latest one issued. It is safe for concurrent
// use.
type Sequencer struct {
	mu     sync.Mutex
	latest uint64
}

// Next issues a new tag, making every previously issued tag stale.
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// IsLatest reports whether tag is the most recently issued tag.
func (s *Sequencer) IsLatest(tag uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tag == s.latest
}

// PlaceResolver resolves coordinates to place labels for map pin taps.
// Lookups can overlap when the user taps around quickly; each lookup is
// tagged on entry and its result is discarded if a newer lookup started
// before it finished, so a slow early response never overwrites the label
// of the pin tapped last.
type PlaceResolver struct {
	log      *slog.Logger
	provider geocoding.Provider
	seq      Sequencer
	language string
}

// NewPlaceResolver creates a resolver on top of a geocoding provider.
func NewPlaceResolver(log *slog.Logger, provider geocoding.Provider, language string) *PlaceResolver {
	return &PlaceResolver{log: log, provider: provider, language: language}
}

// Resolve reverse-geocodes coord into a display label. stale is true when a
// newer lookup was started while this one was in flight; callers must ignore
// label and err in that case. Failures of the latest lookup are returned so
// the caller can fall back to showing raw coordinates.
func (r *PlaceResolver) Resolve(ctx context.Context, coord models.Coordinate) (label string, stale bool, err error) {
	tag := r.seq.Next()

	label, err = r.provider.Reverse(ctx, coord, r.language)

	if !r.seq.IsLatest(tag) {
		r.log.Debug("discarding stale place lookup",
			slog.Uint64("tag", tag),
			slog.Float64("lat", coord.Latitude),
			slog.Float64("lng", coord.Longitude))
		return "", true, nil
	}
	if err != nil {
		return "", false, err
	}
	return label, false, nil
}
