package geofix

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/koya1616/koko-pic/internal/models"
	"github.com/koya1616/koko-pic/internal/permission"
)

// Common errors for location acquisition.
var (
	// ErrUnavailable is returned when the platform has no geolocation capability.
	ErrUnavailable = errors.New("geolocation is not available on this platform")
	// ErrPermissionThrottled is returned when the permission prompt was already issued once.
	ErrPermissionThrottled = errors.New("geolocation permission was already requested once")
	// ErrPermissionDenied is returned when the user explicitly denied the permission.
	// Locator implementations wrap this error for platform denial codes.
	ErrPermissionDenied = errors.New("geolocation permission denied")
	// ErrAcquisitionFailed is returned for any other platform failure.
	ErrAcquisitionFailed = errors.New("failed to acquire location")
)

// gateKey is both the gate capability key and the platform permission name.
const gateKey = "geolocation"

// Options controls a one-shot position query.
type Options struct {
	HighAccuracy bool          // HighAccuracy requests the most precise fix available.
	Timeout      time.Duration // Timeout bounds how long the platform may take.
	MaximumAge   time.Duration // MaximumAge allows a cached fix no older than this.
}

// Position is a raw platform position reading.
type Position struct {
	Coordinate models.Coordinate // Coordinate is the reported point.
	Accuracy   float64           // Accuracy is the reported accuracy in meters.
}

// Locator is the platform's one-shot location API. Implementations report an
// explicit user denial by wrapping ErrPermissionDenied.
type Locator interface {
	CurrentPosition(ctx context.Context, opts Options) (*Position, error)
}

// Provider acquires at most one location fix per instance, gated by the
// permission-once protocol. A result arriving after the owning context is
// canceled is discarded, so no state changes after teardown.
type Provider struct {
	gate    *permission.Gate
	locator Locator // nil when the platform lacks geolocation
	log     *slog.Logger
	now     func() time.Time

	mu       sync.Mutex
	resolved bool
	fix      *models.LocationFix
	err      error
}

// NewProvider creates a single-shot fix provider. A nil locator models a
// platform without geolocation support.
func NewProvider(gate *permission.Gate, locator Locator, log *slog.Logger) *Provider {
	return &Provider{gate: gate, locator: locator, log: log, now: time.Now}
}

// Acquire runs the permission-gated acquisition protocol. The first call
// resolves the provider; later calls are no-ops. The position query carries
// high accuracy, an 8 second timeout and a 10 second maximum fix age.
func (p *Provider) Acquire(ctx context.Context) {
	p.mu.Lock()
	if p.resolved {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	if p.locator == nil {
		p.resolve(nil, ErrUnavailable)
		return
	}

	if !p.gate.ShouldRequestOnce(ctx, gateKey, gateKey) {
		p.log.DebugContext(ctx, "Suppressing repeat geolocation prompt")
		p.resolve(nil, ErrPermissionThrottled)
		return
	}

	const (
		timeout    = 8 * time.Second
		maximumAge = 10 * time.Second
	)
	position, err := p.locator.CurrentPosition(ctx, Options{
		HighAccuracy: true,
		Timeout:      timeout,
		MaximumAge:   maximumAge,
	})

	// The owner may have been torn down while the platform callback was
	// pending; its late result must not be applied.
	if ctx.Err() != nil {
		p.log.DebugContext(ctx, "Discarding geolocation result after teardown")
		return
	}

	if err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			p.resolve(nil, ErrPermissionDenied)
			return
		}
		p.log.ErrorContext(ctx, "Failed to acquire position", "error", err)
		p.resolve(nil, fmt.Errorf("%w: %w", ErrAcquisitionFailed, err))
		return
	}

	p.gate.MarkGranted(ctx, gateKey)
	p.resolve(&models.LocationFix{
		Coordinate: position.Coordinate,
		Source:     models.FixSourceGPS,
		Accuracy:   position.Accuracy,
		CapturedAt: p.now(),
	}, nil)
}

// Fix returns the resolved fix or the acquisition error. Both are nil until
// Acquire resolves.
func (p *Provider) Fix() (*models.LocationFix, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.fix, p.err
}

func (p *Provider) resolve(fix *models.LocationFix, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.resolved {
		return
	}
	p.resolved = true
	p.fix = fix
	p.err = err
}
