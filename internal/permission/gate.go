package permission

import (
	"context"
	"log/slog"

	"github.com/koya1616/koko-pic/internal/models"
)

// PlatformState is the answer of a platform permission-status query.
type PlatformState string

const (
	// StateGranted means the platform already confirmed the grant.
	StateGranted PlatformState = "granted"
	// StateDenied means the user explicitly denied the capability.
	StateDenied PlatformState = "denied"
	// StatePrompt means the platform would prompt the user.
	StatePrompt PlatformState = "prompt"
	// StateUnknown means the query is unsupported or failed.
	StateUnknown PlatformState = "unknown"
)

// StatusQuerier asks the platform for the current permission state of a
// capability. Platforms without a permission-status API return StateUnknown.
type StatusQuerier interface {
	QueryState(ctx context.Context, platformName string) PlatformState
}

// Gate decides whether a capability prompt may be shown. It remembers, per
// capability key, that a prompt was already issued so remounts do not prompt
// the user again.
type Gate struct {
	store   Store
	querier StatusQuerier // optional; nil when the platform has no status query
	log     *slog.Logger
}

// NewGate creates a Gate over the given store. The querier may be nil.
func NewGate(store Store, querier StatusQuerier, log *slog.Logger) *Gate {
	return &Gate{store: store, querier: querier, log: log}
}

// ShouldRequestOnce reports whether a prompt for key may be issued now.
//
// A platform-confirmed grant always allows (and is persisted); an explicit
// platform denial never allows (a "requested" record is persisted so the user
// is not re-prompted). Without a platform answer, the stored record decides:
// granted allows, requested denies, and an absent record allows the first-ever
// prompt while recording that it happened.
//
// Store failures are swallowed: the gate degrades to permissive rather than
// blocking the user.
func (g *Gate) ShouldRequestOnce(ctx context.Context, key, platformName string) bool {
	state := StateUnknown
	if g.querier != nil && platformName != "" {
		state = g.querier.QueryState(ctx, platformName)
	}

	switch state {
	case StateGranted:
		g.write(ctx, key, models.PermissionGranted)
		return true
	case StateDenied:
		g.write(ctx, key, models.PermissionRequested)
		return false
	case StatePrompt, StateUnknown:
	}

	stored, found, err := g.store.GetStatus(ctx, key)
	if err != nil {
		g.log.DebugContext(ctx, "Permission store read failed, allowing prompt", "key", key, "error", err)
		found = false
	}
	if found {
		return stored == models.PermissionGranted
	}

	g.write(ctx, key, models.PermissionRequested)
	return true
}

// MarkGranted records a platform-confirmed grant for key, overriding any
// prior "requested" record. Used after a prompt actually succeeded, e.g. a
// position query returned a fix.
func (g *Gate) MarkGranted(ctx context.Context, key string) {
	g.write(ctx, key, models.PermissionGranted)
}

func (g *Gate) write(ctx context.Context, key string, status models.PermissionStatus) {
	if err := g.store.SetStatus(ctx, key, status); err != nil {
		g.log.DebugContext(ctx, "Permission store write failed", "key", key, "status", status, "error", err)
	}
}
