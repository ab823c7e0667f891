package permission

import (
	"context"
	"sync"

	"github.com/koya1616/koko-pic/internal/models"
)

// Store is the durable record of permission prompts, keyed by capability
// ("camera", "geolocation"). Implementations are best-effort: the gate
// tolerates read and write failures.
type Store interface {
	// GetStatus returns the stored status for key. The second return value is
	// false when no record exists.
	GetStatus(ctx context.Context, key string) (models.PermissionStatus, bool, error)
	// SetStatus saves or replaces the record for key.
	SetStatus(ctx context.Context, key string, status models.PermissionStatus) error
}

// MemoryStore is an in-process Store, used in tests and as a fallback when no
// durable backend is configured.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]models.PermissionStatus
}

// NewMemoryStore returns an empty in-memory permission store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.PermissionStatus)}
}

// GetStatus returns the stored status for key.
func (m *MemoryStore) GetStatus(_ context.Context, key string) (models.PermissionStatus, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status, ok := m.records[key]
	return status, ok, nil
}

// SetStatus saves or replaces the record for key.
func (m *MemoryStore) SetStatus(_ context.Context, key string, status models.PermissionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key] = status
	return nil
}
