package cache

import (
	"context"
	"sync"

	"github.com/landingpages/internal/landing"
)

// SnapshotStore keeps the current snapshot version and, optionally, a copy of
// the snapshot built for it. Invalidate bumps the version so every reader
// rebuilds on its next request.
type SnapshotStore interface {
	Version(ctx context.Context) (int64, error)
	Load(ctx context.Context, version int64) (landing.Snapshot, bool, error)
	Save(ctx context.Context, version int64, snap landing.Snapshot) error
	Invalidate(ctx context.Context) (int64, error)
}

// MemoryStore is a process-local SnapshotStore.
type MemoryStore struct {
	mu       sync.RWMutex
	version  int64
	stored   int64
	snapshot *landing.Snapshot
}

// NewMemoryStore returns a store starting at version 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{version: 1}
}

func (m *MemoryStore) Version(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version, nil
}

func (m *MemoryStore) Load(_ context.Context, version int64) (landing.Snapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snapshot == nil || m.stored != version {
		return landing.Snapshot{}, false, nil
	}
	return *m.snapshot, true, nil
}

func (m *MemoryStore) Save(_ context.Context, version int64, snap landing.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if version < m.stored {
		return nil
	}
	m.stored = version
	m.snapshot = &snap
	return nil
}

func (m *MemoryStore) Invalidate(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version++
	m.snapshot = nil
	return m.version, nil
}
