package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/artpar/yanggen/ports"
)

// ErrNotFound is returned when a snapshot is not found.
var ErrNotFound = errors.New("not found")

// SnapshotStore is an in-memory implementation of ports.SnapshotStore.
type SnapshotStore struct {
	mu    sync.RWMutex
	snaps map[string]ports.Snapshot // by name
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snaps: make(map[string]ports.Snapshot),
	}
}

// Save stores a snapshot, replacing any existing one with the same name.
func (s *SnapshotStore) Save(ctx context.Context, snap ports.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snaps[snap.Name] = snap
	return nil
}

// Load retrieves a snapshot by name.
func (s *SnapshotStore) Load(ctx context.Context, name string) (ports.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snaps[name]
	if !ok {
		return ports.Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// List returns all stored snapshots without documents, newest first.
func (s *SnapshotStore) List(ctx context.Context) ([]ports.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ports.Snapshot, 0, len(s.snaps))
	for _, snap := range s.snaps {
		snap.Document = nil
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a snapshot by name.
func (s *SnapshotStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snaps[name]; !ok {
		return ErrNotFound
	}
	delete(s.snaps, name)
	return nil
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)
