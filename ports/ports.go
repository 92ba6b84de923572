// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"
)

// Snapshot is a named model snapshot: a YAML document describing a device
// model tree, captured so reflective analysis can run offline against it.
type Snapshot struct {
	// Name identifies the snapshot in the store.
	Name string

	// Document is the raw YAML snapshot document.
	Document []byte

	// CreatedAt records when the snapshot was saved.
	CreatedAt time.Time
}

// SnapshotStore persists named model snapshots.
type SnapshotStore interface {
	// Save stores a snapshot, replacing any existing one with the same name.
	Save(ctx context.Context, snap Snapshot) error

	// Load retrieves a snapshot by name.
	Load(ctx context.Context, name string) (Snapshot, error)

	// List returns all stored snapshots without documents, newest first.
	List(ctx context.Context) ([]Snapshot, error)

	// Delete removes a snapshot by name.
	Delete(ctx context.Context, name string) error
}
