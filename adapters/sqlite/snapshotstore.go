package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/artpar/yanggen/ports"
)

// ErrNotFound is returned when a snapshot is not found.
var ErrNotFound = errors.New("not found")

// SnapshotStore implements ports.SnapshotStore using SQLite.
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a new SQLite snapshot store.
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save stores a snapshot, replacing any existing one with the same name.
func (s *SnapshotStore) Save(ctx context.Context, snap ports.Snapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO snapshots (name, document, created_at)
		VALUES (?, ?, ?)
	`, snap.Name, snap.Document, snap.CreatedAt)
	return err
}

// Load retrieves a snapshot by name.
func (s *SnapshotStore) Load(ctx context.Context, name string) (ports.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, document, created_at FROM snapshots WHERE name = ?
	`, name)

	var snap ports.Snapshot
	err := row.Scan(&snap.Name, &snap.Document, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return ports.Snapshot{}, err
	}
	return snap, nil
}

// List returns all stored snapshots without documents, newest first.
func (s *SnapshotStore) List(ctx context.Context) ([]ports.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, created_at FROM snapshots
		ORDER BY created_at DESC, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []ports.Snapshot
	for rows.Next() {
		var snap ports.Snapshot
		if err := rows.Scan(&snap.Name, &snap.CreatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// Delete removes a snapshot by name.
func (s *SnapshotStore) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM snapshots WHERE name = ?
	`, name)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)
