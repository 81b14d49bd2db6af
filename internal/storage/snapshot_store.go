package storage

import (
	"database/sql"
	"fmt"
	"time"

	"sitebuilder/internal/domain"
)

// SnapshotStore implements domain.SnapshotStore on SQLite.
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a SnapshotStore.
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Load returns the payload stored under key, or (nil, nil) when nothing has
// been stored yet.
func (s *SnapshotStore) Load(key string) ([]byte, error) {
	var payload string
	err := s.db.conn.QueryRow(
		`SELECT payload FROM snapshots WHERE key = ?`, key,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	return []byte(payload), nil
}

// Save upserts the payload under key.
func (s *SnapshotStore) Save(key string, data []byte) error {
	_, err := s.db.conn.Exec(
		`INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(data), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// NopStore is the adapter for environments without a durable store: reads
// report nothing stored and writes succeed without doing anything.
type NopStore struct{}

func (NopStore) Load(string) ([]byte, error) { return nil, nil }
func (NopStore) Save(string, []byte) error   { return nil }

var (
	_ domain.SnapshotStore = (*SnapshotStore)(nil)
	_ domain.SnapshotStore = NopStore{}
)
