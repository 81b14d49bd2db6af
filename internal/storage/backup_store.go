package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Backup is one retained copy of the design document.
type Backup struct {
	ID        string    `json:"id"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

// BackupStore keeps a bounded history of design backups in SQLite.
type BackupStore struct {
	db *DB
}

// NewBackupStore creates a BackupStore.
func NewBackupStore(db *DB) *BackupStore {
	return &BackupStore{db: db}
}

// Add stores a new backup and prunes the oldest entries beyond keep.
func (s *BackupStore) Add(payload []byte, keep int) (*Backup, error) {
	b := &Backup{
		ID:        uuid.New().String(),
		Payload:   string(payload),
		CreatedAt: time.Now(),
	}
	_, err := s.db.conn.Exec(
		`INSERT INTO backups (id, payload, created_at) VALUES (?, ?, ?)`,
		b.ID, b.Payload, b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert backup: %w", err)
	}
	s.pruneIfNeeded(keep)
	return b, nil
}

// List returns all backups, newest first, without payloads loaded.
func (s *BackupStore) List() ([]Backup, error) {
	rows, err := s.db.conn.Query(
		`SELECT id, created_at FROM backups ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	var result []Backup
	for rows.Next() {
		var b Backup
		if err := rows.Scan(&b.ID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// Get returns a backup with its payload.
func (s *BackupStore) Get(id string) (*Backup, error) {
	b := &Backup{}
	err := s.db.conn.QueryRow(
		`SELECT id, payload, created_at FROM backups WHERE id = ?`, id,
	).Scan(&b.ID, &b.Payload, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("backup not found: %s", id)
	}
	return b, nil
}

func (s *BackupStore) pruneIfNeeded(keep int) {
	if keep <= 0 {
		return
	}
	var count int
	s.db.conn.QueryRow(`SELECT COUNT(*) FROM backups`).Scan(&count)
	if count <= keep {
		return
	}
	s.db.conn.Exec(
		`DELETE FROM backups WHERE id IN (
			SELECT id FROM backups ORDER BY created_at ASC LIMIT ?
		)`, count-keep,
	)
}
