// Package stores contains SQLite-backed implementations of the domain
// storage interfaces.
package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tablekit/tablekit/internal/core/notify"
	"github.com/tablekit/tablekit/internal/data/db"
)

// notificationsKey is the single logical key the notification snapshot
// lives under.
const notificationsKey = "notifications"

// SnapshotStore implements notify.Store over one row of the snapshots
// table. Save is a full-replace upsert of the JSON-serialized list;
// timestamps round-trip as RFC 3339 strings.
type SnapshotStore struct {
	db  *db.DB
	key string
}

var _ notify.Store = (*SnapshotStore)(nil)

// NewSnapshotStore creates a store bound to the default notifications key.
func NewSnapshotStore(db *db.DB) *SnapshotStore {
	return NewSnapshotStoreWithKey(db, notificationsKey)
}

// NewSnapshotStoreWithKey binds the store to a specific key. Separate
// Log instances (tests in particular) must not share a key.
func NewSnapshotStoreWithKey(db *db.DB, key string) *SnapshotStore {
	return &SnapshotStore{db: db, key: key}
}

// Save overwrites the persisted snapshot with the given list.
func (s *SnapshotStore) Save(ctx context.Context, records []notify.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal notifications: %w", err)
	}

	_, err = s.db.Conn().ExecContext(ctx, `
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, data, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save notifications: %w", err)
	}
	return nil
}

// Load returns the persisted list. A missing key or a payload that no
// longer parses yields an empty list, never an error; corrupt history is
// discarded wholesale rather than partially repaired.
func (s *SnapshotStore) Load(ctx context.Context) ([]notify.Record, error) {
	var data []byte
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT value FROM snapshots WHERE key = ?`, s.key,
	).Scan(&data)
	if IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}

	var records []notify.Record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("discarding malformed notification snapshot")
		return nil, nil
	}
	return records, nil
}

// Clear deletes the persisted snapshot.
func (s *SnapshotStore) Clear(ctx context.Context) error {
	_, err := s.db.Conn().ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, s.key)
	if err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// putRaw writes an arbitrary payload under the store's key. Tests use it
// to simulate a corrupted snapshot.
func (s *SnapshotStore) putRaw(ctx context.Context, raw []byte) error {
	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, raw, time.Now().UnixNano(),
	)
	return err
}
