package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver

	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

var _ ports.StateStore = (*SQLiteStore)(nil)

const createKVTable = `
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL
);`

// SQLiteStore keeps the snapshot as a JSON value in a key/value table.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path, key string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ports.NewPersistenceError("sqlite", "open", fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err))
	}
	// SQLite allows one writer; a single connection avoids busy errors.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createKVTable); err != nil {
		db.Close()
		return nil, ports.NewPersistenceError("sqlite", "open", fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err))
	}
	return &SQLiteStore{db: db, key: key}, nil
}

// Save implements ports.StateStore.
func (s *SQLiteStore) Save(ctx context.Context, snap domain.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return ports.NewPersistenceError("sqlite", "save", err)
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(raw), time.Now().UTC())
	if err != nil {
		return ports.NewPersistenceError("sqlite", "save", err)
	}
	return nil
}

// Load implements ports.StateStore.
func (s *SQLiteStore) Load(ctx context.Context) (domain.Snapshot, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, s.key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, ports.NewPersistenceError("sqlite", "load", err)
	}
	return decodeSnapshot("sqlite", []byte(raw))
}

// Close implements ports.StateStore.
func (s *SQLiteStore) Close() error { return s.db.Close() }
