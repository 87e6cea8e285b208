// Package storage provides the StateStore backends that mirror the scoring
// state to durable storage.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

var _ ports.StateStore = (*FileStore)(nil)

// FileStore keeps the snapshot as a JSON document under a key in a single
// file, so several keys can share one file. Writes go to a temporary file
// that is renamed over the original.
type FileStore struct {
	path string
	key  string
}

// NewFileStore creates a FileStore writing to path under key.
func NewFileStore(path, key string) *FileStore {
	return &FileStore{path: path, key: key}
}

// Save implements ports.StateStore.
func (s *FileStore) Save(ctx context.Context, snap domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return ports.NewPersistenceError("file", "save", err)
	}

	doc, err := s.readDocument()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		// A corrupted file is overwritten rather than blocking every save.
		doc = nil
	}
	if doc == nil {
		doc = make(map[string]json.RawMessage)
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return ports.NewPersistenceError("file", "save", err)
	}
	doc[s.key] = raw

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ports.NewPersistenceError("file", "save", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return ports.NewPersistenceError("file", "save", err)
	}
	return nil
}

// Load implements ports.StateStore.
func (s *FileStore) Load(ctx context.Context) (domain.Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, false, ports.NewPersistenceError("file", "load", err)
	}

	doc, err := s.readDocument()
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, ports.NewPersistenceError("file", "load", err)
	}

	raw, ok := doc[s.key]
	if !ok || string(raw) == "null" {
		return domain.Snapshot{}, false, nil
	}
	return decodeSnapshot("file", raw)
}

// Close implements ports.StateStore.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCorruptedState, err)
	}
	return doc, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// decodeSnapshot unmarshals a persisted snapshot and rejects payloads that
// lack a configuration.
func decodeSnapshot(backend string, raw []byte) (domain.Snapshot, bool, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.Snapshot{}, false, ports.NewPersistenceError(backend, "load",
			fmt.Errorf("%w: %v", ports.ErrCorruptedState, err))
	}
	if snap.Config.JudgeCount == 0 && len(snap.Config.Judges) == 0 {
		return domain.Snapshot{}, false, ports.NewPersistenceError(backend, "load",
			fmt.Errorf("%w: missing config", ports.ErrCorruptedState))
	}
	return snap, true, nil
}
