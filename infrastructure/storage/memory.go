package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

var _ ports.StateStore = (*MemoryStore)(nil)

// MemoryStore keeps the snapshot in memory as encoded JSON, so loads go
// through the same decoding as the durable backends.
type MemoryStore struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Save implements ports.StateStore.
func (s *MemoryStore) Save(_ context.Context, snap domain.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return ports.NewPersistenceError("memory", "save", err)
	}
	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()
	return nil
}

// Load implements ports.StateStore.
func (s *MemoryStore) Load(context.Context) (domain.Snapshot, bool, error) {
	s.mu.Lock()
	raw := s.raw
	s.mu.Unlock()
	if raw == nil {
		return domain.Snapshot{}, false, nil
	}
	return decodeSnapshot("memory", raw)
}

// Close implements ports.StateStore.
func (s *MemoryStore) Close() error { return nil }
