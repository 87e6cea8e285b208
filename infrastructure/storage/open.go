package storage

import (
	"context"
	"fmt"

	"github.com/ahrav/go-scoreboard/internal/ports"
)

// Open returns the StateStore for backend: "file", "sqlite" or "memory".
func Open(ctx context.Context, backend, path, key string) (ports.StateStore, error) {
	switch backend {
	case "file":
		return NewFileStore(path, key), nil
	case "sqlite":
		s, err := OpenSQLite(ctx, path, key)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", ports.ErrConfigNotFound, backend)
	}
}
