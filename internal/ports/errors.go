package ports

import (
	"errors"
	"fmt"
)

// Common infrastructure errors that can occur during persistence.
var (
	// ErrStorageUnavailable indicates that the storage backend could not be
	// opened or reached.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCorruptedState indicates that persisted data could not be decoded.
	ErrCorruptedState = errors.New("persisted state corrupted")

	// ErrConfigNotFound indicates that required configuration is missing.
	ErrConfigNotFound = errors.New("configuration not found")
)

// PersistenceError represents a failed read or write against a StateStore.
type PersistenceError struct {
	// Backend names the storage implementation, such as "file" or "sqlite".
	Backend string

	// Operation is "load" or "save".
	Operation string

	// Err is the underlying error that occurred.
	Err error
}

// Error implements the error interface for PersistenceError.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: backend=%s, operation=%s, err=%v", e.Backend, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(backend, operation string, err error) *PersistenceError {
	return &PersistenceError{Backend: backend, Operation: operation, Err: err}
}
