package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors that can occur during scoring operations.
var (
	// ErrNotFound indicates that an id does not match any catalog item,
	// judge or entry.
	ErrNotFound = errors.New("not found")

	// ErrInvalidScale indicates score scale bounds with min >= max.
	ErrInvalidScale = errors.New("invalid score scale")

	// ErrScoreCount indicates that the number of scores differs from the
	// configured judge count.
	ErrScoreCount = errors.New("score count does not match judge count")

	// ErrScoreRange indicates a score outside the configured scale.
	ErrScoreRange = errors.New("score outside scale")

	// ErrInvalidJudgeCount indicates a judge count outside 1..MaxJudgeCount.
	ErrInvalidJudgeCount = errors.New("invalid judge count")

	// ErrEmptyName indicates a blank catalog name.
	ErrEmptyName = errors.New("empty name")

	// ErrNameTooLong indicates a name exceeding the allowed length.
	ErrNameTooLong = errors.New("name too long")

	// ErrInvalidConfiguration indicates that configuration is invalid or incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidBackup indicates a backup payload missing required keys or
	// holding malformed JSON.
	ErrInvalidBackup = errors.New("invalid backup")
)

// ValidationError represents rejected input. It can contain multiple
// validation failures and unwraps to the sentinel describing its cause.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string

	// Err is the sentinel classifying the failure.
	Err error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return fmt.Sprintf("validation error for %s: %v", e.Entity, e.Err)
	case 1:
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	default:
		return fmt.Sprintf("validation errors for %s: %s", e.Entity, strings.Join(e.Errors, "; "))
	}
}

// Unwrap returns the underlying sentinel.
func (e *ValidationError) Unwrap() error { return e.Err }

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string, err error, msgs ...string) *ValidationError {
	return &ValidationError{Entity: entity, Err: err, Errors: msgs}
}

// NotFoundError reports an unknown id passed to an update, delete or rename.
type NotFoundError struct {
	// Entity names the kind of item looked up.
	Entity string

	// ID is the id that did not match.
	ID string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}
