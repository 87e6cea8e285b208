package domain

import (
	"fmt"
	"time"
)

// DefaultToastTTL is how long a notification lives when no ttl is given.
const DefaultToastTTL = 3 * time.Second

// ToastKind is the closed set of notification kinds.
type ToastKind int

// Supported notification kinds.
const (
	ToastSuccess ToastKind = iota + 1
	ToastError
	ToastWarning
	ToastInfo
)

// String returns the lowercase name of the kind.
func (k ToastKind) String() string {
	switch k {
	case ToastSuccess:
		return "success"
	case ToastError:
		return "error"
	case ToastWarning:
		return "warning"
	case ToastInfo:
		return "info"
	default:
		return fmt.Sprintf("ToastKind(%d)", int(k))
	}
}

// Valid reports whether k is one of the four supported kinds.
func (k ToastKind) Valid() bool { return k >= ToastSuccess && k <= ToastInfo }

// Toast is an ephemeral user-facing message. It is never persisted.
type Toast struct {
	ID        string
	Kind      ToastKind
	Text      string
	TTL       time.Duration
	CreatedAt time.Time
}
