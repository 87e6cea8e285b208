package ports

import (
	"context"
	"time"

	"github.com/ahrav/go-scoreboard/internal/domain"
)

// Notifier is the single side channel through which configuration and
// entry operations report their outcome. It carries nothing back into the
// domain state.
type Notifier interface {
	// Post queues a message of the given kind and returns its id. A ttl of
	// zero or less selects the notifier's default lifetime.
	Post(kind domain.ToastKind, text string, ttl time.Duration) string
}

// StateStore defines the interface for durable persistence of the scoring
// state. Implementations could use a JSON file, SQLite or in-memory storage.
type StateStore interface {
	// Save replaces the persisted snapshot.
	Save(ctx context.Context, snap domain.Snapshot) error

	// Load returns the persisted snapshot. The boolean is false when
	// nothing has been saved yet. Corrupted data is reported as an error.
	Load(ctx context.Context) (domain.Snapshot, bool, error)

	// Close releases any underlying resources.
	Close() error
}

// MetricsCollector defines the interface for collecting operational metrics.
// Implementations should integrate with observability platforms like
// Prometheus or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	// This is useful for tracking events like mutations and failures.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	// This is useful for tracking values like the entry count.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram.
	// This is useful for tracking distributions like entry totals.
	RecordHistogram(metric string, value float64, labels map[string]string)
}

// MutationObserver brackets every state mutation for tracing and metrics.
// PreMutation may return a derived context that PostMutation receives.
type MutationObserver interface {
	PreMutation(ctx context.Context, op string) context.Context
	PostMutation(ctx context.Context, op string, elapsed time.Duration, err error)
}

// Clock supplies the current time. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
