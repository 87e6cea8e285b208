// Package application wires the scoring domain to its ports: the state
// container, the configuration store, the entry repository and the
// read-side scoreboard.
package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/logging"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

// Container owns the authoritative State. It is created by the application
// root and injected into every component that reads or mutates state.
// Every committed mutation is mirrored to the StateStore; a failed write
// is logged and never rolls back the in-memory state.
//
// A Container is not safe for concurrent use: a single actor mutates it.
type Container struct {
	state    domain.State
	store    ports.StateStore
	observer ports.MutationObserver
	metrics  ports.MetricsCollector
	log      logrus.FieldLogger
}

// ContainerOption configures a Container.
type ContainerOption func(*Container)

// WithStore sets the persistence backend.
func WithStore(store ports.StateStore) ContainerOption {
	return func(c *Container) { c.store = store }
}

// WithObserver sets the mutation observer used for tracing.
func WithObserver(o ports.MutationObserver) ContainerOption {
	return func(c *Container) { c.observer = o }
}

// WithMetrics sets the collector that receives state gauges.
func WithMetrics(m ports.MetricsCollector) ContainerOption {
	return func(c *Container) { c.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) ContainerOption {
	return func(c *Container) { c.log = log }
}

// NewContainer creates a Container holding initial.
func NewContainer(initial domain.State, opts ...ContainerOption) *Container {
	c := &Container{state: initial, log: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore replaces the held state with the persisted snapshot. When nothing
// was saved, the store is missing, the data cannot be read or the saved
// configuration is invalid, the state falls back to fallback with no entries
// and the caller never sees an error.
func (c *Container) Restore(ctx context.Context, fallback domain.Config) domain.State {
	c.state = domain.NewState(fallback)
	if c.store == nil {
		return c.state
	}

	snap, ok, err := c.store.Load(ctx)
	switch {
	case err != nil:
		c.log.WithError(err).Warn("failed to load persisted state, using defaults")
	case !ok:
		c.log.Info("no persisted state found, using defaults")
	default:
		if err := ValidateConfig(snap.Config); err != nil {
			c.log.WithError(err).Warn("persisted configuration is invalid, using defaults")
			break
		}
		c.state = domain.StateFromSnapshot(snap)
		c.log.WithFields(logrus.Fields{
			"entries":     c.state.Len(),
			"judge_count": snap.Config.JudgeCount,
		}).Info("restored persisted state")
	}
	c.recordGauges()
	return c.state
}

// State returns the current state.
func (c *Container) State() domain.State { return c.state }

// apply runs fn against the current state. On success the returned state is
// committed and persisted; on failure nothing changes. Either way the
// current state is returned along with fn's error.
func (c *Container) apply(
	ctx context.Context,
	op string,
	fn func(domain.State) (domain.State, error),
) (domain.State, error) {
	start := time.Now()
	if c.observer != nil {
		ctx = c.observer.PreMutation(ctx, op)
	}

	next, err := fn(c.state)
	if err == nil {
		c.state = next
		c.persist(ctx, op)
		c.recordGauges()
	}

	if c.observer != nil {
		c.observer.PostMutation(ctx, op, time.Since(start), err)
	}
	return c.state, err
}

func (c *Container) persist(ctx context.Context, op string) {
	if c.store == nil {
		return
	}
	if err := c.store.Save(ctx, c.state.Snapshot()); err != nil {
		entry := c.log.WithError(err).WithField("op", op)
		var perr *ports.PersistenceError
		if errors.As(err, &perr) {
			entry = entry.WithField("backend", perr.Backend)
		}
		entry.Error("failed to persist state")
	}
}

func (c *Container) recordGauges() {
	if c.metrics == nil {
		return
	}
	cfg := c.state.Config()
	c.metrics.RecordGauge("entries", float64(c.state.Len()), nil)
	c.metrics.RecordGauge("judges", float64(cfg.JudgeCount), nil)
	c.metrics.RecordGauge("grade_sections", float64(len(cfg.GradeSections)), nil)
	c.metrics.RecordGauge("groups", float64(len(cfg.Groups)), nil)
}
