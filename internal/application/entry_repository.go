package application

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

// EntryRepository owns the scored performance entries. Additions are
// validated against the configuration in force; updates are permissive
// and only recompute the total.
type EntryRepository struct {
	c      *Container
	notify ports.Notifier
	clock  ports.Clock

	// lastID is the numeric value of the newest id handed out. Ids are
	// creation times in Unix milliseconds, bumped to stay strictly
	// increasing when two entries land in the same millisecond.
	lastID int64
}

// EntryRepositoryOption configures an EntryRepository.
type EntryRepositoryOption func(*EntryRepository)

// WithClock overrides the clock used for ids and timestamps.
func WithClock(clock ports.Clock) EntryRepositoryOption {
	return func(r *EntryRepository) { r.clock = clock }
}

// NewEntryRepository creates an EntryRepository over c. Ids already present
// in c seed the id sequence. A nil notifier discards notifications.
func NewEntryRepository(c *Container, n ports.Notifier, opts ...EntryRepositoryOption) *EntryRepository {
	if n == nil {
		n = nopNotifier{}
	}
	r := &EntryRepository{c: c, notify: n, clock: ports.SystemClock{}}
	for _, opt := range opts {
		opt(r)
	}
	for _, e := range c.State().Entries() {
		if v, err := strconv.ParseInt(e.ID, 10, 64); err == nil && v > r.lastID {
			r.lastID = v
		}
	}
	return r
}

// Add records a new entry. It is rejected when the number of scores
// differs from the judge count or any score lies outside the scale. On
// success the entry becomes the most recent one.
func (r *EntryRepository) Add(
	ctx context.Context,
	name, gradeSection, group string,
	scores []float64,
) (domain.State, error) {
	var added domain.Entry
	st, err := r.c.apply(ctx, "add_entry", func(st domain.State) (domain.State, error) {
		cfg := st.Config()
		if err := checkScores(cfg, scores); err != nil {
			return st, err
		}

		now := r.clock.Now()
		added = domain.Entry{
			ID:           r.nextID(now),
			Name:         name,
			GradeSection: gradeSection,
			Group:        group,
			Scores:       slices.Clone(scores),
			Total:        domain.SumScores(scores),
			Timestamp:    now.UnixMilli(),
		}
		return st.WithEntryAdded(added), nil
	})
	if err == nil {
		r.c.log.WithFields(logrus.Fields{
			"entry_id": added.ID,
			"group":    added.Group,
			"total":    added.Total,
		}).Debug("entry recorded")
		if r.c.metrics != nil {
			r.c.metrics.RecordHistogram("entry_total", added.Total, nil)
		}
	}
	notifyOutcome(r.notify, err, domain.ToastSuccess, func() string {
		return fmt.Sprintf("Entry %q recorded", added.Name)
	})
	return st, err
}

// Update merges patch into the entry with id. When scores are replaced the
// total is recomputed, but they are not checked against the current scale
// or judge count.
func (r *EntryRepository) Update(ctx context.Context, id string, patch domain.EntryPatch) (domain.State, error) {
	st, err := r.c.apply(ctx, "update_entry", func(st domain.State) (domain.State, error) {
		e, ok := st.Entry(id)
		if !ok {
			return st, domain.NewNotFoundError("entry", id)
		}
		return st.WithEntryReplaced(patch.Apply(e)), nil
	})
	notifyOutcome(r.notify, err, domain.ToastSuccess, func() string {
		return "Entry updated"
	})
	return st, err
}

// Delete removes the entry with id.
func (r *EntryRepository) Delete(ctx context.Context, id string) (domain.State, error) {
	var removed domain.Entry
	st, err := r.c.apply(ctx, "delete_entry", func(st domain.State) (domain.State, error) {
		e, ok := st.Entry(id)
		if !ok {
			return st, domain.NewNotFoundError("entry", id)
		}
		removed = e
		return st.WithEntryRemoved(id), nil
	})
	notifyOutcome(r.notify, err, domain.ToastWarning, func() string {
		return fmt.Sprintf("Entry %q deleted", removed.Name)
	})
	return st, err
}

// ClearAll removes every entry. It always succeeds.
func (r *EntryRepository) ClearAll(ctx context.Context) (domain.State, error) {
	st, err := r.c.apply(ctx, "clear_entries", func(st domain.State) (domain.State, error) {
		return st.WithoutEntries(), nil
	})
	notifyOutcome(r.notify, err, domain.ToastWarning, func() string {
		return "All entries deleted"
	})
	return st, err
}

// MostRecent returns the last added entry, if it still exists.
func (r *EntryRepository) MostRecent() (domain.Entry, bool) { return r.c.State().MostRecent() }

// Get returns the entry with id.
func (r *EntryRepository) Get(id string) (domain.Entry, bool) { return r.c.State().Entry(id) }

// Entries returns every entry in insertion order.
func (r *EntryRepository) Entries() []domain.Entry { return r.c.State().Entries() }

// Groups returns the distinct group labels used by entries, sorted.
func (r *EntryRepository) Groups() []string { return domain.GroupLabels(r.c.State().Entries()) }

// AvailableGradeSections lists catalog grade/sections whose name is not yet
// used by a recorded entry. Names are compared case-insensitively.
func (r *EntryRepository) AvailableGradeSections() []domain.GradeSection {
	st := r.c.State()
	used := make(map[string]struct{}, st.Len())
	for _, e := range st.Entries() {
		used[foldCaser.String(e.GradeSection)] = struct{}{}
	}

	out := make([]domain.GradeSection, 0)
	for _, gs := range st.Config().GradeSections {
		if _, ok := used[foldCaser.String(gs.Name)]; !ok {
			out = append(out, gs)
		}
	}
	return out
}

func (r *EntryRepository) nextID(now time.Time) string {
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return strconv.FormatInt(id, 10)
}

func checkScores(cfg domain.Config, scores []float64) error {
	if len(scores) != cfg.JudgeCount {
		return domain.NewValidationError("entry", domain.ErrScoreCount,
			fmt.Sprintf("expected %d scores, one per judge, got %d", cfg.JudgeCount, len(scores)))
	}
	for _, s := range scores {
		if !cfg.Scale.Contains(s) {
			return domain.NewValidationError("entry", domain.ErrScoreRange,
				fmt.Sprintf("scores must be between %g and %g", cfg.Scale.Min, cfg.Scale.Max))
		}
	}
	return nil
}
