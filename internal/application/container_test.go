package application

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

func TestContainer_Restore(t *testing.T) {
	ctx := context.Background()
	fallback := domain.DefaultConfig()
	fallback.Scale = domain.ScoreScale{Min: 1, Max: 10}

	t.Run("nothing saved", func(t *testing.T) {
		c := NewContainer(domain.NewState(domain.DefaultConfig()), WithStore(&fakeStore{}))
		st := c.Restore(ctx, fallback)
		assert.Equal(t, fallback, st.Config())
		assert.Equal(t, 0, st.Len())
	})

	t.Run("load error falls back", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		store := &fakeStore{loadErr: ports.NewPersistenceError("file", "load", ports.ErrCorruptedState)}
		c := NewContainer(domain.NewState(domain.DefaultConfig()), WithStore(store), WithLogger(logger))

		st := c.Restore(ctx, fallback)
		assert.Equal(t, fallback, st.Config())
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run("invalid persisted config falls back", func(t *testing.T) {
		broken := domain.DefaultConfig()
		broken.Scale = domain.ScoreScale{Min: 50, Max: 10}
		broken.Judges = nil
		snap := domain.Snapshot{
			Config:  broken,
			Entries: []domain.Entry{{ID: "1", Name: "A", Scores: []float64{1, 2, 3}, Total: 6}},
		}
		logger, hook := test.NewNullLogger()
		c := NewContainer(domain.NewState(domain.DefaultConfig()),
			WithStore(&fakeStore{snap: &snap}), WithLogger(logger))

		st := c.Restore(ctx, fallback)

		assert.Equal(t, fallback, st.Config())
		assert.Equal(t, 0, st.Len())
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		assert.ErrorIs(t, hook.LastEntry().Data[logrus.ErrorKey].(error), domain.ErrInvalidConfiguration)

		repo := NewEntryRepository(c, nil)
		_, err := repo.Add(ctx, "B", "1° A", "g", []float64{5, 5, 5})
		assert.NoError(t, err)
	})

	t.Run("no store", func(t *testing.T) {
		c := NewContainer(domain.NewState(domain.DefaultConfig()))
		st := c.Restore(ctx, fallback)
		assert.Equal(t, fallback, st.Config())
	})

	t.Run("saved state wins", func(t *testing.T) {
		saved := domain.NewState(domain.DefaultConfig()).
			WithEntryAdded(domain.Entry{ID: "1", Name: "A", Scores: []float64{1, 2, 3}, Total: 6})
		snap := saved.Snapshot()
		m := newFakeMetrics()
		c := NewContainer(domain.NewState(domain.DefaultConfig()), WithStore(&fakeStore{snap: &snap}), WithMetrics(m))

		st := c.Restore(ctx, fallback)
		assert.Equal(t, domain.DefaultConfig(), st.Config())
		assert.Equal(t, 1, st.Len())
		assert.Equal(t, "1", st.MostRecentID())
		assert.Equal(t, 1.0, m.gauges["entries"])
	})
}

// TestContainer_PersistFailureKeepsState verifies that a failed write is
// logged and never rolls back the committed state.
func TestContainer_PersistFailureKeepsState(t *testing.T) {
	logger, hook := test.NewNullLogger()
	store := &fakeStore{saveErr: ports.NewPersistenceError("sqlite", "save", errDiskFull)}
	n := &recordingNotifier{}
	c := NewContainer(domain.NewState(domain.DefaultConfig()), WithStore(store), WithLogger(logger))
	repo := NewEntryRepository(c, n)

	st, err := repo.Add(context.Background(), "A", "1° A", "g", []float64{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, 1, st.Len())
	assert.Equal(t, 1, c.State().Len())
	assert.Equal(t, domain.ToastSuccess, n.last().kind)

	var found bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel && e.Message == "failed to persist state" {
			found = true
			assert.Equal(t, "sqlite", e.Data["backend"])
			assert.Equal(t, "add_entry", e.Data["op"])
		}
	}
	assert.True(t, found, "persistence failure must be logged")
}

func TestContainer_PersistsEveryCommittedMutation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, _ = f.entries.Add(ctx, "A", "1° A", "g", []float64{1, 2, 3})
	_, _ = f.entries.Add(ctx, "B", "1° A", "g", []float64{1, 2, 300})
	_, _ = f.configs.AddGroup(ctx, "New")

	assert.Equal(t, 2, f.store.saves)
	require.NotNil(t, f.store.snap)
	assert.Len(t, f.store.snap.Entries, 1)
	assert.Len(t, f.store.snap.Config.Groups, 4)
	require.NotNil(t, f.store.snap.MostRecent)
	assert.Equal(t, "A", f.store.snap.MostRecent.Name)
}

func TestContainer_Observer(t *testing.T) {
	obs := &fakeObserver{}
	f := newFixture(WithObserver(obs))
	ctx := context.Background()

	_, _ = f.configs.SetJudgeCount(ctx, 2)
	_, _ = f.configs.SetScoreScale(ctx, 5, 1)

	assert.Equal(t, []string{"set_judge_count", "set_score_scale"}, obs.pre)
	assert.Equal(t, obs.pre, obs.post)
	require.Len(t, obs.errs, 2)
	assert.NoError(t, obs.errs[0])
	assert.True(t, errors.Is(obs.errs[1], domain.ErrInvalidScale))
}
