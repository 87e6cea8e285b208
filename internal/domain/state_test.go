package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Immutability(t *testing.T) {
	s0 := NewState(DefaultConfig())
	s1 := s0.WithEntryAdded(entry("1", "g", 1, 2, 3))

	assert.Equal(t, 0, s0.Len(), "original state must not change")
	assert.Equal(t, 1, s1.Len())

	got, ok := s1.Entry("1")
	require.True(t, ok)
	got.Scores[0] = 99

	again, _ := s1.Entry("1")
	assert.Equal(t, 1.0, again.Scores[0], "accessors must return copies")

	cfg := s1.Config()
	cfg.Judges[0].Name = "changed"
	assert.Equal(t, "Judge 1", s1.Config().Judges[0].Name)
}

func TestState_MostRecentPointer(t *testing.T) {
	s := NewState(DefaultConfig()).
		WithEntryAdded(entry("1", "g", 1)).
		WithEntryAdded(entry("2", "g", 2))

	mr, ok := s.MostRecent()
	require.True(t, ok)
	assert.Equal(t, "2", mr.ID)

	t.Run("replacement keeps pointer and reflects new fields", func(t *testing.T) {
		updated := entry("2", "other", 5)
		s2 := s.WithEntryReplaced(updated)
		mr, ok := s2.MostRecent()
		require.True(t, ok)
		assert.Equal(t, "other", mr.Group)
	})

	t.Run("removing another entry keeps pointer", func(t *testing.T) {
		s2 := s.WithEntryRemoved("1")
		assert.Equal(t, "2", s2.MostRecentID())
	})

	t.Run("removing the pointed entry clears pointer", func(t *testing.T) {
		s2 := s.WithEntryRemoved("2")
		_, ok := s2.MostRecent()
		assert.False(t, ok)
		assert.Equal(t, 1, s2.Len())
	})

	t.Run("clearing entries clears pointer", func(t *testing.T) {
		s2 := s.WithoutEntries()
		assert.Equal(t, 0, s2.Len())
		assert.Empty(t, s2.MostRecentID())
	})
}

func TestState_RemoveUnknownIsNoop(t *testing.T) {
	s := NewState(DefaultConfig()).WithEntryAdded(entry("1", "g", 1))
	assert.Equal(t, s.Entries(), s.WithEntryRemoved("nope").Entries())
	assert.Equal(t, s.Entries(), s.WithEntryReplaced(entry("nope", "g", 1)).Entries())
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := NewState(DefaultConfig()).
		WithEntryAdded(entry("1", "Group 1", 80, 90, 70)).
		WithEntryAdded(entry("2", "Group 2", 95, 95, 95))

	data, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Len(t, keys, 3)
	assert.Contains(t, keys, "config")
	assert.Contains(t, keys, "danzas")
	assert.Contains(t, keys, "ultimaDanza")

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	restored := StateFromSnapshot(snap)

	assert.Equal(t, s.Entries(), restored.Entries())
	assert.Equal(t, s.Config(), restored.Config())
	assert.Equal(t, "2", restored.MostRecentID())
}

func TestStateFromSnapshot_DropsDanglingPointer(t *testing.T) {
	ghost := entry("ghost", "g", 1)
	snap := Snapshot{Config: DefaultConfig(), Entries: []Entry{entry("1", "g", 1)}, MostRecent: &ghost}

	s := StateFromSnapshot(snap)
	_, ok := s.MostRecent()
	assert.False(t, ok)
}

func TestSnapshot_NoMostRecent(t *testing.T) {
	data, err := json.Marshal(NewState(DefaultConfig()).Snapshot())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ultimaDanza":null`)
	assert.Contains(t, string(data), `"danzas":[]`)
}
