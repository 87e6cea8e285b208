package domain

import (
	"fmt"
	"slices"
)

// State is an immutable snapshot of everything the scoring engine owns:
// the configuration, the recorded entries in insertion order and the
// pointer to the most recently added entry. It uses copy-on-write
// semantics; every With* method returns a new State and leaves the
// receiver unchanged, and accessors hand out deep copies.
type State struct {
	// config is the configuration in force.
	config Config
	// entries holds the recorded entries in insertion order.
	entries []Entry
	// mostRecentID references the last added entry, or is empty.
	mostRecentID string
}

// NewState creates a State with the given configuration and no entries.
func NewState(cfg Config) State {
	return State{config: cfg.Clone(), entries: []Entry{}}
}

// Config returns a copy of the configuration.
func (s State) Config() Config { return s.config.Clone() }

// Entries returns a copy of the recorded entries in insertion order.
func (s State) Entries() []Entry { return CloneEntries(s.entries) }

// Len returns the number of recorded entries.
func (s State) Len() int { return len(s.entries) }

// Entry looks up an entry by id.
func (s State) Entry(id string) (Entry, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Entry{}, false
	}
	return s.entries[i].Clone(), true
}

// MostRecent returns the entry referenced by the most-recent pointer.
func (s State) MostRecent() (Entry, bool) {
	if s.mostRecentID == "" {
		return Entry{}, false
	}
	return s.Entry(s.mostRecentID)
}

// MostRecentID returns the id held by the most-recent pointer.
func (s State) MostRecentID() string { return s.mostRecentID }

// WithConfig returns a new State carrying cfg.
func (s State) WithConfig(cfg Config) State {
	s.config = cfg.Clone()
	return s
}

// WithEntryAdded appends e and points the most-recent pointer at it.
func (s State) WithEntryAdded(e Entry) State {
	entries := make([]Entry, 0, len(s.entries)+1)
	entries = append(entries, s.entries...)
	s.entries = append(entries, e.Clone())
	s.mostRecentID = e.ID
	return s
}

// WithEntryReplaced swaps the entry sharing e's id in place. The
// most-recent pointer is untouched since it references by id.
func (s State) WithEntryReplaced(e Entry) State {
	i := s.indexOf(e.ID)
	if i < 0 {
		return s
	}
	s.entries = slices.Clone(s.entries)
	s.entries[i] = e.Clone()
	return s
}

// WithEntryRemoved drops the entry with id and clears the most-recent
// pointer if it referenced it.
func (s State) WithEntryRemoved(id string) State {
	i := s.indexOf(id)
	if i < 0 {
		return s
	}
	s.entries = slices.Delete(slices.Clone(s.entries), i, i+1)
	if s.mostRecentID == id {
		s.mostRecentID = ""
	}
	return s
}

// WithoutEntries empties the entry set and the most-recent pointer.
func (s State) WithoutEntries() State {
	s.entries = []Entry{}
	s.mostRecentID = ""
	return s
}

func (s State) indexOf(id string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.ID == id })
}

// String returns a short representation of the State for debugging purposes.
func (s State) String() string {
	return fmt.Sprintf("State{judges=%d entries=%d most_recent=%q}",
		s.config.JudgeCount, len(s.entries), s.mostRecentID)
}

// Snapshot is the allow-listed projection of State that is persisted:
// exactly the configuration, the entries and the most recent entry.
// Notifications are never part of it.
type Snapshot struct {
	Config     Config  `json:"config"`
	Entries    []Entry `json:"danzas"`
	MostRecent *Entry  `json:"ultimaDanza"`
}

// Snapshot projects the State into its persisted form.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{Config: s.Config(), Entries: s.Entries()}
	if e, ok := s.MostRecent(); ok {
		snap.MostRecent = &e
	}
	return snap
}

// StateFromSnapshot rebuilds a State from its persisted form. The
// most-recent pointer is restored by id and dropped when it no longer
// matches a stored entry.
func StateFromSnapshot(snap Snapshot) State {
	s := NewState(snap.Config)
	if snap.Entries != nil {
		s.entries = CloneEntries(snap.Entries)
	}
	if snap.MostRecent != nil && s.indexOf(snap.MostRecent.ID) >= 0 {
		s.mostRecentID = snap.MostRecent.ID
	}
	return s
}
