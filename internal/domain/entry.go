package domain

import (
	"slices"
	"time"
)

// Entry is one scored performance ("danza"). Grade/section and group are
// stored as labels, not catalog ids, so renaming a catalog item never
// rewrites recorded entries.
type Entry struct {
	// ID is unique and ordered by creation time.
	ID string `json:"id"`

	Name         string `json:"nombre"`
	GradeSection string `json:"gradoSeccion"`
	Group        string `json:"grupo"`

	// Scores holds one score per judge, in judge order, as configured when
	// the entry was created.
	Scores []float64 `json:"puntajes"`

	// Total is always the sum of Scores.
	Total float64 `json:"total"`

	// Timestamp is the creation time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// CreatedAt returns the creation time of the entry.
func (e Entry) CreatedAt() time.Time { return time.UnixMilli(e.Timestamp) }

// Score returns the score given by the judge at index, or 0 when the entry
// was recorded with fewer judges.
func (e Entry) Score(index int) float64 {
	if index < 0 || index >= len(e.Scores) {
		return 0
	}
	return e.Scores[index]
}

// Clone returns a copy of the entry that does not share its scores slice.
func (e Entry) Clone() Entry {
	e.Scores = slices.Clone(e.Scores)
	return e
}

// EntryPatch lists the fields to replace on an existing entry. Nil fields
// are left untouched.
type EntryPatch struct {
	Name         *string
	GradeSection *string
	Group        *string
	Scores       []float64
}

// Apply merges the patch into e and recomputes the total when the scores
// were replaced.
func (p EntryPatch) Apply(e Entry) Entry {
	out := e.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.GradeSection != nil {
		out.GradeSection = *p.GradeSection
	}
	if p.Group != nil {
		out.Group = *p.Group
	}
	if p.Scores != nil {
		out.Scores = slices.Clone(p.Scores)
		out.Total = SumScores(out.Scores)
	}
	return out
}

// SumScores returns the sum of scores.
func SumScores(scores []float64) float64 {
	var total float64
	for _, s := range scores {
		total += s
	}
	return total
}

// CloneEntries deep-copies a slice of entries.
func CloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
