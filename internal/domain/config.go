// Package domain contains pure, dependency-free domain models and types
// for the scoring engine.
package domain

import (
	"fmt"
	"slices"
	"strconv"
)

// Judge is one scoring participant. Judges are identified positionally by
// the strings "1".."n" and contribute exactly one score per entry.
type Judge struct {
	// ID is the positional identifier of the judge.
	ID string `json:"id" yaml:"id" validate:"required"`

	// Name is the display name of the judge. It may be empty, in which
	// case exports fall back to the placeholder name.
	Name string `json:"nombre,omitempty" yaml:"name"`
}

// Label returns the name used to head the judge's column in exports.
func (j Judge) Label(index int) string {
	if j.Name != "" {
		return j.Name
	}
	return DefaultJudgeName(index)
}

// ScoreScale holds the inclusive bounds every individual score must satisfy.
type ScoreScale struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max" validate:"gtfield=Min"`
}

// Contains reports whether score lies within the inclusive bounds.
// NaN is never contained.
func (s ScoreScale) Contains(score float64) bool {
	return score >= s.Min && score <= s.Max
}

// String renders the scale as "min - max".
func (s ScoreScale) String() string {
	return fmt.Sprintf("%g - %g", s.Min, s.Max)
}

// GradeSection is a cohort label such as "1° A".
type GradeSection struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Name string `json:"nombre" yaml:"name" validate:"required"`
}

// Group is a competition category label used for group-scoped rankings.
type Group struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Name string `json:"nombre" yaml:"name" validate:"required"`
}

// NamedDance is a pre-registered dance name scoped to a grade/section and
// linked to a group by catalog id.
type NamedDance struct {
	ID             string `json:"id" yaml:"id" validate:"required"`
	Name           string `json:"nombre" yaml:"name" validate:"required"`
	GradeSectionID string `json:"gradoSeccionId" yaml:"grade_section_id" validate:"required"`
	GroupID        string `json:"grupoId" yaml:"group_id" validate:"required"`
}

// Config is the process-wide configuration: judges, score scale and the
// grade/section, group and named-dance catalogs.
type Config struct {
	JudgeCount    int            `json:"cantidadJurados" yaml:"judge_count" validate:"min=1,max=100"`
	Judges        []Judge        `json:"jurados" yaml:"judges" validate:"dive"`
	Scale         ScoreScale     `json:"escalaPuntaje" yaml:"scale"`
	GradeSections []GradeSection `json:"gradosSecciones" yaml:"grade_sections" validate:"dive"`
	Groups        []Group        `json:"grupos" yaml:"groups" validate:"dive"`
	NamedDances   []NamedDance   `json:"danzasRegistradas" yaml:"named_dances" validate:"dive"`
}

// MaxJudgeCount is the largest judge panel a configuration may hold.
const MaxJudgeCount = 100

// DefaultJudgeName is the placeholder name given to the judge at index.
func DefaultJudgeName(index int) string {
	return fmt.Sprintf("Judge %d", index+1)
}

// DefaultJudges returns n judges with positional ids and placeholder names.
func DefaultJudges(n int) []Judge {
	judges := make([]Judge, n)
	for i := range judges {
		judges[i] = Judge{ID: strconv.Itoa(i + 1), Name: DefaultJudgeName(i)}
	}
	return judges
}

// DefaultConfig returns the factory configuration: three judges, a 0-100
// scale, six grade/sections, three groups and no named dances.
func DefaultConfig() Config {
	return Config{
		JudgeCount: 3,
		Judges:     DefaultJudges(3),
		Scale:      ScoreScale{Min: 0, Max: 100},
		GradeSections: []GradeSection{
			{ID: "1", Name: "1° A"},
			{ID: "2", Name: "1° B"},
			{ID: "3", Name: "2° A"},
			{ID: "4", Name: "2° B"},
			{ID: "5", Name: "3° A"},
			{ID: "6", Name: "3° B"},
		},
		Groups: []Group{
			{ID: "1", Name: "Group 1"},
			{ID: "2", Name: "Group 2"},
			{ID: "3", Name: "Group 3"},
		},
		NamedDances: []NamedDance{},
	}
}

// Clone returns a copy of the config that shares no slices with c.
func (c Config) Clone() Config {
	out := c
	out.Judges = slices.Clone(c.Judges)
	out.GradeSections = slices.Clone(c.GradeSections)
	out.Groups = slices.Clone(c.Groups)
	out.NamedDances = slices.Clone(c.NamedDances)
	return out
}

// GradeSection returns the grade/section with the given id.
func (c Config) GradeSection(id string) (GradeSection, bool) {
	i := slices.IndexFunc(c.GradeSections, func(gs GradeSection) bool { return gs.ID == id })
	if i < 0 {
		return GradeSection{}, false
	}
	return c.GradeSections[i], true
}

// Group returns the group with the given id.
func (c Config) Group(id string) (Group, bool) {
	i := slices.IndexFunc(c.Groups, func(g Group) bool { return g.ID == id })
	if i < 0 {
		return Group{}, false
	}
	return c.Groups[i], true
}

// NamedDancesForGradeSection filters the named-dance catalog down to the
// dances registered for the given grade/section id.
func (c Config) NamedDancesForGradeSection(gradeSectionID string) []NamedDance {
	out := make([]NamedDance, 0)
	for _, d := range c.NamedDances {
		if d.GradeSectionID == gradeSectionID {
			out = append(out, d)
		}
	}
	return out
}
