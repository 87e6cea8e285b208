package application

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"

	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

// foldCaser is a package-level Unicode case folder shared by label
// comparisons.
var foldCaser = cases.Fold()

// defaultSuggestionThreshold is the minimum similarity for a named dance to
// be suggested.
const defaultSuggestionThreshold = 0.6

// ConfigStore owns the configuration operations: judges, score scale and
// the grade/section, group and named-dance catalogs. Each mutation returns
// the resulting State and posts one notification describing the outcome.
// Failed mutations leave the state unchanged.
type ConfigStore struct {
	c      *Container
	notify ports.Notifier
	newID  func() string
}

// ConfigStoreOption configures a ConfigStore.
type ConfigStoreOption func(*ConfigStore)

// WithCatalogIDs overrides the generator used for new catalog ids.
func WithCatalogIDs(fn func() string) ConfigStoreOption {
	return func(s *ConfigStore) { s.newID = fn }
}

// NewConfigStore creates a ConfigStore over c. A nil notifier discards
// notifications.
func NewConfigStore(c *Container, n ports.Notifier, opts ...ConfigStoreOption) *ConfigStore {
	if n == nil {
		n = nopNotifier{}
	}
	s := &ConfigStore{c: c, notify: n, newID: newCatalogID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the configuration in force.
func (s *ConfigStore) Config() domain.Config { return s.c.State().Config() }

// SetConfig replaces the whole configuration after validating it.
func (s *ConfigStore) SetConfig(ctx context.Context, cfg domain.Config) (domain.State, error) {
	st, err := s.c.apply(ctx, "set_config", func(st domain.State) (domain.State, error) {
		if err := ValidateConfig(cfg); err != nil {
			return st, err
		}
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastSuccess, func() string {
		return "Configuration updated"
	})
	return st, err
}

// SetJudgeCount resizes the judge list to exactly n judges. Judges kept by
// index retain their names; new slots get placeholder names. Recorded
// entries are not touched.
func (s *ConfigStore) SetJudgeCount(ctx context.Context, n int) (domain.State, error) {
	st, err := s.c.apply(ctx, "set_judge_count", func(st domain.State) (domain.State, error) {
		if err := validate.Var(n, fmt.Sprintf("min=1,max=%d", domain.MaxJudgeCount)); err != nil {
			return st, domain.NewValidationError("judges", domain.ErrInvalidJudgeCount,
				fmt.Sprintf("judge count must be between 1 and %d, got %d", domain.MaxJudgeCount, n))
		}
		cfg := st.Config()
		judges := make([]domain.Judge, n)
		for i := range judges {
			name := domain.DefaultJudgeName(i)
			if i < len(cfg.Judges) && cfg.Judges[i].Name != "" {
				name = cfg.Judges[i].Name
			}
			judges[i] = domain.Judge{ID: strconv.Itoa(i + 1), Name: name}
		}
		cfg.JudgeCount = n
		cfg.Judges = judges
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastSuccess, func() string {
		return fmt.Sprintf("Judge count updated to %d", n)
	})
	return st, err
}

// RenameJudge changes the name of the judge with the given positional id.
// An unknown id is a silent no-op: nothing is posted and the returned
// *domain.NotFoundError is informational.
func (s *ConfigStore) RenameJudge(ctx context.Context, id, name string) (domain.State, error) {
	cur := s.c.State().Config()
	i := slices.IndexFunc(cur.Judges, func(j domain.Judge) bool { return j.ID == id })
	if i < 0 {
		s.c.log.WithField("judge_id", id).Debug("rename of unknown judge ignored")
		return s.c.State(), domain.NewNotFoundError("judge", id)
	}

	st, err := s.c.apply(ctx, "rename_judge", func(st domain.State) (domain.State, error) {
		cfg := st.Config()
		cfg.Judges[i].Name = name
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastSuccess, func() string {
		return fmt.Sprintf("Judge %s renamed", id)
	})
	return st, err
}

// SetScoreScale replaces the score bounds. min must be strictly lower
// than max.
func (s *ConfigStore) SetScoreScale(ctx context.Context, minScore, maxScore float64) (domain.State, error) {
	st, err := s.c.apply(ctx, "set_score_scale", func(st domain.State) (domain.State, error) {
		if !(minScore < maxScore) {
			return st, domain.NewValidationError("score scale", domain.ErrInvalidScale,
				fmt.Sprintf("score scale minimum (%g) must be lower than maximum (%g)", minScore, maxScore))
		}
		cfg := st.Config()
		cfg.Scale = domain.ScoreScale{Min: minScore, Max: maxScore}
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastSuccess, func() string {
		return fmt.Sprintf("Score scale updated: %g - %g", minScore, maxScore)
	})
	return st, err
}

// AddGradeSection appends a grade/section to the catalog.
func (s *ConfigStore) AddGradeSection(ctx context.Context, name string) (domain.State, error) {
	var added domain.GradeSection
	st, err := s.c.apply(ctx, "add_grade_section", func(st domain.State) (domain.State, error) {
		clean, err := normalizeName("grade/section", name)
		if err != nil {
			return st, err
		}
		cfg := st.Config()
		added = domain.GradeSection{ID: s.newID(), Name: clean}
		cfg.GradeSections = append(cfg.GradeSections, added)
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastSuccess, func() string {
		return fmt.Sprintf("Grade/section %q added", added.Name)
	})
	return st, err
}

// UpdateGradeSection renames a grade/section. Entries keep the label they
// were recorded with.
func (s *ConfigStore) UpdateGradeSection(ctx context.Context, id, name string) (domain.State, error) {
	st, err := s.c.apply(ctx, "update_grade_section", func(st domain.State) (domain.State, error) {
		cfg := st.Config()
		i := slices.IndexFunc(cfg.GradeSections, func(gs domain.GradeSection) bool { return gs.ID == id })
		if i < 0 {
			return st, domain.NewNotFoundError("grade/section", id)
		}
		clean, err := normalizeName("grade/section", name)
		if err != nil {
			return st, err
		}
		cfg.GradeSections[i].Name = clean
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastSuccess, func() string {
		return "Grade/section updated"
	})
	return st, err
}

// DeleteGradeSection removes a grade/section and every named dance
// registered for it.
func (s *ConfigStore) DeleteGradeSection(ctx context.Context, id string) (domain.State, error) {
	var removed domain.GradeSection
	st, err := s.c.apply(ctx, "delete_grade_section", func(st domain.State) (domain.State, error) {
		cfg := st.Config()
		gs, ok := cfg.GradeSection(id)
		if !ok {
			return st, domain.NewNotFoundError("grade/section", id)
		}
		removed = gs
		cfg.GradeSections = slices.DeleteFunc(cfg.GradeSections, func(gs domain.GradeSection) bool { return gs.ID == id })
		cfg.NamedDances = slices.DeleteFunc(cfg.NamedDances, func(d domain.NamedDance) bool { return d.GradeSectionID == id })
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastWarning, func() string {
		return fmt.Sprintf("Grade/section %q deleted", removed.Name)
	})
	return st, err
}

// AddGroup appends a group to the catalog.
func (s *ConfigStore) AddGroup(ctx context.Context, name string) (domain.State, error) {
	var added domain.Group
	st, err := s.c.apply(ctx, "add_group", func(st domain.State) (domain.State, error) {
		clean, err := normalizeName("group", name)
		if err != nil {
			return st, err
		}
		cfg := st.Config()
		added = domain.Group{ID: s.newID(), Name: clean}
		cfg.Groups = append(cfg.Groups, added)
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastSuccess, func() string {
		return fmt.Sprintf("Group %q added", added.Name)
	})
	return st, err
}

// UpdateGroup renames a group. Entries keep the label they were recorded
// with.
func (s *ConfigStore) UpdateGroup(ctx context.Context, id, name string) (domain.State, error) {
	st, err := s.c.apply(ctx, "update_group", func(st domain.State) (domain.State, error) {
		cfg := st.Config()
		i := slices.IndexFunc(cfg.Groups, func(g domain.Group) bool { return g.ID == id })
		if i < 0 {
			return st, domain.NewNotFoundError("group", id)
		}
		clean, err := normalizeName("group", name)
		if err != nil {
			return st, err
		}
		cfg.Groups[i].Name = clean
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastSuccess, func() string {
		return "Group updated"
	})
	return st, err
}

// DeleteGroup removes a group and every named dance linked to it.
func (s *ConfigStore) DeleteGroup(ctx context.Context, id string) (domain.State, error) {
	var removed domain.Group
	st, err := s.c.apply(ctx, "delete_group", func(st domain.State) (domain.State, error) {
		cfg := st.Config()
		g, ok := cfg.Group(id)
		if !ok {
			return st, domain.NewNotFoundError("group", id)
		}
		removed = g
		cfg.Groups = slices.DeleteFunc(cfg.Groups, func(g domain.Group) bool { return g.ID == id })
		cfg.NamedDances = slices.DeleteFunc(cfg.NamedDances, func(d domain.NamedDance) bool { return d.GroupID == id })
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastWarning, func() string {
		return fmt.Sprintf("Group %q deleted", removed.Name)
	})
	return st, err
}

// AddNamedDance pre-registers a dance name for a grade/section and group.
// Both ids must exist in their catalogs.
func (s *ConfigStore) AddNamedDance(ctx context.Context, name, gradeSectionID, groupID string) (domain.State, error) {
	var added domain.NamedDance
	st, err := s.c.apply(ctx, "add_named_dance", func(st domain.State) (domain.State, error) {
		cfg := st.Config()
		clean, err := checkNamedDance(cfg, name, gradeSectionID, groupID)
		if err != nil {
			return st, err
		}
		added = domain.NamedDance{ID: s.newID(), Name: clean, GradeSectionID: gradeSectionID, GroupID: groupID}
		cfg.NamedDances = append(cfg.NamedDances, added)
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastSuccess, func() string {
		return fmt.Sprintf("Dance %q registered", added.Name)
	})
	return st, err
}

// UpdateNamedDance replaces the name and links of a registered dance.
func (s *ConfigStore) UpdateNamedDance(ctx context.Context, id, name, gradeSectionID, groupID string) (domain.State, error) {
	st, err := s.c.apply(ctx, "update_named_dance", func(st domain.State) (domain.State, error) {
		cfg := st.Config()
		i := slices.IndexFunc(cfg.NamedDances, func(d domain.NamedDance) bool { return d.ID == id })
		if i < 0 {
			return st, domain.NewNotFoundError("named dance", id)
		}
		clean, err := checkNamedDance(cfg, name, gradeSectionID, groupID)
		if err != nil {
			return st, err
		}
		cfg.NamedDances[i] = domain.NamedDance{ID: id, Name: clean, GradeSectionID: gradeSectionID, GroupID: groupID}
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastSuccess, func() string {
		return "Registered dance updated"
	})
	return st, err
}

// DeleteNamedDance removes a registered dance.
func (s *ConfigStore) DeleteNamedDance(ctx context.Context, id string) (domain.State, error) {
	var removed domain.NamedDance
	st, err := s.c.apply(ctx, "delete_named_dance", func(st domain.State) (domain.State, error) {
		cfg := st.Config()
		i := slices.IndexFunc(cfg.NamedDances, func(d domain.NamedDance) bool { return d.ID == id })
		if i < 0 {
			return st, domain.NewNotFoundError("named dance", id)
		}
		removed = cfg.NamedDances[i]
		cfg.NamedDances = slices.Delete(cfg.NamedDances, i, i+1)
		return st.WithConfig(cfg), nil
	})
	notifyOutcome(s.notify, err, domain.ToastWarning, func() string {
		return fmt.Sprintf("Registered dance %q deleted", removed.Name)
	})
	return st, err
}

// NamedDancesForGradeSection lists the dances registered for a grade/section.
func (s *ConfigStore) NamedDancesForGradeSection(gradeSectionID string) []domain.NamedDance {
	return s.Config().NamedDancesForGradeSection(gradeSectionID)
}

// SuggestNamedDances returns registered dances whose name resembles query,
// most similar first, at most limit results (all when limit <= 0).
// Similarity is one minus the case-folded Levenshtein distance over the
// longer name length.
func (s *ConfigStore) SuggestNamedDances(query string, limit int) []domain.NamedDance {
	q := foldCaser.String(query)
	if q == "" {
		return []domain.NamedDance{}
	}

	type scored struct {
		dance domain.NamedDance
		sim   float64
	}
	var matches []scored
	for _, d := range s.Config().NamedDances {
		if sim := similarity(q, foldCaser.String(d.Name)); sim >= defaultSuggestionThreshold {
			matches = append(matches, scored{dance: d, sim: sim})
		}
	}
	slices.SortStableFunc(matches, func(a, b scored) int {
		switch {
		case a.sim > b.sim:
			return -1
		case a.sim < b.sim:
			return 1
		default:
			return 0
		}
	})

	out := make([]domain.NamedDance, 0, len(matches))
	for _, m := range matches {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.dance)
	}
	return out
}

// Reset restores the factory configuration and clears every entry.
func (s *ConfigStore) Reset(ctx context.Context) (domain.State, error) {
	st, err := s.c.apply(ctx, "reset", func(domain.State) (domain.State, error) {
		return domain.NewState(domain.DefaultConfig()), nil
	})
	s.c.log.WithFields(logrus.Fields{"op": "reset"}).Info("state reset to factory defaults")
	notifyOutcome(s.notify, err, domain.ToastInfo, func() string {
		return "All data reset to factory defaults"
	})
	return st, err
}

func checkNamedDance(cfg domain.Config, name, gradeSectionID, groupID string) (string, error) {
	clean, err := normalizeName("named dance", name)
	if err != nil {
		return "", err
	}
	if _, ok := cfg.GradeSection(gradeSectionID); !ok {
		return "", domain.NewNotFoundError("grade/section", gradeSectionID)
	}
	if _, ok := cfg.Group(groupID); !ok {
		return "", domain.NewNotFoundError("group", groupID)
	}
	return clean, nil
}

// similarity normalizes the Levenshtein distance between a and b to [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}
