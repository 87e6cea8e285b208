package application

import "github.com/ahrav/go-scoreboard/internal/domain"

// Scoreboard is the read side of the engine. Rankings and statistics are
// recomputed from the current state on every call and never cached.
type Scoreboard struct {
	c *Container
}

// NewScoreboard creates a Scoreboard over c.
func NewScoreboard(c *Container) *Scoreboard { return &Scoreboard{c: c} }

// OverallRanking ranks every entry by total, highest first.
func (s *Scoreboard) OverallRanking() []domain.RankingItem {
	return domain.OverallRanking(s.c.State().Entries())
}

// RankingForGroup ranks the entries recorded under group.
func (s *Scoreboard) RankingForGroup(group string) []domain.RankingItem {
	return domain.RankingForGroup(s.c.State().Entries(), group)
}

// RankingByAllGroups ranks every group that has at least one entry.
func (s *Scoreboard) RankingByAllGroups() map[string][]domain.RankingItem {
	return domain.RankingByAllGroups(s.c.State().Entries())
}

// Statistics summarizes the entries against the current judge count.
func (s *Scoreboard) Statistics() domain.Statistics {
	st := s.c.State()
	return domain.Summarize(st.Entries(), st.Config().JudgeCount)
}

// AdvancedStatistics describes the spread of entry totals.
func (s *Scoreboard) AdvancedStatistics() domain.AdvancedStatistics {
	return domain.Advanced(s.c.State().Entries())
}
