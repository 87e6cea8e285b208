package domain

import (
	"cmp"
	"slices"
)

// RankingItem pairs an entry with its 1-based position in a ranking.
type RankingItem struct {
	Entry Entry `json:"danza"`
	Rank  int   `json:"posicion"`
}

// Medal returns the podium medal for ranks one to three and an empty
// string for every other rank.
func (r RankingItem) Medal() string {
	switch r.Rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return ""
	}
}

// OverallRanking orders entries by total, highest first. The sort is
// stable: equal totals keep their insertion order, so repeated calls
// never swap them. Ties are not collapsed; each entry gets its own rank.
func OverallRanking(entries []Entry) []RankingItem {
	sorted := CloneEntries(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return cmp.Compare(b.Total, a.Total)
	})

	items := make([]RankingItem, len(sorted))
	for i, e := range sorted {
		items[i] = RankingItem{Entry: e, Rank: i + 1}
	}
	return items
}

// RankingForGroup ranks only the entries whose group label equals group.
func RankingForGroup(entries []Entry, group string) []RankingItem {
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Group == group {
			filtered = append(filtered, e)
		}
	}
	return OverallRanking(filtered)
}

// RankingByAllGroups partitions entries by literal group label and ranks
// each partition. Groups without entries never appear in the result.
func RankingByAllGroups(entries []Entry) map[string][]RankingItem {
	out := make(map[string][]RankingItem)
	for _, group := range GroupLabels(entries) {
		out[group] = RankingForGroup(entries, group)
	}
	return out
}

// GroupLabels returns the distinct group labels used by entries, sorted.
func GroupLabels(entries []Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	labels := make([]string, 0)
	for _, e := range entries {
		if _, ok := seen[e.Group]; ok {
			continue
		}
		seen[e.Group] = struct{}{}
		labels = append(labels, e.Group)
	}
	slices.Sort(labels)
	return labels
}
