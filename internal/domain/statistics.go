package domain

import (
	"math"
	"slices"
)

// Statistics aggregates entry totals for display and export. It is derived
// on demand and never persisted.
type Statistics struct {
	Count     int     `json:"totalParticipantes"`
	MaxTotal  float64 `json:"puntajeMasAlto"`
	MinTotal  float64 `json:"puntajeMasBajo"`
	MeanTotal float64 `json:"promedioGeneral"`

	// MeanPerJudge has one element per configured judge.
	MeanPerJudge []float64 `json:"promedioPorJurado"`

	// CountByGroup tallies entries by literal group label.
	CountByGroup map[string]int `json:"distribucionPorGrupos"`
}

// Summarize computes Statistics over entries for judgeCount judges. With
// no entries every scalar is zero and MeanPerJudge is judgeCount zeros.
// Entries recorded with fewer scores than judgeCount contribute 0 for the
// missing judges.
func Summarize(entries []Entry, judgeCount int) Statistics {
	judgeCount = max(judgeCount, 0)
	stats := Statistics{
		MeanPerJudge: make([]float64, judgeCount),
		CountByGroup: make(map[string]int),
	}
	if len(entries) == 0 {
		return stats
	}

	n := float64(len(entries))
	stats.Count = len(entries)
	stats.MaxTotal = math.Inf(-1)
	stats.MinTotal = math.Inf(1)

	var sum float64
	for _, e := range entries {
		stats.MaxTotal = max(stats.MaxTotal, e.Total)
		stats.MinTotal = min(stats.MinTotal, e.Total)
		sum += e.Total
		stats.CountByGroup[e.Group]++
		for i := range judgeCount {
			stats.MeanPerJudge[i] += e.Score(i)
		}
	}
	stats.MeanTotal = sum / n
	for i := range stats.MeanPerJudge {
		stats.MeanPerJudge[i] /= n
	}
	return stats
}

// AdvancedStatistics describes the spread of entry totals.
type AdvancedStatistics struct {
	// StdDev is the population standard deviation.
	StdDev float64 `json:"desviacionEstandar"`
	Median float64 `json:"mediana"`
	// Mode is the most frequent total; the earliest recorded wins ties.
	Mode  float64 `json:"moda"`
	Range float64 `json:"rango"`
}

// Advanced computes AdvancedStatistics over entry totals. All fields are
// zero when there are no entries.
func Advanced(entries []Entry) AdvancedStatistics {
	if len(entries) == 0 {
		return AdvancedStatistics{}
	}

	totals := make([]float64, len(entries))
	for i, e := range entries {
		totals[i] = e.Total
	}
	sorted := slices.Clone(totals)
	slices.Sort(sorted)

	var out AdvancedStatistics
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		out.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		out.Median = sorted[mid]
	}

	freq := make(map[float64]int, len(totals))
	best := 0
	for _, t := range totals {
		freq[t]++
		best = max(best, freq[t])
	}
	for _, t := range totals {
		if freq[t] == best {
			out.Mode = t
			break
		}
	}

	var sum float64
	for _, t := range totals {
		sum += t
	}
	mean := sum / float64(len(totals))
	var variance float64
	for _, t := range totals {
		variance += (t - mean) * (t - mean)
	}
	out.StdDev = math.Sqrt(variance / float64(len(totals)))
	out.Range = sorted[len(sorted)-1] - sorted[0]
	return out
}
