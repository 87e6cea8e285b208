package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil, 3)

	assert.Equal(t, 0, got.Count)
	assert.Zero(t, got.MaxTotal)
	assert.Zero(t, got.MinTotal)
	assert.Zero(t, got.MeanTotal)
	assert.Equal(t, []float64{0, 0, 0}, got.MeanPerJudge)
	assert.NotNil(t, got.CountByGroup)
	assert.Empty(t, got.CountByGroup)
}

func TestSummarize(t *testing.T) {
	a := entry("A", "Group 1", 80, 90, 70)
	b := entry("B", "Group 2", 95, 95, 95)

	got := Summarize([]Entry{a, b}, 3)

	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 285.0, got.MaxTotal)
	assert.Equal(t, 240.0, got.MinTotal)
	assert.Equal(t, 262.5, got.MeanTotal)
	assert.Equal(t, []float64{87.5, 92.5, 82.5}, got.MeanPerJudge)
	assert.Equal(t, map[string]int{"Group 1": 1, "Group 2": 1}, got.CountByGroup)
}

func TestSummarize_ShorterScoresContributeZero(t *testing.T) {
	// Recorded with three judges, summarized after growing to four.
	a := entry("A", "g", 10, 20, 30)
	b := entry("B", "g", 10, 20, 30, 40)

	got := Summarize([]Entry{a, b}, 4)

	assert.Equal(t, []float64{10, 20, 30, 20}, got.MeanPerJudge)
	assert.Equal(t, map[string]int{"g": 2}, got.CountByGroup)
}

func TestSummarize_NegativeJudgeCount(t *testing.T) {
	got := Summarize(nil, -1)
	assert.Empty(t, got.MeanPerJudge)
}

func TestAdvanced(t *testing.T) {
	tests := []struct {
		name    string
		totals  []float64
		want    AdvancedStatistics
		wantStd float64
	}{
		{
			name:   "no entries",
			totals: nil,
			want:   AdvancedStatistics{},
		},
		{
			name:    "odd count",
			totals:  []float64{30, 10, 20},
			want:    AdvancedStatistics{Median: 20, Mode: 30, Range: 20},
			wantStd: math.Sqrt(200.0 / 3.0),
		},
		{
			name:    "even count with repeated total",
			totals:  []float64{10, 20, 20, 40},
			want:    AdvancedStatistics{Median: 20, Mode: 20, Range: 30},
			wantStd: math.Sqrt(118.75),
		},
		{
			name:    "mode tie keeps earliest",
			totals:  []float64{5, 7, 7, 5},
			want:    AdvancedStatistics{Median: 6, Mode: 5, Range: 2},
			wantStd: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := make([]Entry, len(tt.totals))
			for i, total := range tt.totals {
				entries[i] = Entry{Total: total}
			}

			got := Advanced(entries)
			assert.Equal(t, tt.want.Median, got.Median)
			assert.Equal(t, tt.want.Mode, got.Mode)
			assert.Equal(t, tt.want.Range, got.Range)
			assert.InDelta(t, tt.wantStd, got.StdDev, 1e-9)
		})
	}
}
