package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-scoreboard/internal/domain"
)

func TestRankingTable(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Judges[0].Name = "Ana"
	cfg.Judges[1].Name = "Beto"
	cfg.Judges[2].Name = ""

	table := RankingTable(domain.OverallRanking(sampleEntries()), cfg, nil)

	assert.Equal(t,
		[]string{"Rank", "Name", "GradeSection", "Group", "Total", "RegisteredAt", "Judge Ana", "Judge Beto", "Judge 3"},
		table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "Huayno", "1° B", "Group 2", "285", "01:00:00", "95", "95", "95"}, table.Rows[0])
	assert.Equal(t, []string{"2", "Marinera", "1° A", "Group 1", "240", "00:00:00", "80", "90", "70"}, table.Rows[1])
}

func TestRankingTable_MoreJudgesThanScores(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.JudgeCount = 4
	cfg.Judges = domain.DefaultJudges(4)
	entries := []domain.Entry{{ID: "1", Name: "A", Scores: []float64{1.5, 2, 3}, Total: 6.5}}

	table := RankingTable(domain.OverallRanking(entries), cfg, time.FixedZone("X", 2*3600))

	assert.Len(t, table.Header, 10)
	assert.Equal(t, "Judge Judge 4", table.Header[9])
	assert.Equal(t, []string{"1", "A", "", "", "6.5", "02:00:00", "1.5", "2", "3", "0"}, table.Rows[0])
}

func TestStatisticsTable(t *testing.T) {
	cfg := domain.DefaultConfig()

	t.Run("empty", func(t *testing.T) {
		table := StatisticsTable(domain.Summarize(nil, 3), cfg)
		assert.Equal(t, [][]string{{"No data", "-"}}, table.Rows)
	})

	t.Run("populated", func(t *testing.T) {
		table := StatisticsTable(domain.Summarize(sampleEntries(), 3), cfg)
		assert.Equal(t, []string{"Statistic", "Value"}, table.Header)
		assert.Equal(t, [][]string{
			{"Participants", "2"},
			{"Highest total", "285"},
			{"Lowest total", "240"},
			{"Mean total", "262.50"},
			{"Judges", "3"},
			{"Score scale", "0 - 100"},
			{"Mean Judge 1", "87.50"},
			{"Mean Judge 2", "92.50"},
			{"Mean Judge 3", "82.50"},
			{"", ""},
			{"Participants Group 1", "1"},
			{"Participants Group 2", "1"},
		}, table.Rows)
	})
}

func TestWriteCSV(t *testing.T) {
	table := Table{
		Header: []string{"Name", "Total"},
		Rows:   [][]string{{"Marinera, norteña", "240"}, {`Say "hi"`, "1"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))
	assert.Equal(t, "Name,Total\n\"Marinera, norteña\",240\n\"Say \"\"hi\"\"\",1\n", buf.String())
}
