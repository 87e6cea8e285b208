package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ahrav/go-scoreboard/internal/domain"
)

// TimeLayout formats the registration time column.
const TimeLayout = "15:04:05"

// Table is a header plus string rows, ready for any tabular writer.
type Table struct {
	Header []string
	Rows   [][]string
}

// RankingTable lays out a ranking with the columns Rank, Name,
// GradeSection, Group, Total and RegisteredAt, followed by one "Judge X"
// column per configured judge, where X is the judge's name or its 1-based
// position. Entries recorded with fewer judges show 0 for the missing
// columns. Times are rendered in loc, or UTC when loc is nil.
func RankingTable(ranking []domain.RankingItem, cfg domain.Config, loc *time.Location) Table {
	if loc == nil {
		loc = time.UTC
	}

	header := []string{"Rank", "Name", "GradeSection", "Group", "Total", "RegisteredAt"}
	for i, j := range cfg.Judges {
		header = append(header, judgeColumn(j, i))
	}

	rows := make([][]string, 0, len(ranking))
	for _, item := range ranking {
		e := item.Entry
		row := []string{
			strconv.Itoa(item.Rank),
			e.Name,
			e.GradeSection,
			e.Group,
			formatNumber(e.Total),
			e.CreatedAt().In(loc).Format(TimeLayout),
		}
		for i := range cfg.Judges {
			row = append(row, formatNumber(e.Score(i)))
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

// StatisticsTable lays out the statistics sheet as Statistic/Value rows.
// Group rows follow a blank separator, sorted by label.
func StatisticsTable(stats domain.Statistics, cfg domain.Config) Table {
	t := Table{Header: []string{"Statistic", "Value"}}
	if stats.Count == 0 {
		t.Rows = [][]string{{"No data", "-"}}
		return t
	}

	t.Rows = [][]string{
		{"Participants", strconv.Itoa(stats.Count)},
		{"Highest total", formatNumber(stats.MaxTotal)},
		{"Lowest total", formatNumber(stats.MinTotal)},
		{"Mean total", fmt.Sprintf("%.2f", stats.MeanTotal)},
		{"Judges", strconv.Itoa(cfg.JudgeCount)},
		{"Score scale", cfg.Scale.String()},
	}
	for i, mean := range stats.MeanPerJudge {
		label := domain.DefaultJudgeName(i)
		if i < len(cfg.Judges) {
			label = cfg.Judges[i].Label(i)
		}
		t.Rows = append(t.Rows, []string{"Mean " + label, fmt.Sprintf("%.2f", mean)})
	}

	t.Rows = append(t.Rows, []string{"", ""})
	for _, group := range sortedKeys(stats.CountByGroup) {
		t.Rows = append(t.Rows, []string{"Participants " + group, strconv.Itoa(stats.CountByGroup[group])})
	}
	return t
}

// WriteCSV writes t as CSV, header first.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

func judgeColumn(j domain.Judge, index int) string {
	if j.Name != "" {
		return "Judge " + j.Name
	}
	return "Judge " + strconv.Itoa(index+1)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
