package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-scoreboard/internal/domain"
)

func sampleEntries() []domain.Entry {
	return []domain.Entry{
		{ID: "1", Name: "Marinera", GradeSection: "1° A", Group: "Group 1", Scores: []float64{80, 90, 70}, Total: 240, Timestamp: 0},
		{ID: "2", Name: "Huayno", GradeSection: "1° B", Group: "Group 2", Scores: []float64{95, 95, 95}, Total: 285, Timestamp: 3_600_000},
	}
}

func TestBackup_RoundTrip(t *testing.T) {
	exportedAt := time.Date(2024, 5, 1, 9, 30, 0, 0, time.FixedZone("PET", -5*3600))
	b := NewBackup(domain.DefaultConfig(), sampleEntries(), exportedAt)

	assert.Equal(t, 2, b.TotalParticipants)
	assert.Equal(t, time.UTC, b.ExportedAt.Location())

	var buf bytes.Buffer
	require.NoError(t, WriteBackup(&buf, b))

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &keys))
	assert.ElementsMatch(t, []string{"config", "danzas", "fechaExportacion", "totalParticipantes"}, mapKeys(keys))
	assert.JSONEq(t, `"2024-05-01T14:30:00Z"`, string(keys["fechaExportacion"]))

	imported, err := ReadBackup(&buf)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), imported.Config)
	assert.Equal(t, sampleEntries(), imported.Entries)
}

func TestNewBackup_NoEntries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBackup(&buf, NewBackup(domain.DefaultConfig(), nil, time.Now())))
	assert.Contains(t, buf.String(), `"danzas": []`)
	assert.Contains(t, buf.String(), `"totalParticipantes": 0`)
}

func TestReadBackup_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "not json", input: "hello", wantMsg: "not a JSON object"},
		{name: "array", input: "[]", wantMsg: "not a JSON object"},
		{name: "missing config", input: `{"danzas": []}`, wantMsg: `missing "config"`},
		{name: "missing danzas", input: `{"config": {}}`, wantMsg: `missing "danzas"`},
		{name: "null danzas", input: `{"config": {}, "danzas": null}`, wantMsg: `missing "danzas"`},
		{name: "malformed danzas", input: `{"config": {}, "danzas": {}}`, wantMsg: "malformed danzas"},
		{name: "malformed config", input: `{"config": [], "danzas": []}`, wantMsg: "malformed config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBackup(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidBackup)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func mapKeys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
