// Package export turns the scoring state into the formats consumed outside
// the engine: the JSON backup and the tabular ranking used by spreadsheet
// and CSV generators.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ahrav/go-scoreboard/internal/domain"
)

// Backup is the JSON backup document.
type Backup struct {
	Config            domain.Config  `json:"config"`
	Entries           []domain.Entry `json:"danzas"`
	ExportedAt        time.Time      `json:"fechaExportacion"`
	TotalParticipants int            `json:"totalParticipantes"`
}

// NewBackup builds a backup of cfg and entries stamped with exportedAt.
func NewBackup(cfg domain.Config, entries []domain.Entry, exportedAt time.Time) Backup {
	if entries == nil {
		entries = []domain.Entry{}
	}
	return Backup{
		Config:            cfg,
		Entries:           entries,
		ExportedAt:        exportedAt.UTC(),
		TotalParticipants: len(entries),
	}
}

// WriteBackup encodes b as indented JSON.
func WriteBackup(w io.Writer, b Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Imported is the payload accepted from a backup file.
type Imported struct {
	Config  domain.Config
	Entries []domain.Entry
}

// ReadBackup decodes a backup and checks that both the config and danzas
// keys are present. It only validates and returns the payload; applying
// it to the live configuration and entries is left to the caller.
func ReadBackup(r io.Reader) (Imported, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Imported{}, fmt.Errorf("%w: failed to read file: %v", domain.ErrInvalidBackup, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return Imported{}, fmt.Errorf("%w: file is not a JSON object: %v", domain.ErrInvalidBackup, err)
	}
	for _, key := range []string{"config", "danzas"} {
		raw, ok := doc[key]
		if !ok || isNull(raw) {
			return Imported{}, fmt.Errorf("%w: missing %q", domain.ErrInvalidBackup, key)
		}
	}

	var out Imported
	if err := json.Unmarshal(doc["config"], &out.Config); err != nil {
		return Imported{}, fmt.Errorf("%w: malformed config: %v", domain.ErrInvalidBackup, err)
	}
	if err := json.Unmarshal(doc["danzas"], &out.Entries); err != nil {
		return Imported{}, fmt.Errorf("%w: malformed danzas: %v", domain.ErrInvalidBackup, err)
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
