package application

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-scoreboard/internal/domain"
)

// LoadPreset decodes a YAML configuration preset and validates it. Unknown
// fields are rejected so that typos are not silently ignored. When the
// preset omits judge_count it is taken from the judge list, and judges
// without an id receive their positional id.
//
// Example:
//
//	judges:
//	  - name: Ana
//	  - name: Beto
//	scale: {min: 0, max: 20}
//	grade_sections:
//	  - {id: "1a", name: "1° A"}
//	groups:
//	  - {id: "g1", name: "Primary"}
func LoadPreset(r io.Reader) (domain.Config, error) {
	var cfg domain.Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Config{}, fmt.Errorf("failed to decode preset: empty document")
		}
		return domain.Config{}, fmt.Errorf("failed to decode preset: %w", err)
	}

	if cfg.JudgeCount == 0 {
		cfg.JudgeCount = len(cfg.Judges)
	}
	for i := range cfg.Judges {
		if cfg.Judges[i].ID == "" {
			cfg.Judges[i].ID = strconv.Itoa(i + 1)
		}
	}
	if cfg.NamedDances == nil {
		cfg.NamedDances = []domain.NamedDance{}
	}

	if err := ValidateConfig(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// LoadPresetFile reads a preset from path.
func LoadPresetFile(path string) (domain.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to open preset: %w", err)
	}
	defer f.Close()
	return LoadPreset(f)
}

// InitialConfig returns the configuration used when no persisted state
// exists: the preset at path when set, otherwise the factory default.
func InitialConfig(path string) (domain.Config, error) {
	if path == "" {
		return domain.DefaultConfig(), nil
	}
	return LoadPresetFile(path)
}
