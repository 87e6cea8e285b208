package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ahrav/go-scoreboard/internal/domain"
)

// Settings holds the application settings read by viper from an optional
// YAML file and SCOREBOARD_* environment variables.
type Settings struct {
	Storage StorageSettings `mapstructure:"storage"`
	Notify  NotifySettings  `mapstructure:"notify"`
	Log     LogSettings     `mapstructure:"log"`
	Metrics MetricsSettings `mapstructure:"metrics"`
	Preset  PresetSettings  `mapstructure:"preset"`
}

// StorageSettings selects the persistence backend.
type StorageSettings struct {
	// Backend is one of file, sqlite or memory.
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite memory"`
	// Path is the JSON file or SQLite database location.
	Path string `mapstructure:"path" validate:"required_unless=Backend memory"`
	// Key names the persisted record.
	Key string `mapstructure:"key" validate:"required"`
}

// NotifySettings configures the notification bus.
type NotifySettings struct {
	DefaultTTL time.Duration `mapstructure:"default_ttl" validate:"gt=0"`
}

// LogSettings configures logrus.
type LogSettings struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// MetricsSettings toggles Prometheus metrics.
type MetricsSettings struct {
	Enabled bool `mapstructure:"enabled"`
}

// PresetSettings points at the YAML preset used on first run.
type PresetSettings struct {
	Path string `mapstructure:"path"`
}

// SetDefaults registers the default value of every setting.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", "scoreboard.json")
	v.SetDefault("storage.key", "scoring-storage")
	v.SetDefault("notify.default_ttl", domain.DefaultToastTTL)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("preset.path", "")
}

// NewViper creates a viper instance with defaults and environment binding.
// When configFile is not empty it is read and must exist.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("SCOREBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

// LoadSettings unmarshals and validates the settings held by v.
func LoadSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return Settings{}, fmt.Errorf("settings validation failed: %w", err)
	}
	return s, nil
}
