// Package config loads viewer settings from a config file and STRAND_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/strandtui/strand/internal/log"
)

// Telemetry configures trace export.
type Telemetry struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"` // stdout or otlp
	Endpoint string `mapstructure:"endpoint"` // otlp collector address
	// TracePath receives stdout-exported spans; empty means stderr.
	TracePath string `mapstructure:"trace_path"`
}

// Config holds all viewer settings.
type Config struct {
	Debug     bool          `mapstructure:"debug"`
	PageSize  int           `mapstructure:"page_size"`
	Debounce  time.Duration `mapstructure:"debounce"`
	Theme     string        `mapstructure:"theme"` // dark, light, or auto
	Telemetry Telemetry     `mapstructure:"telemetry"`
}

// Load reads configuration, lowest precedence first: built-in defaults, then
// the config file (explicit path, or strand.yaml in the working directory or
// ~/.config/strand/), then STRAND_* environment variables. A missing config
// file is not an error unless a path was given explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("debug", false)
	v.SetDefault("page_size", 20)
	v.SetDefault("debounce", 250*time.Millisecond)
	v.SetDefault("theme", "auto")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.exporter", "stdout")
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.trace_path", "")

	v.SetEnvPrefix("STRAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("strand")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/strand")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Debug(log.CatConfig, "config loaded",
		"page_size", cfg.PageSize, "debounce", cfg.Debounce, "theme", cfg.Theme,
		"telemetry", cfg.Telemetry.Enabled)
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}
	switch c.Theme {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("theme must be dark, light, or auto, got %q", c.Theme)
	}
	switch c.Telemetry.Exporter {
	case "stdout", "otlp":
	default:
		return fmt.Errorf("telemetry.exporter must be stdout or otlp, got %q", c.Telemetry.Exporter)
	}
	return nil
}
