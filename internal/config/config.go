package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete simario configuration (v1 schema)
type Config struct {
	Version int    `json:"version" mapstructure:"version"`
	Catalog string `json:"catalog" mapstructure:"catalog"`
	Dataset string `json:"dataset" mapstructure:"dataset"`

	Weighting WeightingConfig `json:"weighting" mapstructure:"weighting"`
	Store     StoreConfig     `json:"store" mapstructure:"store"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// WeightingConfig contains weighting settings
type WeightingConfig struct {
	// Baseline is the weighting tag treated as baseline; results weighted
	// to it carry no scenario suffix
	Baseline string `json:"baseline" mapstructure:"baseline"`
}

// StoreConfig contains compiled-dictionary store configuration
type StoreConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Catalog: "DICTIONARIES.toml",
		Weighting: WeightingConfig{
			Baseline: "weightBase",
		},
		Store: StoreConfig{
			Path: filepath.Join(".simario", "dictionary.db"),
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load reads the configuration from root/.simario/config.yaml, falling
// back to defaults when no config file exists.
func Load(root string) (*Config, error) {
	cfg := DefaultConfig()

	cfgPath := filepath.Join(root, ".simario", "config.yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(cfgPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d, want 1", c.Version)
	}
	if c.Catalog == "" {
		return fmt.Errorf("catalog path must not be empty")
	}
	switch c.Logging.Format {
	case "json", "human":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	return nil
}
