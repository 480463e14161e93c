// Package config loads the sheetdb CLI configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration. CLI flags override file values.
type Config struct {
	// Workbook is the directory holding the sheet files.
	Workbook string `yaml:"workbook"`
	// Sheet is the default sheet name for commands that take one.
	Sheet string `yaml:"sheet"`
	// SkipUniqueCheck disables the first-column uniqueness validation when
	// opening a table.
	SkipUniqueCheck bool `yaml:"skip_unique_check"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Workbook: "./data",
		LogLevel: "info",
	}
}

// Load reads the configuration from path. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Workbook == "" {
		cfg.Workbook = Default().Workbook
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	return cfg, nil
}
