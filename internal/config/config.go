// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	// Default target formats applied when no format flag is given
	Targets []string `yaml:"targets,omitempty"`

	OutputDir string `yaml:"output_dir,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	Minify    bool   `yaml:"minify,omitempty"`
	Force     bool   `yaml:"force,omitempty"`
}

// Default returns the configuration written when no file exists yet.
func Default() *Config {
	return &Config{
		Targets:  []string{},
		LogLevel: "info",
	}
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadOrCreate loads the configuration, writing a default file first when
// the path does not exist.
func LoadOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, err
		}

		log.Info().Str("path", path).Msg("Default configuration created")
		return cfg, nil
	}

	return Load(path)
}
