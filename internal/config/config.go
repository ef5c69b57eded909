// Package config provides the engine's host tunables, loadable from
// YAML or TOML files. A missing config file is not an error; defaults
// apply.
package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the host loop tunables.
type Config struct {
	Frame FrameConfig `yaml:"frame" toml:"frame"`
	Wake  WakeConfig  `yaml:"wake" toml:"wake"`
	Log   LogConfig   `yaml:"log" toml:"log"`
}

// FrameConfig paces the host loop.
type FrameConfig struct {
	// Rate is the target pass rate in frames per second.
	Rate int `yaml:"rate" toml:"rate"`
}

// WakeConfig tunes the cross-thread wake queue.
type WakeConfig struct {
	// Coalesce merges bare wake pokes so a burst of cross-thread
	// requests triggers a single pass.
	Coalesce bool `yaml:"coalesce" toml:"coalesce"`
}

// LogConfig configures engine diagnostics.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `yaml:"level" toml:"level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Frame: FrameConfig{Rate: 60},
		Wake:  WakeConfig{Coalesce: true},
		Log:   LogConfig{Level: "info"},
	}
}

// Validate clamps out-of-range values to sane defaults.
func (c *Config) Validate() {
	if c.Frame.Rate < 1 {
		c.Frame.Rate = 1
	}
	if c.Frame.Rate > 240 {
		c.Frame.Rate = 240
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// LoadYAML reads configuration from a YAML file, layered over defaults.
// A missing file returns defaults.
func LoadYAML(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}

// LoadTOML reads configuration from a TOML file, layered over defaults.
// A missing file returns defaults.
func LoadTOML(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}
