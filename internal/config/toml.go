// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Record  RecordConfig  `toml:"record"`
	Analyze AnalyzeConfig `toml:"analyze"`
}

// RecordConfig maps recording-related settings.
type RecordConfig struct {
	Output     *string `toml:"output"`
	Privacy    *bool   `toml:"privacy"`
	FlushEvery *int    `toml:"flush-every"`
}

// AnalyzeConfig maps analysis-related settings.
type AnalyzeConfig struct {
	BucketSize   *float64 `toml:"bucket-size"`
	RageWindow   *float64 `toml:"rage-window"`
	RageDistance *float64 `toml:"rage-distance"`
	JSON         *bool    `toml:"json"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
