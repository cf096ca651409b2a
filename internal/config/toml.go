// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Enumerated countdown durations in seconds.
const (
	DurationShort   = 15
	DurationDefault = 30
)

// ValidDuration reports whether secs is one of the supported countdown
// durations.
func ValidDuration(secs int) bool {
	return secs == DurationShort || secs == DurationDefault
}

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Play PlayConfig `toml:"play"`
}

// PlayConfig maps typing-test settings.
type PlayConfig struct {
	Duration *int    `toml:"duration"`
	Race     *bool   `toml:"race"`
	Lang     *string `toml:"lang"`
	Name     *string `toml:"name"`
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
