// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game GameConfig `toml:"game"`
	Text TextConfig `toml:"text"`
	Log  LogConfig  `toml:"log"`
}

// GameConfig maps scoring and round settings.
type GameConfig struct {
	Mode                *string `toml:"mode"`
	TargetScore         *int    `toml:"target-score"`
	MistakePenalty      *string `toml:"mistake-penalty"`
	InitialResetCounter *int    `toml:"initial-reset-counter"`
	Countdown           *int    `toml:"countdown"`
	Catalog             *string `toml:"catalog"`
	History             *bool   `toml:"history"`
}

// TextConfig maps text source settings.
type TextConfig struct {
	Source    *string  `toml:"source"`
	Sentences *string  `toml:"sentences"`
	WordList  *string  `toml:"wordlist"`
	Count     *int     `toml:"count"`
	CapsPct   *float64 `toml:"caps"`
	PunctPct  *float64 `toml:"punct"`
	PunctSet  *string  `toml:"punct-set"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
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
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
