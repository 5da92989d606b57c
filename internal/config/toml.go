// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Solver  SolverConfig  `toml:"solver"`
	History HistoryConfig `toml:"history"`
}

// SolverConfig maps solver-related settings.
type SolverConfig struct {
	Lexicon       *string `toml:"lexicon"`
	Common        *string `toml:"common"`
	WordLength    *int    `toml:"word-length"`
	ExportLexicon *bool   `toml:"export-lexicon"`
	MaxGuesses    *int    `toml:"max-guesses"`
	Oracle        *string `toml:"oracle"`
	Opener        *string `toml:"opener"`
	PreferCommon  *bool   `toml:"prefer-common"`
}

// HistoryConfig maps game history settings.
type HistoryConfig struct {
	DB       *string `toml:"db"`
	Disabled *bool   `toml:"disabled"`
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
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template is written by `tuidle config` when no file exists yet.
const Template = `# tuidle configuration. CLI flags and TUIDLE_* environment variables win.

[solver]
# lexicon = "/path/to/lexicon.txt"
# common = "/path/to/common.txt"
# word-length = 5
# export-lexicon = false  # rewrites the lexicon file, dropping entries that were not loaded
# max-guesses = 6
# oracle = "naive"      # or "standard"
# opener = "arose"
# prefer-common = true

[history]
# db = "/path/to/tuidle.db"
# disabled = false
`
