// Package config provides XDG path helpers.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultWordListDir returns the default directory for word lists.
func DefaultWordListDir() string {
	return filepath.Join(XDGConfigHome(), "tuidle", "wordlists")
}

// DefaultLexiconPath builds the default lexicon path for a word length.
func DefaultLexiconPath(length int) string {
	return filepath.Join(DefaultWordListDir(), fmt.Sprintf("lexicon-%d.txt", length))
}

// DefaultCommonPath builds the default common-words path for a word length.
func DefaultCommonPath(length int) string {
	return filepath.Join(DefaultWordListDir(), fmt.Sprintf("common-%d.txt", length))
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "tuidle", "tuidle.db")
}

// DefaultWordfreqCacheDir returns the cache directory for wordfreq wheels.
func DefaultWordfreqCacheDir() string {
	return filepath.Join(XDGDataHome(), "tuidle", "wordfreq")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "tuidle", "config.toml")
}

// DefaultEnvPath returns the default dotenv path next to the TOML config.
func DefaultEnvPath() string {
	return filepath.Join(XDGConfigHome(), "tuidle", ".env")
}
