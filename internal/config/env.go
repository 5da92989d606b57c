package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TUIDLE_"

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a lookup that prefers the process environment and falls
// back to the dotenv file at path. Empty process values count as unset. A
// missing file is not an error.
func EnvLookup(path string) (LookupFunc, error) {
	dotenv := map[string]string{}
	if path != "" {
		values, err := godotenv.Read(path)
		switch {
		case err == nil:
			dotenv = values
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// ApplyEnv overlays TUIDLE_* variables onto cfg.
func ApplyEnv(cfg *FileConfig, lookup LookupFunc) error {
	strs := map[string]**string{
		"LEXICON": &cfg.Solver.Lexicon,
		"COMMON":  &cfg.Solver.Common,
		"ORACLE":  &cfg.Solver.Oracle,
		"OPENER":  &cfg.Solver.Opener,
		"DB":      &cfg.History.DB,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = &v
		}
	}

	ints := map[string]**int{
		"WORD_LENGTH": &cfg.Solver.WordLength,
		"MAX_GUESSES": &cfg.Solver.MaxGuesses,
	}
	for name, dst := range ints {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = &n
	}

	bools := map[string]**bool{
		"EXPORT_LEXICON": &cfg.Solver.ExportLexicon,
		"PREFER_COMMON":  &cfg.Solver.PreferCommon,
		"NO_HISTORY":     &cfg.History.Disabled,
	}
	for name, dst := range bools {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = &b
	}
	return nil
}
