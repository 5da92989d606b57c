// Package main provides the CLI entrypoint for tuidle.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuidle/internal/config"
	"github.com/verte-zerg/tuidle/internal/lexicon"
	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/oracle"
	"github.com/verte-zerg/tuidle/internal/solver"
	"github.com/verte-zerg/tuidle/internal/store"
)

const defaultOracle = "naive"

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version parts can be overridden at build time via -ldflags.
	versionMajor = "0"
	versionMinor = "1"
	versionPatch = "0"
)

var (
	solverLexicon      string
	solverCommon       string
	solverWordLength   int
	solverExport       bool
	solverMaxGuesses   int
	solverOracle       string
	solverOpener       string
	solverPreferCommon bool

	historyDB       string
	historyDisabled bool
	verbose         bool

	logger = zerolog.Nop()
)

type historySettings struct {
	path     string
	disabled bool
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuidle",
		Short:         "Word puzzle solving assistant",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger = newLogger(cmd.ErrOrStderr(), verbose)
		},
		RunE: runAssistCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&solverLexicon, "lexicon", "", "lexicon word list (default: XDG wordlists/lexicon-L.txt)")
	flags.StringVar(&solverCommon, "common", "", "common word list (default: XDG wordlists/common-L.txt or the lexicon)")
	flags.IntVarP(&solverWordLength, "word-length", "l", lexicon.DefaultWordLength, "word length")
	flags.BoolVar(&solverExport, "export-lexicon", false, "rewrite the lexicon file with only the loaded words (drops other lengths, entries with non-letters such as co-op, and duplicates)")
	flags.IntVar(&solverMaxGuesses, "max-guesses", solver.DefaultMaxGuesses, "guess budget for self-play")
	flags.StringVar(&solverOracle, "oracle", defaultOracle, "feedback scoring: naive or standard")
	flags.StringVar(&solverOpener, "opener", "", "fixed first guess for self-play")
	flags.BoolVar(&solverPreferCommon, "prefer-common", true, "recommend common words when possible")
	flags.StringVar(&historyDB, "db", "", "game history database (default: XDG data dir)")
	flags.BoolVar(&historyDisabled, "no-history", false, "do not record games")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newAssistCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordlistCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// resolveSettings merges the TOML file, TUIDLE_* variables and flags, in
// increasing order of precedence.
func resolveSettings(cmd *cobra.Command) (model.RunConfig, historySettings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.RunConfig{}, historySettings{}, fmt.Errorf("failed to load config: %w", err)
	}
	lookup, err := config.EnvLookup(config.DefaultEnvPath())
	if err != nil {
		return model.RunConfig{}, historySettings{}, fmt.Errorf("failed to load environment: %w", err)
	}
	if err := config.ApplyEnv(&fileCfg, lookup); err != nil {
		return model.RunConfig{}, historySettings{}, err
	}

	applyStringConfig(cmd, "lexicon", &solverLexicon, fileCfg.Solver.Lexicon)
	applyStringConfig(cmd, "common", &solverCommon, fileCfg.Solver.Common)
	applyIntConfig(cmd, "word-length", &solverWordLength, fileCfg.Solver.WordLength)
	applyBoolConfig(cmd, "export-lexicon", &solverExport, fileCfg.Solver.ExportLexicon)
	applyIntConfig(cmd, "max-guesses", &solverMaxGuesses, fileCfg.Solver.MaxGuesses)
	applyStringConfig(cmd, "oracle", &solverOracle, fileCfg.Solver.Oracle)
	applyStringConfig(cmd, "opener", &solverOpener, fileCfg.Solver.Opener)
	applyBoolConfig(cmd, "prefer-common", &solverPreferCommon, fileCfg.Solver.PreferCommon)
	applyStringConfig(cmd, "db", &historyDB, fileCfg.History.DB)
	applyBoolConfig(cmd, "no-history", &historyDisabled, fileCfg.History.Disabled)

	run := model.RunConfig{
		LexiconPath:   solverLexicon,
		CommonPath:    solverCommon,
		ExportLexicon: solverExport,
		WordLength:    solverWordLength,
		MaxGuesses:    solverMaxGuesses,
		Oracle:        strings.ToLower(strings.TrimSpace(solverOracle)),
		Opener:        strings.ToLower(strings.TrimSpace(solverOpener)),
		PreferCommon:  solverPreferCommon,
	}
	if err := validateRunConfig(run); err != nil {
		return model.RunConfig{}, historySettings{}, err
	}
	if run.LexiconPath == "" {
		run.LexiconPath = config.DefaultLexiconPath(run.WordLength)
	}
	if run.CommonPath == "" {
		if p := config.DefaultCommonPath(run.WordLength); fileExists(p) {
			run.CommonPath = p
		}
	}

	hist := historySettings{path: historyDB, disabled: historyDisabled}
	if hist.path == "" {
		hist.path = config.DefaultDBPath()
	}
	return run, hist, nil
}

func validateRunConfig(run model.RunConfig) error {
	if run.WordLength <= 0 {
		return fmt.Errorf("--word-length must be > 0")
	}
	if run.MaxGuesses <= 0 {
		return fmt.Errorf("--max-guesses must be > 0")
	}
	if _, err := oracle.ParseMode(run.Oracle); err != nil {
		return fmt.Errorf("--oracle: %w", err)
	}
	if run.Opener != "" && len([]rune(run.Opener)) != run.WordLength {
		return fmt.Errorf("--opener %q must have %d letters", run.Opener, run.WordLength)
	}
	return nil
}

func openFilter(run model.RunConfig) (*lexicon.Filter, error) {
	filter, err := lexicon.Load(lexicon.Options{
		LexiconPath:   run.LexiconPath,
		CommonPath:    run.CommonPath,
		ExportLexicon: run.ExportLexicon,
		WordLength:    run.WordLength,
		Logger:        &logger,
	})
	if err != nil {
		return nil, wordListLoadError(run, err)
	}
	lex, common := filter.Size()
	logger.Debug().
		Str("lexicon", run.LexiconPath).
		Str("common", run.CommonPath).
		Int("lexicon_words", lex).
		Int("common_words", common).
		Msg("word lists loaded")
	return filter, nil
}

// openHistory returns nil when history is disabled.
func openHistory(hist historySettings) (*store.Store, error) {
	if hist.disabled {
		return nil, nil
	}
	st, err := store.Open(hist.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeHistory(st *store.Store) {
	if st == nil {
		return
	}
	if cerr := st.Close(); cerr != nil {
		logger.Warn().Err(cerr).Msg("failed to close db")
	}
}

func wordListLoadError(run model.RunConfig, err error) error {
	if !errors.Is(err, lexicon.ErrLoad) {
		return err
	}
	hint := []string{
		fmt.Sprintf("expected lexicon at: %s", run.LexiconPath),
		fmt.Sprintf("Download: tuidle wordlist --word-length %d", run.WordLength),
	}
	return fmt.Errorf("%w\n%s", err, strings.Join(hint, "\n"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "tuidle %s\n", versionString())
			return err
		},
	}
}

func versionString() string {
	return versionMajorColor.Sprint(versionMajor) + "." +
		versionMinorColor.Sprint(versionMinor) + "." +
		versionPatchColor.Sprint(versionPatch)
}
