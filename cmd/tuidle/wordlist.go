package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuidle/internal/config"
	"github.com/verte-zerg/tuidle/internal/wordfreq"
	"github.com/verte-zerg/tuidle/internal/wordlist"
)

const (
	defaultLang         = "en"
	defaultWordlistSize = 15000
	defaultCommonSize   = 2500
)

var (
	wordlistLang   string
	wordlistSize   int
	wordlistCommon int
	wordlistForce  bool
)

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Build lexicon and common word lists from wordfreq",
		Args:  cobra.NoArgs,
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistLang, "lang", defaultLang, "language code")
	cmd.Flags().IntVar(&wordlistSize, "size", defaultWordlistSize, "number of lexicon words")
	cmd.Flags().IntVar(&wordlistCommon, "common-size", defaultCommonSize, "number of common words (most frequent part of the lexicon)")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing files")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, _ []string) error {
	run, _, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	if wordlistCommon < 0 || wordlistCommon > wordlistSize {
		return fmt.Errorf("--common-size must be between 0 and --size")
	}
	lexiconPath := run.LexiconPath
	commonPath := run.CommonPath
	if commonPath == "" {
		commonPath = config.DefaultCommonPath(run.WordLength)
	}
	if !wordlistForce {
		for _, path := range []string{lexiconPath, commonPath} {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("word list already exists: %s (use --force to overwrite)", path)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat word list: %w", err)
			}
		}
	}

	logger.Info().Msg("fetching wordfreq metadata")
	wheel, err := wordfreq.NewClient().DownloadLatestWheel(cmd.Context(), config.DefaultWordfreqCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	logger.Info().Str("wheel", wheel.Filename).Bool("cached", wheel.Cached).Msg("wordfreq wheel ready")

	words, err := wordfreq.ExtractWords(wheel.Path, wordfreq.ExtractOptions{
		Lang:   wordlistLang,
		Length: run.WordLength,
		Limit:  wordlistSize,
	})
	if err != nil {
		langs, lerr := wordfreq.ListLanguages(wheel.Path)
		if lerr == nil {
			logger.Info().Strs("available", langs).Msg("wordfreq languages")
		}
		return fmt.Errorf("failed to extract word list: %w", err)
	}
	if len(words) < wordlistSize {
		logger.Warn().Int("requested", wordlistSize).Int("found", len(words)).Msg("fewer words than requested")
	}

	if err := wordlist.WriteWords(lexiconPath, words); err != nil {
		return fmt.Errorf("failed to write %s: %w", lexiconPath, err)
	}
	logger.Info().Str("path", lexiconPath).Int("words", len(words)).Msg("wrote lexicon")

	common := words[:min(wordlistCommon, len(words))]
	if len(common) > 0 {
		if err := wordlist.WriteWords(commonPath, common); err != nil {
			return fmt.Errorf("failed to write %s: %w", commonPath, err)
		}
		logger.Info().Str("path", commonPath).Int("words", len(common)).Msg("wrote common list")
	}

	if err := wordfreq.WriteAttribution(wheel.Path, filepath.Dir(lexiconPath)); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	return nil
}
