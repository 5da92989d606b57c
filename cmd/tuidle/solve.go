package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuidle/internal/feedback"
	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/oracle"
	"github.com/verte-zerg/tuidle/internal/secret"
	"github.com/verte-zerg/tuidle/internal/solver"
	"github.com/verte-zerg/tuidle/internal/stats"
	"github.com/verte-zerg/tuidle/internal/store"
	"github.com/verte-zerg/tuidle/internal/tui"
	"github.com/verte-zerg/tuidle/internal/wordlist"
)

const (
	defaultSuggestions = 10
	defaultBenchGames  = 100
	maxPrintedWords    = 200
	fallbackWidth      = 80
)

var (
	correctTile = color.New(color.BgGreen, color.FgHiWhite, color.Bold)
	presentTile = color.New(color.BgYellow, color.FgBlack, color.Bold)
	absentTile  = color.New(color.BgHiBlack, color.FgHiWhite)
)

var (
	suggestTop     int
	suggestLetters int
	playSecret     string
	benchGames     int
	benchAll       bool
	benchJobs      int
	benchSeed      int64
)

func newAssistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assist",
		Short: "Interactive solving assistant (default)",
		Args:  cobra.NoArgs,
		RunE:  runAssistCmd,
	}
}

func runAssistCmd(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return fmt.Errorf("assist needs a terminal; use `tuidle suggest guess:pattern ...` instead")
	}
	run, hist, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	filter, err := openFilter(run)
	if err != nil {
		return err
	}
	st, err := openHistory(hist)
	if err != nil {
		return err
	}
	defer closeHistory(st)

	opts := tui.Options{PreferCommon: run.PreferCommon, Logger: logger}
	if st != nil {
		opts.Recorder = st
	}
	program := tea.NewProgram(tui.NewModel(filter, opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [guess:pattern ...]",
		Short: "Apply feedback and print the best guesses",
		Long: "Apply feedback and print the best guesses.\n\n" +
			"Patterns use one mark per letter: g/!/2 correct, y/?/1 present, b/./-/0/x absent.\n" +
			"Example: tuidle suggest arose:gybbb",
		RunE: runSuggestCmd,
	}
	cmd.Flags().IntVarP(&suggestTop, "top", "n", defaultSuggestions, "number of suggestions")
	cmd.Flags().IntVar(&suggestLetters, "letters", 0, "also print the N most frequent letters")
	return cmd
}

func runSuggestCmd(cmd *cobra.Command, args []string) error {
	run, _, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	filter, err := openFilter(run)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	for _, arg := range args {
		guess, pattern, err := parseTurnArg(arg)
		if err != nil {
			return err
		}
		reports, err := filter.ApplyFeedback(guess, pattern)
		if err != nil {
			return fmt.Errorf("failed to apply %q: %w", arg, err)
		}
		for _, r := range reports {
			if r.Skipped {
				logger.Debug().Str("letter", string(r.Letter)).Msg("confirmed letter kept")
			}
		}
		lex, common := filter.Remaining()
		if _, err := fmt.Fprintf(out, "%s  %d / %d\n", renderTiles(guess, pattern), lex, common); err != nil {
			return err
		}
	}

	lex, common := filter.Remaining()
	if _, err := fmt.Fprintf(out, "\nRemaining: %d lexicon, %d common\n\n", lex, common); err != nil {
		return err
	}
	ranking, err := filter.Score()
	if err != nil {
		return fmt.Errorf("no candidates left; check the feedback: %w", err)
	}
	if err := stats.RenderRanking(out, ranking, suggestTop); err != nil {
		return err
	}
	best, err := filter.Recommend(run.PreferCommon)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "\nNext guess: %s\n", best); err != nil {
		return err
	}
	if suggestLetters > 0 {
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
		if err := stats.RenderLetterTable(out, filter.LetterFrequencies(), suggestLetters); err != nil {
			return err
		}
	}
	if lex <= maxPrintedWords {
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
		return printColumns(out, filter.Candidates(), terminalWidth())
	}
	return nil
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Let the solver play one game",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
	cmd.Flags().StringVar(&playSecret, "secret", "", "secret word (default: random common word)")
	return cmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	run, hist, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	filter, err := openFilter(run)
	if err != nil {
		return err
	}
	mode, err := oracle.ParseMode(run.Oracle)
	if err != nil {
		return err
	}

	word := wordlist.Normalize(playSecret)
	if word == "" {
		word = secret.New().Pick(filter.CommonCandidates())
	}
	o, err := oracle.NewWithLength(word, run.WordLength, mode)
	if err != nil {
		return err
	}

	rec, err := solver.Play(cmd.Context(), filter, o, solver.Options{
		MaxGuesses:   run.MaxGuesses,
		Opener:       run.Opener,
		PreferCommon: run.PreferCommon,
	})
	rec.Source = model.SourcePlay
	out := cmd.OutOrStdout()
	for _, t := range rec.Turns {
		pattern, perr := feedback.Parse(t.Pattern)
		if perr != nil {
			return perr
		}
		if _, werr := fmt.Fprintf(out, "%s  %d / %d\n", renderTiles(t.Guess, pattern), t.RemainingLexicon, t.RemainingCommon); werr != nil {
			return werr
		}
	}
	if err != nil {
		return fmt.Errorf("solver stopped: %w", err)
	}
	result := fmt.Sprintf("Solved %q in %d/%d", rec.Secret, rec.Attempts, run.MaxGuesses)
	if !rec.Won {
		result = fmt.Sprintf("Failed to find %q in %d guesses", rec.Secret, run.MaxGuesses)
	}
	if _, err := fmt.Fprintln(out, result); err != nil {
		return err
	}
	return saveGames(cmd.Context(), hist, []model.GameRecord{rec})
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Play many games in parallel and summarize",
		Args:  cobra.NoArgs,
		RunE:  runBenchCmd,
	}
	cmd.Flags().IntVar(&benchGames, "games", defaultBenchGames, "number of random secrets")
	cmd.Flags().BoolVar(&benchAll, "all", false, "play every common word")
	cmd.Flags().IntVar(&benchJobs, "jobs", 0, "parallel games (default: GOMAXPROCS)")
	cmd.Flags().Int64Var(&benchSeed, "seed", 0, "random seed for secret selection (0: time based)")
	return cmd
}

func runBenchCmd(cmd *cobra.Command, _ []string) error {
	run, hist, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	filter, err := openFilter(run)
	if err != nil {
		return err
	}
	mode, err := oracle.ParseMode(run.Oracle)
	if err != nil {
		return err
	}

	secrets := filter.CommonCandidates()
	if !benchAll {
		if benchGames <= 0 {
			return fmt.Errorf("--games must be > 0")
		}
		picker := secret.New()
		if benchSeed != 0 {
			picker = secret.NewSeeded(benchSeed)
		}
		secrets = picker.Sample(secrets, benchGames)
	}

	bar := progressbar.Default(int64(len(secrets)), "bench")
	recs, err := solver.Bench(cmd.Context(), filter, secrets, solver.BenchOptions{
		Options: solver.Options{
			MaxGuesses:   run.MaxGuesses,
			Opener:       run.Opener,
			PreferCommon: run.PreferCommon,
		},
		Mode: mode,
		Jobs: benchJobs,
	}, func() {
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	if err != nil {
		return fmt.Errorf("bench failed: %w", err)
	}

	summary := stats.Summarize(stats.FromRecords(recs))
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, summary); err != nil {
		return err
	}
	if err := stats.RenderDistribution(out, summary); err != nil {
		return err
	}
	return saveGames(cmd.Context(), hist, recs)
}

func saveGames(ctx context.Context, hist historySettings, recs []model.GameRecord) error {
	st, err := openHistory(hist)
	if err != nil || st == nil {
		return err
	}
	defer closeHistory(st)
	for _, rec := range recs {
		if _, err := st.InsertGame(ctx, rec); err != nil {
			return fmt.Errorf("failed to save game: %w", err)
		}
	}
	logger.Debug().Int("games", len(recs)).Str("db", hist.path).Msg("history updated")
	return nil
}

var _ tui.Recorder = (*store.Store)(nil)

// parseTurnArg reads "guess:pattern" or "guess=pattern".
func parseTurnArg(arg string) (string, feedback.Pattern, error) {
	guess, raw, ok := strings.Cut(arg, ":")
	if !ok {
		guess, raw, ok = strings.Cut(arg, "=")
	}
	if !ok || guess == "" || raw == "" {
		return "", nil, fmt.Errorf("invalid turn %q (want guess:pattern, e.g. arose:gybbb)", arg)
	}
	pattern, err := feedback.Parse(raw)
	if err != nil {
		return "", nil, fmt.Errorf("invalid turn %q: %w", arg, err)
	}
	return wordlist.Normalize(guess), pattern, nil
}

func renderTiles(guess string, pattern feedback.Pattern) string {
	var b strings.Builder
	for i, r := range []rune(strings.ToUpper(guess)) {
		tile := absentTile
		if i < len(pattern) {
			switch pattern[i] {
			case feedback.Correct:
				tile = correctTile
			case feedback.Present:
				tile = presentTile
			}
		}
		b.WriteString(tile.Sprintf(" %c ", r))
	}
	return b.String()
}

func printColumns(w io.Writer, words []string, width int) error {
	if len(words) == 0 {
		return nil
	}
	cell := 0
	for _, word := range words {
		cell = max(cell, runewidth.StringWidth(word))
	}
	cell += 2
	perLine := max(1, width/cell)
	for i := 0; i < len(words); i += perLine {
		end := min(i+perLine, len(words))
		var b strings.Builder
		for _, word := range words[i:end] {
			b.WriteString(runewidth.FillRight(word, cell))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}
