package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/stats"
	"github.com/verte-zerg/tuidle/internal/statsui"
	"github.com/verte-zerg/tuidle/internal/store"
)

const (
	defaultTrendWindow = 10
	defaultHardest     = 5
)

var (
	statsSource  string
	statsLength  int
	statsSince   string
	statsLast    int
	statsHardest int
	statsWindow  int
	statsTUI     bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show game history stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSource, "source", "", "source filter (play, bench, assist)")
	cmd.Flags().IntVar(&statsLength, "length", 0, "word length filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N games")
	cmd.Flags().IntVar(&statsHardest, "hardest", defaultHardest, "number of hardest secrets to list")
	cmd.Flags().IntVar(&statsWindow, "trend-window", defaultTrendWindow, "moving average window")
	cmd.Flags().BoolVar(&statsTUI, "tui", false, "browse the history interactively")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildStatsConfig()
	if err != nil {
		return err
	}
	_, hist, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(hist.path)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeHistory(st)

	if statsTUI {
		if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
			return fmt.Errorf("--tui needs a terminal")
		}
		program := tea.NewProgram(statsui.NewModel(st, cfg, statsWindow, statsHardest), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(cmd.Context(), st, cfg, statsHardest)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return report.Render(cmd.OutOrStdout(), statsWindow)
}

func buildStatsConfig() (model.StatsConfig, error) {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	switch statsSource {
	case "", model.SourcePlay, model.SourceBench, model.SourceAssist:
	default:
		return model.StatsConfig{}, fmt.Errorf("invalid --source %q", statsSource)
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	return model.StatsConfig{
		Source:     statsSource,
		WordLength: statsLength,
		Since:      sinceTime,
		Last:       statsLast,
	}, nil
}
