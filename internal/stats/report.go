package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Games   []model.GameAggregate
	Summary Summary
	Hardest []SecretResult
}

// BuildReport loads and prepares data for stats rendering. The guess
// distribution comes from the store so it covers the same filter as the games.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig, hardest int) (Report, error) {
	games, err := st.ListGames(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	summary := Summarize(games)
	if cfg.Last <= 0 {
		dist, err := st.GuessDistribution(ctx, cfg)
		if err != nil {
			return Report{}, err
		}
		summary.Distribution = dist
	}
	return Report{
		Games:   games,
		Summary: summary,
		Hardest: HardestSecrets(games, hardest),
	}, nil
}

// Render writes the full report.
func (r Report) Render(w io.Writer, trendWindow int) error {
	if err := RenderSummary(w, r.Summary); err != nil {
		return err
	}
	if r.Summary.Games == 0 {
		return nil
	}
	if err := RenderDistribution(w, r.Summary); err != nil {
		return err
	}
	if err := RenderTrend(w, r.Games, trendWindow); err != nil {
		return err
	}
	if len(r.Hardest) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Hardest Secrets"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(r.Hardest))
	for _, h := range r.Hardest {
		rows = append(rows, []string{
			h.Secret,
			fmt.Sprintf("%d", h.Games),
			fmt.Sprintf("%d", h.Losses),
			fmt.Sprintf("%.2f", float64(h.Attempts)/float64(h.Games)),
		})
	}
	return writeLines(w, formatTable([]string{"Secret", "Games", "Losses", "Avg"}, rows, map[int]bool{1: true, 2: true, 3: true}))
}
