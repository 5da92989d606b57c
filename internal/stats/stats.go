// Package stats contains game statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/tuidle/internal/lexicon"
	"github.com/verte-zerg/tuidle/internal/model"
)

const (
	sparkChars           = " .:-=+*#%@"
	distributionBarWidth = 40
	barChar              = "#"
)

// Summary aggregates a list of games.
type Summary struct {
	Games         int
	Wins          int
	WinRate       float64
	MeanAttempts  float64
	BestAttempts  int
	CurrentStreak int
	MaxStreak     int
	AvgDurationMs float64
	// Distribution counts won games by attempts.
	Distribution map[int]int
}

// Summarize computes a summary for games given in chronological order.
// Mean and best attempts only consider won games.
func Summarize(games []model.GameAggregate) Summary {
	s := Summary{Games: len(games), Distribution: map[int]int{}}
	if len(games) == 0 {
		return s
	}
	var attempts int
	var duration int64
	streak := 0
	for _, g := range games {
		duration += g.DurationMs
		if !g.Won {
			streak = 0
			continue
		}
		s.Wins++
		attempts += g.Attempts
		s.Distribution[g.Attempts]++
		if s.BestAttempts == 0 || g.Attempts < s.BestAttempts {
			s.BestAttempts = g.Attempts
		}
		streak++
		if streak > s.MaxStreak {
			s.MaxStreak = streak
		}
	}
	s.CurrentStreak = streak
	s.WinRate = float64(s.Wins) / float64(s.Games)
	if s.Wins > 0 {
		s.MeanAttempts = float64(attempts) / float64(s.Wins)
	}
	s.AvgDurationMs = float64(duration) / float64(s.Games)
	return s
}

// FromRecords converts in-memory game records into aggregates.
func FromRecords(recs []model.GameRecord) []model.GameAggregate {
	out := make([]model.GameAggregate, len(recs))
	for i, r := range recs {
		out[i] = model.GameAggregate{
			EndedAt:    r.EndedAt,
			Secret:     r.Secret,
			WordLength: r.WordLength,
			Source:     r.Source,
			Won:        r.Won,
			Attempts:   r.Attempts,
			DurationMs: r.EndedAt.Sub(r.StartedAt).Milliseconds(),
		}
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the summary block.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Games == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Games: %d", s.Games),
		fmt.Sprintf("Wins: %d (%.1f%%)", s.Wins, s.WinRate*100),
		fmt.Sprintf("Mean attempts: %.2f", s.MeanAttempts),
		fmt.Sprintf("Best: %d", s.BestAttempts),
		fmt.Sprintf("Streak: %d (max %d)", s.CurrentStreak, s.MaxStreak),
		fmt.Sprintf("Avg duration: %.0f ms", s.AvgDurationMs),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDistribution prints a bar histogram of won games by attempts.
func RenderDistribution(w io.Writer, s Summary) error {
	if len(s.Distribution) == 0 {
		return nil
	}
	keys := make([]int, 0, len(s.Distribution))
	peak := 0
	for k, n := range s.Distribution {
		keys = append(keys, k)
		peak = max(peak, n)
	}
	sort.Ints(keys)
	if _, err := fmt.Fprintln(w, "Guess Distribution"); err != nil {
		return err
	}
	labelWidth := len(fmt.Sprint(keys[len(keys)-1]))
	for attempts := 1; attempts <= keys[len(keys)-1]; attempts++ {
		n := s.Distribution[attempts]
		bar := 0
		if peak > 0 {
			bar = int(math.Round(float64(n) / float64(peak) * distributionBarWidth))
		}
		if n > 0 && bar == 0 {
			bar = 1
		}
		if _, err := fmt.Fprintf(w, "%*d | %s %d\n", labelWidth, attempts, strings.Repeat(barChar, bar), n); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend prints a sparkline of attempts per game smoothed over window.
// Lost games count as one attempt over the worst win.
func RenderTrend(w io.Writer, games []model.GameAggregate, window int) error {
	if len(games) < 2 {
		return nil
	}
	worst := 0
	for _, g := range games {
		if g.Won {
			worst = max(worst, g.Attempts)
		}
	}
	values := make([]float64, len(games))
	for i, g := range games {
		if g.Won {
			values[i] = float64(g.Attempts)
		} else {
			values[i] = float64(worst + 1)
		}
	}
	smoothed := MovingAverage(values, window)
	_, err := fmt.Fprintf(w, "Attempts trend: [%s] %.2f -> %.2f\n\n", Sparkline(smoothed), smoothed[0], smoothed[len(smoothed)-1])
	return err
}

// RenderLetterTable prints the n most frequent letters among the candidates.
func RenderLetterTable(w io.Writer, freqs []lexicon.LetterFrequency, n int) error {
	if len(freqs) == 0 {
		_, err := fmt.Fprintln(w, "No letters left.")
		return err
	}
	if n <= 0 || n > len(freqs) {
		n = len(freqs)
	}
	headers := []string{"Letter", "Count", "Frequency"}
	rows := make([][]string, 0, n)
	for _, lf := range freqs[:n] {
		rows = append(rows, []string{
			string(lf.Letter),
			fmt.Sprintf("%d", lf.Count),
			fmt.Sprintf("%.2f%%", lf.Frequency*100),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{1: true, 2: true}))
}

// RenderRanking prints the n best candidates, best first.
func RenderRanking(w io.Writer, ranking lexicon.Ranking, n int) error {
	if len(ranking) == 0 {
		_, err := fmt.Fprintln(w, "No candidates left.")
		return err
	}
	top := ranking.Top(n)
	headers := []string{"#", "Word", "Score"}
	rows := make([][]string, 0, len(top))
	for i, s := range top {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			s.Word,
			fmt.Sprintf("%.4f", s.Score),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{0: true, 2: true}))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
