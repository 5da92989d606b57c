package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuidle/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "tuidle.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return s
}

func game(secret string, source string, won bool, attempts int, ended time.Time) model.GameRecord {
	turns := make([]model.Turn, attempts)
	for i := range turns {
		turns[i] = model.Turn{Guess: "crane", Pattern: "bbbbb", RemainingLexicon: 10 - i, RemainingCommon: 5 - i}
	}
	if won {
		turns[attempts-1] = model.Turn{Guess: secret, Pattern: "ggggg", RemainingLexicon: 1, RemainingCommon: 1}
	}
	return model.GameRecord{
		StartedAt:  ended.Add(-1500 * time.Millisecond),
		EndedAt:    ended,
		Secret:     secret,
		WordLength: 5,
		Oracle:     "naive",
		Source:     source,
		Won:        won,
		Attempts:   attempts,
		Turns:      turns,
	}
}

func TestInsertAndListGames(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := s.InsertGame(ctx, game("alarm", model.SourcePlay, true, 3, base))
	require.NoError(t, err)
	_, err = s.InsertGame(ctx, game("zebra", model.SourceBench, false, 6, base.Add(time.Minute)))
	require.NoError(t, err)
	_, err = s.InsertGame(ctx, game("slate", model.SourceBench, true, 2, base.Add(2*time.Minute)))
	require.NoError(t, err)

	games, err := s.ListGames(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Len(t, games, 3)
	require.Equal(t, id, games[0].GameID)
	require.Equal(t, "alarm", games[0].Secret)
	require.True(t, games[0].Won)
	require.Equal(t, 3, games[0].Attempts)
	require.Equal(t, 5, games[0].WordLength)
	require.Equal(t, int64(1500), games[0].DurationMs)
	require.True(t, games[0].EndedAt.Equal(base))

	bench, err := s.ListGames(ctx, model.StatsConfig{Source: model.SourceBench})
	require.NoError(t, err)
	require.Len(t, bench, 2)
	require.Equal(t, "zebra", bench[0].Secret)

	last, err := s.ListGames(ctx, model.StatsConfig{Last: 2})
	require.NoError(t, err)
	require.Len(t, last, 2)
	require.Equal(t, "zebra", last[0].Secret)
	require.Equal(t, "slate", last[1].Secret)

	since := base.Add(90 * time.Second)
	recent, err := s.ListGames(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)

	none, err := s.ListGames(ctx, model.StatsConfig{WordLength: 6})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestTurnsRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	rec := game("alarm", model.SourceAssist, true, 3, time.Now().UTC())

	id, err := s.InsertGame(ctx, rec)
	require.NoError(t, err)

	turns, err := s.ListTurns(ctx, id)
	require.NoError(t, err)
	require.Equal(t, rec.Turns, turns)
}

func TestGuessDistribution(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, attempts := range []int{3, 4, 3, 6} {
		_, err := s.InsertGame(ctx, game("alarm", model.SourceBench, true, attempts, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}
	_, err := s.InsertGame(ctx, game("zebra", model.SourceBench, false, 6, base.Add(time.Hour)))
	require.NoError(t, err)

	dist, err := s.GuessDistribution(ctx, model.StatsConfig{})
	require.NoError(t, err)
	require.Equal(t, map[int]int{3: 2, 4: 1, 6: 1}, dist)

	dist, err = s.GuessDistribution(ctx, model.StatsConfig{Source: model.SourcePlay})
	require.NoError(t, err)
	require.Empty(t, dist)
}
