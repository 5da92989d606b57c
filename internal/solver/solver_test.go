package solver

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuidle/internal/lexicon"
	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/oracle"
)

var words = []string{"alarm", "arose", "crane", "slate", "zebra", "baker", "cater", "later"}

func newFilter(t *testing.T) *lexicon.Filter {
	t.Helper()
	f, err := lexicon.New(words, []string{"crane", "slate", "later"}, 5)
	require.NoError(t, err)
	return f
}

func TestPlayWinsForEverySecret(t *testing.T) {
	for _, mode := range []oracle.Mode{oracle.ModeNaive, oracle.ModeStandard} {
		for _, secret := range words {
			f := newFilter(t)
			o, err := oracle.New(secret, mode)
			require.NoError(t, err)

			rec, err := Play(context.Background(), f, o, Options{MaxGuesses: len(words)})
			require.NoError(t, err)
			require.True(t, rec.Won, "%s/%s", mode, secret)
			require.Equal(t, secret, rec.Secret)
			require.Equal(t, len(rec.Turns), rec.Attempts)
			last := rec.Turns[len(rec.Turns)-1]
			require.Equal(t, secret, last.Guess)
			require.Equal(t, "ggggg", last.Pattern)
			require.Equal(t, 1, last.RemainingLexicon)
		}
	}
}

func TestPlayUsesOpener(t *testing.T) {
	f := newFilter(t)
	o, err := oracle.New("alarm", oracle.ModeNaive)
	require.NoError(t, err)

	rec, err := Play(context.Background(), f, o, Options{Opener: "arose"})
	require.NoError(t, err)
	require.Equal(t, "arose", rec.Turns[0].Guess)
	require.Equal(t, "gybbb", rec.Turns[0].Pattern)
	require.Equal(t, 1, rec.Turns[0].RemainingLexicon)
	require.True(t, rec.Won)
	require.Equal(t, 2, rec.Attempts)
}

func TestPlayStopsAtBudget(t *testing.T) {
	f := newFilter(t)
	o, err := oracle.New("zebra", oracle.ModeNaive)
	require.NoError(t, err)

	rec, err := Play(context.Background(), f, o, Options{MaxGuesses: 1, Opener: "crane"})
	require.NoError(t, err)
	require.False(t, rec.Won)
	require.Equal(t, 1, rec.Attempts)
	require.Len(t, rec.Turns, 1)
}

func TestPlaySecretOutsideLexicon(t *testing.T) {
	f := newFilter(t)
	o, err := oracle.New("quick", oracle.ModeNaive)
	require.NoError(t, err)

	rec, err := Play(context.Background(), f, o, Options{})
	require.ErrorIs(t, err, lexicon.ErrNoCandidates)
	require.False(t, rec.Won)
}

func TestPlayHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o, err := oracle.New("crane", oracle.ModeNaive)
	require.NoError(t, err)

	_, err = Play(ctx, newFilter(t), o, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBenchKeepsOrder(t *testing.T) {
	base := newFilter(t)
	var done atomic.Int32

	games, err := Bench(context.Background(), base, words, BenchOptions{
		Options: Options{MaxGuesses: len(words)},
		Mode:    oracle.ModeStandard,
		Jobs:    3,
	}, func() { done.Add(1) })
	require.NoError(t, err)
	require.Len(t, games, len(words))
	require.Equal(t, int32(len(words)), done.Load())
	for i, g := range games {
		require.Equal(t, words[i], g.Secret)
		require.Equal(t, model.SourceBench, g.Source)
		require.Equal(t, "standard", g.Oracle)
		require.True(t, g.Won)
	}
	require.Len(t, base.Candidates(), len(words), "base filter must stay untouched")
}

func TestBenchRecordsExhaustedGamesAsLosses(t *testing.T) {
	games, err := Bench(context.Background(), newFilter(t), []string{"quick", "crane"}, BenchOptions{Jobs: 1}, nil)
	require.NoError(t, err)
	require.Len(t, games, 2)
	require.False(t, games[0].Won)
	require.True(t, games[1].Won)
}

func TestBenchRejectsBadSecret(t *testing.T) {
	_, err := Bench(context.Background(), newFilter(t), []string{"toolong"}, BenchOptions{}, nil)
	require.ErrorIs(t, err, oracle.ErrInvalidWord)
}

func TestBenchEmpty(t *testing.T) {
	games, err := Bench(context.Background(), newFilter(t), nil, BenchOptions{}, nil)
	require.NoError(t, err)
	require.Empty(t, games)
}
