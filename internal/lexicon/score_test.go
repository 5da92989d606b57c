package lexicon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuidle/internal/feedback"
)

func TestScoreCountsDistinctLetters(t *testing.T) {
	f, err := New([]string{"aab", "abc", "xyz"}, nil, 3)
	require.NoError(t, err)

	ranking, err := f.Score()
	require.NoError(t, err)
	require.Equal(t, []string{"xyz", "aab", "abc"}, ranking.Words())
	require.InDelta(t, 3.0/9, ranking[0].Score, 1e-9)
	require.InDelta(t, 5.0/9, ranking[1].Score, 1e-9)
	require.InDelta(t, 6.0/9, ranking[2].Score, 1e-9)

	best, ok := ranking.Best()
	require.True(t, ok)
	require.Equal(t, "abc", best.Word)
	require.Equal(t, []string{"abc", "aab"}, Ranking(ranking.Top(2)).Words())
}

func TestScoreIsStableAndDeterministic(t *testing.T) {
	f, err := New([]string{"xyz", "zyx", "yzx", "abc"}, nil, 3)
	require.NoError(t, err)

	first, err := f.Score()
	require.NoError(t, err)
	second, err := f.Score()
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, []string{"abc", "xyz", "zyx", "yzx"}, first.Words())
}

func TestScoreWithoutCandidates(t *testing.T) {
	f := newSample(t)
	f.ExcludeLetters([]rune{'a'})
	lex, _ := f.Remaining()
	require.Zero(t, lex)

	ranking, err := f.Score()
	require.ErrorIs(t, err, ErrNoCandidates)
	require.Empty(t, ranking)

	_, err = f.Recommend(true)
	require.ErrorIs(t, err, ErrNoCandidates)
}

func TestRecommendPrefersCommon(t *testing.T) {
	f, err := New([]string{"aab", "abc", "xyz"}, []string{"aab", "xyz"}, 3)
	require.NoError(t, err)

	word, err := f.Recommend(false)
	require.NoError(t, err)
	require.Equal(t, "abc", word)

	word, err = f.Recommend(true)
	require.NoError(t, err)
	require.Equal(t, "aab", word)
}

func TestRecommendFallsBackWhenCommonExhausted(t *testing.T) {
	f, err := New([]string{"aab", "abc", "xyz"}, []string{"xyz"}, 3)
	require.NoError(t, err)
	p, err := feedback.Parse("gbb")
	require.NoError(t, err)
	_, err = f.ApplyFeedback("axx", p)
	require.NoError(t, err)

	_, common := f.Remaining()
	require.Zero(t, common)
	word, err := f.Recommend(true)
	require.NoError(t, err)
	require.Equal(t, "abc", word)
}

func TestLetterFrequencies(t *testing.T) {
	f, err := New([]string{"aab", "abc"}, nil, 3)
	require.NoError(t, err)
	freqs := f.LetterFrequencies()
	require.Len(t, freqs, 3)
	require.Equal(t, 'a', freqs[0].Letter)
	require.Equal(t, 3, freqs[0].Count)
	require.InDelta(t, 0.5, freqs[0].Frequency, 1e-9)
	require.Equal(t, 'b', freqs[1].Letter)
	require.Equal(t, 'c', freqs[2].Letter)
}
