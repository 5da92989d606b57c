package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/tuidle/internal/feedback"
)

func evaluate(t *testing.T, secret, guess string, mode Mode) string {
	t.Helper()
	o, err := New(secret, mode)
	require.NoError(t, err)
	p, err := o.Evaluate(guess)
	require.NoError(t, err)
	return p.String()
}

func TestEvaluateNaive(t *testing.T) {
	cases := []struct {
		secret, guess, want string
	}{
		{"alarm", "arose", "gybbb"},
		{"alarm", "alarm", "ggggg"},
		{"crane", "slate", "bbgbg"},
		// Every repeated letter is credited by a single secret letter.
		{"abbey", "keeps", "byybb"},
		{"crane", "eerie", "yyybg"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, evaluate(t, tc.secret, tc.guess, ModeNaive), "%s vs %s", tc.guess, tc.secret)
	}
}

func TestEvaluateStandard(t *testing.T) {
	cases := []struct {
		secret, guess, want string
	}{
		{"alarm", "arose", "gybbb"},
		{"abbey", "keeps", "bybbb"},
		{"crane", "eerie", "bbybg"},
		{"lapse", "label", "ggbyb"},
		{"speed", "eerie", "yybbb"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, evaluate(t, tc.secret, tc.guess, ModeStandard), "%s vs %s", tc.guess, tc.secret)
	}
}

func TestEvaluateCountsAttempts(t *testing.T) {
	o, err := New("alarm", ModeNaive)
	require.NoError(t, err)

	_, err = o.Evaluate("arose")
	require.NoError(t, err)
	_, err = o.Evaluate("arose")
	require.NoError(t, err)
	require.Equal(t, 2, o.Guesses())

	_, err = o.Evaluate("toolong")
	require.ErrorIs(t, err, ErrInvalidWord)
	require.Equal(t, 2, o.Guesses())

	p, err := o.Evaluate("ALARM")
	require.NoError(t, err)
	require.True(t, IsWin(p))
	require.Equal(t, 3, o.Guesses())

	o.Reset()
	require.Zero(t, o.Guesses())
	require.Equal(t, "alarm", o.Secret())
}

func TestNewRejectsWrongLength(t *testing.T) {
	_, err := New("cat", ModeNaive)
	require.ErrorIs(t, err, ErrInvalidWord)

	o, err := NewWithLength("cat", 3, ModeStandard)
	require.NoError(t, err)
	p, err := o.Evaluate("act")
	require.NoError(t, err)
	require.Equal(t, feedback.Pattern{feedback.Present, feedback.Present, feedback.Correct}, p)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Standard")
	require.NoError(t, err)
	require.Equal(t, ModeStandard, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeNaive, m)

	_, err = ParseMode("entropy")
	require.Error(t, err)
}
