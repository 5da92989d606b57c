// Package oracle plays the puzzle side: it holds a secret word and scores guesses.
package oracle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/tuidle/internal/feedback"
	"github.com/verte-zerg/tuidle/internal/wordlist"
)

const defaultWordLength = 5

// ErrInvalidWord reports a secret or guess whose length differs from the configured length.
var ErrInvalidWord = errors.New("invalid word")

// Mode selects the scoring algorithm.
type Mode uint8

const (
	// ModeNaive marks a letter present whenever it occurs anywhere in the secret,
	// so repeated guess letters can all be credited by a single secret letter.
	ModeNaive Mode = iota
	// ModeStandard credits each secret letter at most once: exact hits first,
	// then presents from the remaining letters, left to right.
	ModeStandard
)

func (m Mode) String() string {
	switch m {
	case ModeNaive:
		return "naive"
	case ModeStandard:
		return "standard"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode parses "naive" or "standard".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "naive":
		return ModeNaive, nil
	case "standard":
		return ModeStandard, nil
	default:
		return 0, fmt.Errorf("unknown oracle mode %q (want naive or standard)", s)
	}
}

// Oracle scores guesses against a secret and counts attempts.
type Oracle struct {
	secret  []rune
	mode    Mode
	guesses int
}

// New creates an oracle for a five-letter secret.
func New(secret string, mode Mode) (*Oracle, error) {
	return NewWithLength(secret, defaultWordLength, mode)
}

// NewWithLength creates an oracle for a secret of the given length.
func NewWithLength(secret string, length int, mode Mode) (*Oracle, error) {
	runes := []rune(wordlist.Normalize(secret))
	if len(runes) != length {
		return nil, fmt.Errorf("%w: secret %q has %d letters, want %d", ErrInvalidWord, secret, len(runes), length)
	}
	return &Oracle{secret: runes, mode: mode}, nil
}

// Evaluate scores guess and counts the attempt. A guess of the wrong length is
// rejected without being counted.
func (o *Oracle) Evaluate(guess string) (feedback.Pattern, error) {
	g := []rune(wordlist.Normalize(guess))
	if len(g) != len(o.secret) {
		return nil, fmt.Errorf("%w: guess %q has %d letters, want %d", ErrInvalidWord, guess, len(g), len(o.secret))
	}
	o.guesses++
	if o.mode == ModeStandard {
		return scoreStandard(o.secret, g), nil
	}
	return scoreNaive(o.secret, g), nil
}

// Reset sets the guess counter back to zero. The secret is kept.
func (o *Oracle) Reset() {
	o.guesses = 0
}

// Guesses returns the number of counted attempts.
func (o *Oracle) Guesses() int {
	return o.guesses
}

// Secret returns the secret word.
func (o *Oracle) Secret() string {
	return string(o.secret)
}

// Mode returns the scoring algorithm.
func (o *Oracle) Mode() Mode {
	return o.mode
}

// IsWin reports whether the pattern is all correct.
func IsWin(p feedback.Pattern) bool {
	return p.IsWin()
}

func scoreNaive(secret, guess []rune) feedback.Pattern {
	out := make(feedback.Pattern, len(guess))
	for i, g := range guess {
		switch {
		case g == secret[i]:
			out[i] = feedback.Correct
		case contains(secret, g):
			out[i] = feedback.Present
		default:
			out[i] = feedback.Absent
		}
	}
	return out
}

// scoreStandard is the two-pass algorithm: mark hits and count the unmatched
// secret letters, then spend those counts on presents left to right.
func scoreStandard(secret, guess []rune) feedback.Pattern {
	out := make(feedback.Pattern, len(guess))
	remaining := make(map[rune]int, len(secret))
	for i, g := range guess {
		if g == secret[i] {
			out[i] = feedback.Correct
		} else {
			remaining[secret[i]]++
		}
	}
	for i, g := range guess {
		if out[i] == feedback.Correct {
			continue
		}
		if remaining[g] > 0 {
			out[i] = feedback.Present
			remaining[g]--
		} else {
			out[i] = feedback.Absent
		}
	}
	return out
}

func contains(word []rune, r rune) bool {
	for _, c := range word {
		if c == r {
			return true
		}
	}
	return false
}
