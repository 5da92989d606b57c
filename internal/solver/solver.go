// Package solver drives games between a lexicon filter and an oracle.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/tuidle/internal/lexicon"
	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/oracle"
)

// DefaultMaxGuesses is the traditional puzzle attempt budget.
const DefaultMaxGuesses = 6

// Options controls a single game.
type Options struct {
	MaxGuesses int
	// Opener, when set, replaces the recommendation on the first turn.
	Opener       string
	PreferCommon bool
}

// Play resets f and o, then guesses until the oracle reports a win or the
// budget runs out. The returned record is filled in even when an error is
// returned part way through.
func Play(ctx context.Context, f *lexicon.Filter, o *oracle.Oracle, opts Options) (model.GameRecord, error) {
	maxGuesses := opts.MaxGuesses
	if maxGuesses <= 0 {
		maxGuesses = DefaultMaxGuesses
	}
	f.Reset()
	o.Reset()

	rec := model.GameRecord{
		StartedAt:  time.Now(),
		Secret:     o.Secret(),
		WordLength: f.WordLength(),
		Oracle:     o.Mode().String(),
	}
	finish := func() {
		rec.Attempts = o.Guesses()
		rec.EndedAt = time.Now()
	}

	for turn := 1; turn <= maxGuesses; turn++ {
		if err := ctx.Err(); err != nil {
			finish()
			return rec, err
		}
		guess := opts.Opener
		if turn > 1 || guess == "" {
			var err error
			guess, err = f.Recommend(opts.PreferCommon)
			if err != nil {
				finish()
				return rec, fmt.Errorf("turn %d: %w", turn, err)
			}
		}
		pattern, err := o.Evaluate(guess)
		if err != nil {
			finish()
			return rec, fmt.Errorf("turn %d: %w", turn, err)
		}
		if _, err := f.ApplyFeedback(guess, pattern); err != nil {
			finish()
			return rec, fmt.Errorf("turn %d: %w", turn, err)
		}
		lex, common := f.Remaining()
		rec.Turns = append(rec.Turns, model.Turn{
			Guess:            guess,
			Pattern:          pattern.String(),
			RemainingLexicon: lex,
			RemainingCommon:  common,
		})
		if pattern.IsWin() {
			rec.Won = true
			break
		}
	}
	finish()
	return rec, nil
}
