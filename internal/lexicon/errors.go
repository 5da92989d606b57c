package lexicon

import "errors"

var (
	// ErrLoad reports an unreadable word-list source or one with no qualifying words.
	ErrLoad = errors.New("lexicon load failed")
	// ErrInvalidFeedback reports a malformed guess, pattern, or position arguments.
	ErrInvalidFeedback = errors.New("invalid feedback")
	// ErrIndex reports a letter position outside [0, word length).
	ErrIndex = errors.New("position out of range")
	// ErrNoCandidates reports that filtering removed every candidate word,
	// which means the applied feedback was contradictory or misapplied.
	ErrNoCandidates = errors.New("no candidates remain")
)
