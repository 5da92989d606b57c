// Package model defines shared data structures.
package model

import "time"

// Game sources recorded in the history.
const (
	SourcePlay   = "play"
	SourceBench  = "bench"
	SourceAssist = "assist"
)

// RunConfig defines solver settings.
type RunConfig struct {
	LexiconPath   string
	CommonPath    string
	ExportLexicon bool
	WordLength    int
	MaxGuesses    int
	Oracle        string
	Opener        string
	PreferCommon  bool
}

// StatsConfig defines filters for the stats report.
type StatsConfig struct {
	Source     string
	WordLength int
	Since      *time.Time
	Last       int
}

// Turn is one guess and the feedback it received.
type Turn struct {
	Guess   string
	Pattern string
	// Remaining lexicon and common candidates after the feedback was applied.
	RemainingLexicon int
	RemainingCommon  int
}

// GameRecord captures a finished game.
type GameRecord struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Secret     string
	WordLength int
	Oracle     string
	Source     string
	Won        bool
	Attempts   int
	Turns      []Turn
}

// GameAggregate summarizes a stored game for reporting.
type GameAggregate struct {
	GameID     int64
	EndedAt    time.Time
	Secret     string
	WordLength int
	Source     string
	Won        bool
	Attempts   int
	DurationMs int64
}
