// Package secret picks secret words for self-play.
package secret

import (
	"math/rand"
	"time"
)

// Picker selects words at random.
type Picker struct {
	rnd *rand.Rand
}

// New returns a Picker seeded with the current time.
func New() *Picker {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Picker with a fixed seed.
func NewSeeded(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns one word selected uniformly, or "" for an empty list.
func (p *Picker) Pick(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[p.rnd.Intn(len(words))]
}

// Sample returns n distinct words in random order. When n is not positive or
// exceeds the list, every word is returned shuffled.
func (p *Picker) Sample(words []string, n int) []string {
	out := append([]string(nil), words...)
	p.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
