// Package feedback defines per-letter guess feedback and its text form.
package feedback

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Mark is the feedback for a single letter of a guess.
type Mark uint8

const (
	// Absent means the letter is not in the secret.
	Absent Mark = iota
	// Present means the letter is in the secret at another position.
	Present
	// Correct means the letter is in the secret at this position.
	Correct
)

// ErrUnknownMark is returned when a pattern contains an unrecognized symbol.
var ErrUnknownMark = errors.New("unknown feedback symbol")

func (m Mark) String() string {
	switch m {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	default:
		return fmt.Sprintf("mark(%d)", uint8(m))
	}
}

// Symbol returns the single-letter form used in patterns (b, y, g).
func (m Mark) Symbol() byte {
	switch m {
	case Present:
		return 'y'
	case Correct:
		return 'g'
	default:
		return 'b'
	}
}

// Valid reports whether m is one of the three defined marks.
func (m Mark) Valid() bool {
	return m <= Correct
}

// Pattern is the feedback for a whole guess, one Mark per letter.
type Pattern []Mark

// All returns a pattern of the given length filled with mark.
func All(length int, mark Mark) Pattern {
	p := make(Pattern, length)
	for i := range p {
		p[i] = mark
	}
	return p
}

// Parse reads a pattern such as "gybbb".
//
// Accepted symbols, case-insensitive:
//
//	absent:  b . - 0 x
//	present: y ? 1
//	correct: g ! 2
func Parse(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	out := make(Pattern, 0, len(s))
	for i, r := range s {
		switch unicode.ToLower(r) {
		case 'b', '.', '-', '0', 'x':
			out = append(out, Absent)
		case 'y', '?', '1':
			out = append(out, Present)
		case 'g', '!', '2':
			out = append(out, Correct)
		default:
			return nil, fmt.Errorf("%w %q at offset %d", ErrUnknownMark, r, i)
		}
	}
	return out, nil
}

// String renders the pattern with b/y/g symbols.
func (p Pattern) String() string {
	b := make([]byte, len(p))
	for i, m := range p {
		b[i] = m.Symbol()
	}
	return string(b)
}

// IsWin reports whether every position is Correct. An empty pattern is not a win.
func (p Pattern) IsWin() bool {
	if len(p) == 0 {
		return false
	}
	for _, m := range p {
		if m != Correct {
			return false
		}
	}
	return true
}

// Equal reports whether two patterns carry the same marks.
func (p Pattern) Equal(other Pattern) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
