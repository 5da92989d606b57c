// Package lexicon narrows candidate word sets from guess feedback and ranks
// the survivors by a letter-frequency heuristic.
package lexicon

import (
	"fmt"
	"sort"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/tuidle/internal/feedback"
	"github.com/verte-zerg/tuidle/internal/wordlist"
)

// DefaultWordLength is the puzzle word length used when none is configured.
const DefaultWordLength = 5

// Options configures Load.
type Options struct {
	LexiconPath string
	// CommonPath is optional; without it the common set mirrors the lexicon.
	CommonPath string
	// ExportLexicon overwrites LexiconPath with the length-filtered lexicon.
	ExportLexicon bool
	WordLength    int
	Logger        *zerolog.Logger
}

// Kind identifies the elimination rule behind a Report.
type Kind uint8

const (
	// KindExclude removes words containing the letter anywhere.
	KindExclude Kind = iota
	// KindRequireAt keeps words with the letter at Position.
	KindRequireAt
	// KindRequireElsewhere keeps words containing the letter, but not at Position.
	KindRequireElsewhere
	// KindExcludeAt removes words with the letter at Position.
	KindExcludeAt
)

func (k Kind) String() string {
	switch k {
	case KindExclude:
		return "exclude"
	case KindRequireAt:
		return "require-at"
	case KindRequireElsewhere:
		return "require-elsewhere"
	case KindExcludeAt:
		return "exclude-at"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Report describes the effect of one elimination step.
type Report struct {
	Letter   rune
	Kind     Kind
	Position int
	// Lexicon and Common count the words removed from each candidate set.
	Lexicon int
	Common  int
	// Skipped is set when an exclusion was not applied because the letter is confirmed.
	Skipped bool
}

type entry struct {
	word    string
	letters []rune
}

func (e entry) has(letter rune) bool {
	for _, r := range e.letters {
		if r == letter {
			return true
		}
	}
	return false
}

// Filter holds the immutable loaded word lists and the working candidate sets.
// A Filter is not safe for concurrent use; see Clone.
type Filter struct {
	wordLength int
	logger     zerolog.Logger

	originalLexicon []entry
	originalCommon  []entry

	lexicon   []entry
	common    []entry
	confirmed map[rune]struct{}
}

// Load reads the lexicon and common word lists and builds a Filter.
func Load(opts Options) (*Filter, error) {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	length := opts.WordLength
	if length == 0 {
		length = DefaultWordLength
	}

	lexiconWords, err := wordlist.LoadWords(opts.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("%w: lexicon %s: %v", ErrLoad, opts.LexiconPath, err)
	}
	var commonWords []string
	if opts.CommonPath != "" {
		commonWords, err = wordlist.LoadWords(opts.CommonPath)
		if err != nil {
			return nil, fmt.Errorf("%w: common words %s: %v", ErrLoad, opts.CommonPath, err)
		}
	}

	f, err := build(lexiconWords, commonWords, length, logger)
	if err != nil {
		return nil, err
	}

	if opts.ExportLexicon {
		if err := wordlist.WriteWords(opts.LexiconPath, f.OriginalLexicon()); err != nil {
			return nil, fmt.Errorf("failed to export lexicon: %w", err)
		}
		logger.Info().Str("path", opts.LexiconPath).Int("words", len(f.originalLexicon)).Msg("exported filtered lexicon")
	}
	logger.Debug().
		Int("lexicon", len(f.originalLexicon)).
		Int("common", len(f.originalCommon)).
		Int("length", length).
		Msg("lexicon loaded")
	return f, nil
}

// New builds a Filter from in-memory word lists. A nil common list mirrors the lexicon.
func New(lexiconWords, commonWords []string, wordLength int) (*Filter, error) {
	return build(lexiconWords, commonWords, wordLength, zerolog.Nop())
}

func build(lexiconWords, commonWords []string, length int, logger zerolog.Logger) (*Filter, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: word length must be > 0, got %d", ErrLoad, length)
	}
	keep := wordlist.ByLength(length)

	lexicon := toEntries(lexiconWords, keep)
	if len(lexicon) == 0 {
		return nil, fmt.Errorf("%w: lexicon has no %d-letter words", ErrLoad, length)
	}
	common := lexicon
	if commonWords != nil {
		common = toEntries(commonWords, keep)
		if len(common) == 0 {
			return nil, fmt.Errorf("%w: common list has no %d-letter words", ErrLoad, length)
		}
	}

	f := &Filter{
		wordLength:      length,
		logger:          logger,
		originalLexicon: lexicon,
		originalCommon:  common,
	}
	f.Reset()
	return f, nil
}

// toEntries normalizes words, drops those rejected by keep and keeps the first
// occurrence of each word.
func toEntries(words []string, keep wordlist.FilterFunc) []entry {
	normalized := make([]string, len(words))
	for i, w := range words {
		normalized[i] = wordlist.Normalize(w)
	}
	kept := wordlist.Apply(normalized, keep)
	seen := make(map[string]struct{}, len(kept))
	out := make([]entry, 0, len(kept))
	for _, w := range kept {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, entry{word: w, letters: []rune(w)})
	}
	return out
}

// Reset restores both candidate sets to the loaded lists and clears confirmed letters.
func (f *Filter) Reset() {
	f.lexicon = append([]entry(nil), f.originalLexicon...)
	f.common = append([]entry(nil), f.originalCommon...)
	f.confirmed = map[rune]struct{}{}
}

// Clone returns a Filter with its own working state over the same loaded lists.
func (f *Filter) Clone() *Filter {
	c := &Filter{
		wordLength:      f.wordLength,
		logger:          f.logger,
		originalLexicon: f.originalLexicon,
		originalCommon:  f.originalCommon,
		lexicon:         append([]entry(nil), f.lexicon...),
		common:          append([]entry(nil), f.common...),
		confirmed:       make(map[rune]struct{}, len(f.confirmed)),
	}
	for r := range f.confirmed {
		c.confirmed[r] = struct{}{}
	}
	return c
}

// WordLength returns the configured word length.
func (f *Filter) WordLength() int {
	return f.wordLength
}

// Remaining returns the sizes of the lexicon and common candidate sets.
func (f *Filter) Remaining() (lexicon, common int) {
	return len(f.lexicon), len(f.common)
}

// Size returns the sizes of the loaded lexicon and common lists.
func (f *Filter) Size() (lexicon, common int) {
	return len(f.originalLexicon), len(f.originalCommon)
}

// Candidates returns the remaining lexicon words in load order.
func (f *Filter) Candidates() []string {
	return words(f.lexicon)
}

// CommonCandidates returns the remaining common words in load order.
func (f *Filter) CommonCandidates() []string {
	return words(f.common)
}

// OriginalLexicon returns the loaded, length-filtered lexicon.
func (f *Filter) OriginalLexicon() []string {
	return words(f.originalLexicon)
}

// Confirmed returns the confirmed letters in sorted order.
func (f *Filter) Confirmed() []rune {
	out := make([]rune, 0, len(f.confirmed))
	for r := range f.confirmed {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func words(entries []entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.word
	}
	return out
}

// ExcludeLetters removes every candidate containing any of the letters, left to right.
// Letters already confirmed at a position are skipped so that words with a repeated
// confirmed letter survive.
func (f *Filter) ExcludeLetters(letters []rune) []Report {
	reports := make([]Report, 0, len(letters))
	for _, l := range letters {
		l = unicode.ToLower(l)
		if f.isConfirmed(l) {
			f.logger.Debug().Str("letter", string(l)).Msg("letter is confirmed; skipping exclusion")
			reports = append(reports, Report{Letter: l, Kind: KindExclude, Position: -1, Skipped: true})
			continue
		}
		report := f.retain(Report{Letter: l, Kind: KindExclude, Position: -1}, func(e entry) bool {
			return !e.has(l)
		})
		reports = append(reports, report)
	}
	return reports
}

// RequireLetter keeps candidates that have letter at position, or that contain
// letter anywhere except excludePosition. Exactly one of the two must be set.
func (f *Filter) RequireLetter(letter rune, position, excludePosition *int) (Report, error) {
	switch {
	case position != nil && excludePosition != nil:
		return Report{}, fmt.Errorf("%w: both position and exclude position given", ErrInvalidFeedback)
	case position == nil && excludePosition == nil:
		return Report{}, fmt.Errorf("%w: one of position or exclude position is required", ErrInvalidFeedback)
	case position != nil:
		return f.RequireAt(letter, *position)
	default:
		return f.RequireElsewhere(letter, *excludePosition)
	}
}

// RequireAt keeps candidates with letter at index i and confirms the letter.
func (f *Filter) RequireAt(letter rune, i int) (Report, error) {
	if err := f.checkIndex(i); err != nil {
		return Report{}, err
	}
	letter = unicode.ToLower(letter)
	report := f.retain(Report{Letter: letter, Kind: KindRequireAt, Position: i}, func(e entry) bool {
		return e.letters[i] == letter
	})
	f.confirmed[letter] = struct{}{}
	return report, nil
}

// RequireElsewhere keeps candidates that contain letter but not at index i.
func (f *Filter) RequireElsewhere(letter rune, i int) (Report, error) {
	if err := f.checkIndex(i); err != nil {
		return Report{}, err
	}
	letter = unicode.ToLower(letter)
	return f.retain(Report{Letter: letter, Kind: KindRequireElsewhere, Position: i}, func(e entry) bool {
		return e.letters[i] != letter && e.has(letter)
	}), nil
}

// ExcludeAt removes candidates with letter at index i.
func (f *Filter) ExcludeAt(letter rune, i int) (Report, error) {
	if err := f.checkIndex(i); err != nil {
		return Report{}, err
	}
	letter = unicode.ToLower(letter)
	return f.retain(Report{Letter: letter, Kind: KindExcludeAt, Position: i}, func(e entry) bool {
		return e.letters[i] != letter
	}), nil
}

// ApplyFeedback applies the pattern reported for guess.
//
// Correct marks are applied first, then present, then absent. An absent letter
// that is confirmed, or marked correct or present elsewhere in the same guess,
// only removes words having it at that position.
func (f *Filter) ApplyFeedback(guess string, pattern feedback.Pattern) ([]Report, error) {
	guess = wordlist.Normalize(guess)
	letters := []rune(guess)
	if len(letters) != f.wordLength {
		return nil, fmt.Errorf("%w: guess %q has %d letters, want %d", ErrInvalidFeedback, guess, len(letters), f.wordLength)
	}
	if len(pattern) != f.wordLength {
		return nil, fmt.Errorf("%w: pattern %q has %d marks, want %d", ErrInvalidFeedback, pattern.String(), len(pattern), f.wordLength)
	}
	for i, m := range pattern {
		if !m.Valid() {
			return nil, fmt.Errorf("%w: %v at position %d", ErrInvalidFeedback, m, i)
		}
	}

	credited := map[rune]struct{}{}
	for i, m := range pattern {
		if m != feedback.Absent {
			credited[letters[i]] = struct{}{}
		}
	}

	reports := make([]Report, 0, len(letters))
	for _, pass := range []feedback.Mark{feedback.Correct, feedback.Present, feedback.Absent} {
		for i, m := range pattern {
			if m != pass {
				continue
			}
			l := letters[i]
			var (
				report Report
				err    error
			)
			switch m {
			case feedback.Correct:
				report, err = f.RequireAt(l, i)
			case feedback.Present:
				report, err = f.RequireElsewhere(l, i)
			default:
				if _, ok := credited[l]; ok || f.isConfirmed(l) {
					report, err = f.ExcludeAt(l, i)
				} else {
					report = f.ExcludeLetters([]rune{l})[0]
				}
			}
			if err != nil {
				return reports, err
			}
			reports = append(reports, report)
		}
	}
	lex, common := f.Remaining()
	f.logger.Debug().Str("guess", guess).Str("pattern", pattern.String()).Int("lexicon", lex).Int("common", common).Msg("feedback applied")
	return reports, nil
}

func (f *Filter) isConfirmed(letter rune) bool {
	_, ok := f.confirmed[letter]
	return ok
}

func (f *Filter) checkIndex(i int) error {
	if i < 0 || i >= f.wordLength {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndex, i, f.wordLength)
	}
	return nil
}

func (f *Filter) retain(report Report, keep func(entry) bool) Report {
	beforeLex, beforeCommon := len(f.lexicon), len(f.common)
	f.lexicon = retainEntries(f.lexicon, keep)
	f.common = retainEntries(f.common, keep)
	report.Lexicon = beforeLex - len(f.lexicon)
	report.Common = beforeCommon - len(f.common)
	return report
}

func retainEntries(entries []entry, keep func(entry) bool) []entry {
	out := entries[:0]
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
