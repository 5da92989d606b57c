package lexicon

import (
	"fmt"
	"sort"
)

// Scored is a candidate word and its heuristic score.
type Scored struct {
	Word  string
	Score float64
}

// Ranking lists candidates in ascending score order; the best guess is last.
type Ranking []Scored

// Best returns the highest-scored candidate.
func (r Ranking) Best() (Scored, bool) {
	if len(r) == 0 {
		return Scored{}, false
	}
	return r[len(r)-1], true
}

// Top returns up to n candidates, highest score first.
func (r Ranking) Top(n int) []Scored {
	if n <= 0 || n > len(r) {
		n = len(r)
	}
	out := make([]Scored, 0, n)
	for i := len(r) - 1; i >= len(r)-n; i-- {
		out = append(out, r[i])
	}
	return out
}

// Words returns the ranked words in ranking order.
func (r Ranking) Words() []string {
	out := make([]string, len(r))
	for i, s := range r {
		out[i] = s.Word
	}
	return out
}

// LetterFrequency is the share of one letter among all letters of the candidates.
type LetterFrequency struct {
	Letter    rune
	Count     int
	Frequency float64
}

// Score ranks the lexicon candidates by the sum of the frequencies of their
// distinct letters. Frequencies are occurrences divided by the total letter
// count of the candidate set. The sort is stable, so ties keep load order.
func (f *Filter) Score() (Ranking, error) {
	if len(f.lexicon) == 0 {
		return nil, ErrNoCandidates
	}
	freq := f.frequencies()

	ranking := make(Ranking, len(f.lexicon))
	seen := make(map[rune]struct{}, f.wordLength)
	for i, e := range f.lexicon {
		clear(seen)
		var score float64
		for _, r := range e.letters {
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			score += freq[r]
		}
		ranking[i] = Scored{Word: e.word, Score: score}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score < ranking[j].Score
	})
	return ranking, nil
}

// Recommend returns the next guess. With preferCommon, the best-ranked word that
// is still a common candidate wins; otherwise, or when no common candidate is
// ranked, the overall best word is returned.
func (f *Filter) Recommend(preferCommon bool) (string, error) {
	ranking, err := f.Score()
	if err != nil {
		return "", err
	}
	if preferCommon && len(f.common) > 0 {
		common := make(map[string]struct{}, len(f.common))
		for _, e := range f.common {
			common[e.word] = struct{}{}
		}
		for i := len(ranking) - 1; i >= 0; i-- {
			if _, ok := common[ranking[i].Word]; ok {
				return ranking[i].Word, nil
			}
		}
	}
	best, ok := ranking.Best()
	if !ok {
		return "", fmt.Errorf("empty ranking: %w", ErrNoCandidates)
	}
	return best.Word, nil
}

// LetterFrequencies returns letter frequencies over the lexicon candidates,
// most frequent first.
func (f *Filter) LetterFrequencies() []LetterFrequency {
	counts := f.counts()
	total := len(f.lexicon) * f.wordLength
	out := make([]LetterFrequency, 0, len(counts))
	for r, n := range counts {
		lf := LetterFrequency{Letter: r, Count: n}
		if total > 0 {
			lf.Frequency = float64(n) / float64(total)
		}
		out = append(out, lf)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Letter < out[j].Letter
		}
		return out[i].Count > out[j].Count
	})
	return out
}

func (f *Filter) counts() map[rune]int {
	counts := map[rune]int{}
	for _, e := range f.lexicon {
		for _, r := range e.letters {
			counts[r]++
		}
	}
	return counts
}

func (f *Filter) frequencies() map[rune]float64 {
	counts := f.counts()
	total := float64(len(f.lexicon) * f.wordLength)
	freq := make(map[rune]float64, len(counts))
	for r, n := range counts {
		freq[r] = float64(n) / total
	}
	return freq
}
