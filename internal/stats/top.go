package stats

import (
	"sort"

	"github.com/verte-zerg/tuidle/internal/model"
)

// SecretResult aggregates every game played against one secret.
type SecretResult struct {
	Secret   string
	Games    int
	Losses   int
	Attempts int
}

// HardestSecrets returns the top N secrets by losses, then by mean attempts.
func HardestSecrets(games []model.GameAggregate, n int) []SecretResult {
	if n <= 0 || len(games) == 0 {
		return nil
	}
	bySecret := map[string]*SecretResult{}
	for _, g := range games {
		r, ok := bySecret[g.Secret]
		if !ok {
			r = &SecretResult{Secret: g.Secret}
			bySecret[g.Secret] = r
		}
		r.Games++
		r.Attempts += g.Attempts
		if !g.Won {
			r.Losses++
		}
	}
	items := make([]SecretResult, 0, len(bySecret))
	for _, r := range bySecret {
		items = append(items, *r)
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Losses != b.Losses {
			return a.Losses > b.Losses
		}
		// Compare mean attempts without division.
		if ma, mb := a.Attempts*b.Games, b.Attempts*a.Games; ma != mb {
			return ma > mb
		}
		return a.Secret < b.Secret
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
