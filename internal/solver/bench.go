package solver

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/tuidle/internal/lexicon"
	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/oracle"
)

// BenchOptions controls a benchmark run.
type BenchOptions struct {
	Options
	Mode oracle.Mode
	// Jobs limits concurrent games; zero means GOMAXPROCS.
	Jobs int
}

// Bench plays one game per secret in parallel. Every game gets its own clone of
// base and its own oracle. Results are returned in the order of secrets.
// A game that runs out of candidates is recorded as lost. progress, if set, is
// called once per finished game from the worker goroutines.
func Bench(ctx context.Context, base *lexicon.Filter, secrets []string, opts BenchOptions, progress func()) ([]model.GameRecord, error) {
	if len(secrets) == 0 {
		return nil, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]model.GameRecord, len(secrets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(secrets)))

	for i, secret := range secrets {
		g.Go(func() error {
			o, err := oracle.NewWithLength(secret, base.WordLength(), opts.Mode)
			if err != nil {
				return err
			}
			rec, err := Play(gctx, base.Clone(), o, opts.Options)
			if err != nil && !errors.Is(err, lexicon.ErrNoCandidates) {
				return err
			}
			rec.Source = model.SourceBench
			results[i] = rec
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
