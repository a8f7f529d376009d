package sweep

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"connscore/domain/connect"
	"connscore/domain/core"
	"connscore/domain/profile"
	"connscore/internal/nullmodel"
	"connscore/internal/scoring"
	"connscore/internal/significance"
)

// DefaultWorkers is the fixed pool size used when the caller does not
// configure one.
const DefaultWorkers = 4

// Runner fans independent window evaluations out over a fixed worker pool
// and reassembles the series in ascending sweep order. Every point is
// computed with no dependency on any other, so the only shared state is the
// immutable inputs and the index-addressed result buffer.
type Runner struct {
	engine    *scoring.Engine
	estimator *significance.Estimator
	workers   int
}

// NewRunner creates a sweep runner. A non-positive worker count falls back
// to DefaultWorkers.
func NewRunner(engine *scoring.Engine, estimator *significance.Estimator, workers int) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Runner{engine: engine, estimator: estimator, workers: workers}
}

// Workers returns the configured pool size
func (r *Runner) Workers() int {
	return r.workers
}

// SweepByWindowLength evaluates the score for every window length m = 1..N
// at offset 0. The output is ordered by m regardless of worker scheduling.
func (r *Runner) SweepByWindowLength(ctx context.Context, ref *profile.ReferenceProfile, sig *profile.QuerySignature) ([]connect.ScoreResult, error) {
	n := ref.Size()
	results := make([]connect.ScoreResult, n)

	err := r.runChunks(ctx, n, func(i int) error {
		res, err := r.engine.ConnectionScore(sig, ref, profile.Window{Length: i + 1, Offset: 0})
		if err != nil {
			return err
		}
		results[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SweepByOffset evaluates the score for a fixed window length m at every
// offset F = 0..N-m, characterizing how the score degrades as matched
// entries slide to lower ranks.
func (r *Runner) SweepByOffset(ctx context.Context, ref *profile.ReferenceProfile, sig *profile.QuerySignature, m int) ([]connect.ScoreResult, error) {
	n := ref.Size()
	if m < 1 || m > n {
		return nil, fmt.Errorf("%w: m=%d n=%d", core.ErrInvalidWindowLength, m, n)
	}
	points := n - m + 1
	results := make([]connect.ScoreResult, points)

	err := r.runChunks(ctx, points, func(i int) error {
		res, err := r.engine.ConnectionScore(sig, ref, profile.Window{Length: m, Offset: i})
		if err != nil {
			return err
		}
		results[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SweepSignificance composes the window-length sweep with a significance
// estimate per point, reusing one random population across the whole sweep.
func (r *Runner) SweepSignificance(ctx context.Context, ref *profile.ReferenceProfile, sig *profile.QuerySignature, population *nullmodel.Population) ([]connect.SignificanceResult, error) {
	if population == nil || population.Size() == 0 {
		return nil, core.ErrEmptyPopulation
	}
	n := ref.Size()
	results := make([]connect.SignificanceResult, n)

	err := r.runChunks(ctx, n, func(i int) error {
		w := profile.Window{Length: i + 1, Offset: 0}
		observed, err := r.engine.ConnectionScore(sig, ref, w)
		if err != nil {
			return err
		}
		res, err := r.estimator.EstimatePValue(ctx, observed, ref, population)
		if err != nil {
			return err
		}
		results[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// runChunks partitions [0, points) into contiguous chunks across the worker
// pool. Workers write only their own index range, so the merged series is
// already in ascending sweep order when the barrier completes. Any chunk
// error aborts the whole sweep; a partial series is never returned.
func (r *Runner) runChunks(ctx context.Context, points int, eval func(i int) error) error {
	if points <= 0 {
		return nil
	}
	workers := r.workers
	if workers > points {
		workers = points
	}
	chunk := (points + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < points; start += chunk {
		end := start + chunk
		if end > points {
			end = points
		}
		start, end := start, end
		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				if err := eval(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
