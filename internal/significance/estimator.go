package significance

import (
	"context"
	"math"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/stat/distuv"

	"connscore/domain/connect"
	"connscore/domain/core"
	"connscore/domain/profile"
	"connscore/internal/nullmodel"
	"connscore/internal/scoring"
)

// defaultParallelism bounds concurrent population chunks. The population is
// read-only, so workers share it without locks.
const defaultParallelism = 4

// Estimator computes empirical p-values for observed connection scores by
// scoring every signature of a random population against the same profile
// and window, then counting scores strictly greater than the observed one.
type Estimator struct {
	engine      *scoring.Engine
	maxParallel int64
}

// NewEstimator creates an estimator backed by the given score engine
func NewEstimator(engine *scoring.Engine) *Estimator {
	return &Estimator{engine: engine, maxParallel: defaultParallelism}
}

// SetMaxParallel bounds the number of concurrently scored population chunks
func (e *Estimator) SetMaxParallel(n int) {
	if n < 1 {
		n = 1
	}
	e.maxParallel = int64(n)
}

// EstimatePValue scores the whole population against the observed window and
// returns the empirical p-value count/R. The denominator MaxStrength is
// fixed by (N, m) and computed once, never per random draw, so an observed
// score of 1 can never be exceeded: the result is then exactly 0 for every
// population and seed.
func (e *Estimator) EstimatePValue(ctx context.Context, observed connect.ScoreResult, ref *profile.ReferenceProfile, population *nullmodel.Population) (connect.SignificanceResult, error) {
	if population == nil || population.Size() == 0 {
		return connect.SignificanceResult{}, core.ErrEmptyPopulation
	}
	w := observed.Window
	if err := w.Validate(ref.Size()); err != nil {
		return connect.SignificanceResult{}, err
	}

	maxStrength, err := e.engine.MaxConnectionStrength(ref.Size(), w.Length)
	if err != nil {
		return connect.SignificanceResult{}, err
	}

	scores, err := e.scorePopulation(ctx, ref, w, population, maxStrength)
	if err != nil {
		return connect.SignificanceResult{}, err
	}

	// One-tailed upper test: strictly greater than observed. Ties are not
	// counted as extreme; that policy is pinned by tests.
	exceedCount := 0
	for _, s := range scores {
		if s > observed.Score {
			exceedCount++
		}
	}
	pValue := float64(exceedCount) / float64(len(scores))

	summary := summarizeNull(scores)

	return connect.SignificanceResult{
		Window:             w,
		Score:              observed.Score,
		PValue:             pValue,
		NormalApproxPValue: normalApproxPValue(observed.Score, summary, pValue),
		ExceedCount:        exceedCount,
		PopulationSize:     len(scores),
		NullSummary:        summary,
	}, nil
}

// scorePopulation maps the score computation over the population in
// contiguous chunks behind a weighted semaphore. Each worker writes only its
// own index range, so no synchronization is needed beyond the join.
func (e *Estimator) scorePopulation(ctx context.Context, ref *profile.ReferenceProfile, w profile.Window, population *nullmodel.Population, maxStrength float64) ([]float64, error) {
	size := population.Size()
	scores := make([]float64, size)

	workers := int(e.maxParallel)
	if workers > size {
		workers = size
	}
	chunk := (size + workers - 1) / workers

	sem := semaphore.NewWeighted(e.maxParallel)
	errs := make(chan error, workers+1)
	var wg sync.WaitGroup

	for start := 0; start < size; start += chunk {
		end := start + chunk
		if end > size {
			end = size
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			errs <- err
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			defer sem.Release(1)
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				default:
				}
				strength, err := e.engine.ConnectionStrength(population.At(i), ref, w)
				if err != nil {
					errs <- err
					return
				}
				if w.IsDegenerate() {
					scores[i] = 0
					continue
				}
				scores[i] = strength / maxStrength
			}
		}(start, end)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return scores, nil
}

// summarizeNull condenses the null score distribution for audit output.
// The sample standard deviation is undefined for a single draw; report 0
// spread instead of NaN so the summary stays JSON-encodable.
func summarizeNull(scores []float64) connect.NullDistributionSummary {
	mean, _ := stats.Mean(scores)
	stdDev, _ := stats.StandardDeviationSample(scores)
	if math.IsNaN(stdDev) {
		stdDev = 0
	}
	min, _ := stats.Min(scores)
	max, _ := stats.Max(scores)
	p95, _ := stats.Percentile(scores, 95)
	p99, _ := stats.Percentile(scores, 99)

	return connect.NullDistributionSummary{
		Mean:         mean,
		StdDev:       stdDev,
		Min:          min,
		Max:          max,
		Percentile95: p95,
		Percentile99: p99,
	}
}

// normalApproxPValue is the companion upper-tail p-value under a normal fit
// of the null distribution. Falls back to the empirical value when the null
// has no spread.
func normalApproxPValue(observed float64, summary connect.NullDistributionSummary, empirical float64) float64 {
	if summary.StdDev <= 0 || math.IsNaN(summary.StdDev) {
		return empirical
	}
	z := (observed - summary.Mean) / summary.StdDev
	return 1 - distuv.UnitNormal.CDF(z)
}
