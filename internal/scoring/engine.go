package scoring

import (
	"fmt"

	"connscore/domain/connect"
	"connscore/domain/core"
	"connscore/domain/profile"
)

// WeightFunc maps a 1-based rank in an n-entry profile to the magnitude that
// rank can contribute. MaxConnectionStrength is only a true maximum when the
// function is monotonically non-increasing in rank.
type WeightFunc func(n, rank int) float64

// LinearRankWeight is the canonical weighting: rank 1 contributes n, each
// following rank one less, rank n contributes 1.
func LinearRankWeight(n, rank int) float64 {
	return float64(n - rank + 1)
}

// Engine computes connection strength and score between a query signature
// and a reference profile over a positional window.
//
// Precondition on callers: the profile must be ordered by non-increasing
// magnitude for the "maximum strength" semantics to hold. The engine does
// not clamp, so a profile violating the ordering can score above 1.
type Engine struct {
	weight WeightFunc
}

// NewEngine creates an engine with the canonical linear rank weighting
func NewEngine() *Engine {
	return &Engine{weight: LinearRankWeight}
}

// NewEngineWithWeight creates an engine with a caller-supplied weighting
func NewEngineWithWeight(weight WeightFunc) *Engine {
	return &Engine{weight: weight}
}

// MaxConnectionStrength returns the largest strength any signature can reach
// over a length-m window of an n-entry profile. It depends only on (n, m),
// never on offset or signature content.
func (e *Engine) MaxConnectionStrength(n, m int) (float64, error) {
	if n <= 0 {
		return 0, core.ErrInvalidProfileSize
	}
	if m < 0 || m > n {
		return 0, fmt.Errorf("%w: m=%d n=%d", core.ErrInvalidWindowLength, m, n)
	}
	total := 0.0
	for i := 1; i <= m; i++ {
		total += e.weight(n, i)
	}
	return total, nil
}

// ConnectionStrength computes the elementwise sign-weighted sum over the
// window: sum of signature sign times profile weight at each covered rank.
func (e *Engine) ConnectionStrength(sig *profile.QuerySignature, ref *profile.ReferenceProfile, w profile.Window) (float64, error) {
	values, err := ref.Slice(w)
	if err != nil {
		return 0, err
	}
	signs, err := sig.Slice(w)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range signs {
		sum += float64(signs[i]) * values[i]
	}
	return sum, nil
}

// ConnectionScore normalizes the connection strength by the theoretical
// maximum for the window length. A zero-length window scores 0 by
// convention rather than dividing by zero.
func (e *Engine) ConnectionScore(sig *profile.QuerySignature, ref *profile.ReferenceProfile, w profile.Window) (connect.ScoreResult, error) {
	if err := w.Validate(ref.Size()); err != nil {
		return connect.ScoreResult{}, err
	}
	if w.IsDegenerate() {
		return connect.ScoreResult{Window: w}, nil
	}

	strength, err := e.ConnectionStrength(sig, ref, w)
	if err != nil {
		return connect.ScoreResult{}, err
	}
	maxStrength, err := e.MaxConnectionStrength(ref.Size(), w.Length)
	if err != nil {
		return connect.ScoreResult{}, err
	}

	return connect.ScoreResult{
		Window:      w,
		Strength:    strength,
		MaxStrength: maxStrength,
		Score:       strength / maxStrength,
	}, nil
}
