package profile

import (
	"fmt"

	"connscore/domain/core"
)

// ReferenceProfile is an ordered sequence of signed weights ranked by
// non-increasing magnitude. Rank 1 carries the most significant measurement.
// The sign of each entry encodes direction of change. Immutable once built.
type ReferenceProfile struct {
	weights []float64
}

// NewReferenceProfile builds a profile from ranked signed weights.
// The slice is copied so later caller mutation cannot leak in.
func NewReferenceProfile(weights []float64) (*ReferenceProfile, error) {
	if len(weights) == 0 {
		return nil, core.ErrInvalidProfileSize
	}
	owned := make([]float64, len(weights))
	copy(owned, weights)
	return &ReferenceProfile{weights: owned}, nil
}

// NewSyntheticProfile builds the canonical test profile of size n: rank i
// carries magnitude n-i+1 with sign alternating by rank parity (even ranks
// negative). For n=4 the weights are [4, -3, 2, -1].
func NewSyntheticProfile(n int) (*ReferenceProfile, error) {
	if n <= 0 {
		return nil, core.ErrInvalidProfileSize
	}
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		w := float64(n - i)
		if (i+1)%2 == 0 {
			w = -w
		}
		weights[i] = w
	}
	return &ReferenceProfile{weights: weights}, nil
}

// Size returns the number of ranked entries N
func (p *ReferenceProfile) Size() int {
	return len(p.weights)
}

// Weights returns a copy of the ranked weights
func (p *ReferenceProfile) Weights() []float64 {
	out := make([]float64, len(p.weights))
	copy(out, p.weights)
	return out
}

// WeightAt returns the weight at 1-based rank. The rank must already be
// validated against the profile size (window validation does this).
func (p *ReferenceProfile) WeightAt(rank int) float64 {
	return p.weights[rank-1]
}

// Slice extracts the profile weights covered by the window, ranks
// [1+offset .. length+offset]
func (p *ReferenceProfile) Slice(w Window) ([]float64, error) {
	if err := w.Validate(p.Size()); err != nil {
		return nil, err
	}
	out := make([]float64, w.Length)
	copy(out, p.weights[w.Offset:w.Offset+w.Length])
	return out, nil
}

// QuerySignature is an ordered sequence of signs in {+1,-1} aligned
// positionally to the reference profile. It carries direction only, no
// magnitude or rank information. Immutable.
type QuerySignature struct {
	signs []int
}

// NewQuerySignature builds a signature from explicit signs
func NewQuerySignature(signs []int) (*QuerySignature, error) {
	if len(signs) == 0 {
		return nil, core.NewValidationError("signature", "must have at least one entry")
	}
	owned := make([]int, len(signs))
	for i, s := range signs {
		if s != 1 && s != -1 {
			return nil, fmt.Errorf("%w: entry %d is %d", core.ErrInvalidSign, i+1, s)
		}
		owned[i] = s
	}
	return &QuerySignature{signs: owned}, nil
}

// DeriveSignature derives the signature whose i-th sign matches the sign of
// the profile's i-th weight. Querying a profile with its own derived
// signature at offset 0 is the synthetic best-case match.
func DeriveSignature(p *ReferenceProfile) *QuerySignature {
	signs := make([]int, p.Size())
	for i, w := range p.weights {
		if w < 0 {
			signs[i] = -1
		} else {
			signs[i] = 1
		}
	}
	return &QuerySignature{signs: signs}
}

// Len returns the signature length
func (q *QuerySignature) Len() int {
	return len(q.signs)
}

// Signs returns a copy of the sign sequence
func (q *QuerySignature) Signs() []int {
	out := make([]int, len(q.signs))
	copy(out, q.signs)
	return out
}

// Slice extracts the signature entries covered by the window. Fails when the
// signature is too short to cover the window's upper rank.
func (q *QuerySignature) Slice(w Window) ([]int, error) {
	if w.Length < 0 || w.Offset < 0 {
		return nil, core.NewWindowError(w.Length, w.Offset, q.Len())
	}
	if w.Offset+w.Length > q.Len() {
		return nil, fmt.Errorf("%w: need rank %d, have %d entries",
			core.ErrSignatureTooShort, w.Offset+w.Length, q.Len())
	}
	out := make([]int, w.Length)
	copy(out, q.signs[w.Offset : w.Offset+w.Length])
	return out, nil
}

// Window selects the contiguous rank range [1+Offset .. Length+Offset] of a
// profile and its aligned signature. A zero-length window is the documented
// degenerate case scoring 0; it never errors.
type Window struct {
	Length int `json:"length"`
	Offset int `json:"offset"`
}

// Validate checks the window against a profile of the given size
func (w Window) Validate(profileSize int) error {
	if w.Length < 0 || w.Offset < 0 {
		return core.NewWindowError(w.Length, w.Offset, profileSize)
	}
	if w.Offset+w.Length > profileSize {
		return core.NewWindowError(w.Length, w.Offset, profileSize)
	}
	return nil
}

// IsDegenerate reports the zero-length window convention case
func (w Window) IsDegenerate() bool {
	return w.Length == 0
}

// String returns a compact representation for logs and fingerprints
func (w Window) String() string {
	return fmt.Sprintf("m=%d,F=%d", w.Length, w.Offset)
}
