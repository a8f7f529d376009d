package nullmodel

import (
	"context"
	"fmt"
	"math/rand"

	"connscore/domain/core"
	"connscore/domain/profile"
	"connscore/ports"
)

// Population is a read-only collection of independently drawn random sign
// sequences. It is generated once per estimation run and shared across all
// parallel workers without locking.
type Population struct {
	signatures []*profile.QuerySignature
	seed       int64
}

// Size returns the number of signatures R
func (p *Population) Size() int {
	return len(p.signatures)
}

// At returns the i-th signature
func (p *Population) At(i int) *profile.QuerySignature {
	return p.signatures[i]
}

// Seed returns the seed the population was drawn from
func (p *Population) Seed() int64 {
	return p.seed
}

// NewPopulation wraps pre-built signatures into a population. Used by tests
// that need exact control over the null distribution.
func NewPopulation(signatures []*profile.QuerySignature) (*Population, error) {
	if len(signatures) == 0 {
		return nil, core.ErrEmptyPopulation
	}
	owned := make([]*profile.QuerySignature, len(signatures))
	copy(owned, signatures)
	return &Population{signatures: owned}, nil
}

// Generator produces random signature populations through an injectable
// seeded RNG so every run is reproducible.
type Generator struct {
	rngPort ports.RNGPort
}

// NewGenerator creates a population generator
func NewGenerator(rngPort ports.RNGPort) *Generator {
	return &Generator{rngPort: rngPort}
}

// Generate draws count independent signatures of the given length, each
// entry a uniform choice in {+1,-1}
func (g *Generator) Generate(ctx context.Context, length, count int, seed int64) (*Population, error) {
	if err := validateDraw(length, count); err != nil {
		return nil, err
	}
	stream, err := g.rngPort.SeededStream(ctx, "null-population", seed)
	if err != nil {
		return nil, fmt.Errorf("failed to open RNG stream: %w", err)
	}
	return g.draw(stream, length, count, seed)
}

// GenerateForRun draws a population from a run-scoped stream, so a sweep can
// be replayed exactly from its manifest: the same run ID and seed reproduce
// the same population.
func (g *Generator) GenerateForRun(ctx context.Context, runID core.RunID, length, count int, seed int64) (*Population, error) {
	if err := validateDraw(length, count); err != nil {
		return nil, err
	}
	stream, err := g.rngPort.Stream(ctx, runID.String(), "null-population", seed)
	if err != nil {
		return nil, fmt.Errorf("failed to open RNG stream: %w", err)
	}
	return g.draw(stream, length, count, seed)
}

func validateDraw(length, count int) error {
	if length <= 0 {
		return fmt.Errorf("%w: length=%d", core.ErrInvalidPopulation, length)
	}
	if count <= 0 {
		return fmt.Errorf("%w: count=%d", core.ErrInvalidPopulation, count)
	}
	return nil
}

func (g *Generator) draw(stream *rand.Rand, length, count int, seed int64) (*Population, error) {
	signatures := make([]*profile.QuerySignature, count)
	for i := 0; i < count; i++ {
		signs := make([]int, length)
		for j := range signs {
			if stream.Intn(2) == 0 {
				signs[j] = 1
			} else {
				signs[j] = -1
			}
		}
		sig, err := profile.NewQuerySignature(signs)
		if err != nil {
			return nil, err
		}
		signatures[i] = sig
	}

	return &Population{signatures: signatures, seed: seed}, nil
}
