package app

import (
	"context"
	"fmt"
	"time"

	"connscore/domain/connect"
	"connscore/domain/core"
	"connscore/domain/profile"
	"connscore/internal/errors"
	"connscore/internal/nullmodel"
	"connscore/internal/scoring"
	"connscore/internal/significance"
	"connscore/internal/sweep"
	"connscore/ports"
)

// ConnectionService orchestrates the scoring kernel: profile construction,
// window sweeps, and permutation significance, with an audit manifest per run.
type ConnectionService struct {
	engine    *scoring.Engine
	generator *nullmodel.Generator
	estimator *significance.Estimator
	runner    *sweep.Runner
}

// NewConnectionService wires the kernel components around an injectable RNG
func NewConnectionService(rngPort ports.RNGPort, workers int) *ConnectionService {
	engine := scoring.NewEngine()
	estimator := significance.NewEstimator(engine)
	if workers > 0 {
		estimator.SetMaxParallel(workers)
	}
	return &ConnectionService{
		engine:    engine,
		generator: nullmodel.NewGenerator(rngPort),
		estimator: estimator,
		runner:    sweep.NewRunner(engine, estimator, workers),
	}
}

// SweepRequest defines the inputs for one deterministic sweep run
type SweepRequest struct {
	ProfileSize    int
	Kind           connect.SweepKind
	WindowLength   int          // required for offset sweeps
	PopulationSize int          // required for significance sweeps
	Seed           int64        // seeds the random population
	SweepID        core.SweepID // optional, generated if empty
}

// SweepOutcome contains the complete output of a sweep run
type SweepOutcome struct {
	SweepID      core.SweepID                 `json:"sweep_id"`
	Scores       []connect.ScoreResult        `json:"scores,omitempty"`
	Significance []connect.SignificanceResult `json:"significance,omitempty"`
	Manifest     connect.SweepManifest        `json:"manifest"`
}

// ScoreWindow evaluates a single window against the synthetic profile of the
// requested size, using the derived matching signature.
func (s *ConnectionService) ScoreWindow(ctx context.Context, profileSize int, w profile.Window) (connect.ScoreResult, error) {
	ref, err := profile.NewSyntheticProfile(profileSize)
	if err != nil {
		return connect.ScoreResult{}, err
	}
	sig := profile.DeriveSignature(ref)
	return s.engine.ConnectionScore(sig, ref, w)
}

// RunSweep executes the requested sweep and assembles the audit manifest.
// Any failing point aborts the run; no partial series is returned.
func (s *ConnectionService) RunSweep(ctx context.Context, req SweepRequest) (*SweepOutcome, error) {
	startTime := time.Now()

	sweepID := req.SweepID
	if sweepID == "" {
		sweepID = core.SweepID(core.NewID())
	}

	ref, err := profile.NewSyntheticProfile(req.ProfileSize)
	if err != nil {
		return nil, err
	}
	sig := profile.DeriveSignature(ref)

	outcome := &SweepOutcome{SweepID: sweepID}

	switch req.Kind {
	case connect.SweepWindowLength:
		outcome.Scores, err = s.runner.SweepByWindowLength(ctx, ref, sig)
	case connect.SweepOffset:
		outcome.Scores, err = s.runner.SweepByOffset(ctx, ref, sig, req.WindowLength)
	case connect.SweepSignificance:
		// Run-scoped stream: the same sweep ID and seed replay the exact
		// same population, which is what VerifySweep relies on.
		var population *nullmodel.Population
		population, err = s.generator.GenerateForRun(ctx, core.RunID(sweepID), ref.Size(), req.PopulationSize, req.Seed)
		if err == nil {
			outcome.Significance, err = s.runner.SweepSignificance(ctx, ref, sig, population)
		}
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unknown sweep kind %q", req.Kind))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s sweep failed", req.Kind)
	}

	points := len(outcome.Scores)
	if req.Kind == connect.SweepSignificance {
		points = len(outcome.Significance)
	}

	outcome.Manifest = connect.SweepManifest{
		SweepID:        sweepID,
		Kind:           req.Kind,
		ProfileSize:    req.ProfileSize,
		WindowLength:   req.WindowLength,
		PopulationSize: req.PopulationSize,
		Seed:           req.Seed,
		PointCount:     points,
		RuntimeMs:      time.Since(startTime).Milliseconds(),
		Fingerprint:    s.computeFingerprint(req.Kind, outcome),
		CreatedAt:      core.Now(),
	}

	return outcome, nil
}

// VerifySweep checks a reported outcome against its manifest and then
// replays the sweep from the manifest alone. The manifest carries everything
// a replay needs; any divergence is a determinism error.
func (s *ConnectionService) VerifySweep(ctx context.Context, outcome *SweepOutcome) error {
	m := outcome.Manifest
	if outcome.SweepID != m.SweepID {
		return fmt.Errorf("%w: outcome %s vs manifest %s", core.ErrNonDeterministic, outcome.SweepID, m.SweepID)
	}
	if got := s.computeFingerprint(m.Kind, outcome); !got.Equals(m.Fingerprint) {
		return fmt.Errorf("%w: reported series hashes to %s, manifest records %s", core.ErrHashMismatch, got, m.Fingerprint)
	}

	replay, err := s.RunSweep(ctx, SweepRequest{
		ProfileSize:    m.ProfileSize,
		Kind:           m.Kind,
		WindowLength:   m.WindowLength,
		PopulationSize: m.PopulationSize,
		Seed:           m.Seed,
		SweepID:        m.SweepID,
	})
	if err != nil {
		return errors.Wrap(err, "sweep replay failed")
	}
	if replay.Manifest.Seed != m.Seed {
		return fmt.Errorf("%w: replay ran with seed %d, manifest records %d", core.ErrSeedMismatch, replay.Manifest.Seed, m.Seed)
	}
	if !replay.Manifest.Fingerprint.Equals(m.Fingerprint) {
		return fmt.Errorf("%w: replay fingerprint %s, manifest records %s", core.ErrHashMismatch, replay.Manifest.Fingerprint, m.Fingerprint)
	}
	return nil
}

// computeFingerprint hashes the ordered series so identical inputs and seeds
// can be verified to reproduce identical outputs
func (s *ConnectionService) computeFingerprint(kind connect.SweepKind, outcome *SweepOutcome) core.Hash {
	var values []float64
	switch kind {
	case connect.SweepSignificance:
		for _, r := range outcome.Significance {
			values = append(values, r.Score, r.PValue)
		}
	default:
		for _, r := range outcome.Scores {
			values = append(values, r.Score)
		}
	}
	return core.ComputeSeriesFingerprint(string(kind), values)
}
