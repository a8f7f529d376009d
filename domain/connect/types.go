package connect

import (
	"connscore/domain/core"
	"connscore/domain/profile"
)

// ScoreResult is the outcome of a single windowed score evaluation.
// Score = Strength / MaxStrength, or 0 by convention for a degenerate window.
type ScoreResult struct {
	Window      profile.Window `json:"window"`
	Strength    float64        `json:"strength"`
	MaxStrength float64        `json:"max_strength"`
	Score       float64        `json:"score"`
}

// NullDistributionSummary describes the score distribution produced by the
// random signature population backing a significance estimate.
type NullDistributionSummary struct {
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile95 float64 `json:"percentile_95"`
	Percentile99 float64 `json:"percentile_99"`
}

// SignificanceResult is the terminal output of the kernel for one window:
// the observed score plus its empirical p-value against the null population.
// PValue counts random scores strictly greater than the observed score;
// ties do not count as extreme.
type SignificanceResult struct {
	Window             profile.Window          `json:"window"`
	Score              float64                 `json:"score"`
	PValue             float64                 `json:"p_value"`
	NormalApproxPValue float64                 `json:"normal_approx_p_value"`
	ExceedCount        int                     `json:"exceed_count"`
	PopulationSize     int                     `json:"population_size"`
	NullSummary        NullDistributionSummary `json:"null_summary"`
}

// SweepKind identifies which parameter a sweep varies
type SweepKind string

const (
	SweepWindowLength SweepKind = "WINDOW_LENGTH"
	SweepOffset       SweepKind = "OFFSET"
	SweepSignificance SweepKind = "SIGNIFICANCE"
)

// SweepManifest is the audit record for one sweep run: what was swept, with
// which seed, and a deterministic fingerprint of the resulting series.
type SweepManifest struct {
	SweepID        core.SweepID   `json:"sweep_id"`
	Kind           SweepKind      `json:"kind"`
	ProfileSize    int            `json:"profile_size"`
	WindowLength   int            `json:"window_length,omitempty"`
	PopulationSize int            `json:"population_size,omitempty"`
	Seed           int64          `json:"seed"`
	PointCount     int            `json:"point_count"`
	RuntimeMs      int64          `json:"runtime_ms"`
	Fingerprint    core.Hash      `json:"fingerprint"`
	CreatedAt      core.Timestamp `json:"created_at"`
}
