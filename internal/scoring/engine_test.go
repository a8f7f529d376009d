package scoring

import (
	"testing"

	"connscore/domain/core"
	"connscore/domain/profile"
)

func mustProfile(t *testing.T, n int) *profile.ReferenceProfile {
	t.Helper()
	ref, err := profile.NewSyntheticProfile(n)
	if err != nil {
		t.Fatalf("failed to build profile: %v", err)
	}
	return ref
}

func TestMaxConnectionStrength(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name    string
		n, m    int
		want    float64
		wantErr bool
	}{
		{name: "canonical example N=10 m=5", n: 10, m: 5, want: 40},
		{name: "full window sums all ranks", n: 10, m: 10, want: 55},
		{name: "single rank takes top weight", n: 10, m: 1, want: 10},
		{name: "zero length sums nothing", n: 10, m: 0, want: 0},
		{name: "m beyond profile rejected", n: 10, m: 11, wantErr: true},
		{name: "negative m rejected", n: 10, m: -1, wantErr: true},
		{name: "non-positive profile rejected", n: 0, m: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.MaxConnectionStrength(tt.n, tt.m)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if !core.IsValidationError(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MaxConnectionStrength(%d, %d) = %v, want %v", tt.n, tt.m, got, tt.want)
			}
		})
	}
}

func TestMaxConnectionStrengthIdentity(t *testing.T) {
	// MaxConnectionStrength(n, m) must equal the closed-form sum of the m
	// largest rank weights for every m in range.
	engine := NewEngine()
	n := 25

	for m := 0; m <= n; m++ {
		want := 0.0
		for i := 1; i <= m; i++ {
			want += float64(n - i + 1)
		}
		got, err := engine.MaxConnectionStrength(n, m)
		if err != nil {
			t.Fatalf("m=%d: unexpected error: %v", m, err)
		}
		if got != want {
			t.Errorf("m=%d: got %v, want %v", m, got, want)
		}
	}
}

func TestConnectionScoreMatchingSignature(t *testing.T) {
	// A signature derived from the profile's own signs at offset 0 must
	// score exactly 1 for every window length, not approximately.
	engine := NewEngine()
	ref := mustProfile(t, 10)
	sig := profile.DeriveSignature(ref)

	for m := 1; m <= ref.Size(); m++ {
		result, err := engine.ConnectionScore(sig, ref, profile.Window{Length: m, Offset: 0})
		if err != nil {
			t.Fatalf("m=%d: unexpected error: %v", m, err)
		}
		if result.Score != 1 {
			t.Errorf("m=%d: score = %v, want exactly 1", m, result.Score)
		}
		if result.Strength != result.MaxStrength {
			t.Errorf("m=%d: strength %v != max strength %v", m, result.Strength, result.MaxStrength)
		}
	}
}

func TestConnectionScoreOffsetWindow(t *testing.T) {
	// N=10, m=5, F=5: window values [-5,4,-3,2,-1] against signs
	// [-1,1,-1,1,-1] gives strength 15; max strength stays 40.
	engine := NewEngine()
	ref := mustProfile(t, 10)
	sig := profile.DeriveSignature(ref)

	result, err := engine.ConnectionScore(sig, ref, profile.Window{Length: 5, Offset: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Strength != 15 {
		t.Errorf("strength = %v, want 15", result.Strength)
	}
	if result.MaxStrength != 40 {
		t.Errorf("max strength = %v, want 40 (depends only on N and m)", result.MaxStrength)
	}
	if result.Score != 0.375 {
		t.Errorf("score = %v, want 0.375", result.Score)
	}
}

func TestConnectionScoreOffsetMonotonicity(t *testing.T) {
	// For the matching signature, the score never increases as the window
	// slides to lower ranks: the weights strictly decrease with rank.
	engine := NewEngine()
	ref := mustProfile(t, 12)
	sig := profile.DeriveSignature(ref)
	m := 4

	prev := 2.0 // above any reachable score
	for f := 0; f <= ref.Size()-m; f++ {
		result, err := engine.ConnectionScore(sig, ref, profile.Window{Length: m, Offset: f})
		if err != nil {
			t.Fatalf("F=%d: unexpected error: %v", f, err)
		}
		if result.Score > prev {
			t.Errorf("F=%d: score %v increased above %v", f, result.Score, prev)
		}
		prev = result.Score
	}
}

func TestConnectionScoreDegenerateWindow(t *testing.T) {
	engine := NewEngine()
	ref := mustProfile(t, 10)
	sig := profile.DeriveSignature(ref)

	result, err := engine.ConnectionScore(sig, ref, profile.Window{Length: 0, Offset: 0})
	if err != nil {
		t.Fatalf("degenerate window must not error, got %v", err)
	}
	if result.Score != 0 || result.Strength != 0 || result.MaxStrength != 0 {
		t.Errorf("degenerate window = %+v, want all-zero result", result)
	}
}

func TestConnectionScoreWindowOutOfBounds(t *testing.T) {
	engine := NewEngine()
	ref := mustProfile(t, 10)
	sig := profile.DeriveSignature(ref)

	_, err := engine.ConnectionScore(sig, ref, profile.Window{Length: 6, Offset: 5})
	if err == nil {
		t.Fatal("expected error for offset+length past profile end")
	}
	if !core.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestConnectionStrengthShortSignature(t *testing.T) {
	engine := NewEngine()
	ref := mustProfile(t, 10)
	sig, err := profile.NewQuerySignature([]int{1, -1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := engine.ConnectionStrength(sig, ref, profile.Window{Length: 5, Offset: 0}); err == nil {
		t.Fatal("expected error when signature does not cover window")
	}
}

func TestCustomWeightFunc(t *testing.T) {
	// A flat weighting makes the maximum equal to the window length.
	engine := NewEngineWithWeight(func(n, rank int) float64 { return 1 })

	got, err := engine.MaxConnectionStrength(10, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Errorf("flat weighting max = %v, want 7", got)
	}
}
