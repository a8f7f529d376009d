package testkit

import (
	"connscore/adapters/rng"
	"connscore/domain/profile"
	"connscore/ports"
)

// TestKit provides deterministic fixtures for kernel tests
type TestKit struct{}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{}
}

// RNGAdapter returns a seeded RNG adapter
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return rng.NewSeededAdapter()
}

// MustSyntheticProfile builds the canonical synthetic profile or panics.
// Only for tests where n is a known-good constant.
func (t *TestKit) MustSyntheticProfile(n int) *profile.ReferenceProfile {
	ref, err := profile.NewSyntheticProfile(n)
	if err != nil {
		panic(err)
	}
	return ref
}

// MatchingSignature derives the best-case signature for a profile
func (t *TestKit) MatchingSignature(ref *profile.ReferenceProfile) *profile.QuerySignature {
	return profile.DeriveSignature(ref)
}

// AntiSignature derives the worst-case signature: every sign inverted
func (t *TestKit) AntiSignature(ref *profile.ReferenceProfile) *profile.QuerySignature {
	signs := profile.DeriveSignature(ref).Signs()
	for i := range signs {
		signs[i] = -signs[i]
	}
	sig, err := profile.NewQuerySignature(signs)
	if err != nil {
		panic(err)
	}
	return sig
}
