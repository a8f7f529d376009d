package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Profile.Size)
	assert.Equal(t, 10, cfg.Profile.WindowLength)
	assert.Equal(t, 0, cfg.Profile.WindowOffset)
	assert.Equal(t, 1000, cfg.Population.Size)
	assert.Equal(t, int64(42), cfg.Population.Seed)
	assert.Equal(t, 4, cfg.Sweep.Workers)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PROFILE_SIZE", "50")
	t.Setenv("WINDOW_LENGTH", "7")
	t.Setenv("POPULATION_SIZE", "250")
	t.Setenv("RNG_SEED", "-12345")
	t.Setenv("SWEEP_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Profile.Size)
	assert.Equal(t, 7, cfg.Profile.WindowLength)
	assert.Equal(t, 250, cfg.Population.Size)
	assert.Equal(t, int64(-12345), cfg.Population.Seed)
	assert.Equal(t, 8, cfg.Sweep.Workers)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-positive profile size", key: "PROFILE_SIZE", value: "0"},
		{name: "negative window length", key: "WINDOW_LENGTH", value: "-1"},
		{name: "non-positive population", key: "POPULATION_SIZE", value: "0"},
		{name: "non-positive workers", key: "SWEEP_WORKERS", value: "-2"},
		{name: "window larger than profile", key: "WINDOW_LENGTH", value: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestMalformedEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("PROFILE_SIZE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Profile.Size)
}
