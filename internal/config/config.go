package config

import (
	"os"
	"strconv"

	"connscore/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Profile    ProfileConfig
	Population PopulationConfig
	Sweep      SweepConfig
}

// ProfileConfig holds reference profile and window settings
type ProfileConfig struct {
	Size         int // N, number of ranked entries
	WindowLength int // m, default window length for offset sweeps
	WindowOffset int // F, default positional offset
}

// PopulationConfig holds random signature population settings
type PopulationConfig struct {
	Size int   // R, number of random signatures per estimation run
	Seed int64 // base seed for reproducible runs
}

// SweepConfig holds parallel sweep execution settings
type SweepConfig struct {
	Workers int // fixed worker pool size
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Profile: ProfileConfig{
			Size:         getEnvIntOrDefault("PROFILE_SIZE", 100),
			WindowLength: getEnvIntOrDefault("WINDOW_LENGTH", 10),
			WindowOffset: getEnvIntOrDefault("WINDOW_OFFSET", 0),
		},
		Population: PopulationConfig{
			Size: getEnvIntOrDefault("POPULATION_SIZE", 1000),
			Seed: getEnvInt64OrDefault("RNG_SEED", 42),
		},
		Sweep: SweepConfig{
			Workers: getEnvIntOrDefault("SWEEP_WORKERS", 4),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Profile.Size <= 0 {
		return errors.ConfigInvalid("PROFILE_SIZE must be positive")
	}
	if config.Profile.WindowLength < 0 {
		return errors.ConfigInvalid("WINDOW_LENGTH must not be negative")
	}
	if config.Profile.WindowOffset < 0 {
		return errors.ConfigInvalid("WINDOW_OFFSET must not be negative")
	}
	if config.Profile.WindowLength+config.Profile.WindowOffset > config.Profile.Size {
		return errors.ConfigInvalid("window must fit inside the profile")
	}
	if config.Population.Size <= 0 {
		return errors.ConfigInvalid("POPULATION_SIZE must be positive")
	}
	if config.Sweep.Workers <= 0 {
		return errors.ConfigInvalid("SWEEP_WORKERS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
