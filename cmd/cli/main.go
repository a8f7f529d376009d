package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"connscore/adapters/rng"
	"connscore/app"
	"connscore/domain/connect"
	"connscore/domain/profile"
	"connscore/internal"
	"connscore/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("No .env file found, using environment defaults")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "connscore-cli",
		Short: "Rank-weighted connection scoring with permutation significance",
	}

	rootCmd.AddCommand(
		newScoreCmd(cfg),
		newSweepCmd(cfg),
		newSignificanceCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScoreCmd(cfg *config.Config) *cobra.Command {
	var size, window, offset int

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a single window of the synthetic profile",
		Long: `Score the derived matching signature against the synthetic reference
profile over one window.

Example: connscore-cli score --size 10 --window 5 --offset 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newService(cfg)
			result, err := service.ScoreWindow(cmd.Context(), size, profile.Window{Length: window, Offset: offset})
			if err != nil {
				return err
			}

			fmt.Printf("📊 CONNECTION SCORE\n")
			fmt.Printf("Profile Size: %d\n", size)
			fmt.Printf("Window: %s\n", result.Window)
			fmt.Printf("Strength: %.4f\n", result.Strength)
			fmt.Printf("Max Strength: %.4f\n", result.MaxStrength)
			fmt.Printf("Score: %.6f\n", result.Score)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", cfg.Profile.Size, "Reference profile size N")
	cmd.Flags().IntVar(&window, "window", cfg.Profile.WindowLength, "Window length m")
	cmd.Flags().IntVar(&offset, "offset", cfg.Profile.WindowOffset, "Window offset F")
	return cmd
}

func newSweepCmd(cfg *config.Config) *cobra.Command {
	var size, window, workers int
	var byOffset, jsonOut bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep the score over window lengths or offsets",
		Long: `Run an ordered score sweep over window lengths m = 1..N, or with
--by-offset over offsets F = 0..N-m for a fixed window length.

Example: connscore-cli sweep --size 20 --by-offset --window 5 --workers 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newServiceWithWorkers(cfg, workers)
			req := app.SweepRequest{
				ProfileSize: size,
				Kind:        connect.SweepWindowLength,
			}
			if byOffset {
				req.Kind = connect.SweepOffset
				req.WindowLength = window
			}

			outcome, err := service.RunSweep(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(outcome)
			}

			fmt.Printf("📈 SCORE SWEEP (%s)\n", outcome.Manifest.Kind)
			fmt.Printf("Sweep ID: %s\n", outcome.SweepID)
			fmt.Printf("Points: %d  Runtime: %dms\n", outcome.Manifest.PointCount, outcome.Manifest.RuntimeMs)
			fmt.Printf("Fingerprint: %s\n\n", outcome.Manifest.Fingerprint)
			for _, r := range outcome.Scores {
				fmt.Printf("  %-12s strength=%10.2f max=%10.2f score=%.6f\n",
					r.Window, r.Strength, r.MaxStrength, r.Score)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", cfg.Profile.Size, "Reference profile size N")
	cmd.Flags().IntVar(&window, "window", cfg.Profile.WindowLength, "Window length m for offset sweeps")
	cmd.Flags().IntVar(&workers, "workers", cfg.Sweep.Workers, "Worker pool size")
	cmd.Flags().BoolVar(&byOffset, "by-offset", false, "Sweep offsets for a fixed window length")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the outcome as JSON")
	return cmd
}

func newSignificanceCmd(cfg *config.Config) *cobra.Command {
	var size, populationSize, workers int
	var seed int64
	var jsonOut, verify bool

	cmd := &cobra.Command{
		Use:   "significance",
		Short: "Sweep window lengths with empirical p-values",
		Long: `Run the window-length sweep and estimate an empirical p-value per
point against a seeded random signature population.

Example: connscore-cli significance --size 20 --population 1000 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			service := newServiceWithWorkers(cfg, workers)
			outcome, err := service.RunSweep(cmd.Context(), app.SweepRequest{
				ProfileSize:    size,
				Kind:           connect.SweepSignificance,
				PopulationSize: populationSize,
				Seed:           seed,
			})
			if err != nil {
				return err
			}
			if verify {
				if err := service.VerifySweep(cmd.Context(), outcome); err != nil {
					return err
				}
			}
			if jsonOut {
				return printJSON(outcome)
			}

			fmt.Printf("🎲 SIGNIFICANCE SWEEP\n")
			fmt.Printf("Sweep ID: %s\n", outcome.SweepID)
			fmt.Printf("Created: %s\n", outcome.Manifest.CreatedAt.Format(time.RFC3339))
			fmt.Printf("Population: %d  Seed: %d  Runtime: %dms\n",
				populationSize, seed, outcome.Manifest.RuntimeMs)
			fmt.Printf("Fingerprint: %s\n\n", outcome.Manifest.Fingerprint)
			for _, r := range outcome.Significance {
				fmt.Printf("  %-12s score=%.6f p=%.6f (normal approx %.6f, %d/%d exceed)\n",
					r.Window, r.Score, r.PValue, r.NormalApproxPValue, r.ExceedCount, r.PopulationSize)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", cfg.Profile.Size, "Reference profile size N")
	cmd.Flags().IntVar(&populationSize, "population", cfg.Population.Size, "Random population size R")
	cmd.Flags().Int64Var(&seed, "seed", cfg.Population.Seed, "Random seed for deterministic runs")
	cmd.Flags().IntVar(&workers, "workers", cfg.Sweep.Workers, "Worker pool size")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the outcome as JSON")
	cmd.Flags().BoolVar(&verify, "verify", false, "Replay the sweep from its manifest and check the fingerprint")
	return cmd
}

func newService(cfg *config.Config) *app.ConnectionService {
	return newServiceWithWorkers(cfg, cfg.Sweep.Workers)
}

func newServiceWithWorkers(cfg *config.Config, workers int) *app.ConnectionService {
	if workers <= 0 {
		workers = cfg.Sweep.Workers
	}
	return app.NewConnectionService(rng.NewSeededAdapter(), workers)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
