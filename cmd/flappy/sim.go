package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagRuns     int
	flagMaxTicks int
	flagMargin   float64
	flagTop      int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless autopilot games",
	Long: `Play --runs games with the built-in autopilot as fast as possible and
print the best of them. Runs are not paced by the tick interval. A run that
reaches --max-ticks is cut off and recorded with its score so far.

Run i uses seed --seed+i, so a fixed --seed replays the same games.

Examples:
  flappy sim
  flappy sim --runs 50 --variant drift
  flappy sim --seed 1 --margin 25`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of runs")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 20000, "Tick limit per run")
	simCmd.Flags().Float64Var(&flagMargin, "margin", 10, "Autopilot aim distance above the gap bottom")
	simCmd.Flags().IntVar(&flagTop, "top", 10, "Number of runs to list")
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagRuns <= 0 || flagMaxTicks <= 0 {
		return fmt.Errorf("--runs and --max-ticks must be positive")
	}

	cfg, err := resolveConfig(flagVariant)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pilot := flappy.Autopilot{Margin: flagMargin}

	best := 0
	for i := 0; i < flagRuns; i++ {
		session, err := flappy.NewSession(cfg, flappy.NewRandomPlacement(seed+int64(i)))
		if err != nil {
			return err
		}

		run := simulate(session, pilot, uint64(flagMaxTicks))
		run.Variant = flagVariant
		best = core.Max(best, run.Score)
		run.BestScore = best

		if err := store.RecordRun(run); err != nil {
			return err
		}
		logger.Debug("run finished", "run", i+1, "score", run.Score, "ticks", run.Ticks, "reason", string(run.Reason))
	}

	logger.Info("simulation done", "variant", flagVariant, "runs", flagRuns, "seed", seed)
	return printSimResults(cmd, store)
}

// simulate plays one run to game over or the tick limit.
func simulate(s *flappy.Session, pilot flappy.Autopilot, maxTicks uint64) flappy.RunResult {
	for {
		result := s.Step(pilot.Frame(s.Snapshot()))
		if result.Ended || s.Ticks() >= maxTicks {
			break
		}
	}

	return flappy.RunResult{
		Score:   s.Score(),
		Ticks:   s.Ticks(),
		Reason:  s.Reason(),
		EndedAt: time.Now(),
	}
}

func printSimResults(cmd *cobra.Command, store *storage.Store) error {
	out := cmd.OutOrStdout()

	runs, err := store.TopRuns(flagVariant, flagTop)
	if err != nil {
		return err
	}
	stats, err := store.Stats(flagVariant)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Autopilot runs - %s\n", flagVariant)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  %-4s  %-6s  %-8s  %s\n", "Rank", "Score", "Ticks", "Ended by")
	fmt.Fprintf(out, "  %-4s  %-6s  %-8s  %s\n", "----", "-----", "-----", "--------")

	for i, r := range runs {
		reason := string(r.Reason)
		if r.Reason == flappy.ReasonNone {
			reason = "tick limit"
		}
		fmt.Fprintf(out, "  %-4d  %-6d  %-8d  %s\n", i+1, r.Score, r.Ticks, reason)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Runs: %d  Best: %d  Average: %.2f\n", stats.Runs, stats.Best, stats.Average)
	return nil
}
