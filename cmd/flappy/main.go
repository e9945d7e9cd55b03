// flappy is a terminal side-scroller: keep the body airborne and fly it
// through the gaps of the oncoming obstacles.
//
// Usage:
//
//	flappy play [variant]    - Play a variant
//	flappy menu              - Pick variants interactively; keeps a run history
//	flappy sim               - Headless autopilot runs with a results table
//	flappy variants          - List available variants
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--variant <id>      - Variant to use (default: classic)
//	--config <path>     - YAML overlay for the variant's configuration
//	--seed <value>      - RNG seed for reproducible obstacle placement
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var (
	// Global flags
	flagVariant  string
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - fly through the gaps in your terminal",
	Long: `Flappy is a terminal side-scroller. Gravity pulls the body down, each
flap sends it up, and every obstacle cleared scores a point.

Available commands:
  play      - Play a variant directly
  menu      - Interactive variant picker with run history
  sim       - Headless autopilot runs
  variants  - Show all available variants
  config    - Print the effective configuration

Examples:
  flappy play
  flappy play wide --seed 42
  flappy menu
  flappy sim --runs 20 --variant drift
  flappy config --variant wide > my-flappy.yaml
  flappy play --config ./my-flappy.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", flappy.DefaultVariant, "Variant to use")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config overlay")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(configCmd)
}

// resolveConfig builds the validated configuration of a variant with the
// --config overlay applied.
func resolveConfig(variant string) (config.FlappyConfig, error) {
	if !registry.Exists(variant) {
		return config.FlappyConfig{}, fmt.Errorf("unknown variant %q (run 'flappy variants' to list them)", variant)
	}

	base, err := registry.Create(variant)
	if err != nil {
		return config.FlappyConfig{}, err
	}

	if flagConfig == "" && variant != flappy.DefaultVariant {
		// Only the default variant picks up the user's config file implicitly
		return base, config.Validate(base)
	}
	return config.Load(flagConfig, base)
}

// newLogger creates the logger for a command. fallback receives logs when no
// --log-file is given. The returned closer releases the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w := fallback
	closer := func() {}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           level,
	})
	return logger, closer, nil
}
