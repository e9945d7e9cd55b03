package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (or --variant, default classic).

Controls:
  Space/Up/W   - Flap (also starts a run)
  Left/A       - Move left
  Right/D      - Move right
  R            - Restart (after game over)
  ?            - Toggle help
  Ctrl+S       - Save a text screenshot to ~/.flappy/screenshots
  Q/Ctrl+C     - Quit

Examples:
  flappy play
  flappy play wide
  flappy play drift --seed 7
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// runtimeConfig reads the terminal size, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) error {
	variant := flagVariant
	if len(args) == 1 {
		variant = args[0]
	}

	cfg, err := resolveConfig(variant)
	if err != nil {
		return err
	}

	// Logs would corrupt the alt screen; discard unless a file is given
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open()
	if err != nil {
		logger.Warn("run history unavailable", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	logger.Info("starting", "variant", variant, "tick", cfg.Timing.TickInterval)

	return tui.Run(tui.Options{
		Variant: variant,
		Config:  cfg,
		Store:   store,
		Logger:  logger,
		Runtime: runtimeConfig(),
	})
}
