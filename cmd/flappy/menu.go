package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a variant.
After quitting a game you return to the menu. Tab opens the history of
the runs played since the menu started; it is gone when you quit.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play variant
  Tab          - Run history
  Q            - Quit`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	runtime := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, runtime)
		if err != nil {
			return err
		}
		runtime = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsHistory {
			goBack, err := tui.RunHistory(store, runtime.ScreenW, runtime.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from history
		}

		cfg, err := resolveConfig(menuResult.VariantID)
		if err != nil {
			logger.Error("cannot load variant", "variant", menuResult.VariantID, "error", err)
			continue
		}

		err = tui.Run(tui.Options{
			Variant: menuResult.VariantID,
			Config:  cfg,
			Store:   store,
			Logger:  logger,
			Runtime: runtime,
		})
		if err != nil {
			return err
		}
	}
}
