package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-rush/internal/games/rush"
	"github.com/vovakirdan/lane-rush/internal/platform/tui"
	"github.com/vovakirdan/lane-rush/internal/registry"
	"github.com/vovakirdan/lane-rush/internal/storage"
)

var flagTheme string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start Lane Rush directly, skipping the menu.

Controls:
  Left/Right, A/D  - Change lane
  Up/Space, W      - Jump (clears low barriers)
  Down, S          - Slide (passes under vehicles)
  Mouse drag       - Swipe in that direction
  Enter            - Start / play again
  P                - Pause / resume
  R                - Reset to the start screen
  C                - Next character
  T                - Toggle theme
  ?                - Help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start slow, ramps to full speed
  normal - Start at 30% of the ramp
  hard   - Start at 70% of the ramp
  fixed  - No ramp, stays at the config's initial level

Examples:
  rush play
  rush play --difficulty easy
  rush play --skin alien --theme light
  rush play --config ./my-rush.yaml
  rush play --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "dark", "Color theme: dark, light")
	menuCmd.Flags().StringVar(&flagTheme, "theme", "dark", "Color theme: dark, light")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()
	rush.SetLogger(logger)

	game, err := registry.Create(rush.GameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Continue without storage - the game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, terminalConfig(), tui.ThemeByName(flagTheme), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
