package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/games/rush"
	"github.com/vovakirdan/lane-rush/internal/platform/tui"
	"github.com/vovakirdan/lane-rush/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start Lane Rush in menu mode.

Pick a character, difficulty and theme, then play. Leaving a paused or
finished run returns to the menu. High scores are one key away.

Controls:
  Up/Down      - Navigate
  Left/Right   - Change the option under the cursor
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  rush menu
  rush menu --fps 30
  rush menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()
	rush.SetLogger(logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	choice := tui.MenuChoice{
		Skin:       flagSkin,
		Difficulty: config.ParsePreset(flagDifficulty),
		Theme:      tui.ThemeByName(flagTheme),
	}
	if err := tui.RunSession(store, terminalConfig(), choice, logger); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
