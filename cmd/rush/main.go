// rush is a three-lane endless runner for the terminal, SSH and the browser.
//
// Usage:
//
//	rush play               - Run straight away
//	rush menu               - Start menu with character, difficulty and scores
//	rush list               - List available games
//	rush scores             - Show high scores and run stats
//	rush serve              - Start SSH server for remote play
//	rush web                - Start websocket server with a browser client
//	rush config             - Print the default config file
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.rush/scores.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/core"
	"github.com/vovakirdan/lane-rush/internal/games/rush"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagSkin       string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rush",
	Short: "Lane Rush - a three-lane endless runner",
	Long: `Lane Rush is an endless runner: switch lanes, jump low barriers,
slide under vehicles, grab coins and ride the power-ups.

Available commands:
  play     - Start a run directly
  menu     - Interactive start menu
  list     - Show all available games
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Start websocket server for browser play
  config   - Print the default configuration

Examples:
  rush play
  rush play --difficulty hard --skin robot
  rush menu
  rush serve --ssh :2222
  rush web --addr :8080
  rush scores`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown --difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
		}
		if _, ok := rush.LookupSkin(flagSkin); !ok {
			return fmt.Errorf("unknown --skin %q (%s)", flagSkin, strings.Join(skinIDs(), ", "))
		}

		rush.SetConfigPath(flagConfig)
		rush.SetDifficultyPreset(flagDifficulty)
		rush.SetCharacter(flagSkin)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rush/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagSkin, "skin", rush.DefaultSkin, "Character: "+strings.Join(skinIDs(), ", "))
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(configCmd)
}

func skinIDs() []string {
	ids := make([]string, len(rush.Skins))
	for i, s := range rush.Skins {
		ids[i] = s.ID
	}
	return ids
}

// newLogger builds the process logger at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
}

// fileLogger logs to ~/.rush/rush.log so the alt screen stays clean. It
// falls back to discarding when the file cannot be opened.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".rush")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "rush.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := newLogger(f, "rush")
	return logger, func() { f.Close() }
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
