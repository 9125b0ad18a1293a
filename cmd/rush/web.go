package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/games/rush"
	"github.com/vovakirdan/lane-rush/internal/platform/web"
	"github.com/vovakirdan/lane-rush/internal/storage"
)

var (
	flagWebAddr      string
	flagSnapshotRate int
	flagAllowOrigins []string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the websocket server",
	Long: `Start an HTTP server with a browser client and a websocket endpoint.

Each websocket connection runs its own game. The server sends a state
frame SNAPSHOT-RATE times per second and accepts commands such as
{"type":"jump"} or {"type":"swipe","dx":-80}.

Endpoints:
  /        - Browser client
  /ws      - Game socket (query: skin, difficulty, seed, codec=json|msgpack)
  /scores  - Best runs as JSON (query: limit)

Examples:
  rush web
  rush web --addr :9000 --snapshot-rate 30
  rush web --difficulty hard
  rush web --allow-origin https://games.example.com`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP server address (host:port)")
	webCmd.Flags().IntVar(&flagSnapshotRate, "snapshot-rate", 20, "State frames per second sent to each client")
	webCmd.Flags().StringSliceVar(&flagAllowOrigins, "allow-origin", nil, "Extra browser origins allowed to open a game socket")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "rush-web")
	rush.SetLogger(logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultServerConfig()
	cfg.Address = flagWebAddr
	cfg.TickRate = flagFPS
	cfg.SnapshotRate = flagSnapshotRate
	cfg.Skin = flagSkin
	cfg.Difficulty = config.ParsePreset(flagDifficulty)
	cfg.AllowedOrigins = flagAllowOrigins

	server := web.NewServer(cfg, store, logger)
	fmt.Printf("Open http://localhost%s to play\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
