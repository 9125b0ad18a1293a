// Package web serves Lane Rush over websockets. Every connection gets its
// own engine; the server streams state frames and accepts commands as JSON
// or msgpack.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/core"
	"github.com/vovakirdan/lane-rush/internal/games/rush"
	"github.com/vovakirdan/lane-rush/internal/storage"
)

//go:embed static
var staticFiles embed.FS

// ServerConfig holds configuration for the websocket server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the simulation rate of every game.
	TickRate int

	// SnapshotRate is how many frames per second are sent to a client.
	SnapshotRate int

	// Skin and Difficulty apply unless the client asks otherwise.
	Skin       string
	Difficulty config.DifficultyPreset

	// AllowedOrigins lists extra browser origins (e.g. "https://example.com")
	// that may open a game socket. The server's own origin is always allowed.
	AllowedOrigins []string
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      ":8080",
		TickRate:     60,
		SnapshotRate: 20,
		Skin:         rush.DefaultSkin,
	}
}

// Server hosts one game per websocket connection.
type Server struct {
	config   ServerConfig
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer creates a server. The store may be nil, in which case runs are
// not saved.
func NewServer(cfg ServerConfig, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "rush-web",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		ctx:    ctx,
		cancel: cancel,
	}
	s.upgrader.CheckOrigin = s.checkOrigin
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// checkOrigin accepts requests without an Origin header (non-browser
// clients), same-origin requests and the configured extra origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range s.config.AllowedOrigins {
		if strings.EqualFold(strings.TrimSuffix(allowed, "/"), origin) {
			return true
		}
	}
	s.logger.Warn("rejected websocket origin", "origin", origin, "host", r.Host)
	return false
}

// Handler returns the HTTP routes: the game socket, the score list and the
// bundled browser client.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleSocket)
	mux.HandleFunc("/scores", s.handleScores)

	static, err := fs.Sub(staticFiles, "static")
	if err == nil {
		mux.Handle("/", http.FileServer(http.FS(static)))
	}
	return mux
}

// handleSocket upgrades the request and runs a game until the client leaves.
// Query parameters: skin, difficulty, seed, codec.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skin := s.config.Skin
	if v := q.Get("skin"); v != "" {
		skin = v
	}
	preset := s.config.Difficulty
	if v := q.Get("difficulty"); v != "" {
		preset = config.ParsePreset(v)
	}
	seed := time.Now().UnixNano()
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		seed = n
	}
	codec := ParseCodec(q.Get("codec"))

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	logger := s.logger.With("remote", r.RemoteAddr)
	logger.Info("client connected", "codec", codec, "skin", skin, "seed", seed)

	game := rush.NewGameWith(skin, preset)
	rt := core.RuntimeConfig{TickRate: s.config.TickRate, Seed: seed}
	c := newClient(conn, codec, game, rt, s.config.SnapshotRate, s.store, logger)

	ctx, cancel := context.WithCancel(s.ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		c.run(ctx)
		game.Close()
		//nolint:errcheck // Best-effort close frame
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		conn.Close()
		logger.Info("client disconnected")
	}()
	go c.readLoop(cancel)
}

// handleScores lists the best runs as JSON.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs := []storage.RunRecord{}
	if s.store != nil {
		var err error
		runs, err = s.store.TopScores(rush.GameID, limit)
		if err != nil {
			s.logger.Error("could not load scores", "error", err)
			http.Error(w, "could not load scores", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Client may have gone away
	json.NewEncoder(w).Encode(runs)
}

// ListenAndServe starts the server and blocks until an interrupt signal.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting websocket server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("web: %w", err)
	case <-done:
	}

	s.logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops accepting connections and ends every running game.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	s.cancel()
	s.wg.Wait()
	return err
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
