package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-rush/internal/core"
	"github.com/vovakirdan/lane-rush/internal/registry"
	"github.com/vovakirdan/lane-rush/internal/storage"
)

// Pointer gestures are measured in cells; these scale them to the logical
// units swipe classification works in. Terminal cells are about twice as
// tall as they are wide.
const (
	cellWidthUnits  = 10.0
	cellHeightUnits = 20.0
)

type mousePoint struct {
	x, y int
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       GameKeyMap
	help       help.Model
	theme      Theme
	toasts     ToastQueue
	press      *mousePoint
	width      int
	height     int
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the run has been saved for the current game over
	now        func() time.Time
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, theme Theme) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := Model{
		game:       game,
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		theme:      theme,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		now:        time.Now,
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, m.screenHeight())
	m.config.ScreenH = m.screen.Height()
	return m
}

// WithLogger returns a copy of the model that logs storage failures.
func (m Model) WithLogger(l *log.Logger) Model {
	m.logger = l
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.theme = m.theme.Next()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeScreen()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		// Leaving mid-run needs a pause first
		if m.gameState.Started && !m.gameState.Paused {
			return m, nil
		}
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse turns drags into swipes and clicks into on-screen buttons.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.press = &mousePoint{x: msg.X, y: msg.Y}
		}

	case tea.MouseActionRelease:
		if m.press == nil {
			return m, nil
		}
		start := *m.press
		m.press = nil

		dx, dy := msg.X-start.x, msg.Y-start.y
		if dx == 0 && dy == 0 {
			m.click(start.x, start.y)
			return m, nil
		}
		m.inputFrame.AddSwipe(float64(dx)*cellWidthUnits, float64(dy)*cellHeightUnits)
	}
	return m, nil
}

// click triggers the on-screen control under (x, y), if any.
func (m *Model) click(x, y int) {
	c, ok := m.game.(registry.Controllable)
	if !ok {
		return
	}
	for _, ctl := range c.Controls(m.screen.Width(), m.screen.Height()) {
		if ctl.Bounds.Contains(x, y) {
			m.inputFrame.Set(ctl.Action)
			return
		}
	}
}

// handleResize processes window resize events. The game lays itself out at
// render time, so the run continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.resizeScreen()
	return m, nil
}

// screenHeight is the terminal height minus the help bar.
func (m Model) screenHeight() int {
	h := m.height - lipgloss.Height(m.help.View(m.keys))
	return max(h, 1)
}

func (m *Model) resizeScreen() {
	m.config.ScreenW = m.width
	m.config.ScreenH = m.screenHeight()
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	now := m.now()
	m.toasts.Push(now, result.Notices...)
	m.toasts.Prune(now)

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the finished run. Best effort: the game continues
// regardless.
func (m Model) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	var err error
	if rr, ok := m.game.(registry.RunReporter); ok {
		_, err = m.store.SaveRun(rr.RunRecord())
	} else {
		_, err = m.store.SaveScore(m.game.ID(), m.gameState.Score)
	}
	if err != nil && m.logger != nil {
		m.logger.Warn("could not save run", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".rush", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	body := RenderWithToasts(m.screen, m.theme, m.toasts.Visible(m.now()))
	return body + "\n" + m.theme.Help.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Theme returns the current theme, which the user may have toggled.
func (m Model) Theme() Theme {
	return m.theme
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, theme Theme, logger *log.Logger) error {
	model := NewModel(game, store, cfg, theme).WithLogger(logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Drag to swipe, click the buttons
	)

	_, err := p.Run()
	if c, ok := game.(registry.Closer); ok {
		c.Close()
	}
	return err
}
