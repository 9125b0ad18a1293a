package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/core"
	"github.com/vovakirdan/lane-rush/internal/games/rush"
	"github.com/vovakirdan/lane-rush/internal/storage"
)

// Menu rows in display order
const (
	menuPlay = iota
	menuCharacter
	menuDifficulty
	menuTheme
	menuScores
	menuQuit
	menuRows
)

// difficulties lists the presets the menu cycles through. The empty preset
// uses whatever the config file says.
var difficulties = []config.DifficultyPreset{
	"",
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// MenuChoice holds the player's selections.
type MenuChoice struct {
	Skin       string
	Difficulty config.DifficultyPreset
	Theme      Theme
}

// MenuModel is the Bubble Tea model for the start menu: play, character,
// difficulty, theme and high scores.
type MenuModel struct {
	cursor         int
	skinIdx        int
	difficultyIdx  int
	choice         MenuChoice
	highScore      int
	width          int
	height         int
	config         core.RuntimeConfig
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model starting from the given choices.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, choice MenuChoice) MenuModel {
	m := MenuModel{
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		choice: choice,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	for i, s := range rush.Skins {
		if s.ID == choice.Skin {
			m.skinIdx = i
		}
	}
	m.choice.Skin = rush.Skins[m.skinIdx].ID
	for i, d := range difficulties {
		if d == choice.Difficulty {
			m.difficultyIdx = i
		}
	}
	if m.choice.Theme.Name == "" {
		m.choice.Theme = DarkTheme()
	}
	if store != nil {
		if high, err := store.HighScore(rush.GameID); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < menuRows-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case menuPlay:
			m.play = true
			return m, tea.Quit
		case menuScores:
			m.openScoreboard = true
			return m, tea.Quit
		case menuQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.cycle(1)
		}
	}

	return m, nil
}

// cycle changes the option under the cursor.
func (m *MenuModel) cycle(delta int) {
	switch m.cursor {
	case menuCharacter:
		m.skinIdx = wrap(m.skinIdx+delta, len(rush.Skins))
		m.choice.Skin = rush.Skins[m.skinIdx].ID
	case menuDifficulty:
		m.difficultyIdx = wrap(m.difficultyIdx+delta, len(difficulties))
		m.choice.Difficulty = difficulties[m.difficultyIdx]
	case menuTheme:
		m.choice.Theme = m.choice.Theme.Next()
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func difficultyLabel(d config.DifficultyPreset) string {
	if d == "" {
		return "config"
	}
	return string(d)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	theme := m.choice.Theme

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("  L A N E   R U S H  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.MenuDescription.Render(fmt.Sprintf("Best: %d", m.highScore)), m.width))
	b.WriteString("\n\n")

	skin := rush.Skins[m.skinIdx]
	rows := [menuRows]string{
		menuPlay:       "Play",
		menuCharacter:  fmt.Sprintf("Character  ◀ %s %s ▶", string(skin.Glyph), skin.Name),
		menuDifficulty: fmt.Sprintf("Difficulty ◀ %s ▶", difficultyLabel(m.choice.Difficulty)),
		menuTheme:      fmt.Sprintf("Theme      ◀ %s ▶", theme.Name),
		menuScores:     "High Scores",
		menuQuit:       "Quit",
	}
	for i, row := range rows {
		style := theme.MenuItemNormal
		cursor := "  "
		if i == m.cursor {
			style = theme.MenuItemActive
			cursor = "> "
		}
		b.WriteString(centerText(style.Render(cursor+row), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuDescription.Render("Dodge barriers, grab coins, ride the power-ups."), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.Help.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the current selections.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// WantsPlay returns true if user chose to start a run.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Width is measured in cells so
// styled text centers correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
