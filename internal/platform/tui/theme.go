package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-rush/internal/core"
)

// Theme contains all configurable visual styles of the terminal front end.
type Theme struct {
	Name string

	// Cell colors, keyed by the palette the game draws with
	Cells map[core.Color]lipgloss.Style

	// Toast styles by notice level
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style

	// Help bar
	Help lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style

	// Scoreboard accents
	Accent lipgloss.Style
	Muted  lipgloss.Style
	Border lipgloss.Color
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DarkTheme returns the default theme for dark terminals.
func DarkTheme() Theme {
	return Theme{
		Name: "dark",
		Cells: map[core.Color]lipgloss.Style{
			core.ColorDefault:       lipgloss.NewStyle(),
			core.ColorRed:           fg("1"),
			core.ColorGreen:         fg("2"),
			core.ColorYellow:        fg("3"),
			core.ColorBlue:          fg("4"),
			core.ColorMagenta:       fg("5"),
			core.ColorCyan:          fg("6"),
			core.ColorWhite:         fg("7"),
			core.ColorBrightRed:     fg("9"),
			core.ColorBrightGreen:   fg("10"),
			core.ColorBrightYellow:  fg("11"),
			core.ColorBrightBlue:    fg("12"),
			core.ColorBrightMagenta: fg("13"),
			core.ColorBrightCyan:    fg("14"),
			core.ColorBrightWhite:   fg("15"),
			core.ColorOrange:        fg("208"),
			core.ColorGray:          fg("245"),
		},

		ToastInfo:    fg("255").Background(lipgloss.Color("24")).Padding(0, 1),
		ToastSuccess: fg("16").Background(lipgloss.Color("42")).Padding(0, 1),
		ToastWarning: fg("16").Background(lipgloss.Color("214")).Padding(0, 1),
		ToastError:   fg("255").Background(lipgloss.Color("160")).Padding(0, 1),

		Help: fg("241"),

		MenuTitle:       fg("51").Bold(true),
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("226").Bold(true),
		MenuDescription: fg("245"),

		Accent: fg("229").Bold(true),
		Muted:  fg("241"),
		Border: lipgloss.Color("240"),
	}
}

// LightTheme returns a theme for light terminals. Bright colors are darkened
// so entities stay readable on a pale background.
func LightTheme() Theme {
	theme := DarkTheme()
	theme.Name = "light"
	theme.Cells = map[core.Color]lipgloss.Style{
		core.ColorDefault:       fg("235"),
		core.ColorRed:           fg("124"),
		core.ColorGreen:         fg("28"),
		core.ColorYellow:        fg("136"),
		core.ColorBlue:          fg("19"),
		core.ColorMagenta:       fg("90"),
		core.ColorCyan:          fg("30"),
		core.ColorWhite:         fg("238"),
		core.ColorBrightRed:     fg("160"),
		core.ColorBrightGreen:   fg("34"),
		core.ColorBrightYellow:  fg("172"),
		core.ColorBrightBlue:    fg("26"),
		core.ColorBrightMagenta: fg("127"),
		core.ColorBrightCyan:    fg("31"),
		core.ColorBrightWhite:   fg("232").Bold(true),
		core.ColorOrange:        fg("166"),
		core.ColorGray:          fg("248"),
	}
	theme.Help = fg("244")
	theme.MenuTitle = fg("25").Bold(true)
	theme.MenuItemNormal = fg("237")
	theme.MenuItemActive = fg("160").Bold(true)
	theme.MenuDescription = fg("243")
	theme.Accent = fg("25").Bold(true)
	theme.Muted = fg("244")
	theme.Border = lipgloss.Color("250")
	return theme
}

// Themes lists the selectable themes in toggle order.
var Themes = []func() Theme{DarkTheme, LightTheme}

// ThemeByName returns the named theme, or the dark theme if unknown.
func ThemeByName(name string) Theme {
	for _, f := range Themes {
		if t := f(); t.Name == name {
			return t
		}
	}
	return DarkTheme()
}

// Next returns the theme following t in toggle order.
func (t Theme) Next() Theme {
	for i, f := range Themes {
		if f().Name == t.Name {
			return Themes[(i+1)%len(Themes)]()
		}
	}
	return DarkTheme()
}

// Cell returns the style for a palette color.
func (t Theme) Cell(c core.Color) lipgloss.Style {
	if s, ok := t.Cells[c]; ok {
		return s
	}
	return t.Cells[core.ColorDefault]
}

// Toast returns the style for a notice level.
func (t Theme) Toast(level core.NoticeLevel) lipgloss.Style {
	switch level {
	case core.NoticeSuccess:
		return t.ToastSuccess
	case core.NoticeWarning:
		return t.ToastWarning
	case core.NoticeError:
		return t.ToastError
	default:
		return t.ToastInfo
	}
}
