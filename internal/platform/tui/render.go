package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-rush/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(renderRow(s, y, 0, s.Width(), theme))
	}
	return sb.String()
}

// renderRow renders cells [from, to) of row y.
func renderRow(s *core.Screen, y, from, to int, theme Theme) string {
	var sb strings.Builder
	x := from
	for x < to {
		startColor := s.GetCell(x, y).Color

		// Collect consecutive cells with same color
		var run strings.Builder
		for x < to {
			cell := s.GetCell(x, y)
			if cell.Color != startColor {
				break
			}
			run.WriteRune(cell.Rune)
			x++
		}
		sb.WriteString(theme.Cell(startColor).Render(run.String()))
	}
	return sb.String()
}

// RenderWithToasts renders the screen and lays the active toasts over the
// right end of the rows below the HUD.
func RenderWithToasts(s *core.Screen, theme Theme, toasts []Toast) string {
	if len(toasts) == 0 {
		return RenderScreen(s, theme)
	}

	overlay := make(map[int]string, len(toasts))
	widths := make(map[int]int, len(toasts))
	for i, t := range toasts {
		y := 1 + i
		if y >= s.Height() {
			break
		}
		rendered := theme.Toast(t.Level).Render(t.Text)
		w := lipgloss.Width(rendered)
		if w >= s.Width() {
			continue
		}
		overlay[y] = rendered
		widths[y] = w
	}

	var sb strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		toast, ok := overlay[y]
		if !ok {
			sb.WriteString(renderRow(s, y, 0, s.Width(), theme))
			continue
		}
		cut := s.Width() - widths[y] - 1
		sb.WriteString(renderRow(s, y, 0, cut, theme))
		sb.WriteString(toast)
		sb.WriteString(renderRow(s, y, cut+widths[y], s.Width(), theme))
	}
	return sb.String()
}
