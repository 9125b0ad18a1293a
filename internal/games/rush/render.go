package rush

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/lane-rush/internal/core"
)

// Visual characters for rendering
const (
	LaneEdgeChar    = '│'
	LaneDivideChar  = '┆'
	HeartChar       = '♥'
	EmptyHeartChar  = '♡'
	ShadowChar      = '_'
	SlideTrailChar  = '='
	ShieldLeftChar  = '('
	ShieldRightChar = ')'
)

// glyph returns the rune and color of an entity kind.
func glyph(k Kind) (rune, core.Color) {
	switch k {
	case KindLowBarrier:
		return '▄', core.ColorRed
	case KindTallVehicle:
		return '█', core.ColorMagenta
	case KindCoin:
		return 'o', core.ColorYellow
	case KindAirborneCoin:
		return '°', core.ColorBrightYellow
	case KindMagnet:
		return 'U', core.ColorCyan
	case KindShield:
		return 'S', core.ColorBrightBlue
	case KindSpeedBoost:
		return '»', core.ColorBrightGreen
	default:
		return '?', core.ColorDefault
	}
}

// layout maps track positions and lanes onto screen cells.
type layout struct {
	w, h      int
	top, rows int
	spawn     float64
	evict     float64
}

func (g *Game) layout(w, h int) layout {
	cfg := g.engine.cfg.Track
	rows := h - 2 // HUD on top, controls at the bottom
	if rows < 1 {
		rows = 1
	}
	return layout{w: w, h: h, top: 1, rows: rows, spawn: cfg.SpawnPosition, evict: cfg.EvictPosition}
}

// laneX returns the center column of a lane: 25%, 50% and 75% of the width.
func (l layout) laneX(lane Lane) int {
	return l.w * (int(lane) + 1) / 4
}

// rowFor maps a position to a row. Spawn is at the top, eviction at the
// bottom.
func (l layout) rowFor(pos float64) int {
	frac := (l.spawn - pos) / (l.spawn - l.evict)
	frac = core.ClampF(frac, 0, 1)
	return l.top + int(frac*float64(l.rows-1)+0.5)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	snap := g.engine.Snapshot()
	l := g.layout(dst.Width(), dst.Height())

	g.drawTrack(dst, l)
	for _, ent := range snap.Entities() {
		r, c := glyph(ent.Kind)
		dst.SetColored(l.laneX(ent.Lane), l.rowFor(ent.Position), r, c)
	}
	g.drawCharacter(dst, l, snap)
	g.drawHUD(dst, snap)
	g.drawControls(dst)

	switch snap.Phase {
	case PhaseNotStarted:
		g.drawOverlay(dst, "Ready to Run?", core.ColorBrightCyan,
			"Press ENTER to start",
			"←/→ change lane  ↑ jump  ↓ slide",
			"Jump barriers ▄, slide under vehicles █",
			fmt.Sprintf("C: character (%s)", skinName(snap.Skin)))
	case PhasePaused:
		g.drawOverlay(dst, "PAUSED", core.ColorBrightYellow,
			"Press P to resume")
	case PhaseOver:
		g.drawOverlay(dst, "Game Over!", core.ColorBrightRed,
			fmt.Sprintf("Final Score: %d", snap.FinalScore),
			fmt.Sprintf("Coins: %d  Power-ups: %d", snap.Stats.CoinsCollected, snap.Stats.PowerUpsCollected),
			"Press ENTER to play again")
	}
}

func (g *Game) drawTrack(dst *core.Screen, l layout) {
	edges := []int{l.w / 8, l.w * 7 / 8}
	dividers := []int{l.w * 3 / 8, l.w * 5 / 8}
	for y := l.top; y < l.top+l.rows; y++ {
		for _, x := range edges {
			dst.SetColored(x, y, LaneEdgeChar, core.ColorGray)
		}
		for _, x := range dividers {
			dst.SetColored(x, y, LaneDivideChar, core.ColorGray)
		}
	}
}

func (g *Game) drawCharacter(dst *core.Screen, l layout, snap Snapshot) {
	skin, _ := LookupSkin(snap.Skin)
	x := l.laneX(snap.Lane)
	y := l.rowFor(g.engine.cfg.Track.CharacterPosition)

	switch snap.Action {
	case ActionJumping:
		dst.SetColored(x, y, ShadowChar, core.ColorGray)
		y--
	case ActionSliding:
		dst.SetColored(x-1, y, SlideTrailChar, core.ColorWhite)
		dst.SetColored(x+1, y, SlideTrailChar, core.ColorWhite)
	}
	dst.SetColored(x, y, skin.Glyph, core.ColorBrightWhite)

	if snap.Active != nil && snap.Active.Kind == KindShield {
		dst.SetColored(x-2, y, ShieldLeftChar, core.ColorBrightBlue)
		dst.SetColored(x+2, y, ShieldRightChar, core.ColorBrightBlue)
	}
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	var b strings.Builder
	fmt.Fprintf(&b, " Score: %d  ", snap.Score)
	for i := 0; i < g.engine.cfg.Gameplay.Lives; i++ {
		if i < snap.Lives {
			b.WriteRune(HeartChar)
		} else {
			b.WriteRune(EmptyHeartChar)
		}
	}
	fmt.Fprintf(&b, "  Speed: %.2fx", snap.Speed)
	dst.DrawTextColored(0, 0, b.String(), core.ColorBrightWhite)

	if snap.Active != nil {
		text := fmt.Sprintf("%s %.1fs ", powerUpName(snap.Active.Kind), snap.Active.Remaining.Seconds())
		_, c := glyph(snap.Active.Kind)
		dst.DrawTextColored(dst.Width()-len([]rune(text)), 0, text, c)
	}
}

func (g *Game) drawOverlay(dst *core.Screen, title string, c core.Color, lines ...string) {
	width := len([]rune(title))
	for _, line := range lines {
		width = core.Max(width, len([]rune(line)))
	}
	width += 4
	height := len(lines) + 4

	x := (dst.Width() - width) / 2
	y := (dst.Height() - height) / 2
	box := core.NewRect(x, y, width, height)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)

	dst.DrawTextCentered(y+1, title, c)
	for i, line := range lines {
		dst.DrawTextCentered(y+3+i, line, core.ColorWhite)
	}
}

// Controls returns the on-screen buttons along the bottom row.
func (g *Game) Controls(w, h int) []core.Control {
	labels := []struct {
		label  string
		action core.Action
	}{
		{"[ ◀ ]", core.ActionLeft},
		{"[ ▲ ]", core.ActionJump},
		{"[ ▼ ]", core.ActionSlide},
		{"[ ▶ ]", core.ActionRight},
		{"[ P ]", core.ActionPause},
	}
	if g.engine != nil {
		switch g.engine.Phase() {
		case PhaseNotStarted, PhaseOver:
			labels[4].label = "[ GO ]"
			labels[4].action = core.ActionStart
		}
	}

	total := 0
	for _, l := range labels {
		total += len([]rune(l.label)) + 1
	}
	x := (w - total) / 2
	y := h - 1

	out := make([]core.Control, 0, len(labels))
	for _, l := range labels {
		n := len([]rune(l.label))
		out = append(out, core.Control{
			Label:  l.label,
			Action: l.action,
			Bounds: core.NewRect(x, y, n, 1),
		})
		x += n + 1
	}
	return out
}

func (g *Game) drawControls(dst *core.Screen) {
	for _, c := range g.Controls(dst.Width(), dst.Height()) {
		dst.DrawTextColored(c.Bounds.X, c.Bounds.Y, c.Label, core.ColorCyan)
	}
}

func skinName(id string) string {
	if s, ok := LookupSkin(id); ok {
		return s.Name
	}
	return id
}
