package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)

	s.SetColored(2, 1, '$', ColorYellow)
	cell := s.GetCell(2, 1)
	if cell.Rune != '$' || cell.Color != ColorYellow {
		t.Errorf("GetCell = %+v, expected yellow '$'", cell)
	}

	s.Set(2, 1, 'x')
	if s.GetCell(2, 1).Color != ColorDefault {
		t.Error("Set should reset the cell color to default")
	}

	s.DrawTextColored(0, 0, "hé!", ColorRed)
	if s.Get(1, 0) != 'é' || s.Get(2, 0) != '!' {
		t.Errorf("DrawTextColored should advance one cell per rune, got row %q", s.Row(0))
	}
}

func TestScreenClearAndString(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(0, 1, "cd")

	if got := s.String(); got != "ab  \ncd  " {
		t.Errorf("String() = %q", got)
	}

	s.Clear()
	if strings.TrimSpace(s.String()) != "" {
		t.Error("Clear should blank the screen")
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColored(1, 1, 'Z', ColorGreen)

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize dims = %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'Z' || c.Color != ColorGreen {
		t.Errorf("Resize lost content: %+v", c)
	}

	s.Resize(6, 6)
	if s.Get(5, 5) != ' ' {
		t.Error("New area after grow should be blank")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorCyan)

	if s.Get(0, 0) != '┌' || s.Get(5, 0) != '┐' || s.Get(0, 3) != '└' || s.Get(5, 3) != '┘' {
		t.Errorf("unexpected corners:\n%s", s.String())
	}
	if s.Get(2, 0) != '─' || s.Get(0, 2) != '│' {
		t.Errorf("unexpected edges:\n%s", s.String())
	}
	if s.GetCell(2, 0).Color != ColorCyan {
		t.Error("box edges should carry the box color")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)
	f.AddSwipe(60, -5)

	if !f.Has(ActionJump) || f.Has(ActionSlide) {
		t.Error("Has should report only set actions")
	}

	c := f.Clone()
	f.Clear()

	if f.Has(ActionJump) || len(f.Swipes) != 0 {
		t.Error("Clear should reset actions and swipes")
	}
	if !c.Has(ActionJump) || len(c.Swipes) != 1 || c.Swipes[0].DX != 60 {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionLeft) {
		t.Error("zero frame should have no actions")
	}
}
