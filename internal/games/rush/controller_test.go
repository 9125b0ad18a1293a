package rush

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/core"
)

func TestClassifySwipe(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   SwipeDirection
	}{
		{80, 10, SwipeRight},
		{-80, 10, SwipeLeft},
		{10, -80, SwipeUp},
		{10, 80, SwipeDown},
		{50, 0, SwipeNone}, // Threshold is exclusive
		{40, 30, SwipeNone},
		{0, 0, SwipeNone},
		{60, 60, SwipeDown}, // Ties go to the vertical axis
		{-60, 60, SwipeDown},
		{60, -70, SwipeUp},
	}
	for _, tt := range tests {
		if got := ClassifySwipe(tt.dx, tt.dy, SwipeThreshold); got != tt.want {
			t.Errorf("ClassifySwipe(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestLaneChangesClamp(t *testing.T) {
	e := startedEngine(t, quietConfig())

	e.MoveLeft()
	e.MoveLeft()
	if e.Snapshot().Lane != LaneLeft {
		t.Errorf("Lane = %d, want left", e.Snapshot().Lane)
	}

	e.MoveRight()
	e.MoveRight()
	e.MoveRight()
	if e.Snapshot().Lane != LaneRight {
		t.Errorf("Lane = %d, want right", e.Snapshot().Lane)
	}
}

func TestControlsIgnoredUnlessRunning(t *testing.T) {
	e := New(quietConfig(), 1)
	e.MoveLeft()
	e.Jump()
	if snap := e.Snapshot(); snap.Lane != LaneCenter || snap.Action != ActionGrounded {
		t.Fatal("controls applied before Start")
	}

	e.Start()
	e.Pause()
	e.MoveRight()
	e.Slide()
	if snap := e.Snapshot(); snap.Lane != LaneCenter || snap.Action != ActionGrounded {
		t.Error("controls applied while paused")
	}
}

func TestJumpLastsActionDuration(t *testing.T) {
	e := startedEngine(t, quietConfig())
	e.Jump()

	e.Advance(799 * time.Millisecond)
	if e.Snapshot().Action != ActionJumping {
		t.Fatal("jump ended early")
	}
	e.Advance(time.Millisecond)
	if e.Snapshot().Action != ActionGrounded {
		t.Errorf("Action = %v, want grounded after 800ms", e.Snapshot().Action)
	}
}

func TestActionsDoNotQueueOrInterrupt(t *testing.T) {
	e := startedEngine(t, quietConfig())

	e.Slide()
	e.Advance(300 * time.Millisecond)
	e.Jump()  // ignored while sliding
	e.Slide() // does not restart the slide
	if e.Snapshot().Action != ActionSliding {
		t.Fatalf("Action = %v", e.Snapshot().Action)
	}

	e.Advance(500 * time.Millisecond)
	if e.Snapshot().Action != ActionGrounded {
		t.Errorf("slide restarted or jump queued: %v", e.Snapshot().Action)
	}
	e.Advance(time.Second)
	if e.Snapshot().Action != ActionGrounded {
		t.Error("queued action fired later")
	}
}

func TestSwipeDrivesController(t *testing.T) {
	e := startedEngine(t, quietConfig())

	e.Swipe(-120, 5)
	if e.Snapshot().Lane != LaneLeft {
		t.Errorf("left swipe: lane %d", e.Snapshot().Lane)
	}
	e.Swipe(20, 10)
	if e.Snapshot().Lane != LaneLeft {
		t.Error("short swipe moved the character")
	}
	e.Swipe(0, -90)
	if e.Snapshot().Action != ActionJumping {
		t.Errorf("up swipe: action %v", e.Snapshot().Action)
	}
}

func TestSelectCharacter(t *testing.T) {
	e := New(quietConfig(), 1)
	e.SelectCharacter("robot")
	if e.Snapshot().Skin != "robot" {
		t.Errorf("Skin = %q", e.Snapshot().Skin)
	}
	e.SelectCharacter("dragon")
	if e.Snapshot().Skin != "robot" {
		t.Error("unknown skin accepted")
	}

	e.Start()
	e.SelectCharacter("alien")
	e.Reset()
	if e.Snapshot().Skin != "alien" {
		t.Error("skin lost on reset")
	}
}

func TestNextSkinCycles(t *testing.T) {
	id := DefaultSkin
	for range Skins {
		id = NextSkin(id)
	}
	if id != DefaultSkin {
		t.Errorf("cycle ended on %q", id)
	}
	if NextSkin("missing") != DefaultSkin {
		t.Error("unknown id did not fall back to the default")
	}
}

func TestGameAdapterLifecycle(t *testing.T) {
	g := NewGame()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	defer g.Close()

	in := core.NewInputFrame()
	res := g.Step(in)
	if res.State.Started || res.State.GameOver {
		t.Fatalf("state before start: %+v", res.State)
	}

	in.Set(core.ActionStart)
	res = g.Step(in)
	if !res.State.Started || res.State.Lives != 3 {
		t.Fatalf("state after start: %+v", res.State)
	}
	if len(res.Notices) == 0 || res.Notices[0].Text != "Game started! Good luck!" {
		t.Errorf("notices = %v", res.Notices)
	}

	in.Clear()
	in.Set(core.ActionPause)
	res = g.Step(in)
	if !res.State.Paused {
		t.Error("pause action did not pause")
	}

	in.Clear()
	in.Set(core.ActionNextSkin)
	g.Step(in)
	if g.Engine().Snapshot().Skin != NextSkin(DefaultSkin) {
		t.Errorf("Skin = %q", g.Engine().Snapshot().Skin)
	}

	in.Clear()
	in.Set(core.ActionRestart)
	res = g.Step(in)
	if res.State.Started || g.Engine().Phase() != PhaseNotStarted {
		t.Error("restart did not return to the start screen")
	}
}

func TestRunRecordDifficulty(t *testing.T) {
	tests := []struct {
		preset config.DifficultyPreset
		want   string
	}{
		{"", "default"},
		{config.DifficultyNormal, "normal"},
		{config.DifficultyHard, "hard"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			g := NewGameWith(DefaultSkin, tt.preset)
			g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
			defer g.Close()

			rec := g.RunRecord()
			if rec.Difficulty != tt.want {
				t.Errorf("Difficulty = %q, want %q", rec.Difficulty, tt.want)
			}
			if rec.Seed != 7 || rec.Skin != DefaultSkin {
				t.Errorf("record = %+v", rec)
			}
		})
	}
}

func TestGameAdapterSwipes(t *testing.T) {
	g := NewGame()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	defer g.Close()

	in := core.NewInputFrame()
	in.Set(core.ActionStart)
	g.Step(in)

	in.Clear()
	in.AddSwipe(100, 0)
	g.Step(in)
	if g.Engine().Snapshot().Lane != LaneRight {
		t.Errorf("Lane = %d after right swipe", g.Engine().Snapshot().Lane)
	}
}

func TestRenderOverlays(t *testing.T) {
	g := NewGame()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	defer g.Close()
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Ready to Run?") {
		t.Error("start overlay missing")
	}

	g.Engine().Start()
	g.Engine().Pause()
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}

	g.Engine().EndGame()
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Game Over!") || !strings.Contains(out, "Final Score: 0") {
		t.Error("game over overlay missing")
	}
}

func TestRenderDrawsEntitiesInLanes(t *testing.T) {
	g := NewGame()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	defer g.Close()
	g.Engine().Start()
	place(g.Engine(), KindTallVehicle, LaneLeft, 100)
	place(g.Engine(), KindCoin, LaneRight, -10)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if got := screen.Get(20, 1); got != '█' {
		t.Errorf("vehicle cell = %q, want █ at top of left lane", got)
	}
	if got := screen.Get(60, 22); got != 'o' {
		t.Errorf("coin cell = %q, want o at bottom of right lane", got)
	}
	if got := screen.Get(40, g.layout(80, 24).rowFor(15)); got != '@' {
		t.Errorf("character cell = %q, want @", got)
	}
}

func TestControlsHitTest(t *testing.T) {
	g := NewGame()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	defer g.Close()

	controls := g.Controls(80, 24)
	if len(controls) != 5 || controls[4].Action != core.ActionStart {
		t.Fatalf("controls = %+v", controls)
	}
	for _, c := range controls {
		if c.Bounds.Y != 23 {
			t.Errorf("%s on row %d, want bottom row", c.Label, c.Bounds.Y)
		}
		if !c.Bounds.Contains(c.Bounds.X, 23) {
			t.Errorf("%s bounds do not contain their origin", c.Label)
		}
	}

	g.Engine().Start()
	if g.Controls(80, 24)[4].Action != core.ActionPause {
		t.Error("running game should offer pause")
	}
}
