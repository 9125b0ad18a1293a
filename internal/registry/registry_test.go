package registry

import (
	"testing"

	"github.com/vovakirdan/lane-rush/internal/core"
)

type stubGame struct{}

func (stubGame) ID() string                           { return "stub" }
func (stubGame) Title() string                        { return "Stub" }
func (stubGame) Reset(core.RuntimeConfig)             {}
func (stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen)                  {}
func (stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub", func() Game { return stubGame{} })

	if !Exists("stub") {
		t.Fatal("stub should be registered")
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub" {
			found = true
			if info.Title != "Stub" {
				t.Errorf("title = %q, want Stub", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() is missing stub")
	}

	g, err := Create("stub")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub" {
		t.Errorf("ID() = %q", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create of an unknown id should fail")
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub", func() Game { return stubGame{} })
}
