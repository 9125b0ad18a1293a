package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Left arrow, A - move one lane left
	ActionRight           // Right arrow, D - move one lane right
	ActionJump            // Up arrow, W, Space - jump
	ActionSlide           // Down arrow, S - slide
	ActionStart           // Enter - start a run / play again
	ActionPause           // P - pause/unpause game
	ActionRestart         // R key - reset to the start screen
	ActionNextSkin        // C key - cycle the character skin
	ActionBack            // B, Escape - go back to menu
	ActionQuit            // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionSlide:
		return "Slide"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionNextSkin:
		return "NextSkin"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Swipe is a pointer gesture from press to release, in logical units.
// Positive DX is rightwards, positive DY is downwards.
type Swipe struct {
	DX, DY float64
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Swipes are gestures completed during this frame, in arrival order.
	Swipes []Swipe
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// AddSwipe records a completed gesture for this frame.
func (f *InputFrame) AddSwipe(dx, dy float64) {
	f.Swipes = append(f.Swipes, Swipe{DX: dx, DY: dy})
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions and gestures for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Swipes = f.Swipes[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Swipes = append(clone.Swipes, f.Swipes...)
	return clone
}
