package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Lives    int  // Remaining lives
	Started  bool // Whether a run is in progress (running or paused)
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// NoticeLevel classifies a notice for presentation (toast color).
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// Notice is a short human-readable message produced during a step,
// e.g. "Coin +10" or "Shield activated!". Front ends show them as toasts.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any notices raised during the tick.
type StepResult struct {
	State   GameState
	Notices []Notice
}

// Control is a clickable on-screen button that triggers an action,
// used for pointer/touch play where arrow keys are unavailable.
type Control struct {
	Label  string
	Action Action
	Bounds Rect
}
