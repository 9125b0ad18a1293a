// Package rush implements a three-lane endless runner. The character switches
// lanes, jumps or slides past obstacles, and collects coins and power-ups
// while the track speeds up.
//
// The engine is a pure, single-threaded simulation driven by Advance. It owns
// no goroutines or wall-clock timers, so identical seeds and inputs always
// produce identical runs.
package rush

import "time"

// Lane is one of the three horizontal tracks.
type Lane int

const (
	LaneLeft Lane = iota
	LaneCenter
	LaneRight

	LaneCount = 3
)

// Phase is the top-level lifecycle state of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "notStarted"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// ActionState is the character's vertical action.
type ActionState int

const (
	ActionGrounded ActionState = iota
	ActionJumping
	ActionSliding
)

// String returns the action name.
func (a ActionState) String() string {
	switch a {
	case ActionGrounded:
		return "grounded"
	case ActionJumping:
		return "jumping"
	case ActionSliding:
		return "sliding"
	default:
		return "unknown"
	}
}

// Family groups entity kinds into the three spawned collections.
type Family int

const (
	FamilyObstacle Family = iota
	FamilyCoin
	FamilyPowerUp
)

// Kind is the subtype of a track entity.
type Kind int

const (
	KindLowBarrier   Kind = iota // Jump over it
	KindTallVehicle              // Slide under it
	KindCoin                     // Collected in any action state
	KindAirborneCoin             // Collected only while jumping
	KindMagnet
	KindShield
	KindSpeedBoost
)

// powerUpKinds is the uniform pool for power-up spawns.
var powerUpKinds = [...]Kind{KindMagnet, KindShield, KindSpeedBoost}

// Family returns the collection this kind belongs to.
func (k Kind) Family() Family {
	switch k {
	case KindLowBarrier, KindTallVehicle:
		return FamilyObstacle
	case KindCoin, KindAirborneCoin:
		return FamilyCoin
	default:
		return FamilyPowerUp
	}
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLowBarrier:
		return "lowBarrier"
	case KindTallVehicle:
		return "tallVehicle"
	case KindCoin:
		return "coin"
	case KindAirborneCoin:
		return "airborneCoin"
	case KindMagnet:
		return "magnet"
	case KindShield:
		return "shield"
	case KindSpeedBoost:
		return "speedBoost"
	default:
		return "unknown"
	}
}

// Entity is an obstacle, coin or power-up travelling down the track.
// Position starts at the spawn value and decreases every movement tick.
type Entity struct {
	ID       uint64
	Lane     Lane
	Kind     Kind
	Position float64
}

// Character is the player-controlled runner.
type Character struct {
	Lane   Lane
	Action ActionState
	Lives  int
	Skin   string
}

// ActivePowerUp is the single timed modifier currently in effect.
type ActivePowerUp struct {
	Kind      Kind
	ExpiresAt time.Duration // Game time of expiry
}

// Stats are per-run counters for the results screen and score history.
type Stats struct {
	CoinsCollected    int
	PowerUpsCollected int
	Hits              int
}

// Session is the aggregate of all mutable game state. The Engine owns it;
// the spawner, motion, collision and controller code are methods over it.
type Session struct {
	Phase      Phase
	Score      int
	FinalScore int
	Character  Character

	Obstacles []Entity
	Coins     []Entity
	PowerUps  []Entity

	BaseSpeed   float64 // Ramps with running ticks, capped by difficulty
	BoostFactor float64 // 1.0, or the boost factor while a speed boost is active
	Active      *ActivePowerUp

	MovementTicks int
	Stats         Stats

	nextID uint64
}

// Speed returns the current effective speed multiplier.
func (s *Session) Speed() float64 {
	return s.BaseSpeed * s.BoostFactor
}

// collection returns the slice holding the given family.
func (s *Session) collection(f Family) *[]Entity {
	switch f {
	case FamilyObstacle:
		return &s.Obstacles
	case FamilyCoin:
		return &s.Coins
	default:
		return &s.PowerUps
	}
}

// LiveEntities returns the number of entities on the track.
func (s *Session) LiveEntities() int {
	return len(s.Obstacles) + len(s.Coins) + len(s.PowerUps)
}

// Skin is a cosmetic character choice.
type Skin struct {
	ID    string
	Name  string
	Emoji string // For graphical front ends
	Glyph rune   // For the terminal renderer
}

// Skins lists the selectable characters in menu order.
var Skins = []Skin{
	{ID: "boy", Name: "Boy", Emoji: "🧑", Glyph: '@'},
	{ID: "girl", Name: "Girl", Emoji: "👧", Glyph: '&'},
	{ID: "robot", Name: "Robot", Emoji: "🤖", Glyph: '#'},
	{ID: "alien", Name: "Alien", Emoji: "👽", Glyph: '%'},
}

// DefaultSkin is the skin selected for a new engine.
const DefaultSkin = "boy"

// LookupSkin finds a skin by id.
func LookupSkin(id string) (Skin, bool) {
	for _, s := range Skins {
		if s.ID == id {
			return s, true
		}
	}
	return Skin{}, false
}

// NextSkin returns the id following the given one, wrapping around.
func NextSkin(id string) string {
	for i, s := range Skins {
		if s.ID == id {
			return Skins[(i+1)%len(Skins)].ID
		}
	}
	return DefaultSkin
}
