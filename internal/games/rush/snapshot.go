package rush

import (
	"slices"
	"time"
)

// PowerUpStatus describes the active power-up in a snapshot.
type PowerUpStatus struct {
	Kind      Kind
	Remaining time.Duration
}

// Snapshot is a read-only copy of all observable state. It shares no memory
// with the engine.
type Snapshot struct {
	Phase      Phase
	Score      int
	FinalScore int
	Lives      int
	Lane       Lane
	Action     ActionState
	Skin       string

	Obstacles []Entity
	Coins     []Entity
	PowerUps  []Entity

	Active   *PowerUpStatus
	Speed    float64
	GameTime time.Duration
	Stats    Stats
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	s := &e.session
	snap := Snapshot{
		Phase:      s.Phase,
		Score:      s.Score,
		FinalScore: s.FinalScore,
		Lives:      s.Character.Lives,
		Lane:       s.Character.Lane,
		Action:     s.Character.Action,
		Skin:       s.Character.Skin,
		Obstacles:  slices.Clone(s.Obstacles),
		Coins:      slices.Clone(s.Coins),
		PowerUps:   slices.Clone(s.PowerUps),
		Speed:      s.Speed(),
		GameTime:   e.sched.Now(),
		Stats:      s.Stats,
	}
	if s.Active != nil {
		snap.Active = &PowerUpStatus{
			Kind:      s.Active.Kind,
			Remaining: max(s.Active.ExpiresAt-e.sched.Now(), 0),
		}
	}
	return snap
}

// Entities returns all entities of the snapshot in family order.
func (s Snapshot) Entities() []Entity {
	out := make([]Entity, 0, len(s.Obstacles)+len(s.Coins)+len(s.PowerUps))
	out = append(out, s.Obstacles...)
	out = append(out, s.Coins...)
	return append(out, s.PowerUps...)
}
