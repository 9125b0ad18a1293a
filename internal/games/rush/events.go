package rush

// Event is a notification emitted by the engine. The set is closed; switch
// on the concrete type to handle one.
type Event interface {
	isEvent()
}

type (
	// GameStarted is emitted when a run begins.
	GameStarted struct{}
	// GamePaused is emitted when a running game is paused.
	GamePaused struct{}
	// GameResumed is emitted when a paused game continues.
	GameResumed struct{}
	// GameReset is emitted when the session returns to the not-started baseline.
	GameReset struct{}
	// GameOver carries the score the run ended with.
	GameOver struct{ FinalScore int }
	// Hit is emitted when an obstacle costs a life.
	Hit struct{ LivesRemaining int }
	// CoinCollected carries the score after the coin was counted.
	CoinCollected struct{ Score int }
	// PowerUpActivated is emitted when a power-up is picked up.
	PowerUpActivated struct{ Kind Kind }
	// PowerUpExpired is emitted when the active power-up times out.
	PowerUpExpired struct{ Kind Kind }
	// MilestoneReached is emitted when the score crosses a milestone.
	MilestoneReached struct{ Score int }
)

func (GameStarted) isEvent()      {}
func (GamePaused) isEvent()       {}
func (GameResumed) isEvent()      {}
func (GameReset) isEvent()        {}
func (GameOver) isEvent()         {}
func (Hit) isEvent()              {}
func (CoinCollected) isEvent()    {}
func (PowerUpActivated) isEvent() {}
func (PowerUpExpired) isEvent()   {}
func (MilestoneReached) isEvent() {}

// EventName returns a stable name for an event, used by logs and the wire
// format.
func EventName(e Event) string {
	switch e.(type) {
	case GameStarted:
		return "gameStarted"
	case GamePaused:
		return "gamePaused"
	case GameResumed:
		return "gameResumed"
	case GameReset:
		return "gameReset"
	case GameOver:
		return "gameOver"
	case Hit:
		return "hit"
	case CoinCollected:
		return "coinCollected"
	case PowerUpActivated:
		return "powerUpActivated"
	case PowerUpExpired:
		return "powerUpExpired"
	case MilestoneReached:
		return "milestoneReached"
	default:
		return "unknown"
	}
}

type subscriber struct {
	id uint64
	fn func(Event)
}

// bus fans events out to subscribers in registration order.
type bus struct {
	subs   []subscriber
	nextID uint64
}

func (b *bus) subscribe(fn func(Event)) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) emit(e Event) {
	// Copy so a subscriber may unsubscribe during delivery.
	subs := append([]subscriber(nil), b.subs...)
	for _, s := range subs {
		s.fn(e)
	}
}

func (b *bus) clear() {
	b.subs = nil
}
