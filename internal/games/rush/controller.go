package rush

import "math"

// SwipeThreshold is the minimum displacement along the dominant axis for a
// gesture to count as a swipe.
const SwipeThreshold = 50.0

// SwipeDirection is the classified direction of a gesture.
type SwipeDirection int

const (
	SwipeNone SwipeDirection = iota
	SwipeLeft
	SwipeRight
	SwipeUp
	SwipeDown
)

// String returns the direction name.
func (d SwipeDirection) String() string {
	switch d {
	case SwipeLeft:
		return "left"
	case SwipeRight:
		return "right"
	case SwipeUp:
		return "up"
	case SwipeDown:
		return "down"
	default:
		return "none"
	}
}

// ClassifySwipe picks the dominant axis of a displacement and returns its
// direction, or SwipeNone when the displacement does not exceed threshold.
// Screen coordinates: negative dy is up.
func ClassifySwipe(dx, dy, threshold float64) SwipeDirection {
	if math.Abs(dx) > math.Abs(dy) {
		switch {
		case dx > threshold:
			return SwipeRight
		case dx < -threshold:
			return SwipeLeft
		}
		return SwipeNone
	}
	switch {
	case dy > threshold:
		return SwipeDown
	case dy < -threshold:
		return SwipeUp
	}
	return SwipeNone
}

// MoveLeft shifts the character one lane left.
func (e *Engine) MoveLeft() {
	e.shiftLane(-1)
}

// MoveRight shifts the character one lane right.
func (e *Engine) MoveRight() {
	e.shiftLane(1)
}

func (e *Engine) shiftLane(delta int) {
	if !e.running() {
		return
	}
	lane := int(e.session.Character.Lane) + delta
	if lane < int(LaneLeft) || lane > int(LaneRight) {
		return
	}
	e.session.Character.Lane = Lane(lane)
}

// Jump starts a jump. Ignored unless running and grounded.
func (e *Engine) Jump() {
	e.startAction(ActionJumping)
}

// Slide starts a slide. Ignored unless running and grounded.
func (e *Engine) Slide() {
	e.startAction(ActionSliding)
}

func (e *Engine) startAction(a ActionState) {
	if !e.running() || e.session.Character.Action != ActionGrounded {
		return
	}
	e.session.Character.Action = a
	e.actionTimer = e.sched.After(ms(e.cfg.Timing.ActionDurationMs), func() {
		e.session.Character.Action = ActionGrounded
		e.actionTimer = 0
	})
}

// Swipe applies a touch or drag gesture.
func (e *Engine) Swipe(dx, dy float64) {
	switch ClassifySwipe(dx, dy, SwipeThreshold) {
	case SwipeLeft:
		e.MoveLeft()
	case SwipeRight:
		e.MoveRight()
	case SwipeUp:
		e.Jump()
	case SwipeDown:
		e.Slide()
	}
}

// SelectCharacter sets the cosmetic skin. Unknown ids are ignored.
func (e *Engine) SelectCharacter(id string) {
	if e.closed {
		return
	}
	if _, ok := LookupSkin(id); !ok {
		return
	}
	e.session.Character.Skin = id
}
