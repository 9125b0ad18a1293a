package rush

import (
	"math"
	"slices"
)

// inBand reports whether an entity is alongside the character.
func (e *Engine) inBand(ent Entity, radius float64, anyLane bool) bool {
	if math.Abs(ent.Position-e.cfg.Track.CharacterPosition) >= radius {
		return false
	}
	return anyLane || ent.Lane == e.session.Character.Lane
}

func (e *Engine) powerUpActive(k Kind) bool {
	return e.session.Active != nil && e.session.Active.Kind == k
}

// running reports whether collision processing may continue. A subscriber
// can end, pause or reset the game while an event is delivered.
func (e *Engine) running() bool {
	return !e.closed && e.session.Phase == PhaseRunning
}

// detectCollisions resolves obstacles, then coins, then power-ups.
func (e *Engine) detectCollisions() {
	if !e.running() {
		return
	}
	e.collideObstacles()
	if !e.running() {
		return
	}
	e.collideCoins()
	if !e.running() {
		return
	}
	e.collidePowerUps()
}

// avoids reports whether the character passes an obstacle unharmed.
// Avoided obstacles stay on the track.
func (e *Engine) avoids(ob Entity) bool {
	switch {
	case e.powerUpActive(KindShield):
		return true
	case ob.Kind == KindLowBarrier && e.session.Character.Action == ActionJumping:
		return true
	case ob.Kind == KindTallVehicle && e.session.Character.Action == ActionSliding:
		return true
	}
	return false
}

func (e *Engine) collideObstacles() {
	s := &e.session
	for i := 0; i < len(s.Obstacles); {
		ob := s.Obstacles[i]
		if !e.inBand(ob, e.cfg.Track.ProximityRadius, false) || e.avoids(ob) {
			i++
			continue
		}

		s.Obstacles = slices.Delete(s.Obstacles, i, i+1)
		s.Stats.Hits++

		if s.Character.Lives > 1 {
			s.Character.Lives--
			e.emit(Hit{LivesRemaining: s.Character.Lives})
			if !e.running() {
				return
			}
			continue
		}

		s.Character.Lives = 0
		e.emit(Hit{LivesRemaining: 0})
		e.EndGame()
		return
	}
}

func (e *Engine) collideCoins() {
	s := &e.session
	magnet := e.powerUpActive(KindMagnet)
	radius := e.cfg.Track.ProximityRadius
	if magnet {
		radius = e.cfg.Track.MagnetRadius
	}

	for i := 0; i < len(s.Coins); {
		c := s.Coins[i]
		if !e.inBand(c, radius, magnet) {
			i++
			continue
		}
		if c.Kind == KindAirborneCoin && !magnet && s.Character.Action != ActionJumping {
			i++
			continue
		}

		s.Coins = slices.Delete(s.Coins, i, i+1)
		e.collectCoin()
		if !e.running() {
			return
		}
	}
}

func (e *Engine) collectCoin() {
	s := &e.session
	prev := s.Score
	s.Score += e.cfg.Gameplay.CoinReward
	s.Stats.CoinsCollected++
	e.emit(CoinCollected{Score: s.Score})

	every := e.cfg.Gameplay.MilestoneEvery
	if every > 0 && s.Score/every > prev/every && e.running() {
		e.logger.Debug("milestone", "score", s.Score)
		e.emit(MilestoneReached{Score: s.Score / every * every})
	}
}

func (e *Engine) collidePowerUps() {
	s := &e.session
	for i := 0; i < len(s.PowerUps); {
		p := s.PowerUps[i]
		if !e.inBand(p, e.cfg.Track.ProximityRadius, false) {
			i++
			continue
		}

		s.PowerUps = slices.Delete(s.PowerUps, i, i+1)
		s.Stats.PowerUpsCollected++
		e.activatePowerUp(p.Kind)
		e.emit(PowerUpActivated{Kind: p.Kind})
		if !e.running() {
			return
		}
	}
}
