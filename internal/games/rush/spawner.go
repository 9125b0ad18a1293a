package rush

import "github.com/vovakirdan/lane-rush/internal/config"

func (e *Engine) spawnFamily(f Family) config.SpawnFamily {
	switch f {
	case FamilyObstacle:
		return e.cfg.Spawn.Obstacles
	case FamilyCoin:
		return e.cfg.Spawn.Coins
	default:
		return e.cfg.Spawn.PowerUps
	}
}

// spawn runs one spawner tick for a family. The chance of a spawn scales
// with the current speed, so faster runs are denser.
func (e *Engine) spawn(f Family) {
	fam := e.spawnFamily(f)
	s := &e.session

	if e.rng.Float64() >= fam.Probability*s.Speed() {
		return
	}

	lane := Lane(e.rng.Intn(LaneCount))
	kind := e.pickKind(f, fam.Variant)

	s.nextID++
	col := s.collection(f)
	*col = append(*col, Entity{
		ID:       s.nextID,
		Lane:     lane,
		Kind:     kind,
		Position: e.cfg.Track.SpawnPosition,
	})
}

// pickKind draws the subtype for a new entity.
func (e *Engine) pickKind(f Family, variant float64) Kind {
	switch f {
	case FamilyObstacle:
		if e.rng.Float64() < variant {
			return KindTallVehicle
		}
		return KindLowBarrier
	case FamilyCoin:
		if e.rng.Float64() < variant {
			return KindAirborneCoin
		}
		return KindCoin
	default:
		return powerUpKinds[e.rng.Intn(len(powerUpKinds))]
	}
}
