package rush

var families = [...]Family{FamilyObstacle, FamilyCoin, FamilyPowerUp}

// moveEntities advances every entity towards the character and drops the
// ones that left the track.
func (e *Engine) moveEntities() {
	step := e.cfg.Track.MoveStep * e.session.Speed()
	evict := e.cfg.Track.EvictPosition

	for _, f := range families {
		col := e.session.collection(f)
		for i := range *col {
			(*col)[i].Position -= step
		}

		kept := (*col)[:0]
		for _, ent := range *col {
			if ent.Position > evict {
				kept = append(kept, ent)
			}
		}
		clear((*col)[len(kept):])
		*col = kept
	}
}
