package rush

// activatePowerUp makes kind the single active power-up. A power-up that is
// already active is cancelled and its effect reversed first.
func (e *Engine) activatePowerUp(kind Kind) {
	s := &e.session
	if s.Active != nil {
		e.sched.Cancel(e.powerTimer)
		e.reverseEffect(s.Active.Kind)
		s.Active = nil
	}

	if kind == KindSpeedBoost {
		s.BoostFactor *= e.cfg.Speed.BoostFactor
	}

	d := ms(e.cfg.Timing.PowerUpDurationMs)
	s.Active = &ActivePowerUp{Kind: kind, ExpiresAt: e.sched.Now() + d}
	e.powerTimer = e.sched.After(d, e.expirePowerUp)
	e.logger.Debug("power-up activated", "kind", kind, "speed", s.Speed())
}

func (e *Engine) expirePowerUp() {
	s := &e.session
	e.powerTimer = 0
	if s.Active == nil {
		return
	}
	kind := s.Active.Kind
	e.reverseEffect(kind)
	s.Active = nil
	e.logger.Debug("power-up expired", "kind", kind)
	e.emit(PowerUpExpired{Kind: kind})
}

func (e *Engine) reverseEffect(kind Kind) {
	if kind == KindSpeedBoost {
		e.session.BoostFactor /= e.cfg.Speed.BoostFactor
	}
}
