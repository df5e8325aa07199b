package simulation

// hitsObstacle applies the forgiving player hitbox: margin is shaved off
// every side before testing against the obstacle's columns.
func hitsObstacle(p *Player, o *Obstacle, margin, fieldHeight float64) bool {
	if p.X+p.Width-margin <= o.X || p.X+margin >= o.X+o.Width {
		return false
	}
	return p.Y+margin < o.Top || p.Y+p.Height-margin > fieldHeight-o.Bottom
}

// canRescue reports whether the player is touching down on the survivor's
// ground line while overlapping it horizontally.
func canRescue(p *Player, s *Survivor, fieldHeight float64) bool {
	if s.Abducted {
		return false
	}
	return p.X+p.Width > s.X && p.X < s.X+s.Width && p.Bottom() >= fieldHeight-s.Elevation
}

// resolveCollisions runs every pairing in a fixed order. Entities consumed by
// an earlier pairing are skipped by later ones. It reports whether the
// player was hit.
func (e *Engine) resolveCollisions() bool {
	h := e.cfg.Field.Height
	p := &e.player
	hit := false

	for _, o := range e.obstacles {
		if o.Alive() && hitsObstacle(p, o, e.cfg.Player.ObstacleMargin, h) {
			hit = true
			break
		}
	}

	if !hit {
		pr := p.Rect()
		for _, shot := range e.enemyShots {
			if shot.Alive() && pr.Overlaps(shot.Rect()) {
				hit = true
				break
			}
		}
	}

	e.resolveShotsOnEnemies()
	e.resolveShotsOnAbductors()
	e.resolveSurvivors()

	return hit
}

func (e *Engine) resolveShotsOnEnemies() {
	for _, shot := range e.projectiles {
		if !shot.Alive() {
			continue
		}
		for _, en := range e.enemies {
			if !en.Alive() || !en.Rect().Contains(shot.X, shot.Y) {
				continue
			}
			shot.remove()
			en.remove()
			e.award(EventEnemyDestroyed, en.ID, e.cfg.Scoring.EnemyDestroyed)
			break
		}
	}
}

func (e *Engine) resolveShotsOnAbductors() {
	for _, shot := range e.projectiles {
		if !shot.Alive() {
			continue
		}
		for _, a := range e.abductors {
			if !a.Alive() || a.State == AbductorEscaped || !a.Rect().Contains(shot.X, shot.Y) {
				continue
			}
			shot.remove()
			e.shootAbductor(a)
			break
		}
	}
}

func (e *Engine) shootAbductor(a *Abductor) {
	target := e.survivor(a.TargetID)
	points := 0
	if a.State == AbductorAbducting {
		if target != nil {
			target.remove()
		}
		points = e.cfg.Scoring.AbductorShot
	} else if target != nil {
		// Free the survivor for another abductor.
		target.TargetedBy = 0
	}
	a.remove()
	e.award(EventAbductorShot, a.ID, points)
}

func (e *Engine) resolveSurvivors() {
	h := e.cfg.Field.Height
	for _, s := range e.survivors {
		if !s.Alive() || s.Abducted {
			continue
		}
		if s.offLeft() {
			s.remove()
			continue
		}
		if canRescue(&e.player, s, h) {
			s.remove()
			e.award(EventSurvivorRescued, s.ID, e.cfg.Scoring.SurvivorRescued)
		}
	}
}
