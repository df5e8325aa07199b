package simulation

func every(tick uint64, interval int) bool {
	return interval > 0 && tick%uint64(interval) == 0
}

// spawn runs the schedule for the current tick. Draws happen in a fixed
// order so a seed always replays the same run.
func (e *Engine) spawn() {
	sp := e.cfg.Spawn

	if every(e.tick, sp.ObstacleInterval) {
		seg := e.terrain.SpawnSegment()
		e.obstacles = append(e.obstacles, e.newObstacle(seg.Elevation))
	}

	if every(e.tick, sp.ProjectileInterval) {
		e.projectiles = append(e.projectiles, e.newPlayerProjectile())
	}

	if every(e.tick, sp.EnemyInterval) {
		e.enemies = append(e.enemies, e.newEnemy())
	}

	if every(e.tick, sp.SurvivorInterval) && e.dice.Chance(sp.SurvivorChance) {
		if seg := e.terrain.Latest(); seg != nil {
			e.survivors = append(e.survivors, e.newSurvivor(seg))
		}
	}

	if every(e.tick, sp.AbductorInterval) {
		candidates := e.abductionCandidates()
		if len(candidates) > 0 && e.dice.Chance(sp.AbductorChance) {
			target := candidates[e.dice.Pick(len(candidates))]
			e.abductors = append(e.abductors, e.newAbductor(target))
		}
	}
}

func (e *Engine) newObstacle(elevation float64) *Obstacle {
	h := e.cfg.Field.Height
	edge := e.cfg.Spawn.ObstacleEdge
	gap := e.cfg.Difficulty.GapWidth(e.score)

	top := e.dice.Range(edge, h-gap-elevation-edge)
	return &Obstacle{
		Body: Body{
			ID:     e.ids.Next(),
			X:      e.cfg.Field.Width,
			Width:  e.cfg.Entities.ObstacleWidth,
			Height: h,
			VX:     -e.cfg.Field.ScrollSpeed,
		},
		Top:       top,
		Bottom:    h - elevation - (top + gap),
		Gap:       gap,
		Elevation: elevation,
	}
}

func (e *Engine) newPlayerProjectile() *Projectile {
	size := e.cfg.Entities.Projectile
	return &Projectile{Body: Body{
		ID:     e.ids.Next(),
		X:      e.player.X + e.player.Width,
		Y:      e.player.Y + e.player.Height/2,
		Width:  size.Width,
		Height: size.Height,
		VX:     e.cfg.Entities.ProjectileSpeed,
	}}
}

func (e *Engine) airborneY() float64 {
	return e.dice.Range(e.cfg.Spawn.AirborneMinY, e.cfg.Field.Height/2)
}

func (e *Engine) newEnemy() *Enemy {
	size := e.cfg.Entities.Enemy
	return &Enemy{
		Body: Body{
			ID:     e.ids.Next(),
			X:      e.cfg.Field.Width,
			Y:      e.airborneY(),
			Width:  size.Width,
			Height: size.Height,
			VX:     -e.cfg.Field.ScrollSpeed,
		},
		FireInterval: e.cfg.Difficulty.FireInterval(e.score),
	}
}

func (e *Engine) newEnemyProjectile(from *Enemy) *Projectile {
	size := e.cfg.Entities.EnemyProjectile
	return &Projectile{Body: Body{
		ID:     e.ids.Next(),
		X:      from.X,
		Y:      from.Y + from.Height/2,
		Width:  size.Width,
		Height: size.Height,
		VX:     -e.cfg.Entities.EnemyProjectileSpeed,
	}}
}

func (e *Engine) newSurvivor(seg *GroundSegment) *Survivor {
	size := e.cfg.Entities.Survivor
	offset := e.dice.Range(e.cfg.Spawn.SurvivorMinOffset, e.cfg.Spawn.SurvivorMaxOffset)
	return &Survivor{
		Body: Body{
			ID:     e.ids.Next(),
			X:      seg.X + offset,
			Y:      e.cfg.GroundLine(seg.Elevation) - size.Height,
			Width:  size.Width,
			Height: size.Height,
			VX:     -e.cfg.Field.ScrollSpeed,
		},
		SegmentID: seg.ID,
		Elevation: seg.Elevation,
	}
}

// abductionCandidates lists live survivors that are neither abducted nor
// already hunted by another abductor.
func (e *Engine) abductionCandidates() []*Survivor {
	var out []*Survivor
	for _, s := range e.survivors {
		if s.Alive() && !s.Abducted && s.TargetedBy == 0 {
			out = append(out, s)
		}
	}
	return out
}

func (e *Engine) newAbductor(target *Survivor) *Abductor {
	size := e.cfg.Entities.Abductor
	a := &Abductor{
		Body: Body{
			ID:     e.ids.Next(),
			X:      e.cfg.Field.Width,
			Y:      e.airborneY(),
			Width:  size.Width,
			Height: size.Height,
		},
		Speed:    e.cfg.Field.ScrollSpeed + e.cfg.Entities.AbductorSpeedBonus,
		State:    AbductorSeeking,
		TargetID: target.ID,
	}
	target.TargetedBy = a.ID
	return a
}
