package simulation

import (
	"testing"

	"chosenoffset.com/flappydefender/internal/dice"
)

// newTestEngine builds an engine on the default rules whose random draws are
// scripted. With no values every draw is 0.5, which puts the starting ground
// at elevation 65.
func newTestEngine(t *testing.T, values ...float64) *Engine {
	t.Helper()
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return New(DefaultConfig(), dice.NewRoller(dice.NewSequence(values...)))
}

// newCalmEngine is newTestEngine on calmConfig.
func newCalmEngine(t *testing.T, values ...float64) *Engine {
	t.Helper()
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return New(calmConfig(), dice.NewRoller(dice.NewSequence(values...)))
}

// calmConfig pushes every spawn far out so scenarios only see what they place.
func calmConfig() *Config {
	cfg := DefaultConfig()
	const never = 1 << 30
	cfg.Spawn.ObstacleInterval = never
	cfg.Spawn.ProjectileInterval = never
	cfg.Spawn.EnemyInterval = never
	cfg.Spawn.SurvivorInterval = never
	cfg.Spawn.AbductorInterval = never
	return cfg
}

func addEnemy(e *Engine, x, y float64) *Enemy {
	en := &Enemy{
		Body: Body{
			ID: e.ids.Next(), X: x, Y: y,
			Width: e.cfg.Entities.Enemy.Width, Height: e.cfg.Entities.Enemy.Height,
			VX: -e.cfg.Field.ScrollSpeed,
		},
		FireInterval: e.cfg.Difficulty.FireInterval(e.score),
	}
	e.enemies = append(e.enemies, en)
	return en
}

func addShot(e *Engine, x, y float64) *Projectile {
	p := &Projectile{Body: Body{
		ID: e.ids.Next(), X: x, Y: y,
		Width: e.cfg.Entities.Projectile.Width, Height: e.cfg.Entities.Projectile.Height,
		VX: e.cfg.Entities.ProjectileSpeed,
	}}
	e.projectiles = append(e.projectiles, p)
	return p
}

func addEnemyShot(e *Engine, x, y float64) *Projectile {
	p := &Projectile{Body: Body{
		ID: e.ids.Next(), X: x, Y: y,
		Width: e.cfg.Entities.EnemyProjectile.Width, Height: e.cfg.Entities.EnemyProjectile.Height,
		VX: -e.cfg.Entities.EnemyProjectileSpeed,
	}}
	e.enemyShots = append(e.enemyShots, p)
	return p
}

// addSurvivor places a survivor resting on the starting ground segment.
func addSurvivor(e *Engine, x float64) *Survivor {
	seg := e.terrain.Segments()[0]
	size := e.cfg.Entities.Survivor
	s := &Survivor{
		Body: Body{
			ID: e.ids.Next(), X: x, Y: e.cfg.GroundLine(seg.Elevation) - size.Height,
			Width: size.Width, Height: size.Height,
			VX: -e.cfg.Field.ScrollSpeed,
		},
		SegmentID: seg.ID,
		Elevation: seg.Elevation,
	}
	e.survivors = append(e.survivors, s)
	return s
}

func addAbductor(e *Engine, x, y float64, target *Survivor, state AbductorState) *Abductor {
	size := e.cfg.Entities.Abductor
	a := &Abductor{
		Body: Body{
			ID: e.ids.Next(), X: x, Y: y,
			Width: size.Width, Height: size.Height,
		},
		Speed:    e.cfg.Field.ScrollSpeed + e.cfg.Entities.AbductorSpeedBonus,
		State:    state,
		TargetID: target.ID,
	}
	target.TargetedBy = a.ID
	if state == AbductorAbducting {
		target.Abducted = true
		target.X = a.X
		target.Y = a.Y + a.Height
	}
	e.abductors = append(e.abductors, a)
	return a
}

func eventsOf(s Snapshot, kind EventKind) []Event {
	var out []Event
	for _, ev := range s.Events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// countingSource hands out a fixed value and counts how often it was asked.
type countingSource struct {
	draws int
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return 0.5
}
