package simulation

import (
	"fmt"
	"strings"

	"chosenoffset.com/flappydefender/internal/dice"
)

// Command is a discrete input applied at the start of the next tick.
type Command int

const (
	CommandLift Command = iota + 1
	CommandReset
)

func (c Command) String() string {
	switch c {
	case CommandLift:
		return "lift"
	case CommandReset:
		return "reset"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// ParseCommand maps a wire name ("lift", "reset") to a Command.
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lift", "up", "flap":
		return CommandLift, nil
	case "reset", "restart":
		return CommandReset, nil
	}
	return 0, fmt.Errorf("unknown command %q", s)
}

// Engine owns every population and advances them one tick at a time. It
// holds no timer and no locks: one caller drives Tick and the same caller
// (or one serializing on its behalf) queues input.
type Engine struct {
	cfg     *Config
	dice    *dice.Roller
	ids     idSource
	terrain *Terrain

	tick     uint64
	score    int
	gameOver bool

	player      Player
	obstacles   []*Obstacle
	projectiles []*Projectile
	enemies     []*Enemy
	enemyShots  []*Projectile
	survivors   []*Survivor
	abductors   []*Abductor

	pending []Command
	events  []Event
}

// New creates an engine in its starting state. A nil cfg uses
// DefaultConfig.
func New(cfg *Config, roller *dice.Roller) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{cfg: cfg, dice: roller}
	e.terrain = NewTerrain(cfg, roller, &e.ids)
	e.Initialize()
	return e
}

// Initialize builds the starting state: the player at its start position,
// one full-width ground segment, empty populations and a zero score.
func (e *Engine) Initialize() {
	e.tick = 0
	e.score = 0
	e.gameOver = false

	e.player = newPlayer(e.cfg)
	e.terrain.Reset()

	e.obstacles = nil
	e.projectiles = nil
	e.enemies = nil
	e.enemyShots = nil
	e.survivors = nil
	e.abductors = nil

	e.pending = e.pending[:0]
	e.events = e.events[:0]
}

// Reset discards the run and starts over. Safe at any time, including after
// game over.
func (e *Engine) Reset() {
	e.Initialize()
}

// OnLift queues a lift impulse for the next tick.
func (e *Engine) OnLift() {
	e.Enqueue(CommandLift)
}

// Enqueue queues a command for the next tick.
func (e *Engine) Enqueue(c Command) {
	e.pending = append(e.pending, c)
}

// Config returns the rules the engine runs on.
func (e *Engine) Config() *Config { return e.cfg }

// Score returns the accumulated score.
func (e *Engine) Score() int { return e.score }

// GameOver reports whether the run has ended.
func (e *Engine) GameOver() bool { return e.gameOver }

// TickCount returns the number of ticks advanced since the last reset.
func (e *Engine) TickCount() uint64 { return e.tick }

// Tick advances the simulation by one step and returns the resulting
// snapshot. After game over only queued resets have any effect.
func (e *Engine) Tick() Snapshot {
	e.events = e.events[:0]
	e.applyCommands()
	if e.gameOver {
		return e.Snapshot()
	}

	e.tick++

	e.player.Step(e.cfg.Player.Gravity, e.cfg.Field.Height, e.terrain.ElevationAt(e.player.CenterX()))
	e.spawn()
	e.advance()

	if e.resolveCollisions() {
		e.gameOver = true
		e.events = append(e.events, Event{Kind: EventGameOver, Tick: e.tick})
	}

	e.compact()
	return e.Snapshot()
}

func (e *Engine) applyCommands() {
	if len(e.pending) == 0 {
		return
	}
	cmds := e.pending
	e.pending = nil
	for _, c := range cmds {
		switch c {
		case CommandReset:
			e.Initialize()
		case CommandLift:
			if !e.gameOver {
				e.player.Lift(e.cfg.Player.Lift)
			}
		}
	}
}

// advance moves every population one step and marks what left the field.
func (e *Engine) advance() {
	e.terrain.Advance()

	for _, o := range e.obstacles {
		o.drift()
		if o.offLeft() {
			o.remove()
		}
	}

	for _, p := range e.projectiles {
		p.drift()
		if p.X > e.cfg.Field.Width {
			p.remove()
		}
	}

	for _, en := range e.enemies {
		en.drift()
		if en.offLeft() {
			en.remove()
			continue
		}
		if every(e.tick, en.FireInterval) {
			e.enemyShots = append(e.enemyShots, e.newEnemyProjectile(en))
		}
	}

	for _, p := range e.enemyShots {
		p.drift()
		if p.offLeft() {
			p.remove()
		}
	}

	for _, s := range e.survivors {
		if !s.Abducted {
			s.drift()
		}
	}

	scroll := e.cfg.Field.ScrollSpeed
	radius := e.cfg.Entities.AbductorCaptureRadius
	for _, a := range e.abductors {
		target := e.survivor(a.TargetID)
		switch a.Update(target, scroll, radius) {
		case OutcomeCaptured:
			e.events = append(e.events, Event{Kind: EventSurvivorCaptured, Tick: e.tick, EntityID: a.TargetID})
		case OutcomeEscaped:
			if target != nil {
				target.remove()
				e.events = append(e.events, Event{Kind: EventSurvivorLost, Tick: e.tick, EntityID: target.ID})
			}
		}
		if a.Offscreen() {
			a.remove()
		}
	}
}

func (e *Engine) compact() {
	e.terrain.compact()
	e.obstacles = compact(e.obstacles)
	e.projectiles = compact(e.projectiles)
	e.enemies = compact(e.enemies)
	e.enemyShots = compact(e.enemyShots)
	e.survivors = compact(e.survivors)
	e.abductors = compact(e.abductors)
}

// survivor resolves a survivor ID, returning nil once it has been removed.
func (e *Engine) survivor(id EntityID) *Survivor {
	if id == 0 {
		return nil
	}
	for _, s := range e.survivors {
		if s.ID == id {
			if !s.Alive() {
				return nil
			}
			return s
		}
	}
	return nil
}

func (e *Engine) award(kind EventKind, id EntityID, points int) {
	e.score += points
	e.events = append(e.events, Event{Kind: kind, Tick: e.tick, EntityID: id, Points: points})
}

func (e *Engine) population() int {
	return len(e.terrain.Segments()) + 2*len(e.obstacles) + len(e.projectiles) +
		len(e.enemies) + len(e.enemyShots) + len(e.survivors) + len(e.abductors)
}
