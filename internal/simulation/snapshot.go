package simulation

// Kind names an entity population in a snapshot.
type Kind string

const (
	KindPlayer          Kind = "player"
	KindGround          Kind = "ground"
	KindObstacle        Kind = "obstacle"
	KindProjectile      Kind = "projectile"
	KindEnemy           Kind = "enemy"
	KindEnemyProjectile Kind = "enemy_projectile"
	KindSurvivor        Kind = "survivor"
	KindAbductor        Kind = "abductor"
)

// EventKind names something notable that happened during a tick.
type EventKind string

const (
	EventEnemyDestroyed   EventKind = "enemy_destroyed"
	EventAbductorShot     EventKind = "abductor_shot"
	EventSurvivorRescued  EventKind = "survivor_rescued"
	EventSurvivorCaptured EventKind = "survivor_captured"
	EventSurvivorLost     EventKind = "survivor_lost"
	EventGameOver         EventKind = "game_over"
)

// Event records an outcome of a tick. Points is the score it awarded.
type Event struct {
	Kind     EventKind `json:"kind" msgpack:"k"`
	Tick     uint64    `json:"tick" msgpack:"t"`
	EntityID EntityID  `json:"entity_id,omitempty" msgpack:"id,omitempty"`
	Points   int       `json:"points,omitempty" msgpack:"p,omitempty"`
}

// EntityView is one rectangle to draw. Obstacles produce two views (upper
// and lower column) sharing an ID; ground segments are reported as the filled
// area below the ground line.
type EntityView struct {
	ID       EntityID `json:"id" msgpack:"id"`
	Kind     Kind     `json:"kind" msgpack:"k"`
	X        float64  `json:"x" msgpack:"x"`
	Y        float64  `json:"y" msgpack:"y"`
	W        float64  `json:"w" msgpack:"w"`
	H        float64  `json:"h" msgpack:"h"`
	Abducted bool     `json:"abducted,omitempty" msgpack:"ab,omitempty"`
	State    string   `json:"state,omitempty" msgpack:"st,omitempty"`
}

// Snapshot is the renderable state after a tick. It shares no memory with
// the engine.
type Snapshot struct {
	Tick     uint64       `json:"tick" msgpack:"tick"`
	Score    int          `json:"score" msgpack:"score"`
	GameOver bool         `json:"game_over" msgpack:"over"`
	Width    float64      `json:"width" msgpack:"w"`
	Height   float64      `json:"height" msgpack:"h"`
	Entities []EntityView `json:"entities" msgpack:"e"`
	Events   []Event      `json:"events,omitempty" msgpack:"ev,omitempty"`
}

// Count returns how many views of kind the snapshot holds.
func (s *Snapshot) Count(kind Kind) int {
	n := 0
	for _, v := range s.Entities {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

// Snapshot captures the current state without advancing the simulation.
func (e *Engine) Snapshot() Snapshot {
	h := e.cfg.Field.Height
	views := make([]EntityView, 0, e.population()+8)

	for _, seg := range e.terrain.Segments() {
		if !seg.Alive() {
			continue
		}
		views = append(views, EntityView{
			ID: seg.ID, Kind: KindGround,
			X: seg.X, Y: h - seg.Elevation, W: seg.Width, H: seg.Elevation,
		})
	}
	for _, o := range e.obstacles {
		if !o.Alive() {
			continue
		}
		top, bottom := o.TopRect(), o.BottomRect(h)
		views = append(views,
			EntityView{ID: o.ID, Kind: KindObstacle, X: top.X, Y: top.Y, W: top.W, H: top.H},
			EntityView{ID: o.ID, Kind: KindObstacle, X: bottom.X, Y: bottom.Y, W: bottom.W, H: bottom.H},
		)
	}
	for _, s := range e.survivors {
		if !s.Alive() {
			continue
		}
		views = append(views, bodyView(&s.Body, KindSurvivor, func(v *EntityView) { v.Abducted = s.Abducted }))
	}
	for _, p := range e.projectiles {
		if p.Alive() {
			views = append(views, bodyView(&p.Body, KindProjectile, nil))
		}
	}
	for _, en := range e.enemies {
		if en.Alive() {
			views = append(views, bodyView(&en.Body, KindEnemy, nil))
		}
	}
	for _, p := range e.enemyShots {
		if p.Alive() {
			views = append(views, bodyView(&p.Body, KindEnemyProjectile, nil))
		}
	}
	for _, a := range e.abductors {
		if !a.Alive() {
			continue
		}
		views = append(views, bodyView(&a.Body, KindAbductor, func(v *EntityView) { v.State = a.State.String() }))
	}

	pr := e.player.Rect()
	views = append(views, EntityView{Kind: KindPlayer, X: pr.X, Y: pr.Y, W: pr.W, H: pr.H})

	var events []Event
	if len(e.events) > 0 {
		events = append(events, e.events...)
	}

	return Snapshot{
		Tick:     e.tick,
		Score:    e.score,
		GameOver: e.gameOver,
		Width:    e.cfg.Field.Width,
		Height:   h,
		Entities: views,
		Events:   events,
	}
}

func bodyView(b *Body, kind Kind, decorate func(*EntityView)) EntityView {
	v := EntityView{ID: b.ID, Kind: kind, X: b.X, Y: b.Y, W: b.Width, H: b.Height}
	if decorate != nil {
		decorate(&v)
	}
	return v
}
