package simulation

// EntityID identifies an entity for its whole lifetime. IDs are never reused
// within an engine, so a stale ID simply fails its lookup.
type EntityID uint64

type idSource struct {
	next EntityID
}

func (s *idSource) Next() EntityID {
	s.next++
	return s.next
}

// Rect is an axis-aligned bounding box with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports exact overlap; touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether the point lies strictly inside r.
func (r Rect) Contains(x, y float64) bool {
	return x > r.X && x < r.X+r.W && y > r.Y && y < r.Y+r.H
}

// Body is the state every population entity shares.
type Body struct {
	ID     EntityID
	X, Y   float64
	Width  float64
	Height float64
	VX     float64 // Horizontal velocity per tick; negative scrolls left

	removed bool
}

// Rect returns the body's bounding box.
func (b *Body) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Alive reports whether the body is still part of its population.
func (b *Body) Alive() bool {
	return !b.removed
}

func (b *Body) remove() {
	b.removed = true
}

func (b *Body) drift() {
	b.X += b.VX
}

// offLeft reports whether the body has fully left the field on the left.
func (b *Body) offLeft() bool {
	return b.X < -b.Width
}

// GroundSegment is a stretch of terrain with constant elevation.
type GroundSegment struct {
	Body
	Elevation float64
}

// Obstacle is a pair of columns leaving a gap to fly through. Top is the
// height of the upper column and Bottom the height of the lower one, measured
// up from the bottom of the field.
type Obstacle struct {
	Body
	Top       float64
	Bottom    float64
	Gap       float64
	Elevation float64
}

// TopRect returns the upper blocking column.
func (o *Obstacle) TopRect() Rect {
	return Rect{X: o.X, Y: 0, W: o.Width, H: o.Top}
}

// BottomRect returns the lower blocking column for a field of height h.
func (o *Obstacle) BottomRect(h float64) Rect {
	return Rect{X: o.X, Y: h - o.Bottom, W: o.Width, H: o.Bottom}
}

// Projectile is a shot from the player (VX > 0) or an enemy (VX < 0).
type Projectile struct {
	Body
}

// Enemy drifts with the world and fires at a fixed interval frozen at spawn.
type Enemy struct {
	Body
	FireInterval int
}

// Survivor waits on the ground to be rescued.
type Survivor struct {
	Body
	Abducted   bool
	SegmentID  EntityID // Originating ground segment
	Elevation  float64  // Elevation of the originating segment
	TargetedBy EntityID // Abductor currently holding a reference, 0 if none
}

// Player is the craft under user control. Its x never changes.
type Player struct {
	X, Y     float64
	Width    float64
	Height   float64
	Velocity float64
}

// Rect returns the player's bounding box.
func (p *Player) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// CenterX returns the horizontal center used for ground queries.
func (p *Player) CenterX() float64 {
	return p.X + p.Width/2
}

// Bottom returns the y coordinate of the player's lower edge.
func (p *Player) Bottom() float64 {
	return p.Y + p.Height
}

type mortal interface {
	Alive() bool
}

// compact drops removed entities in place, keeping population order.
func compact[T mortal](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if it.Alive() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}
