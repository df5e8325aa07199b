package simulation

import (
	"chosenoffset.com/flappydefender/internal/dice"
)

// Terrain generates and scrolls ground segments and answers elevation
// queries against them.
type Terrain struct {
	cfg      *Config
	roller   *dice.Roller
	ids      *idSource
	segments []*GroundSegment
}

// NewTerrain creates an empty terrain. Reset lays the starting segment.
func NewTerrain(cfg *Config, roller *dice.Roller, ids *idSource) *Terrain {
	return &Terrain{cfg: cfg, roller: roller, ids: ids}
}

// Reset discards every segment and lays a single starting segment that
// covers the whole field plus an overhang.
func (t *Terrain) Reset() {
	clear(t.segments)
	t.segments = t.segments[:0]

	start := t.newSegment()
	start.X = 0
	start.Width = t.cfg.Field.Width + t.cfg.Terrain.StartOverhang
	t.segments = append(t.segments, start)
}

// SpawnSegment creates a segment at the right edge of the field.
func (t *Terrain) SpawnSegment() *GroundSegment {
	seg := t.newSegment()
	t.segments = append(t.segments, seg)
	return seg
}

func (t *Terrain) newSegment() *GroundSegment {
	return &GroundSegment{
		Body: Body{
			ID:    t.ids.Next(),
			X:     t.cfg.Field.Width,
			Width: t.cfg.Terrain.SegmentWidth,
			VX:    -t.cfg.Field.ScrollSpeed,
		},
		Elevation: t.roller.Range(t.cfg.Terrain.MinElevation, t.cfg.Terrain.MaxElevation),
	}
}

// ElevationAt returns the elevation of the first segment, in spawn order,
// whose range contains x. Positions outside every segment get the default.
func (t *Terrain) ElevationAt(x float64) float64 {
	for _, seg := range t.segments {
		if !seg.Alive() {
			continue
		}
		if x >= seg.X && x <= seg.X+seg.Width {
			return seg.Elevation
		}
	}
	return t.cfg.Terrain.DefaultElevation
}

// Latest returns the most recently spawned live segment, or nil.
func (t *Terrain) Latest() *GroundSegment {
	for i := len(t.segments) - 1; i >= 0; i-- {
		if t.segments[i].Alive() {
			return t.segments[i]
		}
	}
	return nil
}

// Segments returns the segments in spawn order. Callers must not modify it.
func (t *Terrain) Segments() []*GroundSegment {
	return t.segments
}

// Advance scrolls every segment and marks the ones that left the field.
func (t *Terrain) Advance() {
	for _, seg := range t.segments {
		seg.drift()
		if seg.offLeft() {
			seg.remove()
		}
	}
}

func (t *Terrain) compact() {
	t.segments = compact(t.segments)
}
