// Package dice provides the random draws the simulation consumes: uniform
// ranges, weighted coin flips and uniform picks. Every draw goes through one
// Source so a run can be replayed from its seed.
package dice

import (
	"math/rand"
)

// Source produces uniform numbers in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Roller handles random draws with a configurable random source
type Roller struct {
	src Source
}

// NewRoller creates a new Roller with the given random source
func NewRoller(src Source) *Roller {
	return &Roller{src: src}
}

// NewSeeded creates a Roller backed by math/rand seeded with seed
func NewSeeded(seed int64) *Roller {
	return NewRoller(rand.New(rand.NewSource(seed)))
}

// Float64 returns the next raw draw in [0, 1)
func (r *Roller) Float64() float64 {
	return r.src.Float64()
}

// Range returns a uniform value in [lo, hi). A degenerate or inverted range
// returns lo.
func (r *Roller) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.src.Float64()*(hi-lo)
}

// Chance reports whether a draw falls below p
func (r *Roller) Chance(p float64) bool {
	return r.src.Float64() < p
}

// Pick returns a uniform index in [0, n). n must be positive.
func (r *Roller) Pick(n int) int {
	i := int(r.src.Float64() * float64(n))
	if i >= n {
		// Guards sources that return exactly 1.0
		i = n - 1
	}
	return i
}

// Sequence is a Source that replays fixed values in order and then repeats
// the last one. Useful for forcing exact outcomes in tests and demos.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence creates a Sequence source over values
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next scripted value
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}
