package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/flappydefender/internal/dice"
)

func newTestTerrain(values ...float64) *Terrain {
	tr := NewTerrain(DefaultConfig(), dice.NewRoller(dice.NewSequence(values...)), &idSource{})
	tr.Reset()
	return tr
}

func TestNewTerrainIsEmpty(t *testing.T) {
	tr := NewTerrain(DefaultConfig(), dice.NewRoller(dice.NewSequence(0.5)), &idSource{})
	assert.Empty(t, tr.Segments())
	assert.Nil(t, tr.Latest())
}

func TestTerrainStartsWithFullWidthSegment(t *testing.T) {
	tr := newTestTerrain(0.5)

	require.Len(t, tr.Segments(), 1)
	start := tr.Segments()[0]
	assert.Equal(t, 0.0, start.X)
	assert.Equal(t, 1100.0, start.Width)
	assert.Equal(t, 65.0, start.Elevation)
}

func TestTerrainSpawnSegment(t *testing.T) {
	tr := newTestTerrain(0.5, 0)

	seg := tr.SpawnSegment()

	assert.Equal(t, 800.0, seg.X)
	assert.Equal(t, 300.0, seg.Width)
	assert.Equal(t, 30.0, seg.Elevation)
	assert.Same(t, seg, tr.Latest())
}

func TestElevationAt(t *testing.T) {
	tr := newTestTerrain(0.5, 0)
	tr.SpawnSegment()

	t.Run("inside starting segment", func(t *testing.T) {
		assert.Equal(t, 65.0, tr.ElevationAt(115))
	})

	t.Run("first segment in spawn order wins on overlap", func(t *testing.T) {
		assert.Equal(t, 65.0, tr.ElevationAt(1000))
	})

	t.Run("range is inclusive", func(t *testing.T) {
		assert.Equal(t, 65.0, tr.ElevationAt(0))
		assert.Equal(t, 65.0, tr.ElevationAt(1100))
	})

	t.Run("outside every segment falls back to default", func(t *testing.T) {
		assert.Equal(t, 50.0, tr.ElevationAt(-5))
		assert.Equal(t, 50.0, tr.ElevationAt(5000))
	})
}

func TestElevationAtLaterSegment(t *testing.T) {
	tr := newTestTerrain(0.5, 0, 1)
	first := tr.SpawnSegment()
	for i := 0; i < 150; i++ {
		tr.Advance()
	}
	require.Equal(t, 500.0, first.X)
	require.Equal(t, 800.0, tr.Segments()[0].X+tr.Segments()[0].Width)

	second := tr.SpawnSegment()

	assert.Equal(t, 100.0, second.Elevation)
	assert.Equal(t, 100.0, tr.ElevationAt(950), "only the newest segment reaches past the starting one")
	assert.Equal(t, 65.0, tr.ElevationAt(700), "the starting segment still wins where it overlaps")
}

func TestTerrainAdvanceCullsOffscreen(t *testing.T) {
	tr := newTestTerrain(0.5, 0.2)
	seg := tr.SpawnSegment()
	seg.X = -299

	tr.Advance()

	assert.Equal(t, -2.0, tr.Segments()[0].X)
	assert.False(t, seg.Alive())
	assert.Same(t, tr.Segments()[0], tr.Latest(), "removed segments are skipped by Latest")
	assert.Equal(t, 50.0, tr.ElevationAt(-300), "removed segments no longer answer queries")

	tr.compact()
	assert.Len(t, tr.Segments(), 1)
}

func TestTerrainResetKeepsOneSegment(t *testing.T) {
	tr := newTestTerrain(0.5)
	tr.SpawnSegment()
	tr.SpawnSegment()

	tr.Reset()

	require.Len(t, tr.Segments(), 1)
	assert.Equal(t, 0.0, tr.Segments()[0].X)
	assert.Equal(t, 1100.0, tr.Segments()[0].Width)
}
