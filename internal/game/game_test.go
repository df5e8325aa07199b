package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/flappydefender/internal/dice"
	"chosenoffset.com/flappydefender/internal/render"
	"chosenoffset.com/flappydefender/internal/render/rendertest"
	"chosenoffset.com/flappydefender/internal/simulation"
)

func newTestManager(t *testing.T) (*Manager, *rendertest.Renderer, *rendertest.Input) {
	t.Helper()
	engine := simulation.New(simulation.DefaultConfig(), dice.NewRoller(dice.NewSequence(0.5)))
	r := &rendertest.Renderer{}
	in := rendertest.NewInput()
	return NewManager(engine, r, in, nil), r, in
}

func playerView(t *testing.T, snap simulation.Snapshot) simulation.EntityView {
	t.Helper()
	require.NotEmpty(t, snap.Entities)
	v := snap.Entities[len(snap.Entities)-1]
	require.Equal(t, simulation.KindPlayer, v.Kind)
	return v
}

func TestTitleWaitsForStart(t *testing.T) {
	m, _, in := newTestManager(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, m.Update())
	}
	assert.Equal(t, StateTitle, m.State)
	assert.Equal(t, uint64(0), m.Game.Engine.TickCount(), "the title screen does not advance the run")

	in.Press(render.KeySpace)
	require.NoError(t, m.Update())
	assert.Equal(t, StatePlaying, m.State)
	assert.Equal(t, uint64(0), m.Game.Engine.TickCount())
}

func TestEscapeQuits(t *testing.T) {
	m, _, in := newTestManager(t)
	in.Press(render.KeyEscape)
	assert.ErrorIs(t, m.Update(), render.ErrQuit)
}

func TestLiftFromKeyboard(t *testing.T) {
	m, _, in := newTestManager(t)
	m.State = StatePlaying

	in.Press(render.KeySpace)
	require.NoError(t, m.Update())

	assert.InDelta(t, 292.3, playerView(t, m.Game.Snapshot).Y, 1e-9)
}

func TestHeldMouseLiftsOnce(t *testing.T) {
	m, _, in := newTestManager(t)
	m.State = StatePlaying

	in.Click(400, 300)
	require.NoError(t, m.Update())
	require.NoError(t, m.Update())

	// One impulse: -7.7 then -7.4.
	assert.InDelta(t, 284.9, playerView(t, m.Game.Snapshot).Y, 1e-9)
}

func TestStartClickDoesNotLift(t *testing.T) {
	m, _, in := newTestManager(t)

	in.Click(400, 300)
	require.NoError(t, m.Update())
	require.Equal(t, StatePlaying, m.State)
	require.NoError(t, m.Update())

	assert.InDelta(t, 300.3, playerView(t, m.Game.Snapshot).Y, 1e-9)
}

// runUntilGameOver lets the craft sink to the floor until the first
// obstacle's lower column runs into it.
func runUntilGameOver(t *testing.T, m *Manager) {
	t.Helper()
	m.State = StatePlaying
	for i := 0; i < 1000 && !m.Game.Snapshot.GameOver; i++ {
		require.NoError(t, m.Update())
	}
	require.True(t, m.Game.Snapshot.GameOver)
}

func TestGameOverScreenAndRestartButton(t *testing.T) {
	m, r, in := newTestManager(t)
	runUntilGameOver(t, m)

	screen := &rendertest.Image{W: m.ScreenWidth, H: m.ScreenHeight}
	m.Draw(screen)
	assert.True(t, r.HasText("GAME OVER"))
	assert.True(t, r.HasText("Restart"))

	// Lift is ignored while the run is over.
	frozen := m.Game.Snapshot.Tick
	in.Press(render.KeySpace)
	require.NoError(t, m.Update())
	in.Release()
	assert.True(t, m.Game.Snapshot.GameOver)
	assert.Equal(t, frozen, m.Game.Snapshot.Tick)

	// A click away from the button does nothing.
	in.Click(5, 5)
	require.NoError(t, m.Update())
	in.Release()
	require.NoError(t, m.Update())
	assert.True(t, m.Game.Snapshot.GameOver)

	b := m.Game.RestartButton
	in.Click(b.X+b.W/2, b.Y+b.H/2)
	require.NoError(t, m.Update())

	assert.False(t, m.Game.Snapshot.GameOver)
	assert.Equal(t, uint64(1), m.Game.Snapshot.Tick)
	assert.Equal(t, 0, m.Game.Snapshot.Score)
	assert.Equal(t, 0, m.Game.GameHUD.Score())
}

func TestRestartKey(t *testing.T) {
	m, _, in := newTestManager(t)
	runUntilGameOver(t, m)

	in.Press(render.KeyR)
	require.NoError(t, m.Update())

	assert.False(t, m.Game.Snapshot.GameOver)
}

func TestDrawHidesAbductedSurvivors(t *testing.T) {
	engine := simulation.New(nil, dice.NewSeeded(1))
	r := &rendertest.Renderer{}
	g := NewGame(engine, r, rendertest.NewInput(), nil)
	g.Snapshot = simulation.Snapshot{
		Entities: []simulation.EntityView{
			{ID: 1, Kind: simulation.KindSurvivor, X: 10, Y: 10, W: 10, H: 20, Abducted: true},
			{ID: 2, Kind: simulation.KindSurvivor, X: 50, Y: 10, W: 10, H: 20},
			{Kind: simulation.KindPlayer, X: 100, Y: 300, W: 30, H: 20},
		},
	}

	screen := &rendertest.Image{W: 800, H: 600}
	g.Draw(screen)

	require.Len(t, r.Rects, 2)
	assert.Equal(t, float32(50), r.Rects[0].X)
	assert.Equal(t, Palette[simulation.KindSurvivor], r.Rects[0].Color)
	assert.Equal(t, Palette[simulation.KindPlayer], r.Rects[1].Color)
	assert.Equal(t, backgroundColor, screen.Filled)
}

func TestButtonContainsEdges(t *testing.T) {
	b := Button{X: 10, Y: 10, W: 20, H: 10}
	assert.True(t, b.Contains(10, 10))
	assert.True(t, b.Contains(30, 20))
	assert.False(t, b.Contains(31, 15))
	assert.False(t, b.Contains(15, 9))
}

func TestLayoutKeepsFieldSize(t *testing.T) {
	m, _, _ := newTestManager(t)
	w, h := m.Layout(1920, 1080)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}
