package simulation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/flappydefender/internal/dice"
)

func TestNewEngineStartingState(t *testing.T) {
	e := newTestEngine(t)

	assert.Equal(t, 0, e.Score())
	assert.False(t, e.GameOver())
	assert.Equal(t, uint64(0), e.TickCount())
	assert.Equal(t, Player{X: 100, Y: 300, Width: 30, Height: 20}, e.player)
	require.Len(t, e.terrain.Segments(), 1)

	snap := e.Snapshot()
	assert.Len(t, snap.Entities, 2)
	assert.Equal(t, KindPlayer, snap.Entities[len(snap.Entities)-1].Kind)
	assert.Equal(t, 1, snap.Count(KindGround))
}

func TestNewAndResetDrawAlike(t *testing.T) {
	src := &countingSource{}
	e := New(DefaultConfig(), dice.NewRoller(src))

	assert.Equal(t, 1, src.draws, "New lays one starting segment")
	require.Len(t, e.terrain.Segments(), 1)
	assert.Equal(t, EntityID(1), e.terrain.Segments()[0].ID)

	src.draws = 0
	e.Reset()
	assert.Equal(t, 1, src.draws)
	require.Len(t, e.terrain.Segments(), 1)
}

func TestNewEngineNilConfigUsesDefaults(t *testing.T) {
	e := New(nil, dice.NewSeeded(1))
	assert.Equal(t, DefaultConfig(), e.Config())
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"lift", CommandLift},
		{" Flap ", CommandLift},
		{"up", CommandLift},
		{"reset", CommandReset},
		{"RESTART", CommandReset},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseCommand("dive")
	assert.Error(t, err)
	assert.Equal(t, "lift", CommandLift.String())
	assert.Equal(t, "command(9)", Command(9).String())
}

func TestLiftIsAppliedOnNextTick(t *testing.T) {
	e := newCalmEngine(t)
	e.OnLift()
	assert.Equal(t, 300.0, e.player.Y, "queued input does nothing until the tick")

	e.Tick()

	assert.InDelta(t, -7.7, e.player.Velocity, 1e-9)
	assert.InDelta(t, 292.3, e.player.Y, 1e-9)
}

func TestThreeEnemiesInOneTick(t *testing.T) {
	e := newCalmEngine(t)
	for _, y := range []float64{100, 200, 300} {
		addEnemy(e, 400, y)
		addShot(e, 395, y+10)
	}

	snap := e.Tick()

	assert.Equal(t, 30, snap.Score)
	assert.Len(t, eventsOf(snap, EventEnemyDestroyed), 3)
	assert.Empty(t, e.enemies)
	assert.Empty(t, e.projectiles)
}

func TestThreeEnemiesAcrossTicks(t *testing.T) {
	e := newCalmEngine(t)
	for i, y := range []float64{100, 200, 300} {
		addEnemy(e, 400, y)
		addShot(e, 395-7*float64(i), y+10)
	}

	var scores []int
	for i := 0; i < 3; i++ {
		scores = append(scores, e.Tick().Score)
	}

	assert.Equal(t, []int{10, 20, 30}, scores)
	assert.Empty(t, e.enemies)
}

func TestTwoShotsOnOneEnemyScoreOnce(t *testing.T) {
	e := newCalmEngine(t)
	addEnemy(e, 400, 300)
	first := addShot(e, 395, 310)
	second := addShot(e, 395, 312)

	snap := e.Tick()

	assert.Equal(t, 10, snap.Score)
	assert.False(t, first.Alive())
	assert.True(t, second.Alive(), "the second shot flies on")
	assert.Len(t, e.projectiles, 1)
}

func TestShotOnEnemyEdgeMisses(t *testing.T) {
	e := newCalmEngine(t)
	addEnemy(e, 400, 300)
	// Lands exactly on the enemy's left edge after both move.
	addShot(e, 393, 310)

	snap := e.Tick()

	assert.Equal(t, 0, snap.Score)
	assert.Len(t, e.enemies, 1)
}

func TestRescueSurvivor(t *testing.T) {
	e := newCalmEngine(t)
	s := addSurvivor(e, 112)
	e.player.Y = 515

	snap := e.Tick()

	assert.Equal(t, 50, snap.Score)
	rescued := eventsOf(snap, EventSurvivorRescued)
	require.Len(t, rescued, 1)
	assert.Equal(t, s.ID, rescued[0].EntityID)
	assert.Empty(t, e.survivors)
}

func TestNoRescueWhileAbducted(t *testing.T) {
	e := newCalmEngine(t)
	s := addSurvivor(e, 112)
	addAbductor(e, 112, 480, s, AbductorAbducting)
	e.player.Y = 515

	snap := e.Tick()

	assert.Equal(t, 0, snap.Score)
	assert.Len(t, e.survivors, 1)
	assert.True(t, s.Abducted)
}

func TestSurvivorCulledWithoutScore(t *testing.T) {
	e := newCalmEngine(t)
	s := addSurvivor(e, -9)

	snap := e.Tick()

	assert.False(t, s.Alive())
	assert.Equal(t, 0, snap.Score)
	assert.Empty(t, snap.Events)
}

func TestShootAbductingAbductor(t *testing.T) {
	e := newCalmEngine(t)
	s := addSurvivor(e, 400)
	a := addAbductor(e, 400, 200, s, AbductorAbducting)
	addShot(e, 396, 207)

	snap := e.Tick()

	assert.Equal(t, 50, snap.Score)
	shot := eventsOf(snap, EventAbductorShot)
	require.Len(t, shot, 1)
	assert.Equal(t, a.ID, shot[0].EntityID)
	assert.Equal(t, 50, shot[0].Points)
	assert.Empty(t, e.abductors)
	assert.Empty(t, e.survivors, "the carried survivor is lost with its abductor")
}

func TestShootSeekingAbductorFreesTarget(t *testing.T) {
	e := newCalmEngine(t)
	s := addSurvivor(e, 600)
	a := addAbductor(e, 400, 200, s, AbductorSeeking)
	addShot(e, 396, 210)

	snap := e.Tick()

	assert.Equal(t, 0, snap.Score)
	shot := eventsOf(snap, EventAbductorShot)
	require.Len(t, shot, 1)
	assert.Equal(t, a.ID, shot[0].EntityID)
	assert.Zero(t, shot[0].Points)
	assert.Empty(t, e.abductors)
	require.Len(t, e.survivors, 1)
	assert.Equal(t, EntityID(0), s.TargetedBy)
	assert.False(t, s.Abducted)
}

func TestAbductorEscapeLosesSurvivor(t *testing.T) {
	e := newCalmEngine(t)
	s := addSurvivor(e, 300)
	addAbductor(e, 300, 3, s, AbductorAbducting)

	snap := e.Tick()

	lost := eventsOf(snap, EventSurvivorLost)
	require.Len(t, lost, 1)
	assert.Equal(t, s.ID, lost[0].EntityID)
	assert.Empty(t, e.abductors)
	assert.Empty(t, e.survivors)
	assert.Equal(t, 0, snap.Score)
}

func TestObstacleEndsGame(t *testing.T) {
	e := newCalmEngine(t)
	e.obstacles = append(e.obstacles, &Obstacle{
		Body:   Body{ID: e.ids.Next(), X: 110, Width: 20, Height: 600, VX: -2},
		Top:    350,
		Bottom: 100,
		Gap:    85,
	})

	snap := e.Tick()

	assert.True(t, snap.GameOver)
	assert.Len(t, eventsOf(snap, EventGameOver), 1)

	frozen := e.player
	for i := 0; i < 10; i++ {
		next := e.Tick()
		assert.True(t, next.GameOver)
		assert.Equal(t, uint64(1), next.Tick)
		assert.Empty(t, next.Events)
	}
	assert.Equal(t, frozen, e.player)
}

func TestEnemyShotEndsGame(t *testing.T) {
	e := newCalmEngine(t)
	addEnemyShot(e, 105, 305)

	snap := e.Tick()

	assert.True(t, snap.GameOver)
	assert.True(t, e.GameOver())
}

func TestScoringStillCountsOnFatalTick(t *testing.T) {
	e := newCalmEngine(t)
	addEnemyShot(e, 105, 305)
	addEnemy(e, 400, 300)
	addShot(e, 395, 310)

	snap := e.Tick()

	assert.True(t, snap.GameOver)
	assert.Equal(t, 10, snap.Score)
}

func TestInputAfterGameOver(t *testing.T) {
	e := newCalmEngine(t)
	addEnemyShot(e, 105, 305)
	e.Tick()
	require.True(t, e.GameOver())

	y := e.player.Y
	e.OnLift()
	e.Tick()
	assert.Equal(t, y, e.player.Y, "lift is ignored once the run is over")

	e.Enqueue(CommandReset)
	snap := e.Tick()

	assert.False(t, snap.GameOver)
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Equal(t, 0, snap.Score)
	assert.InDelta(t, 300.3, e.player.Y, 1e-9)
	assert.Empty(t, e.enemyShots)
}

func TestEnemyFiresAtFrozenInterval(t *testing.T) {
	e := newCalmEngine(t)
	en := addEnemy(e, 700, 100)
	require.Equal(t, 180, en.FireInterval)
	e.tick = 179

	e.Tick()

	require.Len(t, e.enemyShots, 1)
	shot := e.enemyShots[0]
	assert.Equal(t, 695.0, shot.X)
	assert.Equal(t, 110.0, shot.Y)

	e.Tick()
	assert.Len(t, e.enemyShots, 1)
}

func TestPlayerProjectileCulledPastRightEdge(t *testing.T) {
	e := newCalmEngine(t)
	addShot(e, 798, 100)

	e.Tick()

	assert.Empty(t, e.projectiles)
}

func TestSpawnSchedule(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 149; i++ {
		require.False(t, e.Tick().GameOver)
	}
	assert.Empty(t, e.obstacles)
	assert.Empty(t, e.enemies)
	assert.Len(t, e.projectiles, 7)

	snap := e.Tick()

	require.False(t, snap.GameOver)
	require.Len(t, e.obstacles, 1)
	o := e.obstacles[0]
	assert.Equal(t, 798.0, o.X)
	assert.Equal(t, 250.0, o.Gap)
	assert.Equal(t, 65.0, o.Elevation)
	assert.Equal(t, 142.5, o.Top)
	assert.Equal(t, 142.5, o.Bottom)
	assert.Equal(t, 600-o.Elevation, o.Top+o.Gap+o.Bottom)

	assert.Len(t, e.terrain.Segments(), 2)

	require.Len(t, e.enemies, 1)
	assert.Equal(t, 175.0, e.enemies[0].Y)
	assert.Equal(t, 180, e.enemies[0].FireInterval)

	require.Len(t, e.survivors, 1)
	s := e.survivors[0]
	assert.Equal(t, 948.0, s.X)
	assert.Equal(t, 515.0, s.Y)
	assert.Equal(t, e.terrain.Latest().ID, s.SegmentID)

	assert.Len(t, e.projectiles, 7)
	assert.Equal(t, 2, snap.Count(KindObstacle))
}

func TestDifficultyFrozenAtSpawn(t *testing.T) {
	e := newTestEngine(t)
	e.score = 1000
	e.tick = 149

	e.Tick()
	require.Len(t, e.obstacles, 1)
	require.Len(t, e.enemies, 1)

	e.score = 0
	e.Tick()

	assert.Equal(t, 200.0, e.obstacles[0].Gap)
	assert.Equal(t, 160, e.enemies[0].FireInterval)
}

func TestAbductorTargetSelection(t *testing.T) {
	cfg := calmConfig()
	cfg.Spawn.AbductorInterval = 300
	// Reset, chance, pick, altitude.
	e := New(cfg, dice.NewRoller(dice.NewSequence(0.5, 0.1, 0.9, 0.5)))

	hunted := addSurvivor(e, 500)
	hunted.TargetedBy = 999
	free := addSurvivor(e, 550)
	chosen := addSurvivor(e, 600)
	carried := addSurvivor(e, 650)
	carried.Abducted = true
	e.tick = 299

	e.Tick()

	require.Len(t, e.abductors, 1)
	a := e.abductors[0]
	assert.Equal(t, chosen.ID, a.TargetID)
	assert.Equal(t, a.ID, chosen.TargetedBy)
	assert.Equal(t, EntityID(0), free.TargetedBy)
	assert.Equal(t, AbductorSeeking, a.State)
	assert.Equal(t, 4.0, a.Speed)
}

func TestAbductorChanceCanFail(t *testing.T) {
	cfg := calmConfig()
	cfg.Spawn.AbductorInterval = 300
	e := New(cfg, dice.NewRoller(dice.NewSequence(0.5, 0.3)))
	s := addSurvivor(e, 500)
	e.tick = 299

	e.Tick()

	assert.Empty(t, e.abductors)
	assert.Equal(t, EntityID(0), s.TargetedBy)
}

func TestSnapshotViews(t *testing.T) {
	e := newCalmEngine(t)
	s := addSurvivor(e, 300)
	addAbductor(e, 300, 200, s, AbductorAbducting)
	e.obstacles = append(e.obstacles, &Obstacle{
		Body: Body{ID: e.ids.Next(), X: 500, Width: 20, Height: 600, VX: -2},
		Top:  100, Bottom: 200, Gap: 235, Elevation: 65,
	})

	snap := e.Snapshot()

	assert.Equal(t, 2, snap.Count(KindObstacle))
	assert.Equal(t, 1, snap.Count(KindGround))
	assert.Equal(t, 1, snap.Count(KindPlayer))
	for _, v := range snap.Entities {
		switch v.Kind {
		case KindSurvivor:
			assert.True(t, v.Abducted)
		case KindAbductor:
			assert.Equal(t, "abducting", v.State)
		case KindGround:
			assert.Equal(t, 535.0, v.Y)
			assert.Equal(t, 65.0, v.H)
		}
	}

	snap.Entities[0].X = -1000
	assert.NotEqual(t, -1000.0, e.terrain.Segments()[0].X, "snapshots share no memory")
}

func TestResetRestoresStartingState(t *testing.T) {
	e := New(nil, dice.NewSeeded(3))
	inputs := rand.New(rand.NewSource(3))
	for i := 0; i < 600; i++ {
		if inputs.Float64() < 0.1 {
			e.OnLift()
		}
		e.Tick()
	}
	e.OnLift()

	e.Reset()

	assert.Equal(t, 0, e.Score())
	assert.False(t, e.GameOver())
	assert.Equal(t, uint64(0), e.TickCount())
	assert.Equal(t, Player{X: 100, Y: 300, Width: 30, Height: 20}, e.player)
	assert.Len(t, e.terrain.Segments(), 1)
	assert.Empty(t, e.obstacles)
	assert.Empty(t, e.projectiles)
	assert.Empty(t, e.enemies)
	assert.Empty(t, e.enemyShots)
	assert.Empty(t, e.survivors)
	assert.Empty(t, e.abductors)
	assert.Empty(t, e.pending)
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	run := func() []Snapshot {
		e := New(nil, dice.NewSeeded(42))
		inputs := rand.New(rand.NewSource(42))
		var out []Snapshot
		for i := 0; i < 2000; i++ {
			if inputs.Float64() < 0.07 {
				e.OnLift()
			}
			snap := e.Tick()
			if i%100 == 0 || snap.GameOver {
				out = append(out, snap)
			}
			if snap.GameOver {
				break
			}
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestLongRunHoldsBounds(t *testing.T) {
	e := New(nil, dice.NewSeeded(2024))
	inputs := rand.New(rand.NewSource(2024))
	settled := map[EntityID]EventKind{}
	points := 0

	for i := 0; i < 20000; i++ {
		if inputs.Float64() < 0.08 {
			e.OnLift()
		}
		snap := e.Tick()

		for _, ev := range snap.Events {
			points += ev.Points
			if ev.Kind == EventSurvivorRescued || ev.Kind == EventSurvivorLost {
				prev, seen := settled[ev.EntityID]
				require.False(t, seen, "survivor %d settled twice (%s then %s)", ev.EntityID, prev, ev.Kind)
				settled[ev.EntityID] = ev.Kind
			}
		}
		require.Equal(t, points, snap.Score)

		hunters := map[EntityID]int{}
		for _, a := range e.abductors {
			assert.NotEqual(t, AbductorEscaped, a.State, "escaped abductors are removed the same tick")
			hunters[a.TargetID]++
		}
		for id, n := range hunters {
			assert.Equal(t, 1, n, "survivor %d hunted by %d abductors", id, n)
		}
		for _, o := range e.obstacles {
			assert.InDelta(t, e.cfg.Field.Height-o.Elevation, o.Top+o.Gap+o.Bottom, 1e-9)
		}

		if snap.GameOver {
			e.Reset()
			points = 0
		}
	}
}
