package game

import (
	"log"

	"chosenoffset.com/flappydefender/internal/render"
	"chosenoffset.com/flappydefender/internal/simulation"
	"chosenoffset.com/flappydefender/internal/ui/hud"
)

// Game drives one simulation engine from the frontend loop: it turns input
// into engine commands, advances one tick per Update and keeps the latest
// snapshot for Draw.
type Game struct {
	Engine   *simulation.Engine
	Renderer render.Renderer
	InputMgr render.InputManager
	GameHUD  *hud.HUD

	RestartButton Button
	Snapshot      simulation.Snapshot

	lastMouseDown bool
}

// NewGame wires a game around an engine. The restart button is centered on
// the field.
func NewGame(engine *simulation.Engine, r render.Renderer, input render.InputManager, gameHUD *hud.HUD) *Game {
	field := engine.Config().Field
	w, h := 160, 36
	return &Game{
		Engine:   engine,
		Renderer: r,
		InputMgr: input,
		GameHUD:  gameHUD,
		RestartButton: Button{
			X: int(field.Width)/2 - w/2, Y: int(field.Height)/2 + 20,
			W: w, H: h,
			Label: "Restart",
		},
		Snapshot: engine.Snapshot(),
	}
}

// Update handles input and advances the simulation by one tick.
func (g *Game) Update() error {
	mouseDown := g.InputMgr.IsMouseButtonPressed(render.MouseButtonLeft)
	clicked := mouseDown && !g.lastMouseDown
	g.lastMouseDown = mouseDown

	if g.Engine.GameOver() {
		if g.restartRequested(clicked) {
			g.Restart()
		}
	} else if g.liftRequested(clicked) {
		g.Engine.OnLift()
	}

	g.Snapshot = g.Engine.Tick()
	if g.GameHUD != nil {
		g.GameHUD.Update(g.Snapshot)
	}
	for _, ev := range g.Snapshot.Events {
		if ev.Kind == simulation.EventGameOver {
			log.Printf("Game over at tick %d, score %d", g.Snapshot.Tick, g.Snapshot.Score)
		}
	}
	return nil
}

// Restart discards the current run.
func (g *Game) Restart() {
	log.Printf("Restarting run (previous score %d)", g.Engine.Score())
	g.Engine.Reset()
	if g.GameHUD != nil {
		g.GameHUD.Reset()
	}
}

func (g *Game) liftRequested(clicked bool) bool {
	return clicked ||
		g.InputMgr.IsKeyJustPressed(render.KeySpace) ||
		g.InputMgr.IsKeyJustPressed(render.KeyUp) ||
		g.InputMgr.IsKeyJustPressed(render.KeyW)
}

func (g *Game) restartRequested(clicked bool) bool {
	if clicked {
		x, y := g.InputMgr.GetCursorPosition()
		if g.RestartButton.Contains(x, y) {
			return true
		}
	}
	return g.InputMgr.IsKeyJustPressed(render.KeyR) || g.InputMgr.IsKeyJustPressed(render.KeyEnter)
}
