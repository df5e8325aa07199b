package game

import (
	"log"

	"chosenoffset.com/flappydefender/internal/render"
	"chosenoffset.com/flappydefender/internal/simulation"
	"chosenoffset.com/flappydefender/internal/ui/hud"
)

// Manager handles the overall screen state: the title screen and gameplay.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        State
	Game         *Game
	Renderer     render.Renderer
	InputMgr     render.InputManager

	lastMouseDown bool
}

// NewManager creates a new game manager showing the title screen. The
// logical screen matches the engine's field so snapshot coordinates are
// screen coordinates.
func NewManager(engine *simulation.Engine, r render.Renderer, input render.InputManager, hudConfig *hud.HUDConfig) *Manager {
	field := engine.Config().Field
	width, height := int(field.Width), int(field.Height)
	return &Manager{
		ScreenWidth:  width,
		ScreenHeight: height,
		State:        StateTitle,
		Game:         NewGame(engine, r, input, hud.New(hudConfig, r, width)),
		Renderer:     r,
		InputMgr:     input,
	}
}

// Update updates the game state.
func (m *Manager) Update() error {
	if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}

	switch m.State {
	case StateTitle:
		mouseDown := m.InputMgr.IsMouseButtonPressed(render.MouseButtonLeft)
		clicked := mouseDown && !m.lastMouseDown
		m.lastMouseDown = mouseDown
		if clicked || m.InputMgr.IsKeyJustPressed(render.KeySpace) || m.InputMgr.IsKeyJustPressed(render.KeyEnter) {
			log.Printf("Starting run")
			m.State = StatePlaying
			// The click that starts the run must not also lift.
			m.Game.lastMouseDown = mouseDown
		}
	case StatePlaying:
		return m.Game.Update()
	}
	return nil
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	switch m.State {
	case StateTitle:
		m.drawTitle(screen)
	case StatePlaying:
		m.Game.Draw(screen)
	}
}

func (m *Manager) drawTitle(screen render.Image) {
	screen.Fill(backgroundColor)
	m.Game.drawEntities(screen)

	lines := []string{
		"FLAPPY DEFENDER",
		"",
		"SPACE / UP / click: lift",
		"Shoot enemies, land on survivors to rescue them",
		"",
		"Press SPACE or click to start",
	}
	_, lh := m.Renderer.MeasureText("0")
	y := m.ScreenHeight/2 - len(lines)*lh/2
	for _, line := range lines {
		w, _ := m.Renderer.MeasureText(line)
		m.Renderer.DrawText(screen, line, m.ScreenWidth/2-w/2, y, textColor)
		y += lh
	}
}

// Layout keeps the logical screen at the field size; the window scales it.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.ScreenWidth, m.ScreenHeight
}
