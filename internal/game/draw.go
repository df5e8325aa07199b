package game

import (
	"fmt"

	"chosenoffset.com/flappydefender/internal/render"
	"chosenoffset.com/flappydefender/internal/simulation"
)

// Draw renders the latest snapshot to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(backgroundColor)
	g.drawEntities(screen)
	if g.GameHUD != nil {
		g.GameHUD.Draw(screen)
	}
	if g.Snapshot.GameOver {
		g.drawGameOver(screen)
	}
}

// drawEntities fills one rectangle per view. Survivors being carried off
// are hidden; the abductor stands in for them.
func (g *Game) drawEntities(screen render.Image) {
	for _, v := range g.Snapshot.Entities {
		if v.Kind == simulation.KindSurvivor && v.Abducted {
			continue
		}
		clr, ok := Palette[v.Kind]
		if !ok {
			continue
		}
		g.Renderer.FillRect(screen, float32(v.X), float32(v.Y), float32(v.W), float32(v.H), clr)
	}
}

func (g *Game) drawGameOver(screen render.Image) {
	w, h := screen.Size()
	g.Renderer.FillRect(screen, 0, 0, float32(w), float32(h), overlayColor)

	title := "GAME OVER"
	tw, th := g.Renderer.MeasureText(title)
	g.Renderer.DrawText(screen, title, w/2-tw/2, h/2-th-10, textColor)

	score := g.scoreLine()
	sw, _ := g.Renderer.MeasureText(score)
	g.Renderer.DrawText(screen, score, w/2-sw/2, h/2-4, textColor)

	b := g.RestartButton
	g.Renderer.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), buttonColor)
	g.Renderer.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, textColor)
	lw, lh := g.Renderer.MeasureText(b.Label)
	g.Renderer.DrawText(screen, b.Label, b.X+b.W/2-lw/2, b.Y+b.H/2-lh/2, textColor)
}

func (g *Game) scoreLine() string {
	return fmt.Sprintf("Final score: %d", g.Snapshot.Score)
}
