// Package term plays the simulation in a terminal. The field is scaled onto
// the character grid below a one-line status bar.
package term

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/flappydefender/internal/simulation"
)

// Glyph is how one entity kind is drawn in a cell.
type Glyph struct {
	Rune  rune
	Style tcell.Style
}

// Glyphs maps snapshot kinds to cell glyphs.
var Glyphs = map[simulation.Kind]Glyph{
	simulation.KindGround:          {'▒', tcell.StyleDefault.Foreground(tcell.ColorDarkOliveGreen)},
	simulation.KindObstacle:        {'█', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	simulation.KindProjectile:      {'-', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)},
	simulation.KindEnemy:           {'W', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)},
	simulation.KindEnemyProjectile: {'*', tcell.StyleDefault.Foreground(tcell.ColorOrange)},
	simulation.KindSurvivor:        {'i', tcell.StyleDefault.Foreground(tcell.ColorLightSkyBlue)},
	simulation.KindAbductor:        {'A', tcell.StyleDefault.Foreground(tcell.ColorPlum).Bold(true)},
	simulation.KindPlayer:          {'>', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)},
}

var (
	statusStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	gameOverStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
)

// Viewport maps field coordinates onto terminal cells. Row 0 is reserved for
// the status bar.
type Viewport struct {
	Cols, Rows     int
	FieldW, FieldH float64
}

func (v Viewport) scale() (sx, sy float64) {
	return float64(v.Cols) / v.FieldW, float64(v.Rows-1) / v.FieldH
}

// Span returns the inclusive cell range a field rectangle covers. Anything
// with a positive size covers at least one cell.
func (v Viewport) Span(x, y, w, h float64) (c0, r0, c1, r1 int) {
	sx, sy := v.scale()
	c0 = int(math.Floor(x * sx))
	r0 = int(math.Floor(y*sy)) + 1
	c1 = int(math.Ceil((x+w)*sx)) - 1
	r1 = int(math.Ceil((y+h)*sy)) // +1 for the status bar, -1 for inclusive
	c1 = max(c1, c0)
	r1 = max(r1, r0)
	return c0, r0, c1, r1
}

// Draw renders a snapshot onto the screen and shows it.
func Draw(s tcell.Screen, snap simulation.Snapshot) {
	cols, rows := s.Size()
	s.Clear()
	if cols <= 0 || rows <= 1 {
		return
	}

	vp := Viewport{Cols: cols, Rows: rows, FieldW: snap.Width, FieldH: snap.Height}
	for _, v := range snap.Entities {
		if v.Kind == simulation.KindSurvivor && v.Abducted {
			continue
		}
		g, ok := Glyphs[v.Kind]
		if !ok {
			continue
		}
		c0, r0, c1, r1 := vp.Span(v.X, v.Y, v.W, v.H)
		for r := max(r0, 1); r <= min(r1, rows-1); r++ {
			for c := max(c0, 0); c <= min(c1, cols-1); c++ {
				s.SetContent(c, r, g.Rune, nil, g.Style)
			}
		}
	}

	status := fmt.Sprintf(" Score: %d  Tick: %d", snap.Score, snap.Tick)
	drawText(s, 0, 0, padRight(status+"   space: lift  r: restart  q: quit", cols), statusStyle)

	if snap.GameOver {
		drawCentered(s, cols/2, rows/2, fmt.Sprintf(" GAME OVER  score %d  press r to restart ", snap.Score), gameOverStyle)
	}
	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}

func drawCentered(s tcell.Screen, cx, cy int, text string, st tcell.Style) {
	drawText(s, cx-len([]rune(text))/2, cy, text, st)
}

func padRight(text string, width int) string {
	n := width - len([]rune(text))
	if n <= 0 {
		return text
	}
	return text + fmt.Sprintf("%*s", n, "")
}

// CommandFor maps a key press to an engine command.
func CommandFor(ev *tcell.EventKey) (simulation.Command, bool) {
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyEnter:
		return simulation.CommandLift, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ', 'w', 'k':
			return simulation.CommandLift, true
		case 'r', 'R':
			return simulation.CommandReset, true
		}
	}
	return 0, false
}

// IsQuit reports whether the key ends the session.
func IsQuit(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')
}

// Runner ticks an engine at a fixed rate and redraws after every tick.
type Runner struct {
	Screen tcell.Screen
	Engine *simulation.Engine
	TPS    int
}

// Run blocks until ctx is done or the player quits.
func (r *Runner) Run(ctx context.Context) error {
	if r.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", r.TPS)
	}

	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := r.Screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	tick := time.NewTicker(time.Second / time.Duration(r.TPS))
	defer tick.Stop()

	Draw(r.Screen, r.Engine.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch e := ev.(type) {
			case *tcell.EventResize:
				r.Screen.Sync()
			case *tcell.EventKey:
				if IsQuit(e) {
					return nil
				}
				if cmd, ok := CommandFor(e); ok {
					r.Engine.Enqueue(cmd)
				}
			}
		case <-tick.C:
			snap := r.Engine.Tick()
			for _, ev := range snap.Events {
				if ev.Kind == simulation.EventGameOver {
					log.Printf("Game over at tick %d, score %d", snap.Tick, snap.Score)
				}
			}
			Draw(r.Screen, snap)
		}
	}
}
