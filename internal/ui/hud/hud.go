// Package hud draws the score panel and short-lived callouts for scoring
// events on top of the play field.
package hud

import (
	"fmt"
	"image/color"

	"chosenoffset.com/flappydefender/internal/render"
	"chosenoffset.com/flappydefender/internal/simulation"
)

// HUDConfig defines what to display in the HUD
type HUDConfig struct {
	ShowTick     bool    `json:"show_tick"`     // Show the tick counter under the score
	ShowCallouts bool    `json:"show_callouts"` // Show a line per scoring event
	MaxCallouts  int     `json:"max_callouts"`  // Oldest callouts are dropped past this
	CalloutTicks int     `json:"callout_ticks"` // How long a callout stays up
	Position     string  `json:"position"`      // "top-left", "top-right"
	Opacity      float64 `json:"opacity"`       // Background opacity (0-1)
}

// DefaultConfig returns a sensible default HUD configuration
func DefaultConfig() *HUDConfig {
	return &HUDConfig{
		ShowTick:     false,
		ShowCallouts: true,
		MaxCallouts:  4,
		CalloutTicks: 90,
		Position:     "top-left",
		Opacity:      0.7,
	}
}

// Callout is an on-screen message that expires after a number of ticks.
type Callout struct {
	Text      string
	TicksLeft int
	MaxTicks  int
}

// Fade returns the callout's opacity, falling linearly from 1 to 0 over its
// lifetime.
func (c Callout) Fade() float64 {
	if c.MaxTicks <= 0 {
		return 1
	}
	return float64(c.TicksLeft) / float64(c.MaxTicks)
}

// HUD manages the heads-up display
type HUD struct {
	config      *HUDConfig
	renderer    render.Renderer
	screenWidth int

	score    int
	tick     uint64
	callouts []Callout

	panelWidth int
}

// New creates a new HUD with the given configuration
func New(config *HUDConfig, r render.Renderer, screenWidth int) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{
		config:      config,
		renderer:    r,
		screenWidth: screenWidth,
		panelWidth:  160,
	}
}

// Score returns the score last seen by Update
func (h *HUD) Score() int {
	return h.score
}

// Callouts returns the live callouts, oldest first
func (h *HUD) Callouts() []Callout {
	return h.callouts
}

// Reset drops all callouts.
func (h *HUD) Reset() {
	h.callouts = h.callouts[:0]
	h.score = 0
	h.tick = 0
}

// Update ages existing callouts and adds one for every scoring event in the
// snapshot.
func (h *HUD) Update(snap simulation.Snapshot) {
	h.score = snap.Score
	h.tick = snap.Tick

	kept := h.callouts[:0]
	for _, c := range h.callouts {
		c.TicksLeft--
		if c.TicksLeft > 0 {
			kept = append(kept, c)
		}
	}
	h.callouts = kept

	if !h.config.ShowCallouts {
		return
	}
	for _, ev := range snap.Events {
		text := calloutText(ev)
		if text == "" {
			continue
		}
		h.callouts = append(h.callouts, Callout{
			Text:      text,
			TicksLeft: h.config.CalloutTicks,
			MaxTicks:  h.config.CalloutTicks,
		})
	}
	if n := len(h.callouts) - h.config.MaxCallouts; n > 0 {
		h.callouts = append(h.callouts[:0], h.callouts[n:]...)
	}
}

func calloutText(ev simulation.Event) string {
	switch ev.Kind {
	case simulation.EventEnemyDestroyed:
		return fmt.Sprintf("+%d enemy down", ev.Points)
	case simulation.EventAbductorShot:
		if ev.Points == 0 {
			return "abductor down"
		}
		return fmt.Sprintf("+%d survivor freed", ev.Points)
	case simulation.EventSurvivorRescued:
		return fmt.Sprintf("+%d rescued", ev.Points)
	case simulation.EventSurvivorCaptured:
		return "survivor taken!"
	case simulation.EventSurvivorLost:
		return "survivor lost"
	}
	return ""
}

// Draw renders the HUD to the screen
func (h *HUD) Draw(screen render.Image) {
	x, y := h.calculatePosition()

	lines := 1
	if h.config.ShowTick {
		lines++
	}
	_, lineHeight := h.renderer.MeasureText("0")
	height := lines*lineHeight + 12

	alpha := uint8(h.config.Opacity * 255)
	h.renderer.FillRect(screen, float32(x), float32(y), float32(h.panelWidth), float32(height), color.RGBA{20, 20, 30, alpha})
	h.renderer.StrokeRect(screen, float32(x), float32(y), float32(h.panelWidth), float32(height), 1, color.RGBA{60, 60, 80, alpha})

	white := color.RGBA{255, 255, 255, 255}
	currentY := y + 6
	h.renderer.DrawText(screen, fmt.Sprintf("Score: %d", h.score), x+8, currentY, white)
	currentY += lineHeight
	if h.config.ShowTick {
		h.renderer.DrawText(screen, fmt.Sprintf("Tick: %d", h.tick), x+8, currentY, white)
	}

	// Callouts stack under the panel, newest at the bottom
	currentY = y + height + 6
	for _, c := range h.callouts {
		a := uint8(c.Fade() * 255)
		h.renderer.DrawText(screen, c.Text, x+8, currentY, color.RGBA{a, a, a, a})
		currentY += lineHeight
	}
}

func (h *HUD) calculatePosition() (int, int) {
	padding := 10

	switch h.config.Position {
	case "top-right":
		return h.screenWidth - h.panelWidth - padding, padding
	default: // "top-left"
		return padding, padding
	}
}
