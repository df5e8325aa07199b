package game

import (
	"image/color"

	"chosenoffset.com/flappydefender/internal/simulation"
)

// State is the screen the manager is showing.
type State int

const (
	StateTitle State = iota
	StatePlaying
)

// Button is a clickable screen rectangle.
type Button struct {
	X, Y, W, H int
	Label      string
}

// Contains reports whether the point lies on the button, edges included.
func (b Button) Contains(px, py int) bool {
	return px >= b.X && px <= b.X+b.W && py >= b.Y && py <= b.Y+b.H
}

// Palette maps each snapshot kind to its fill color.
var Palette = map[simulation.Kind]color.RGBA{
	simulation.KindPlayer:          {255, 220, 0, 255},
	simulation.KindGround:          {70, 130, 60, 255},
	simulation.KindObstacle:        {40, 170, 40, 255},
	simulation.KindProjectile:      {255, 255, 255, 255},
	simulation.KindEnemy:           {220, 40, 40, 255},
	simulation.KindEnemyProjectile: {255, 120, 0, 255},
	simulation.KindSurvivor:        {80, 160, 255, 255},
	simulation.KindAbductor:        {180, 60, 220, 255},
}

var (
	backgroundColor = color.RGBA{135, 206, 235, 255}
	overlayColor    = color.RGBA{0, 0, 0, 160}
	buttonColor     = color.RGBA{40, 40, 60, 255}
	textColor       = color.RGBA{255, 255, 255, 255}
)
