// Package rendertest provides in-memory render backends for tests.
package rendertest

import (
	"image"
	"image/color"

	"chosenoffset.com/flappydefender/internal/render"
)

// Rect is one recorded FillRect or StrokeRect call.
type Rect struct {
	X, Y, W, H float32
	Color      color.Color
	Stroke     bool
}

// Text is one recorded DrawText call.
type Text struct {
	Text  string
	X, Y  int
	Color color.Color
}

// Renderer records every draw call instead of drawing.
type Renderer struct {
	Rects []Rect
	Texts []Text
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.Rects = append(r.Rects, Rect{X: x, Y: y, W: width, H: height, Color: clr})
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height, strokeWidth float32, clr color.Color) {
	r.Rects = append(r.Rects, Rect{X: x, Y: y, W: width, H: height, Color: clr, Stroke: true})
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color) {
	r.Texts = append(r.Texts, Text{Text: text, X: x, Y: y, Color: clr})
}

// MeasureText uses the same cell size as the debug font.
func (r *Renderer) MeasureText(text string) (width, height int) {
	return len(text) * 6, 16
}

// HasText reports whether text was drawn.
func (r *Renderer) HasText(text string) bool {
	for _, t := range r.Texts {
		if t.Text == text {
			return true
		}
	}
	return false
}

// Reset forgets every recorded call.
func (r *Renderer) Reset() {
	r.Rects = r.Rects[:0]
	r.Texts = r.Texts[:0]
}

// Image is a blank surface of a fixed size.
type Image struct {
	W, H   int
	Filled color.Color
}

func (i *Image) Bounds() image.Rectangle { return image.Rect(0, 0, i.W, i.H) }
func (i *Image) Size() (width, height int) { return i.W, i.H }
func (i *Image) Fill(clr color.Color) { i.Filled = clr }
func (i *Image) Clear() { i.Filled = nil }

// Input is scripted input. Keys in Just are reported as just pressed until
// Release is called.
type Input struct {
	Just      map[render.Key]bool
	MouseX    int
	MouseY    int
	MouseDown bool
}

// NewInput returns input with nothing pressed.
func NewInput() *Input {
	return &Input{Just: map[render.Key]bool{}}
}

// Press marks key as just pressed.
func (in *Input) Press(key render.Key) {
	in.Just[key] = true
}

// Click holds the left button down at (x, y).
func (in *Input) Click(x, y int) {
	in.MouseX, in.MouseY = x, y
	in.MouseDown = true
}

// Release clears every key and the mouse button.
func (in *Input) Release() {
	clear(in.Just)
	in.MouseDown = false
}

func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.Just[key] }
func (in *Input) GetCursorPosition() (x, y int) { return in.MouseX, in.MouseY }

func (in *Input) IsMouseButtonPressed(button render.MouseButton) bool {
	return button == render.MouseButtonLeft && in.MouseDown
}
