package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider is a simple horizontal slider widget.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	X, Y     float64
	W, H     float64
}

// Update checks for mouse interaction and drags the value.
func (s *Slider) Update() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if float64(mx) < s.X || float64(mx) > s.X+s.W ||
		float64(my) < s.Y || float64(my) > s.Y+s.H {
		return
	}
	p := (float64(mx) - s.X) / s.W
	s.Value = s.Min + p*(s.Max-s.Min)
	if s.Value < s.Min {
		s.Value = s.Min
	}
	if s.Value > s.Max {
		s.Value = s.Max
	}
}

// Draw renders the slider track, the filled value bar, and the label.
func (s *Slider) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H),
		color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	ratio := (s.Value - s.Min) / (s.Max - s.Min)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H),
		color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("%s: %.4g", s.Label, s.Value),
		int(s.X), int(s.Y-15))
}

// Panel is a vertical stack of sliders with a background box.
type Panel struct {
	X, Y, Width float64
	Sliders     []*Slider

	nextY float64
}

// NewPanel creates an empty panel anchored at x, y.
func NewPanel(x, y, width float64) *Panel {
	return &Panel{X: x, Y: y, Width: width, nextY: y + 10}
}

// AddSlider appends a slider and returns it so the caller can read its value.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := &Slider{
		Label: label,
		Value: value,
		Min:   min,
		Max:   max,
		X:     p.X + 10,
		Y:     p.nextY + 18,
		W:     p.Width - 20,
		H:     8,
	}
	p.nextY = s.Y + s.H + 12
	p.Sliders = append(p.Sliders, s)
	return s
}

// Update handles input for all sliders.
func (p *Panel) Update() {
	for _, s := range p.Sliders {
		s.Update()
	}
}

// Draw renders the panel background and all sliders.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.nextY-p.Y+5),
		color.RGBA{R: 40, G: 40, B: 45, A: 230}, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.nextY-p.Y+5),
		1, color.RGBA{R: 100, G: 100, B: 110, A: 255}, true)

	for _, s := range p.Sliders {
		s.Draw(screen)
	}
}
