package render

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flockers/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flockers/pkg/geometry"
)

func TestNewRaster_EvenDimensions(t *testing.T) {
	// 33x33 world at scale 3 would give 99x99; codecs want even sizes.
	r := NewRaster(33, 33, 3)
	w, h := r.Size()
	if w%2 != 0 || h%2 != 0 {
		t.Errorf("frame size %dx%d is not even", w, h)
	}
	if w != 100 || h != 100 {
		t.Errorf("frame size = %dx%d; want 100x100", w, h)
	}
}

func TestRaster_Frame(t *testing.T) {
	r := NewRaster(100, 100, 2)

	boids := []flock.BoidState{{
		ID:      0,
		Pos:     geometry.Vector2D{X: 50, Y: 50},
		Vel:     geometry.Vector2D{X: 1, Y: 0},
		Heading: 0,
	}}
	img := r.Frame(boids)

	// The marker center sits at pixel (100, 100); the triangle spans the
	// pixels just ahead of it along the +X heading.
	if got := img.RGBAAt(101, 100); got != boidColor {
		t.Errorf("expected boid pixel at (101,100), got %v", got)
	}
	if got := img.RGBAAt(5, 5); got != backgroundColor {
		t.Errorf("expected background at (5,5), got %v", got)
	}
}

func TestRaster_FrameClearsPreviousFrame(t *testing.T) {
	r := NewRaster(100, 100, 2)
	at := func(x, y float64, heading float64) []flock.BoidState {
		return []flock.BoidState{{Pos: geometry.Vector2D{X: x, Y: y}, Heading: heading}}
	}

	r.Frame(at(50, 50, 0))
	img := r.Frame(at(10, 10, 0))

	if got := img.RGBAAt(101, 100); got != backgroundColor {
		t.Errorf("stale marker from previous frame at (101,100): %v", got)
	}
	if got := img.RGBAAt(21, 20); got != boidColor {
		t.Errorf("expected boid pixel at (21,20), got %v", got)
	}
}

func TestRaster_BoidNearEdgeStaysInBounds(t *testing.T) {
	r := NewRaster(100, 100, 2)
	// Marker geometry pokes past the frame edge; fill must clip, not panic.
	boids := []flock.BoidState{{
		Pos:     geometry.Vector2D{X: 99.9, Y: 0.1},
		Heading: math.Pi / 4,
	}}
	r.Frame(boids)
}

func TestGlyphFor(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '→'},
		{math.Pi / 2, '↓'}, // +Y is down on screen
		{-math.Pi / 2, '↑'},
		{math.Pi, '←'},
		{-math.Pi, '←'},
		{math.Pi / 4, '↘'},
	}
	for _, tt := range tests {
		if got := glyphFor(tt.heading); got != tt.want {
			t.Errorf("glyphFor(%v) = %q; want %q", tt.heading, got, tt.want)
		}
	}
}
