package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/lao-tseu-is-alive/go-flockers/pkg/flock"
)

var (
	backgroundColor = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	boidColor       = color.RGBA{R: 100, G: 200, B: 255, A: 255}
)

// Raster renders flock snapshots into RGBA frames without any display. It is
// what the movie writers consume; it owns its frame buffer so repeated runs
// never leak shared drawing state.
type Raster struct {
	width, height int
	scale         float64 // pixels per world unit
	frame         *image.RGBA
}

// NewRaster sizes a frame buffer for the given world at scale pixels per
// world unit. Dimensions are rounded up to even numbers since most video
// codecs reject odd frame sizes.
func NewRaster(worldW, worldH, scale float64) *Raster {
	w := int(math.Round(worldW * scale))
	h := int(math.Round(worldH * scale))
	if w%2 == 1 {
		w++
	}
	if h%2 == 1 {
		h++
	}
	return &Raster{
		width:  w,
		height: h,
		scale:  scale,
		frame:  image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

// Size returns the frame dimensions in pixels.
func (r *Raster) Size() (int, int) {
	return r.width, r.height
}

// Frame draws the snapshot into the internal buffer and returns it.
// The buffer is reused: consume it before the next call.
func (r *Raster) Frame(boids []flock.BoidState) *image.RGBA {
	draw.Draw(r.frame, r.frame.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	for _, b := range boids {
		r.drawBoid(b)
	}
	return r.frame
}

// drawBoid fills the oriented triangle marker: a tip in the heading
// direction and two swept-back wings, the same shape as the live view.
func (r *Raster) drawBoid(b flock.BoidState) {
	cx := b.Pos.X * r.scale
	cy := b.Pos.Y * r.scale

	tipX := cx + math.Cos(b.Heading)*6
	tipY := cy + math.Sin(b.Heading)*6
	rightX := cx + math.Cos(b.Heading+2.5)*5
	rightY := cy + math.Sin(b.Heading+2.5)*5
	leftX := cx + math.Cos(b.Heading-2.5)*5
	leftY := cy + math.Sin(b.Heading-2.5)*5

	r.fillTriangle(tipX, tipY, rightX, rightY, leftX, leftY, boidColor)
}

// fillTriangle rasterizes a filled triangle with the edge-function test on
// pixel centers. Either winding order is accepted.
func (r *Raster) fillTriangle(x0, y0, x1, y1, x2, y2 float64, c color.RGBA) {
	minX := int(math.Floor(math.Min(x0, math.Min(x1, x2))))
	maxX := int(math.Ceil(math.Max(x0, math.Max(x1, x2))))
	minY := int(math.Floor(math.Min(y0, math.Min(y1, y2))))
	maxY := int(math.Ceil(math.Max(y0, math.Max(y1, y2))))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= r.width {
		maxX = r.width - 1
	}
	if maxY >= r.height {
		maxY = r.height - 1
	}

	edge := func(ax, ay, bx, by, px, py float64) float64 {
		return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5
			d0 := edge(x0, y0, x1, y1, px, py)
			d1 := edge(x1, y1, x2, y2, px, py)
			d2 := edge(x2, y2, x0, y0, px, py)
			if (d0 >= 0 && d1 >= 0 && d2 >= 0) || (d0 <= 0 && d1 <= 0 && d2 <= 0) {
				r.frame.SetRGBA(x, y, c)
			}
		}
	}
}
