package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-flockers/pkg/geometry"
)

type gridKey struct {
	x, y int
}

// grid is a uniform spatial hash over the toroidal world. Cells are at least
// the vision radius wide, so a 3x3 neighborhood scan around a boid's cell is
// guaranteed to cover every candidate within vision. It is purely a
// performance shortcut: the result set is exactly what a brute-force scan
// within the radius would return.
type grid struct {
	cells      map[gridKey][]int // cell -> indices into the boid slice
	cellSize   float64
	cols, rows int
}

func newGrid(width, height, vision float64) *grid {
	// Clamp to avoid degenerate tiny cells when vision is very small.
	cellSize := math.Max(vision, 1.0)
	cols := int(width / cellSize)
	rows := int(height / cellSize)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &grid{
		cells:    make(map[gridKey][]int),
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
	}
}

// rebuild reindexes all boids. Slices are reset to length 0 but keep their
// capacity, so steady-state rebuilds allocate almost nothing.
func (g *grid) rebuild(boids []Boid) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	for i := range boids {
		k := g.keyAt(boids[i].Pos)
		g.cells[k] = append(g.cells[k], i)
	}
}

func (g *grid) keyAt(p geometry.Vector2D) gridKey {
	x := int(p.X / g.cellSize)
	y := int(p.Y / g.cellSize)
	// Positions live in [0, w) x [0, h); the last partial cell folds into
	// the final column/row.
	if x >= g.cols {
		x = g.cols - 1
	}
	if y >= g.rows {
		y = g.rows - 1
	}
	return gridKey{x: x, y: y}
}

// neighbors appends to dst the indices of all boids other than i within
// radius of boids[i], measured on the torus.
func (g *grid) neighbors(boids []Boid, i int, radius, w, h float64, dst []int) []int {
	me := boids[i].Pos
	rSq := radius * radius

	// With fewer than 3 columns or rows the wrapped 3x3 scan would visit the
	// same cell twice and report duplicates; a full scan is cheap there.
	if g.cols < 3 || g.rows < 3 {
		for j := range boids {
			if j == i {
				continue
			}
			if me.TorusDistSqr(boids[j].Pos, w, h) < rSq {
				dst = append(dst, j)
			}
		}
		return dst
	}

	ck := g.keyAt(me)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			k := gridKey{
				x: (ck.x + dx + g.cols) % g.cols,
				y: (ck.y + dy + g.rows) % g.rows,
			}
			for _, j := range g.cells[k] {
				if j == i {
					continue
				}
				if me.TorusDistSqr(boids[j].Pos, w, h) < rSq {
					dst = append(dst, j)
				}
			}
		}
	}
	return dst
}
