package flock

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/lao-tseu-is-alive/go-flockers/pkg/geometry"
)

func TestGrid_Rebuild(t *testing.T) {
	// Vision 100 on a 1000x1000 world: cell size 100, 10x10 cells.
	g := newGrid(1000, 1000, 100)
	boids := []Boid{
		{ID: 0, Pos: geometry.Vector2D{X: 50, Y: 50}},   // cell 0,0
		{ID: 1, Pos: geometry.Vector2D{X: 150, Y: 50}},  // cell 1,0
		{ID: 2, Pos: geometry.Vector2D{X: 50, Y: 150}},  // cell 0,1
		{ID: 3, Pos: geometry.Vector2D{X: 250, Y: 250}}, // cell 2,2
	}

	g.rebuild(boids)

	contains := func(list []int, idx int) bool {
		for _, i := range list {
			if i == idx {
				return true
			}
		}
		return false
	}

	checks := []struct {
		key gridKey
		idx int
	}{
		{gridKey{0, 0}, 0},
		{gridKey{1, 0}, 1},
		{gridKey{0, 1}, 2},
		{gridKey{2, 2}, 3},
	}
	for _, c := range checks {
		if list := g.cells[c.key]; !contains(list, c.idx) {
			t.Errorf("expected boid %d in cell %v, got %v", c.idx, c.key, list)
		}
	}
	if contains(g.cells[gridKey{0, 0}], 1) {
		t.Errorf("did not expect boid 1 in cell 0,0")
	}
}

func TestGrid_NeighborsMatchBruteForce(t *testing.T) {
	// The grid is an optimization only: for random populations its result
	// must be exactly the brute-force set, including across the world seam.
	const w, h, vision = 100.0, 100.0, 10.0
	rng := rand.New(rand.NewPCG(1, 2))

	boids := make([]Boid, 200)
	for i := range boids {
		boids[i] = Boid{ID: i, Pos: geometry.Vector2D{
			X: rng.Float64() * w,
			Y: rng.Float64() * h,
		}}
	}

	g := newGrid(w, h, vision)
	g.rebuild(boids)

	for i := range boids {
		got := g.neighbors(boids, i, vision, w, h, nil)
		sort.Ints(got)

		var want []int
		for j := range boids {
			if j == i {
				continue
			}
			if boids[i].Pos.TorusDistSqr(boids[j].Pos, w, h) < vision*vision {
				want = append(want, j)
			}
		}

		if len(got) != len(want) {
			t.Fatalf("boid %d: grid found %d neighbors, brute force %d", i, len(got), len(want))
		}
		for k := range got {
			if got[k] != want[k] {
				t.Fatalf("boid %d: neighbor sets differ: %v vs %v", i, got, want)
			}
		}
	}
}

func TestGrid_WrappedNeighborAcrossSeam(t *testing.T) {
	const w, h, vision = 100.0, 100.0, 10.0
	boids := []Boid{
		{ID: 0, Pos: geometry.Vector2D{X: 1, Y: 50}},
		{ID: 1, Pos: geometry.Vector2D{X: 99, Y: 50}}, // 2 units away across the seam
		{ID: 2, Pos: geometry.Vector2D{X: 50, Y: 50}}, // far from both
	}
	g := newGrid(w, h, vision)
	g.rebuild(boids)

	got := g.neighbors(boids, 0, vision, w, h, nil)

	if len(got) != 1 || got[0] != 1 {
		t.Errorf("expected only the wrapped neighbor [1], got %v", got)
	}
}

func TestGrid_TinyWorldFallsBackToFullScan(t *testing.T) {
	// Fewer than 3 cells per axis: the 3x3 scan would double-count wrapped
	// cells, so the grid must fall back to scanning everything.
	const w, h, vision = 20.0, 20.0, 10.0
	boids := []Boid{
		{ID: 0, Pos: geometry.Vector2D{X: 1, Y: 1}},
		{ID: 1, Pos: geometry.Vector2D{X: 19, Y: 19}}, // ~2.8 away across the corner
		{ID: 2, Pos: geometry.Vector2D{X: 10, Y: 10}},
	}
	g := newGrid(w, h, vision)
	g.rebuild(boids)

	got := g.neighbors(boids, 0, vision, w, h, nil)

	// Boid 2 is ~12.7 away and out of vision; boid 1 must show up exactly
	// once despite the wrap.
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected exactly [1], got %v", got)
	}
}

func BenchmarkGrid_Rebuild(b *testing.B) {
	const w, h, vision = 1000.0, 1000.0, 10.0
	rng := rand.New(rand.NewPCG(3, 4))
	boids := make([]Boid, 1000)
	for i := range boids {
		boids[i] = Boid{ID: i, Pos: geometry.Vector2D{
			X: rng.Float64() * w,
			Y: rng.Float64() * h,
		}}
	}
	g := newGrid(w, h, vision)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.rebuild(boids)
	}
}

func BenchmarkGrid_Neighbors(b *testing.B) {
	const w, h, vision = 1000.0, 1000.0, 10.0
	rng := rand.New(rand.NewPCG(5, 6))
	boids := make([]Boid, 1000)
	for i := range boids {
		boids[i] = Boid{ID: i, Pos: geometry.Vector2D{
			X: rng.Float64() * w,
			Y: rng.Float64() * h,
		}}
	}
	g := newGrid(w, h, vision)
	g.rebuild(boids)

	var buf []int
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = g.neighbors(boids, i%len(boids), vision, w, h, buf[:0])
	}
}

func BenchmarkFlock_Step(b *testing.B) {
	s := DefaultSettings()
	s.Population = 500
	s.Width = 300
	s.Height = 300
	f, err := New(s)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Step()
	}
}
