package flock

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-flockers/pkg/geometry"
)

// Flock owns the full boid population and the toroidal world it inhabits.
// It is not safe for concurrent use; the driver loop steps and reads it from
// a single goroutine.
type Flock struct {
	settings Settings
	boids    []Boid
	grid     *grid
	step     uint64

	// Scratch buffers reused across steps to keep Step allocation-free.
	nextVel     []geometry.Vector2D
	neighborIdx []int
	neighborBuf []Boid
}

// New creates a flock of s.Population boids at seeded-random positions with
// random headings at full speed. The same settings always produce the same
// initial state and, through Step, the same run.
func New(s Settings) (*Flock, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed))
	boids := make([]Boid, s.Population)
	for i := range boids {
		boids[i] = Boid{
			ID: i,
			Pos: geometry.Vector2D{
				X: rng.Float64() * s.Width,
				Y: rng.Float64() * s.Height,
			},
			Vel: geometry.NewVectorPolar(s.MaxSpeed, rng.Float64()*2*math.Pi),
		}
	}

	return &Flock{
		settings: s,
		boids:    boids,
		grid:     newGrid(s.Width, s.Height, s.Vision),
		nextVel:  make([]geometry.Vector2D, s.Population),
	}, nil
}

// Step advances every boid exactly once. The update is synchronous: all next
// velocities are computed from the previous step's positions and headings
// first, then every boid moves. No boid ever sees a half-updated world, so
// the result does not depend on iteration order.
func (f *Flock) Step() {
	s := f.settings
	f.grid.rebuild(f.boids)

	for i := range f.boids {
		f.neighborIdx = f.grid.neighbors(f.boids, i, s.Vision, s.Width, s.Height, f.neighborIdx[:0])
		f.neighborBuf = f.neighborBuf[:0]
		for _, j := range f.neighborIdx {
			f.neighborBuf = append(f.neighborBuf, f.boids[j])
		}
		f.nextVel[i] = Steer(f.boids[i], f.neighborBuf, s)
	}

	for i := range f.boids {
		f.boids[i].Vel = f.nextVel[i]
		f.boids[i].Pos = f.boids[i].Pos.
			Add(f.nextVel[i].Mul(s.Dt)).
			Wrap(s.Width, s.Height)
	}
	f.step++
}

// StepCount returns the number of completed steps.
func (f *Flock) StepCount() uint64 {
	return f.step
}

// Settings returns the current settings.
func (f *Flock) Settings() Settings {
	return f.settings
}

// Tune replaces the behavior parameters (vision, separation, rule weights,
// speed limits) at runtime. World dimensions, dt, population, and seed are
// fixed at construction and taken from the existing settings.
func (f *Flock) Tune(s Settings) {
	if f.settings.Vision != s.Vision {
		f.grid = newGrid(f.settings.Width, f.settings.Height, s.Vision)
	}
	f.settings.Vision = s.Vision
	f.settings.Separation = s.Separation
	f.settings.CohereFactor = s.CohereFactor
	f.settings.SeparateFactor = s.SeparateFactor
	f.settings.MatchFactor = s.MatchFactor
	f.settings.MaxSpeed = s.MaxSpeed
	f.settings.MinSpeed = s.MinSpeed
}

// Snapshot returns the current position and heading of every boid.
func (f *Flock) Snapshot() []BoidState {
	return f.AppendSnapshot(nil)
}

// AppendSnapshot appends the current boid states to dst and returns it.
// Render loops pass a reused buffer to avoid a per-frame allocation.
func (f *Flock) AppendSnapshot(dst []BoidState) []BoidState {
	for _, b := range f.boids {
		dst = append(dst, BoidState{
			ID:      b.ID,
			Pos:     b.Pos,
			Vel:     b.Vel,
			Heading: b.Vel.Angle(),
		})
	}
	return dst
}
