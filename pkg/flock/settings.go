package flock

import "fmt"

// Settings holds the world dimensions and the physics constants for the
// simulation. The behavior part (vision, separation, rule weights, speed
// limits) can be replaced at runtime through Flock.Tune; everything else is
// fixed at construction.
type Settings struct {
	// World
	Population int     // number of boids
	Width      float64 // world width, world units
	Height     float64 // world height, world units
	Seed       uint64  // RNG seed, same seed + settings => same run
	Dt         float64 // duration of one step

	// Behavior
	Vision     float64 // neighbor lookup radius
	Separation float64 // minimum comfortable distance to a neighbor

	CohereFactor   float64 // pull toward the neighbors' centroid
	SeparateFactor float64 // push away from too-close neighbors
	MatchFactor    float64 // pull toward the neighbors' average heading

	MaxSpeed float64
	MinSpeed float64 // 0 disables the floor
}

// DefaultSettings returns the canonical flocker parameters.
func DefaultSettings() Settings {
	return Settings{
		Population:     100,
		Width:          100,
		Height:         100,
		Seed:           42,
		Dt:             1,
		Vision:         10,
		Separation:     2,
		CohereFactor:   0.025,
		SeparateFactor: 0.25,
		MatchFactor:    0.04,
		MaxSpeed:       1,
		MinSpeed:       0,
	}
}

// Validate rejects settings that cannot produce a well-defined simulation.
func (s Settings) Validate() error {
	switch {
	case s.Population <= 0:
		return fmt.Errorf("population must be positive, got %d", s.Population)
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("world size must be positive, got %gx%g", s.Width, s.Height)
	case s.Dt <= 0:
		return fmt.Errorf("dt must be positive, got %g", s.Dt)
	case s.Vision <= 0:
		return fmt.Errorf("vision must be positive, got %g", s.Vision)
	case s.Separation < 0:
		return fmt.Errorf("separation must not be negative, got %g", s.Separation)
	case s.CohereFactor < 0 || s.SeparateFactor < 0 || s.MatchFactor < 0:
		return fmt.Errorf("rule weights must not be negative, got cohere=%g separate=%g match=%g",
			s.CohereFactor, s.SeparateFactor, s.MatchFactor)
	case s.MaxSpeed <= 0:
		return fmt.Errorf("maxSpeed must be positive, got %g", s.MaxSpeed)
	case s.MinSpeed < 0 || s.MinSpeed > s.MaxSpeed:
		return fmt.Errorf("minSpeed must be in [0, maxSpeed], got %g", s.MinSpeed)
	}
	return nil
}
