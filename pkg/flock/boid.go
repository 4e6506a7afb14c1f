package flock

import (
	"github.com/lao-tseu-is-alive/go-flockers/pkg/geometry"
)

// Boid is a single flocking agent.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds and related group motion.
// The name is a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
type Boid struct {
	ID  int
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

// BoidState is a render-ready snapshot of one boid at a given step.
type BoidState struct {
	ID      int
	Pos     geometry.Vector2D
	Vel     geometry.Vector2D
	Heading float64 // radians, [-Pi, Pi]
}

// Steer computes the boid's next velocity from the neighbors within its
// vision radius, as the weighted sum of the three classic rules:
//
//   - separation: away from neighbors closer than s.Separation, weighted
//     inversely by distance
//   - alignment: toward the average heading of the neighbors
//   - cohesion: toward the neighbors' centroid
//
// All displacements are the shortest ones on the toroidal world, so flocks
// form correctly across the edges. With no neighbors the velocity is
// returned unchanged. Otherwise the result is clamped to
// [s.MinSpeed, s.MaxSpeed].
func Steer(b Boid, neighbors []Boid, s Settings) geometry.Vector2D {
	if len(neighbors) == 0 {
		return b.Vel
	}

	var away, velSum, posSum geometry.Vector2D
	sepSq := s.Separation * s.Separation

	for _, n := range neighbors {
		d := b.Pos.TorusDelta(n.Pos, s.Width, s.Height)
		dSq := d.LenSqr()

		// A neighbor at the exact same point has no direction to flee from.
		if dSq < sepSq && dSq > geometry.Epsilon {
			away = away.Sub(d.Mul(1 / dSq))
		}

		velSum = velSum.Add(n.Vel)
		posSum = posSum.Add(d)
	}

	inv := 1 / float64(len(neighbors))

	// posSum/n is the centroid relative to b: zero when b already sits on it.
	cohere := posSum.Mul(inv)
	match := velSum.Mul(inv).Sub(b.Vel)

	next := b.Vel.
		Add(cohere.Mul(s.CohereFactor)).
		Add(away.Mul(s.SeparateFactor)).
		Add(match.Mul(s.MatchFactor))

	return next.ClampLen(s.MinSpeed, s.MaxSpeed)
}
