package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the precision used for float64 comparisons in this package.
const Epsilon = 1e-9

// Vector2D represents a 2D vector or point in cartesian space.
// Fields are public because they are fundamental data, not internal state,
// which also allows clean literal initialization: v := Vector2D{1, 2}.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewVectorPolar creates a Vector2D from polar coordinates. theta is in radians.
func NewVectorPolar(radius, theta float64) Vector2D {
	x := radius * math.Cos(theta)
	y := radius * math.Sin(theta)
	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}
	return Vector2D{X: x, Y: y}
}

// String implements fmt.Stringer.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// Add adds two vectors and returns the result.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// LenSqr calculates the squared magnitude of the vector.
// Faster than Len, use for comparisons.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len calculates the magnitude of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is effectively zero.
func (v Vector2D) Normalize() Vector2D {
	l := v.Len()
	if l < Epsilon {
		return Vector2D{}
	}
	return v.Mul(1 / l)
}

// ClampLen rescales the vector so its magnitude lies within [min, max].
// A zero vector is returned unchanged since it has no direction to scale.
// Pass min = 0 to only cap the magnitude.
func (v Vector2D) ClampLen(min, max float64) Vector2D {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	if l > max {
		return v.Mul(max / l)
	}
	if l < min {
		return v.Mul(min / l)
	}
	return v
}

// Angle returns the angle (in radians) of the vector relative to the X-axis.
// Range: [-Pi, Pi]
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate rotates the vector by angle (in radians) around the origin.
func (v Vector2D) Rotate(angle float64) Vector2D {
	cosTheta := math.Cos(angle)
	sinTheta := math.Sin(angle)
	return Vector2D{
		X: v.X*cosTheta - v.Y*sinTheta,
		Y: v.X*sinTheta + v.Y*cosTheta,
	}
}

// Eq checks if two vectors are approximately equal using Epsilon.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}

// Wrap maps the point into the toroidal world [0,w) x [0,h).
// A point leaving one edge reappears on the opposite edge.
func (v Vector2D) Wrap(w, h float64) Vector2D {
	x := math.Mod(v.X, w)
	if x < 0 {
		x += w
	}
	y := math.Mod(v.Y, h)
	if y < 0 {
		y += h
	}
	return Vector2D{X: x, Y: y}
}

// TorusDelta returns the shortest displacement from v to other on a torus
// of size w x h. Each component lies in [-w/2, w/2] (resp. h).
func (v Vector2D) TorusDelta(other Vector2D, w, h float64) Vector2D {
	dx := other.X - v.X
	dy := other.Y - v.Y
	if dx > w/2 {
		dx -= w
	} else if dx < -w/2 {
		dx += w
	}
	if dy > h/2 {
		dy -= h
	} else if dy < -h/2 {
		dy += h
	}
	return Vector2D{X: dx, Y: dy}
}

// TorusDistSqr returns the squared toroidal distance between two points.
func (v Vector2D) TorusDistSqr(other Vector2D, w, h float64) float64 {
	return v.TorusDelta(other, w, h).LenSqr()
}
