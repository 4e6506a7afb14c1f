package geometry

import (
	"math"
	"testing"
)

func TestNewVectorPolar(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		theta  float64
		want   Vector2D
	}{
		{"Zero radius", 0, 0, Vector2D{0, 0}},
		{"Zero angle (X-axis)", 10, 0, Vector2D{10, 0}},
		{"90 degrees (Y-axis)", 10, math.Pi / 2, Vector2D{0, 10}},
		{"180 degrees (Negative X)", 10, math.Pi, Vector2D{-10, 0}},
		{"45 degrees", math.Sqrt(2), math.Pi / 4, Vector2D{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewVectorPolar(tt.radius, tt.theta)
			if !got.Eq(tt.want) {
				t.Errorf("NewVectorPolar(%v, %v) = %v; want %v", tt.radius, tt.theta, got, tt.want)
			}
		})
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	t.Run("Add", func(t *testing.T) {
		want := Vector2D{4, 6}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector2D{-2, -2}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector2D{2, 4}
		if got := v1.Mul(2); !got.Eq(want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})
}

func TestVector_LenAndNormalize(t *testing.T) {
	v := Vector2D{3, 4}
	if got := v.Len(); got != 5 {
		t.Errorf("Len() = %v; want 5", got)
	}
	if got := v.LenSqr(); got != 25 {
		t.Errorf("LenSqr() = %v; want 25", got)
	}
	if got := v.Normalize(); !got.Eq(Vector2D{0.6, 0.8}) {
		t.Errorf("Normalize() = %v; want (0.6, 0.8)", got)
	}
	if got := (Vector2D{}).Normalize(); !got.Eq(Vector2D{}) {
		t.Errorf("Normalize() of zero vector = %v; want zero", got)
	}
}

func TestVector_ClampLen(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		min, max float64
		wantLen  float64
	}{
		{"Above max is capped", Vector2D{3, 4}, 0, 2, 2},
		{"Below min is raised", Vector2D{0.3, 0.4}, 1, 2, 1},
		{"In range unchanged", Vector2D{1, 0}, 0.5, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.ClampLen(tt.min, tt.max)
			if math.Abs(got.Len()-tt.wantLen) > Epsilon {
				t.Errorf("ClampLen(%v, %v).Len() = %v; want %v", tt.min, tt.max, got.Len(), tt.wantLen)
			}
			// Direction must be preserved.
			if got.Normalize() != tt.v.Normalize() && !got.Normalize().Eq(tt.v.Normalize()) {
				t.Errorf("ClampLen changed direction: %v -> %v", tt.v, got)
			}
		})
	}

	t.Run("Zero vector stays zero", func(t *testing.T) {
		if got := (Vector2D{}).ClampLen(1, 2); !got.Eq(Vector2D{}) {
			t.Errorf("ClampLen of zero vector = %v; want zero", got)
		}
	})
}

func TestVector_Wrap(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2D
		want Vector2D
	}{
		{"Inside stays put", Vector2D{50, 60}, Vector2D{50, 60}},
		{"Past right edge", Vector2D{105, 50}, Vector2D{5, 50}},
		{"Past bottom edge", Vector2D{50, 103}, Vector2D{50, 3}},
		{"Negative X", Vector2D{-1, 50}, Vector2D{99, 50}},
		{"Negative both", Vector2D{-10, -20}, Vector2D{90, 80}},
		{"Exactly on edge maps to zero", Vector2D{100, 100}, Vector2D{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Wrap(100, 100); !got.Eq(tt.want) {
				t.Errorf("%v.Wrap(100, 100) = %v; want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestVector_TorusDelta(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector2D
		want Vector2D
	}{
		{"Plain delta", Vector2D{10, 10}, Vector2D{20, 30}, Vector2D{10, 20}},
		{"Across right edge", Vector2D{95, 50}, Vector2D{5, 50}, Vector2D{10, 0}},
		{"Across left edge", Vector2D{5, 50}, Vector2D{95, 50}, Vector2D{-10, 0}},
		{"Across corner", Vector2D{99, 99}, Vector2D{1, 1}, Vector2D{2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.TorusDelta(tt.b, 100, 100); !got.Eq(tt.want) {
				t.Errorf("%v.TorusDelta(%v) = %v; want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	t.Run("Distance is symmetric", func(t *testing.T) {
		a, b := Vector2D{98, 2}, Vector2D{3, 97}
		if d1, d2 := a.TorusDistSqr(b, 100, 100), b.TorusDistSqr(a, 100, 100); math.Abs(d1-d2) > Epsilon {
			t.Errorf("TorusDistSqr not symmetric: %v vs %v", d1, d2)
		}
	})
}

func TestVector_AngleRotate(t *testing.T) {
	v := Vector2D{1, 0}
	if got := v.Angle(); got != 0 {
		t.Errorf("Angle() = %v; want 0", got)
	}
	if got := v.Rotate(math.Pi / 2); !got.Eq(Vector2D{0, 1}) {
		t.Errorf("Rotate(Pi/2) = %v; want (0, 1)", got)
	}
}
