package common

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestVectorCallForms(t *testing.T) {
	tests := []struct {
		name   string
		vecOp  func(v *Vector) *Vector
		scalOp func(v *Vector) *Vector
	}{
		{"add", func(v *Vector) *Vector { return v.Add(Vector{X: 3, Y: -2}) }, func(v *Vector) *Vector { return v.AddXY(3, -2) }},
		{"sub", func(v *Vector) *Vector { return v.Sub(Vector{X: 3, Y: -2}) }, func(v *Vector) *Vector { return v.SubXY(3, -2) }},
		{"mul", func(v *Vector) *Vector { return v.Mul(Vector{X: 2, Y: 2}) }, func(v *Vector) *Vector { return v.Scale(2) }},
		{"div", func(v *Vector) *Vector { return v.Div(Vector{X: 4, Y: 0.5}) }, func(v *Vector) *Vector { return v.DivXY(4, 0.5) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Vec(5, 7)
			b := Vec(5, 7)
			if got := tc.vecOp(a); got != a {
				t.Fatalf("vector form should return receiver")
			}
			if got := tc.scalOp(b); got != b {
				t.Fatalf("scalar form should return receiver")
			}
			if *a != *b {
				t.Fatalf("call forms disagree: %v vs %v", a, b)
			}
		})
	}
}

func TestVectorDivByZero(t *testing.T) {
	v := Vec(6, 8)
	if v.TryDivXY(0, 2) {
		t.Fatalf("expected TryDivXY to report a zero divisor")
	}
	if v.X != 6 || v.Y != 4 {
		t.Fatalf("got %v, want (6, 4)", v)
	}
}

func TestVectorNormalize(t *testing.T) {
	v := Vec(3, 4).Normalize()
	if !approxEqual(v.Len(), 1, epsilon) {
		t.Fatalf("len = %f, want 1", v.Len())
	}

	z := Vec(0, 0).Normalize()
	if !z.IsZero() || math.IsNaN(z.X) {
		t.Fatalf("zero vector should stay zero, got %v", z)
	}
}

func TestVectorClone(t *testing.T) {
	v := Vec(1, 2)
	c := v.Clone()
	c.AddXY(10, 10)
	if v.X != 1 || v.Y != 2 {
		t.Fatalf("clone aliased original: %v", v)
	}
}

func TestVectorGeometry(t *testing.T) {
	a := Vector{X: 1, Y: 0}
	b := Vector{X: 0, Y: 1}

	if a.Dot(b) != 0 {
		t.Errorf("dot = %f, want 0", a.Dot(b))
	}
	if a.Cross(b) != 1 {
		t.Errorf("cross = %f, want 1", a.Cross(b))
	}
	if !approxEqual(a.AngleTo(b), math.Pi/2, epsilon) {
		t.Errorf("angleTo = %f, want pi/2", a.AngleTo(b))
	}
	if !approxEqual(a.DistanceTo(b), math.Sqrt2, epsilon) {
		t.Errorf("distance = %f", a.DistanceTo(b))
	}
	if a.DistanceTo2(b) != 2 {
		t.Errorf("distance2 = %f, want 2", a.DistanceTo2(b))
	}
	if a.ManhattanDistance(b) != 2 {
		t.Errorf("manhattan = %f, want 2", a.ManhattanDistance(b))
	}

	r := a.Clone().Rotate(math.Pi / 2)
	if !r.Equals(b, 1e-9) {
		t.Errorf("rotate = %v, want %v", r, b)
	}
	if p := a.Perpendicular(); !p.Equals(b, epsilon) {
		t.Errorf("perpendicular = %v, want %v", p, b)
	}
}

func TestVectorLerpOvershoot(t *testing.T) {
	v := Vec(0, 0)
	v.Lerp(Vector{X: 10, Y: -10}, 1.5)
	if v.X != 15 || v.Y != -15 {
		t.Fatalf("lerp should not clamp t, got %v", v)
	}
}

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}
