package common

import (
	"fmt"
	"math"
)

// Vector is a mutable 2D point or displacement. Mutating methods return the
// receiver so calls can be chained; Clone is the only allocating form.
type Vector struct {
	X, Y float64
}

// Vec is shorthand for &Vector{X: x, Y: y}.
func Vec(x, y float64) *Vector {
	return &Vector{X: x, Y: y}
}

func (v *Vector) Set(o Vector) *Vector {
	v.X = o.X
	v.Y = o.Y
	return v
}

func (v *Vector) SetXY(x, y float64) *Vector {
	v.X = x
	v.Y = y
	return v
}

func (v *Vector) Add(o Vector) *Vector {
	return v.AddXY(o.X, o.Y)
}

func (v *Vector) AddXY(x, y float64) *Vector {
	v.X += x
	v.Y += y
	return v
}

// AddScalar adds s to both components.
func (v *Vector) AddScalar(s float64) *Vector {
	return v.AddXY(s, s)
}

func (v *Vector) Sub(o Vector) *Vector {
	return v.SubXY(o.X, o.Y)
}

func (v *Vector) SubXY(x, y float64) *Vector {
	v.X -= x
	v.Y -= y
	return v
}

// Mul multiplies component-wise.
func (v *Vector) Mul(o Vector) *Vector {
	return v.MulXY(o.X, o.Y)
}

func (v *Vector) MulXY(x, y float64) *Vector {
	v.X *= x
	v.Y *= y
	return v
}

// Scale multiplies both components by s.
func (v *Vector) Scale(s float64) *Vector {
	return v.MulXY(s, s)
}

// Div divides component-wise. A zero divisor leaves that component untouched.
func (v *Vector) Div(o Vector) *Vector {
	return v.DivXY(o.X, o.Y)
}

// DivXY divides per axis. A zero divisor leaves that component untouched.
func (v *Vector) DivXY(x, y float64) *Vector {
	v.TryDivXY(x, y)
	return v
}

// TryDivXY divides per axis and reports whether both divisors were non-zero.
func (v *Vector) TryDivXY(x, y float64) bool {
	ok := true
	if x != 0 {
		v.X /= x
	} else {
		ok = false
	}
	if y != 0 {
		v.Y /= y
	} else {
		ok = false
	}
	return ok
}

func (v Vector) Clone() *Vector {
	return &Vector{X: v.X, Y: v.Y}
}

func (v Vector) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Len2 is the squared length, cheap for comparisons.
func (v Vector) Len2() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize scales v to unit length. Zero vectors are left as is.
func (v *Vector) Normalize() *Vector {
	l := v.Len()
	if l > 0 {
		v.X /= l
		v.Y /= l
	}
	return v
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vector) Cross(o Vector) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vector) DistanceTo(o Vector) float64 {
	return math.Sqrt(v.DistanceTo2(o))
}

func (v Vector) DistanceTo2(o Vector) float64 {
	dx := o.X - v.X
	dy := o.Y - v.Y
	return dx*dx + dy*dy
}

func (v Vector) ManhattanDistance(o Vector) float64 {
	return math.Abs(o.X-v.X) + math.Abs(o.Y-v.Y)
}

// Rotate rotates v by angle radians.
func (v *Vector) Rotate(angle float64) *Vector {
	sin, cos := math.Sincos(angle)
	x := v.X*cos - v.Y*sin
	y := v.X*sin + v.Y*cos
	v.X = x
	v.Y = y
	return v
}

func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleTo is the signed angle from v to o.
func (v Vector) AngleTo(o Vector) float64 {
	return math.Atan2(v.Cross(o), v.Dot(o))
}

// Lerp moves v toward o by fraction t. t is not clamped.
func (v *Vector) Lerp(o Vector, t float64) *Vector {
	v.X += (o.X - v.X) * t
	v.Y += (o.Y - v.Y) * t
	return v
}

func (v Vector) Equals(o Vector, eps float64) bool {
	return math.Abs(v.X-o.X) < eps && math.Abs(v.Y-o.Y) < eps
}

// Perpendicular returns v rotated by 90 degrees.
func (v Vector) Perpendicular() *Vector {
	return &Vector{X: -v.Y, Y: v.X}
}

func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector(%g, %g)", v.X, v.Y)
}
