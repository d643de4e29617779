package common

import "math"

const (
	BaseWidth  = 1024
	BaseHeight = 650
)

// Lerp returns a + t*(b-a). t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Approx reports whether a and b differ by less than eps.
func Approx(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
