package vmath

import "math"

const TwoPi = 2 * math.Pi

// WrapAngle folds a into (-2π, 2π).
func WrapAngle(a float64) float64 {
	return math.Mod(a, TwoPi)
}

// ShortestArc returns the signed rotation in [-π, π] that takes from onto to.
func ShortestArc(from, to float64) float64 {
	d := math.Mod(to-from, TwoPi)
	switch {
	case d > math.Pi:
		d -= TwoPi
	case d < -math.Pi:
		d += TwoPi
	}
	return d
}

// RotateToward moves angle from toward to by at most step radians along the
// shortest arc. The result is wrapped into (-2π, 2π).
func RotateToward(from, to, step float64) float64 {
	d := ShortestArc(from, to)
	if math.Abs(d) <= step {
		return WrapAngle(from + d)
	}
	return WrapAngle(from + math.Copysign(step, d))
}

// Heading returns the z-rotation that faces direction (x, y), with 0 facing +y.
func Heading(x, y float64) float64 {
	return math.Atan2(-x, y)
}
