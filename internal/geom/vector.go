package geom

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Epsilon is the tolerance used for near-zero lengths and resting contacts.
const Epsilon = 1e-4

// FallbackAxis is returned whenever a direction cannot be derived from a near-zero vector.
var FallbackAxis = rl.Vector2{X: 1, Y: 0}

// Perpendicular returns v rotated by 90 degrees. Used to turn polygon edges into
// candidate separating axes; callers orient the result themselves.
func Perpendicular(v rl.Vector2) rl.Vector2 {
	return rl.Vector2{X: -v.Y, Y: v.X}
}

// NormalizeOr returns v scaled to unit length, or fallback when |v| is below Epsilon.
func NormalizeOr(v, fallback rl.Vector2) rl.Vector2 {
	lenSq := rl.Vector2LengthSqr(v)
	if lenSq < Epsilon*Epsilon {
		return fallback
	}
	return rl.Vector2Scale(v, 1/math32.Sqrt(lenSq))
}

// Rotate rotates v counter-clockwise (in y-up terms) by the given angle in degrees.
func Rotate(v rl.Vector2, degrees float32) rl.Vector2 {
	if degrees == 0 {
		return v
	}
	rad := degrees * rl.Deg2rad
	s, c := math32.Sin(rad), math32.Cos(rad)
	return rl.Vector2{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// Project returns the min and max of the points projected onto axis.
// The axis does not have to be unit length.
func Project(points []rl.Vector2, axis rl.Vector2) (min, max float32) {
	min = rl.Vector2DotProduct(points[0], axis)
	max = min
	for _, p := range points[1:] {
		d := rl.Vector2DotProduct(p, axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// Mean returns the arithmetic mean of the points.
func Mean(points []rl.Vector2) rl.Vector2 {
	var sum rl.Vector2
	for _, p := range points {
		sum = rl.Vector2Add(sum, p)
	}
	return rl.Vector2Scale(sum, 1/float32(len(points)))
}
