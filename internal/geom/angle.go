package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a Cartesian point or direction in the world frame (metres).
type Vec = r2.Vec

// UnitFromHeading returns the unit tangent for a heading in radians.
func UnitFromHeading(theta float64) Vec {
	return Vec{X: math.Cos(theta), Y: math.Sin(theta)}
}

// LeftNormal returns the unit normal pointing to the left of a heading.
// Positive lateral offsets in the Frenet frame lie along this vector.
func LeftNormal(theta float64) Vec {
	return Vec{X: -math.Sin(theta), Y: math.Cos(theta)}
}

// Heading returns the angle of v measured from the +X axis.
func Heading(v Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// NormalizeAngle wraps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// LerpAngle interpolates between two headings along the shortest arc.
// frac is clamped to [0, 1]; the result is normalised to (-π, π].
func LerpAngle(a, b, frac float64) float64 {
	frac = math.Max(0, math.Min(1, frac))
	diff := NormalizeAngle(b - a)
	return NormalizeAngle(a + frac*diff)
}
