// Package physics provides 2D vector math and collision detection.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is an immutable 2D vector.
type Vec2 = mgl64.Vec2

// Mat2 is a column-major 2x2 matrix.
type Mat2 = mgl64.Mat2

// Identity is the rotation by zero radians.
var Identity = mgl64.Ident2()

// Quarter turns are spelled out so splits rotate velocities exactly.
var (
	QuarterTurnCCW = Mat2{0, 1, -1, 0} // +90°
	QuarterTurnCW  = Mat2{0, -1, 1, 0} // -90°
)

// Rotation returns the matrix rotating a vector by theta radians.
func Rotation(theta float64) Mat2 {
	return mgl64.Rotate2D(theta)
}

// Rotate applies m to v.
func Rotate(m Mat2, v Vec2) Vec2 {
	return m.Mul2x1(v)
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// CirclesOverlap checks if two circles overlap. Touching circles do not.
func CirclesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	return Distance(c1, c2) < r1+r2
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
