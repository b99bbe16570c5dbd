// Package vecmath provides 2D vector primitives shared by physics,
// collision, pathfinding and the wolf AI stack.
package vecmath

import "math"

// Vec2 is a 2D float64 vector.
type Vec2 struct {
	X, Y float64
}

// Zero is the additive identity.
var Zero = Vec2{}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }

// Length returns the Euclidean norm.
func (v Vec2) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// LengthSq avoids the sqrt for comparisons.
func (v Vec2) LengthSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalized returns a unit vector, or Zero if v is (near) zero-length.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l < 1e-9 {
		return Zero
	}
	return Vec2{v.X / l, v.Y / l}
}

// DistanceTo returns the distance between v and o.
func (v Vec2) DistanceTo(o Vec2) float64 { return v.Sub(o).Length() }

// Rotated returns v rotated by radians counter-clockwise.
func (v Vec2) Rotated(radians float64) Vec2 {
	sin, cos := math.Sin(radians), math.Cos(radians)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Perp returns the vector rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Angle returns atan2(Y, X), the facing angle in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// FromAngle builds a unit vector facing the given angle.
func FromAngle(radians float64) Vec2 {
	return Vec2{math.Cos(radians), math.Sin(radians)}
}

// Lerp linearly interpolates between a and b by t in [0, 1].
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Clamp restricts v's components to [min, max] on each axis.
func Clamp(v, min, max Vec2) Vec2 {
	return Vec2{
		X: math.Max(min.X, math.Min(max.X, v.X)),
		Y: math.Max(min.Y, math.Min(max.Y, v.Y)),
	}
}

// ClampLength shortens v to maxLen if it exceeds it, otherwise returns v unchanged.
func (v Vec2) ClampLength(maxLen float64) Vec2 {
	l := v.Length()
	if l <= maxLen || l < 1e-9 {
		return v
	}
	return v.Scale(maxLen / l)
}

// Batch applies fn to every element of vs in place. A straightforward
// loop rather than a hand-rolled SIMD intrinsic, left for the compiler's
// auto-vectorizer rather than assembly.
func Batch(vs []Vec2, fn func(Vec2) Vec2) {
	for i, v := range vs {
		vs[i] = fn(v)
	}
}
