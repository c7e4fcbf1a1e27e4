// Package geom provides the geometry kernel for the renderer: vectors,
// matrices, rays, and the intersection primitives the visibility strategies
// are built on. All types are plain values with no internal state.
package geom

import (
	"errors"
	"math"
)

// Eps is the shared tolerance for boundary and equal-distance decisions.
// Every "on the edge" test in the engine goes through this one constant.
const Eps = 1e-9

// ErrDegenerate reports ill-formed geometry: a zero-length vector handed to
// Unit, a singular matrix handed to Inverse, or a degenerate triangle.
var ErrDegenerate = errors.New("geom: degenerate geometry")

// Vec3 is a 3D point or free vector.
type Vec3 struct {
	X, Y, Z float64
}

// NoDirection is the reserved sentinel for "no direction", used by
// non-directional light sources. All components are NaN.
func NoDirection() Vec3 {
	nan := math.NaN()
	return Vec3{nan, nan, nan}
}

// IsNoDirection reports whether v is the NoDirection sentinel.
func (v Vec3) IsNoDirection() bool {
	return math.IsNaN(v.X)
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector, or the zero vector if v has zero length.
// Use Unit when a zero input must be treated as a defect.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Unit returns a unit vector, failing with ErrDegenerate when v has no
// usable direction. The invariant on the result is a magnitude of 1.
func (v Vec3) Unit() (Vec3, error) {
	l := v.Length()
	if l < Eps || math.IsNaN(l) {
		return Vec3{}, ErrDegenerate
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}, nil
}

// Lerp returns the linear interpolation between v and other at t.
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return v.Add(other.Sub(v).Scale(t))
}

// Mid returns the midpoint between v and other.
func (v Vec3) Mid(other Vec3) Vec3 {
	return v.Lerp(other, 0.5)
}

// Vec2 is a 2D point or vector, used for projected screen coordinates.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the 2D cross product (the z component of the 3D one).
func (v Vec2) Cross(other Vec2) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector, or the zero vector if v has zero length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}
