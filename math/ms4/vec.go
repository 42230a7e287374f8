// Package ms4 implements a 4D vector type mirroring ms3's Vec, added for
// RGBA colors, homogeneous coordinates and vec4-shaped uniforms/struct
// fields — kinds the 3D-only original math packages have no home for.
package ms4

import (
	math "github.com/chewxy/math32"
	"github.com/shaderkit/gpudsl/math/ms1"
)

// Vec is a 4D vector, composed of 4 float32 fields for x, y, z and w in
// that order. Its host layout already matches std430's 16-byte vec4
// footprint with no padding required, unlike ms3.Vec.
type Vec struct {
	X, Y, Z, W float32
}

// Max returns the maximum component of a.
func (a Vec) Max() float32 {
	return math.Max(math.Max(a.X, a.Y), math.Max(a.Z, a.W))
}

// Min returns the minimum component of a.
func (a Vec) Min() float32 {
	return math.Min(math.Min(a.X, a.Y), math.Min(a.Z, a.W))
}

// Array returns the ordered components of Vec in a 4 element array.
func (a Vec) Array() [4]float32 {
	return [4]float32{a.X, a.Y, a.Z, a.W}
}

// AllNonzero returns true if all elements of a are nonzero.
func (a Vec) AllNonzero() bool {
	return a.X != 0 && a.Y != 0 && a.Z != 0 && a.W != 0
}

// Add returns the vector sum of p and q.
func Add(p, q Vec) Vec {
	return Vec{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z, W: p.W + q.W}
}

// Sub returns the vector sum of p and -q.
func Sub(p, q Vec) Vec {
	return Vec{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z, W: p.W - q.W}
}

// Scale returns the vector p scaled by f.
func Scale(f float32, p Vec) Vec {
	return Vec{X: f * p.X, Y: f * p.Y, Z: f * p.Z, W: f * p.W}
}

// Dot returns the dot product p·q.
func Dot(p, q Vec) float32 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z + p.W*q.W
}

// Norm returns the Euclidean norm of p.
func Norm(p Vec) float32 {
	return math.Sqrt(Dot(p, p))
}

// Norm2 returns the Euclidean squared norm of p.
func Norm2(p Vec) float32 {
	return Dot(p, p)
}

// Unit returns the unit vector colinear to p.
// Unit returns {NaN,NaN,NaN,NaN} for the zero vector.
func Unit(p Vec) Vec {
	if p.X == 0 && p.Y == 0 && p.Z == 0 && p.W == 0 {
		return Vec{X: math.NaN(), Y: math.NaN(), Z: math.NaN(), W: math.NaN()}
	}
	return Scale(1/Norm(p), p)
}

// MinElem returns a vector with the minimum components of two vectors.
func MinElem(a, b Vec) Vec {
	return Vec{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		Z: math.Min(a.Z, b.Z),
		W: math.Min(a.W, b.W),
	}
}

// MaxElem returns a vector with the maximum components of two vectors.
func MaxElem(a, b Vec) Vec {
	return Vec{
		X: math.Max(a.X, b.X),
		Y: math.Max(a.Y, b.Y),
		Z: math.Max(a.Z, b.Z),
		W: math.Max(a.W, b.W),
	}
}

// MulElem returns the Hadamard product between vectors a and b.
func MulElem(a, b Vec) Vec {
	return Vec{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z, W: a.W * b.W}
}

// DivElem returns the Hadamard product between vector a and the inverse
// components of vector b.
func DivElem(a, b Vec) Vec {
	return Vec{X: a.X / b.X, Y: a.Y / b.Y, Z: a.Z / b.Z, W: a.W / b.W}
}

// EqualElem checks equality between vector elements to within a tolerance.
func EqualElem(a, b Vec, tol float32) bool {
	return ms1.EqualWithinAbs(a.X, b.X, tol) &&
		ms1.EqualWithinAbs(a.Y, b.Y, tol) &&
		ms1.EqualWithinAbs(a.Z, b.Z, tol) &&
		ms1.EqualWithinAbs(a.W, b.W, tol)
}

// ClampElem returns v with its elements clamped to min and max's components.
func ClampElem(v, min, max Vec) Vec {
	return Vec{
		X: ms1.Clamp(v.X, min.X, max.X),
		Y: ms1.Clamp(v.Y, min.Y, max.Y),
		Z: ms1.Clamp(v.Z, min.Z, max.Z),
		W: ms1.Clamp(v.W, min.W, max.W),
	}
}

// InterpElem performs a linear interpolation between x and y's elements,
// mapping with a's values in interval [0,1].
func InterpElem(x, y, a Vec) Vec {
	return Vec{
		X: ms1.Interp(x.X, y.X, a.X),
		Y: ms1.Interp(x.Y, y.Y, a.Y),
		Z: ms1.Interp(x.Z, y.Z, a.Z),
		W: ms1.Interp(x.W, y.W, a.W),
	}
}
