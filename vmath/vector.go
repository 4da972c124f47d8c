package vmath

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrDegenerateVector is returned when a zero-length or non-finite vector is normalized
var ErrDegenerateVector = errors.New("vmath: degenerate vector")

// Vec2 is a 2D vector in world units, arithmetic delegated to gonum r2
type Vec2 r2.Vec

// Zero is the zero vector
var Zero = Vec2{}

// V constructs a Vec2
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) vec() r2.Vec { return r2.Vec(v) }

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(r2.Add(v.vec(), o.vec()))
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(r2.Sub(v.vec(), o.vec()))
}

// Scale returns v * k
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2(r2.Scale(k, v.vec()))
}

// Neg returns -v, exact componentwise negation
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns v.X*o.X + v.Y*o.Y
func (v Vec2) Dot(o Vec2) float64 {
	return r2.Dot(v.vec(), o.vec())
}

// LengthSq returns squared length without sqrt
func (v Vec2) LengthSq() float64 {
	return v.Dot(v)
}

// Length returns sqrt(dot(v, v))
func (v Vec2) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// IsFinite reports whether both components are neither NaN nor Inf
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Normalize returns the unit vector of v
// Zero-length or non-finite input returns ErrDegenerateVector instead of NaN
func (v Vec2) Normalize() (Vec2, error) {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Zero, ErrDegenerateVector
	}
	return v.Scale(1 / l), nil
}
