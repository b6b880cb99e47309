// Package math provides the small float32 vector, matrix and quaternion types
// shared by the generators.
package math

import "math"

// Vec2 is a 2D vector. Grid-space points use X for the column and Y for the row (world Z).
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Distance returns the Euclidean distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// DistanceSq returns the squared distance to another point.
// Ordering by squared distance matches ordering by distance.
func (v Vec2) DistanceSq(other Vec2) float32 {
	d := v.Sub(other)
	return d.X*d.X + d.Y*d.Y
}
