// Package vmath holds the small amount of 2D vector math the engine needs.
package vmath

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector. Methods return new values and never mutate the receiver.
type Vec2 struct {
	X, Y float32
}

var (
	Zero  = Vec2{0, 0}
	Right = Vec2{1, 0}
	Left  = Vec2{-1, 0}
	Up    = Vec2{0, -1}
	Down  = Vec2{0, 1}
)

// V is shorthand for Vec2{x, y}.
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Mul scales both components by s.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Len() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Nor returns the unit vector in the direction of v, or Zero for the zero vector.
func (v Vec2) Nor() Vec2 {
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns the angle of v in radians, measured from the positive X axis.
func (v Vec2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float32 {
	return o.Sub(v).Len()
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	return max(lo, min(x, hi))
}

// Radians converts degrees to radians.
func Radians(degrees float32) float64 {
	return float64(degrees) * math.Pi / 180
}
