// Package geom provides the small amount of 3D vector math shared by the
// scene model and the animation driver.
package geom

import (
	"fmt"
	"math"
)

// Vec3 is a point or direction in scene space. Y points up.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// V is shorthand for Vec3{x, y, z}.
func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// WithY returns v with its Y component replaced.
func (v Vec3) WithY(y float64) Vec3 {
	v.Y = y
	return v
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// Distance returns the straight-line distance between a and b.
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Length()
}

// Lerp interpolates linearly between a and b. t is clamped to [0, 1].
func Lerp(a, b Vec3, t float64) Vec3 {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return a.Add(b.Sub(a).Scale(t))
}

// ApproxEqual reports whether a and b differ by at most eps in every
// component.
func ApproxEqual(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// ApproxEqual is the method form of [ApproxEqual].
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool { return ApproxEqual(v, o, eps) }
