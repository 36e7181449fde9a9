// Package fixed holds the engine's native numeric types: 16-bit world coordinates and
// 16-bit angles, plus the truncated trigonometry table the engine evaluates them with.
package fixed

import "github.com/go-gl/mathgl/mgl64"

// Point3 is a vertex in the engine's integer world space
type Point3 struct {
	X, Y, Z int16
}

// Sub returns p - q, wrapping like the engine's 16-bit arithmetic
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Add returns p + q, wrapping like the engine's 16-bit arithmetic
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Vec64 widens the point for floating point geometry
func (p Point3) Vec64() mgl64.Vec3 {
	return mgl64.Vec3{float64(p.X), float64(p.Y), float64(p.Z)}
}
