package actor

import (
	"math"

	"github.com/akmonengine/gapsweep/fixed"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis selects which angle component a sweep drives
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "unknown"
}

// Transform places a solid in the world: a rotation about the pivot, then a translation to it
type Transform struct {
	// Angles per axis (X, Y, Z)
	Angles [3]fixed.Angle
	Pivot  fixed.Point3
}

// RotationAbout creates a transform rotating only around the given axis
func RotationAbout(axis Axis, angle fixed.Angle, pivot fixed.Point3) Transform {
	t := Transform{Pivot: pivot}
	t.Angles[axis] = angle

	return t
}

// Matrix builds the engine's rotation matrix, composed X then Y then Z, in float32 precision
func (t Transform) Matrix() mgl32.Mat3 {
	sx, cx := fixed.Sin(t.Angles[AxisX]), fixed.Cos(t.Angles[AxisX])
	sy, cy := fixed.Sin(t.Angles[AxisY]), fixed.Cos(t.Angles[AxisY])
	sz, cz := fixed.Sin(t.Angles[AxisZ]), fixed.Cos(t.Angles[AxisZ])

	return mgl32.Mat3FromRows(
		mgl32.Vec3{sx*sy*sz + cy*cz, -cy*sz + sx*sy*cz, cx * sy},
		mgl32.Vec3{cx * sz, cx * cz, -sx},
		mgl32.Vec3{-sy*cz + sx*cy*sz, sx*cy*cz + sy*sz, cx * cy},
	)
}

// Apply rotates every vertex, moves it to the pivot and quantizes it back to world coordinates.
// The result has the same length and order as vertices.
func (t Transform) Apply(vertices []fixed.Point3) []fixed.Point3 {
	m := t.Matrix()
	pivot := mgl32.Vec3{float32(t.Pivot.X), float32(t.Pivot.Y), float32(t.Pivot.Z)}

	out := make([]fixed.Point3, len(vertices))
	for i, v := range vertices {
		world := m.Mul3x1(mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}).Add(pivot)
		out[i] = fixed.Point3{
			X: quantize(world.X()),
			Y: quantize(world.Y()),
			Z: quantize(world.Z()),
		}
	}

	return out
}

// quantize truncates toward zero and narrows to 16 bits with two's complement wrap-around
func quantize(v float32) int16 {
	v = math32.Trunc(v)
	// int16 inputs rotated and translated by an int16 pivot stay well inside int32
	if v >= math.MaxInt32 || v < math.MinInt32 {
		return 0
	}

	return int16(int32(v))
}
