// Package face models the triangular faces of a rotated solid.
//
// A Triangle keeps its three integer vertices in winding order together with the plane they
// span: a unit normal and an offset such that Normal·P + Offset = 0 for any point P on it.
//
// Faces are looked at from directly above: containment only considers X and Z, and the
// height of the plane at a grid position is recovered from the plane equation.
package face

import (
	"fmt"
	"math"

	"github.com/akmonengine/gapsweep/fixed"
	"github.com/go-gl/mathgl/mgl64"
)

// Winding of the vertices as seen from above (looking down -Y)
type Winding uint8

const (
	// CounterClockwise is the winding of faces whose normal points up
	CounterClockwise Winding = iota
	// Clockwise is the winding of faces whose normal points down
	Clockwise
)

// Kind classifies a face by the vertical component of its normal
type Kind uint8

const (
	Wall Kind = iota
	Floor
	Ceiling
)

func (k Kind) String() string {
	switch k {
	case Floor:
		return "floor"
	case Ceiling:
		return "ceiling"
	}
	return "wall"
}

// FLOOR_THRESHOLD is the engine's minimum |NormalY| for a face to count as floor or ceiling
const FLOOR_THRESHOLD = 0.01

// minNormalLength under which the cross product is treated as zero (collinear vertices)
const minNormalLength = 1e-8

type Triangle struct {
	Vertices [3]fixed.Point3
	Normal   mgl64.Vec3 // unit length
	Offset   float64
}

// DegenerateTriangleError reports three collinear or coincident vertices
type DegenerateTriangleError struct {
	Vertices [3]fixed.Point3
}

func (e *DegenerateTriangleError) Error() string {
	return fmt.Sprintf("degenerate triangle %v %v %v", e.Vertices[0], e.Vertices[1], e.Vertices[2])
}

// New computes the plane of the triangle (a, b, c).
// The normal is the normalized cross product (a-b) × (a-c).
func New(a, b, c fixed.Point3) (Triangle, error) {
	t := Triangle{Vertices: [3]fixed.Point3{a, b, c}}

	origin := a.Vec64()
	edge1 := origin.Sub(b.Vec64())
	edge2 := origin.Sub(c.Vec64())

	normal := edge1.Cross(edge2)
	normalLength := normal.Len()
	if normalLength < minNormalLength {
		return t, &DegenerateTriangleError{Vertices: t.Vertices}
	}

	t.Normal = normal.Mul(1.0 / normalLength)
	t.Offset = -origin.Dot(t.Normal)

	return t, nil
}

// Classify tells whether the face is a floor, a ceiling or a wall for the given threshold
func (t Triangle) Classify(threshold float64) Kind {
	switch ny := t.Normal.Y(); {
	case ny > threshold:
		return Floor
	case ny < -threshold:
		return Ceiling
	}
	return Wall
}

// Winding returns the natural winding of the face as seen from above
func (t Triangle) Winding() Winding {
	if t.Normal.Y() < 0 {
		return Clockwise
	}
	return CounterClockwise
}

// ContainsXZ reports whether the grid position (x, z) lies within the projection of the
// triangle on the X-Z plane, boundaries included. The winding tells which vertex order
// makes the interior lie on the inner side of every edge.
func (t Triangle) ContainsXZ(x, z int, w Winding) bool {
	a, b, c := t.Vertices[0], t.Vertices[1], t.Vertices[2]
	if w == Clockwise {
		b, c = c, b
	}

	return insideEdge(a, b, x, z) && insideEdge(b, c, x, z) && insideEdge(c, a, x, z)
}

// insideEdge is the half-plane test of the edge from -> to, as a 2D cross product sign
func insideEdge(from, to fixed.Point3, x, z int) bool {
	ex, ez := int64(to.X)-int64(from.X), int64(to.Z)-int64(from.Z)
	px, pz := int64(x)-int64(from.X), int64(z)-int64(from.Z)

	return ex*pz-ez*px <= 0
}

// HeightAt solves the plane equation for Y at (x, z).
// It returns false for vertical faces, whose plane has no single height.
func (t Triangle) HeightAt(x, z float64) (float64, bool) {
	ny := t.Normal.Y()
	if ny == 0 || math.IsNaN(ny) {
		return 0, false
	}

	return -(t.Normal.X()*x + t.Normal.Z()*z + t.Offset) / ny, true
}
