package edge

import (
	"fmt"

	"github.com/akmonengine/gapsweep/face"
	"github.com/akmonengine/gapsweep/fixed"
)

// Reason identifies which pairing invariant an edge pair broke
type Reason uint8

const (
	NoCommonX Reason = iota + 1
	NoCommonZ
	LengthMismatch
	ZMismatch
	NoFloor
	NoCeiling
)

func (r Reason) String() string {
	switch r {
	case NoCommonX:
		return "no two vertices share an X coordinate"
	case NoCommonZ:
		return "no two vertices share a Z coordinate"
	case LengthMismatch:
		return "common X values are not one edge length apart"
	case ZMismatch:
		return "common Z values differ"
	case NoFloor:
		return "no floor triangle in pair"
	case NoCeiling:
		return "no ceiling triangle in pair"
	}
	return "unknown"
}

// TopologyError reports a triangle pair that does not meet at the expected edge
type TopologyError struct {
	Reason Reason
	Detail string
}

func (e *TopologyError) Error() string {
	if e.Detail == "" {
		return "topology anomaly: " + e.Reason.String()
	}
	return fmt.Sprintf("topology anomaly: %s (%s)", e.Reason, e.Detail)
}

// Shared is the edge two triangles meet at, spanning XLow..XHigh at a constant Z
type Shared struct {
	XLow, XHigh int
	Z           int
}

// commonValue returns the coordinate shared by at least two of the three values
func commonValue(a, b, c int16) (int16, bool) {
	switch {
	case a == b || a == c:
		return a, true
	case b == c:
		return b, true
	}
	return 0, false
}

func commonXZ(t face.Triangle) (x, z int16, err error) {
	v := t.Vertices
	x, ok := commonValue(v[0].X, v[1].X, v[2].X)
	if !ok {
		return 0, 0, &TopologyError{Reason: NoCommonX, Detail: formatVertices(v)}
	}
	z, ok = commonValue(v[0].Z, v[1].Z, v[2].Z)
	if !ok {
		return 0, 0, &TopologyError{Reason: NoCommonZ, Detail: formatVertices(v)}
	}
	return x, z, nil
}

func formatVertices(v [3]fixed.Point3) string {
	return fmt.Sprintf("%v %v %v", v[0], v[1], v[2])
}

// Recover finds the edge shared by a triangle pair.
// The common X of both triangles must be exactly edgeLength apart and their common Z equal.
func Recover(t1, t2 face.Triangle, edgeLength int) (Shared, error) {
	x1, z1, err := commonXZ(t1)
	if err != nil {
		return Shared{}, err
	}
	x2, z2, err := commonXZ(t2)
	if err != nil {
		return Shared{}, err
	}

	low, high := int(x1), int(x2)
	if low > high {
		low, high = high, low
	}
	if high-low != edgeLength {
		return Shared{}, &TopologyError{
			Reason: LengthMismatch,
			Detail: fmt.Sprintf("x %d and %d, edge length %d", x1, x2, edgeLength),
		}
	}
	if z1 != z2 {
		return Shared{}, &TopologyError{Reason: ZMismatch, Detail: fmt.Sprintf("z %d and %d", z1, z2)}
	}

	return Shared{XLow: low, XHigh: high, Z: int(z1)}, nil
}

// Classify splits a pair into its floor and ceiling by the sign of the normals' Y component
func Classify(t1, t2 face.Triangle, threshold float64) (floor, ceiling face.Triangle, err error) {
	k1, k2 := t1.Classify(threshold), t2.Classify(threshold)

	switch {
	case k1 == face.Floor && k2 == face.Ceiling:
		return t1, t2, nil
	case k1 == face.Ceiling && k2 == face.Floor:
		return t2, t1, nil
	case k1 != face.Floor && k2 != face.Floor:
		err = &TopologyError{Reason: NoFloor, Detail: fmt.Sprintf("%v and %v", k1, k2)}
	default:
		err = &TopologyError{Reason: NoCeiling, Detail: fmt.Sprintf("%v and %v", k1, k2)}
	}

	return floor, ceiling, err
}
