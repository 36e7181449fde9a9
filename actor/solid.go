package actor

import (
	"fmt"

	"github.com/akmonengine/gapsweep/fixed"
)

// Solid is a static hitbox: base vertices and the triangles built from them.
// Triangles come in pairs, 2k and 2k+1 meeting at one shared edge.
type Solid struct {
	Vertices  []fixed.Point3
	Triangles [][3]int
	// EdgeLength is the extent along X of every shared edge
	EdgeLength int
}

// Pairs returns the number of triangle pairs
func (s Solid) Pairs() int {
	return len(s.Triangles) / 2
}

// Validate checks the structural invariants a sweep relies on
func (s Solid) Validate() error {
	if len(s.Vertices) == 0 {
		return fmt.Errorf("solid has no vertices")
	}
	if len(s.Triangles) == 0 || len(s.Triangles)%2 != 0 {
		return fmt.Errorf("solid needs an even, non-zero triangle count, got %d", len(s.Triangles))
	}
	if s.EdgeLength <= 0 {
		return fmt.Errorf("invalid edge length: %d", s.EdgeLength)
	}

	for i, tri := range s.Triangles {
		for _, index := range tri {
			if index < 0 || index >= len(s.Vertices) {
				return fmt.Errorf("triangle %d: vertex index %d out of range [0, %d)", i, index, len(s.Vertices))
			}
		}
	}

	return nil
}

// Corners returns the three vertices of triangle i taken from vertices
func (s Solid) Corners(vertices []fixed.Point3, i int) (a, b, c fixed.Point3) {
	tri := s.Triangles[i]
	return vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]
}
