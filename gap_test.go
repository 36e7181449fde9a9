package gapsweep

import (
	"testing"

	"github.com/akmonengine/gapsweep/edge"
	"github.com/akmonengine/gapsweep/face"
	"github.com/akmonengine/gapsweep/fixed"
)

func createTriangle(t *testing.T, a, b, c fixed.Point3) face.Triangle {
	t.Helper()
	tri, err := face.New(a, b, c)
	if err != nil {
		t.Fatalf("face.New(%v, %v, %v): %v", a, b, c, err)
	}
	return tri
}

// createSlab returns a floor at y=0 and a ceiling at the given height sharing the
// projection (0,0) (0,10) (10,0) on the X-Z plane
func createSlab(t *testing.T, height int16) (face.Triangle, face.Triangle) {
	floor := createTriangle(t, fixed.Point3{X: 0, Y: 0, Z: 0}, fixed.Point3{X: 0, Y: 0, Z: 10}, fixed.Point3{X: 10, Y: 0, Z: 0})
	ceiling := createTriangle(t, fixed.Point3{X: 0, Y: height, Z: 0}, fixed.Point3{X: 10, Y: height, Z: 0}, fixed.Point3{X: 0, Y: height, Z: 10})
	return floor, ceiling
}

func TestFindGaps(t *testing.T) {
	shared := edge.Shared{XLow: 0, XHigh: 4, Z: 0}

	tests := []struct {
		name     string
		height   int16
		filter   bool
		expected int
	}{
		{"ceiling well above floor", 5, true, 21},
		{"separation equal to tolerance", 2, true, 0},
		{"separation below tolerance", 1, true, 0},
		{"filter disabled", 1, false, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			floor, ceiling := createSlab(t, tt.height)
			params := DefaultParams()
			params.GapFilter = tt.filter

			gaps := FindGaps(3, floor, ceiling, shared, params)
			if len(gaps) != tt.expected {
				t.Fatalf("len(gaps) = %d, want %d: %v", len(gaps), tt.expected, gaps)
			}

			for _, g := range gaps {
				if g.Edge != 3 {
					t.Errorf("gap %v has edge %d, want 3", g, g.Edge)
				}
				if g.X < 0 || g.X > 6 || g.Z < 0 || g.Z > 2 {
					t.Errorf("gap %v outside the scanned overlap", g)
				}
			}
		})
	}
}

func TestFindGapsOrder(t *testing.T) {
	floor, ceiling := createSlab(t, 5)
	gaps := FindGaps(0, floor, ceiling, edge.Shared{XLow: 0, XHigh: 4, Z: 0}, DefaultParams())

	if len(gaps) == 0 {
		t.Fatal("expected gaps")
	}
	if gaps[0] != (GapPoint{Edge: 0, X: 0, Z: 0}) {
		t.Errorf("first gap = %v, want {0 0 0}", gaps[0])
	}
	for i := 1; i < len(gaps); i++ {
		prev, cur := gaps[i-1], gaps[i]
		if cur.X < prev.X || (cur.X == prev.X && cur.Z <= prev.Z) {
			t.Errorf("gaps not ordered by x then z: %v before %v", prev, cur)
		}
	}
}

func TestFindGapsMargin(t *testing.T) {
	floor, ceiling := createSlab(t, 5)
	params := DefaultParams()
	params.SearchMargin = 0

	// Only the edge row itself: x in [0, 4], z = 0
	gaps := FindGaps(0, floor, ceiling, edge.Shared{XLow: 0, XHigh: 4, Z: 0}, params)
	if len(gaps) != 5 {
		t.Errorf("len(gaps) = %d, want 5", len(gaps))
	}
}

func TestFindGapsCeilingBelowFloor(t *testing.T) {
	// A ceiling under the floor never opens a gap
	floor := createTriangle(t, fixed.Point3{X: 0, Y: 10, Z: 0}, fixed.Point3{X: 0, Y: 10, Z: 10}, fixed.Point3{X: 10, Y: 10, Z: 0})
	ceiling := createTriangle(t, fixed.Point3{X: 0, Y: 0, Z: 0}, fixed.Point3{X: 10, Y: 0, Z: 0}, fixed.Point3{X: 0, Y: 0, Z: 10})

	gaps := FindGaps(0, floor, ceiling, edge.Shared{XLow: 0, XHigh: 10, Z: 0}, DefaultParams())
	if len(gaps) != 0 {
		t.Errorf("len(gaps) = %d, want 0", len(gaps))
	}
}
