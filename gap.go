package gapsweep

import (
	"github.com/akmonengine/gapsweep/edge"
	"github.com/akmonengine/gapsweep/face"
)

// GapPoint is a grid position where the ceiling of a pair lies above its floor by more than
// the tolerance. Edge is the index k of the pair made of triangles 2k and 2k+1.
type GapPoint struct {
	Edge int
	X, Z int
}

// FindGaps scans the grid around the shared edge of a classified pair
func FindGaps(pair int, floor, ceiling face.Triangle, shared edge.Shared, params Params) []GapPoint {
	var gaps []GapPoint
	margin := params.SearchMargin

	for x := shared.XLow - margin; x <= shared.XHigh+margin; x++ {
		for z := shared.Z - margin; z <= shared.Z+margin; z++ {
			if !floor.ContainsXZ(x, z, face.CounterClockwise) {
				continue
			}
			if !ceiling.ContainsXZ(x, z, face.Clockwise) {
				continue
			}

			if params.GapFilter {
				floorY, okFloor := floor.HeightAt(float64(x), float64(z))
				ceilingY, okCeiling := ceiling.HeightAt(float64(x), float64(z))
				if !okFloor || !okCeiling || ceilingY-floorY <= params.GapTolerance {
					continue
				}
			}

			gaps = append(gaps, GapPoint{Edge: pair, X: x, Z: z})
		}
	}

	return gaps
}
