package gapsweep

import (
	"fmt"
	"math"

	"github.com/akmonengine/gapsweep/actor"
	"github.com/akmonengine/gapsweep/face"
	"github.com/akmonengine/gapsweep/fixed"
)

const (
	// GAP_TOLERANCE is the vertical separation, in world units, a gap must exceed
	GAP_TOLERANCE = 2.0
	// SEARCH_MARGIN is how far around a shared edge grid points are scanned
	SEARCH_MARGIN = 2
)

// Params are the emulation parameters of the engine under analysis
type Params struct {
	// ClassifyThreshold is the |NormalY| a face needs to be a floor or a ceiling
	ClassifyThreshold float64
	// GapTolerance is the minimum ceilingY - floorY reported as a gap
	GapTolerance float64
	// GapFilter disables the tolerance check when false: every grid point inside both
	// projections is reported
	GapFilter    bool
	SearchMargin int
}

// DefaultParams returns the engine's values
func DefaultParams() Params {
	return Params{
		ClassifyThreshold: face.FLOOR_THRESHOLD,
		GapTolerance:      GAP_TOLERANCE,
		GapFilter:         true,
		SearchMargin:      SEARCH_MARGIN,
	}
}

// Config is everything one sweep depends on. It is never modified by a sweep.
type Config struct {
	Solid  actor.Solid
	Pivot  fixed.Point3
	Axis   actor.Axis
	Params Params
}

func (c Config) Validate() error {
	if err := c.Solid.Validate(); err != nil {
		return err
	}
	if c.Axis < actor.AxisX || c.Axis > actor.AxisZ {
		return fmt.Errorf("invalid rotation axis: %d", c.Axis)
	}
	if math.IsNaN(c.Params.ClassifyThreshold) || c.Params.ClassifyThreshold <= 0 {
		return fmt.Errorf("classify threshold must be positive, got %v", c.Params.ClassifyThreshold)
	}
	if math.IsNaN(c.Params.GapTolerance) || math.IsInf(c.Params.GapTolerance, 0) || c.Params.GapTolerance < 0 {
		return fmt.Errorf("gap tolerance must be a finite non-negative distance, got %v", c.Params.GapTolerance)
	}
	if c.Params.SearchMargin < 0 {
		return fmt.Errorf("search margin must not be negative, got %d", c.Params.SearchMargin)
	}

	return nil
}

// SeeSaw is the hitbox the tool was written for, rotating about X at its world position
func SeeSaw() Config {
	return Config{
		Solid: actor.Solid{
			Vertices: []fixed.Point3{
				{X: -511, Y: 179, Z: 307}, {X: 512, Y: 179, Z: 307}, {X: 512, Y: 179, Z: -306}, {X: 512, Y: 26, Z: -306},
				{X: 512, Y: 26, Z: 307}, {X: -511, Y: 26, Z: 307}, {X: -511, Y: 26, Z: -306}, {X: -511, Y: 179, Z: -306},
			},
			// Top and bottom faces, each paired with the side face sharing one of their long edges
			Triangles: [][3]int{
				{0, 1, 2}, {0, 5, 1},
				{0, 2, 7}, {2, 3, 7},
				{4, 5, 6}, {1, 5, 4},
				{4, 6, 3}, {3, 6, 7},
			},
			EdgeLength: 1023,
		},
		Pivot:  fixed.Point3{X: 4454, Y: -2226, Z: 266},
		Axis:   actor.AxisX,
		Params: DefaultParams(),
	}
}
