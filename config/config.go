// Package config loads sweep definitions from YAML analysis files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/akmonengine/gapsweep"
	"github.com/akmonengine/gapsweep/actor"
	"github.com/akmonengine/gapsweep/fixed"
	"gopkg.in/yaml.v3"
)

//go:embed seesaw.yaml
var seesawYAML []byte

type File struct {
	Solid SolidFile `yaml:"solid"`
	Pivot []int     `yaml:"pivot"`
	Axis  string    `yaml:"axis"`

	ClassifyThreshold float64 `yaml:"classify_threshold"`
	GapTolerance      float64 `yaml:"gap_tolerance"`
	GapFilter         *bool   `yaml:"gap_filter"`
	SearchMargin      *int    `yaml:"search_margin"`

	// Workers evaluating angles, 0 for one per CPU
	Workers int `yaml:"workers"`
}

type SolidFile struct {
	EdgeLength int     `yaml:"edge_length"`
	Vertices   [][]int `yaml:"vertices"`
	Triangles  [][]int `yaml:"triangles"`
}

// Load reads an analysis file
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Parse(raw)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Default returns the embedded seesaw analysis
func Default() File {
	f, err := Parse(seesawYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded seesaw.yaml: %v", err))
	}
	return f
}

func Parse(raw []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return f, err
	}
	return f, nil
}

// ParseAxis maps "x", "y" or "z" to a rotation axis; empty means X
func ParseAxis(s string) (actor.Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "x":
		return actor.AxisX, nil
	case "y":
		return actor.AxisY, nil
	case "z":
		return actor.AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// SweepConfig converts the file into a sweep configuration.
// Missing emulation parameters take the engine's defaults.
func (f File) SweepConfig() (gapsweep.Config, error) {
	cfg := gapsweep.Config{Params: gapsweep.DefaultParams()}

	for i, v := range f.Solid.Vertices {
		p, err := point(v)
		if err != nil {
			return cfg, fmt.Errorf("vertex %d: %w", i, err)
		}
		cfg.Solid.Vertices = append(cfg.Solid.Vertices, p)
	}
	for i, tri := range f.Solid.Triangles {
		if len(tri) != 3 {
			return cfg, fmt.Errorf("triangle %d: want 3 vertex indices, got %d", i, len(tri))
		}
		cfg.Solid.Triangles = append(cfg.Solid.Triangles, [3]int{tri[0], tri[1], tri[2]})
	}
	cfg.Solid.EdgeLength = f.Solid.EdgeLength

	pivot, err := point(f.Pivot)
	if err != nil {
		return cfg, fmt.Errorf("pivot: %w", err)
	}
	cfg.Pivot = pivot

	if cfg.Axis, err = ParseAxis(f.Axis); err != nil {
		return cfg, err
	}

	if f.ClassifyThreshold != 0 {
		cfg.Params.ClassifyThreshold = f.ClassifyThreshold
	}
	if f.GapTolerance != 0 {
		cfg.Params.GapTolerance = f.GapTolerance
	}
	if f.GapFilter != nil {
		cfg.Params.GapFilter = *f.GapFilter
	}
	if f.SearchMargin != nil {
		cfg.Params.SearchMargin = *f.SearchMargin
	}

	return cfg, cfg.Validate()
}

// WorkerCount resolves the configured number of workers
func (f File) WorkerCount() int {
	if f.Workers <= 0 {
		return runtime.NumCPU()
	}
	return f.Workers
}

func point(v []int) (fixed.Point3, error) {
	if len(v) != 3 {
		return fixed.Point3{}, fmt.Errorf("want 3 coordinates, got %d", len(v))
	}
	for _, c := range v {
		if c < -32768 || c > 32767 {
			return fixed.Point3{}, fmt.Errorf("coordinate %d outside the 16-bit range", c)
		}
	}
	return fixed.Point3{X: int16(v[0]), Y: int16(v[1]), Z: int16(v[2])}, nil
}
