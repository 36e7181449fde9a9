package gapsweep

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/akmonengine/gapsweep/actor"
	"github.com/akmonengine/gapsweep/edge"
	"github.com/akmonengine/gapsweep/face"
	"github.com/akmonengine/gapsweep/fixed"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/zeebo/xxh3"
)

const DEFAULT_WORKERS = 1

// ANGLE_COUNT is the number of distinguishable angles, one per trigonometry table entry
const ANGLE_COUNT = fixed.TABLE_SIZE

// AngleResult is the outcome of one angle: its gaps and the pairs that had to be skipped
type AngleResult struct {
	Angle     fixed.Angle
	Gaps      []GapPoint
	Anomalies []Anomaly
}

// Result of a full sweep
type Result struct {
	// Gaps maps each angle that has at least one gap to its gap points, in ascending angle order
	Gaps      *orderedmap.OrderedMap[fixed.Angle, []GapPoint]
	Anomalies []Anomaly
	// Transforms counts how many times the solid was rotated
	Transforms int
}

func newResult() *Result {
	return &Result{Gaps: orderedmap.NewOrderedMap[fixed.Angle, []GapPoint]()}
}

func (r *Result) add(a AngleResult) {
	r.Transforms++
	if len(a.Gaps) > 0 {
		r.Gaps.Set(a.Angle, a.Gaps)
	}
	r.Anomalies = append(r.Anomalies, a.Anomalies...)
}

// merge appends a partial result covering later angles
func (r *Result) merge(other *Result) {
	for el := other.Gaps.Front(); el != nil; el = el.Next() {
		r.Gaps.Set(el.Key, el.Value)
	}
	r.Anomalies = append(r.Anomalies, other.Anomalies...)
	r.Transforms += other.Transforms
}

// Digest hashes the gaps and anomalies, two sweeps with identical output share a digest
func (r *Result) Digest() uint64 {
	h := xxh3.New()
	buf := make([]byte, 0, 64)

	for el := r.Gaps.Front(); el != nil; el = el.Next() {
		buf = binary.LittleEndian.AppendUint16(buf[:0], uint16(el.Key))
		for _, p := range el.Value {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(p.Edge))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(p.X)))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(int32(p.Z)))
		}
		_, _ = h.Write(buf)
	}
	for _, a := range r.Anomalies {
		buf = binary.LittleEndian.AppendUint16(buf[:0], uint16(a.Angle))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(a.Pair))
		buf = append(buf, a.Err.Error()...)
		_, _ = h.Write(buf)
	}

	return h.Sum64()
}

// Angles lists every angle a sweep evaluates: one per table entry, 0, 16, ..., 65520
func Angles() []fixed.Angle {
	angles := make([]fixed.Angle, ANGLE_COUNT)
	for i := range angles {
		angles[i] = fixed.Angle(i * fixed.BUCKET_SIZE)
	}
	return angles
}

// EvaluateAngle rotates the solid to the angle and searches every triangle pair for gaps
func EvaluateAngle(cfg Config, angle fixed.Angle) AngleResult {
	result := AngleResult{Angle: angle}

	transform := actor.RotationAbout(cfg.Axis, angle, cfg.Pivot)
	vertices := transform.Apply(cfg.Solid.Vertices)

	for pair, n := 0, cfg.Solid.Pairs(); pair < n; pair++ {
		gaps, err := evaluatePair(cfg, vertices, pair)
		if err != nil {
			result.Anomalies = append(result.Anomalies, Anomaly{Angle: angle, Pair: pair, Err: err})
			continue
		}
		result.Gaps = append(result.Gaps, gaps...)
	}

	return result
}

func evaluatePair(cfg Config, vertices []fixed.Point3, pair int) ([]GapPoint, error) {
	t1, err := face.New(cfg.Solid.Corners(vertices, 2*pair))
	if err != nil {
		return nil, err
	}
	t2, err := face.New(cfg.Solid.Corners(vertices, 2*pair+1))
	if err != nil {
		return nil, err
	}

	shared, err := edge.Recover(t1, t2, cfg.Solid.EdgeLength)
	if err != nil {
		return nil, err
	}
	floor, ceiling, err := edge.Classify(t1, t2, cfg.Params.ClassifyThreshold)
	if err != nil {
		return nil, err
	}

	return FindGaps(pair, floor, ceiling, shared, cfg.Params), nil
}

// Sweeper runs the exhaustive search over the angle domain
type Sweeper struct {
	// Workers evaluating angles in parallel
	Workers int
	Logger  *slog.Logger
	Events  Events
}

// Sweep evaluates every angle of the domain. Anomalies never stop it: they are returned with the
// gaps. It only fails when the configuration itself is invalid.
func (s *Sweeper) Sweep(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep config: %w", err)
	}

	workers := max(DEFAULT_WORKERS, s.Workers)

	partials := task(workers, Angles(), func(angles []fixed.Angle) *Result {
		partial := newResult()
		for _, angle := range angles {
			partial.add(EvaluateAngle(cfg, angle))
		}
		return partial
	})

	result := newResult()
	for _, partial := range partials {
		result.merge(partial)
	}

	s.logger().Debug("sweep finished",
		"axis", cfg.Axis,
		"angles", result.Transforms,
		"workers", workers,
		"gap_angles", result.Gaps.Len(),
		"anomalies", len(result.Anomalies),
	)

	s.Events.recordResult(result)
	s.Events.flush()

	return result, nil
}

func (s *Sweeper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// FindGapAngles sweeps the whole angle domain with a default Sweeper
func FindGapAngles(cfg Config) (*Result, error) {
	s := Sweeper{Workers: runtime.NumCPU()}
	return s.Sweep(cfg)
}
