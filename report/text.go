// Package report writes sweep results for people and tools: plain text, zstd-compressed
// JSON lines and a SQLite index.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/akmonengine/gapsweep"
	"github.com/samber/lo"
)

// WriteText prints one line per angle with gaps, then a summary line
func WriteText(w io.Writer, result *gapsweep.Result) error {
	for el := result.Gaps.Front(); el != nil; el = el.Next() {
		edges := lo.Uniq(lo.Map(el.Value, func(p gapsweep.GapPoint, _ int) int { return p.Edge }))
		points := lo.Map(el.Value, func(p gapsweep.GapPoint, _ int) string {
			return fmt.Sprintf("(%d, %d)", p.X, p.Z)
		})

		_, err := fmt.Fprintf(w, "Angle %d has gaps at edge(s) %s: %s\n",
			el.Key, joinInts(edges), strings.Join(points, " "))
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Finished: %d angles, %d with gaps, %d anomalies, digest %016x\n",
		result.Transforms, result.Gaps.Len(), len(result.Anomalies), result.Digest())
	return err
}

func joinInts(values []int) string {
	return strings.Join(lo.Map(values, func(v int, _ int) string { return fmt.Sprint(v) }), ", ")
}
