package report

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/akmonengine/gapsweep"
	"github.com/klauspost/compress/zstd"
)

// Record is one JSON line of an export
type Record struct {
	Kind  string `json:"kind"`
	Angle uint16 `json:"angle"`
	// gap records
	Points []Point `json:"points,omitempty"`
	// anomaly records
	Pair    *int   `json:"pair,omitempty"`
	Anomaly string `json:"anomaly,omitempty"`
}

type Point struct {
	Edge int `json:"edge"`
	X    int `json:"x"`
	Z    int `json:"z"`
}

const (
	KindGap     = "gap"
	KindAnomaly = "anomaly"
)

// Records flattens a result: gap angles first, then anomalies, both by angle
func Records(result *gapsweep.Result) []Record {
	records := make([]Record, 0, result.Gaps.Len()+len(result.Anomalies))
	for el := result.Gaps.Front(); el != nil; el = el.Next() {
		points := make([]Point, len(el.Value))
		for i, p := range el.Value {
			points[i] = Point{Edge: p.Edge, X: p.X, Z: p.Z}
		}
		records = append(records, Record{Kind: KindGap, Angle: uint16(el.Key), Points: points})
	}
	for _, a := range result.Anomalies {
		pair := a.Pair
		records = append(records, Record{Kind: KindAnomaly, Angle: uint16(a.Angle), Pair: &pair, Anomaly: a.Err.Error()})
	}
	return records
}

// WriteJSONLZstd exports the result as zstd-compressed JSON lines
func WriteJSONLZstd(path string, result *gapsweep.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return err
	}
	w := bufio.NewWriter(enc)

	if err := writeRecords(w, Records(result)); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeRecords(w *bufio.Writer, records []Record) error {
	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// ReadJSONLZstd reads back an export
func ReadJSONLZstd(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var records []Record
	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var r Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, scanner.Err()
}
