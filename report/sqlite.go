package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/akmonengine/gapsweep"
)

// SQLiteIndex keeps the results of many sweeps in one database, one row per gap point
type SQLiteIndex struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteIndex{db: db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA foreign_keys=ON;",
		`CREATE TABLE IF NOT EXISTS sweeps (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			digest TEXT NOT NULL,
			angles INTEGER NOT NULL,
			gap_angles INTEGER NOT NULL,
			anomalies INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS gaps (
			sweep_id INTEGER NOT NULL REFERENCES sweeps(id),
			angle INTEGER NOT NULL,
			edge INTEGER NOT NULL,
			x INTEGER NOT NULL,
			z INTEGER NOT NULL,
			PRIMARY KEY (sweep_id, angle, edge, x, z)
		);`,
		`CREATE TABLE IF NOT EXISTS anomalies (
			sweep_id INTEGER NOT NULL REFERENCES sweeps(id),
			seq INTEGER NOT NULL,
			angle INTEGER NOT NULL,
			pair INTEGER NOT NULL,
			kind TEXT NOT NULL,
			message TEXT NOT NULL,
			PRIMARY KEY (sweep_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_gaps_angle ON gaps(angle);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

// RecordSweep stores a result in one transaction and returns the new sweep id
func (s *SQLiteIndex) RecordSweep(ctx context.Context, label string, result *gapsweep.Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sweeps(label, digest, angles, gap_angles, anomalies, recorded_at) VALUES(?,?,?,?,?,?)`,
		label, fmt.Sprintf("%016x", result.Digest()), result.Transforms, result.Gaps.Len(), len(result.Anomalies),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	gapStmt, err := tx.PrepareContext(ctx, `INSERT INTO gaps(sweep_id, angle, edge, x, z) VALUES(?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer gapStmt.Close()
	for el := result.Gaps.Front(); el != nil; el = el.Next() {
		for _, p := range el.Value {
			if _, err := gapStmt.ExecContext(ctx, id, int(el.Key), p.Edge, p.X, p.Z); err != nil {
				return 0, err
			}
		}
	}

	anomalyStmt, err := tx.PrepareContext(ctx, `INSERT INTO anomalies(sweep_id, seq, angle, pair, kind, message) VALUES(?,?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer anomalyStmt.Close()
	for seq, a := range result.Anomalies {
		kind := "topology"
		if a.Degenerate() {
			kind = "degenerate"
		}
		if _, err := anomalyStmt.ExecContext(ctx, id, seq, int(a.Angle), a.Pair, kind, a.Err.Error()); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GapAngles lists the distinct angles with gaps recorded for a sweep
func (s *SQLiteIndex) GapAngles(ctx context.Context, sweepID int64) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT angle FROM gaps WHERE sweep_id=? ORDER BY angle`, sweepID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var angles []int
	for rows.Next() {
		var angle int
		if err := rows.Scan(&angle); err != nil {
			return nil, err
		}
		angles = append(angles, angle)
	}
	return angles, rows.Err()
}
