package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/akmonengine/gapsweep"
	"github.com/akmonengine/gapsweep/config"
	"github.com/akmonengine/gapsweep/report"
)

func main() {
	var (
		configPath = flag.String("config", "", "analysis yaml (default: embedded seesaw)")
		workers    = flag.Int("workers", 0, "parallel workers (default: from config, else one per CPU)")
		axis       = flag.String("axis", "", "rotation axis x, y or z (default: from config)")
		jsonlPath  = flag.String("jsonl", "", "write results as zstd-compressed json lines to this path (optional)")
		dbPath     = flag.String("db", "", "record results in this sqlite index (optional)")
		verbose    = flag.Bool("v", false, "log every anomaly")
	)
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "unexpected arguments:", flag.Args())
		flag.Usage()
		os.Exit(2)
	}
	if *workers < 0 {
		fmt.Fprintln(os.Stderr, "-workers must not be negative")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	file := config.Default()
	label := "seesaw"
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load config:", err)
			os.Exit(1)
		}
		file = f
		label = filepath.Base(*configPath)
	}
	if *axis != "" {
		file.Axis = *axis
	}
	if *workers > 0 {
		file.Workers = *workers
	}

	cfg, err := file.SweepConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	sweeper := &gapsweep.Sweeper{
		Workers: file.WorkerCount(),
		Logger:  logger,
		Events:  gapsweep.NewEvents(),
	}
	logAnomaly := func(event gapsweep.Event) {
		anomaly := event.(gapsweep.Anomaly)
		logger.Debug("pair skipped", "angle", anomaly.Angle, "pair", anomaly.Pair, "err", anomaly.Err)
	}
	sweeper.Events.Subscribe(gapsweep.TOPOLOGY_ANOMALY, logAnomaly)
	sweeper.Events.Subscribe(gapsweep.DEGENERATE_TRIANGLE, logAnomaly)

	result, err := sweeper.Sweep(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sweep:", err)
		os.Exit(1)
	}

	if err := report.WriteText(os.Stdout, result); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}

	if *jsonlPath != "" {
		if err := report.WriteJSONLZstd(*jsonlPath, result); err != nil {
			fmt.Fprintln(os.Stderr, "write jsonl:", err)
			os.Exit(1)
		}
		logger.Info("jsonl written", "path", *jsonlPath)
	}

	if *dbPath != "" {
		index, err := report.OpenSQLite(*dbPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open db:", err)
			os.Exit(1)
		}
		id, err := index.RecordSweep(context.Background(), label, result)
		_ = index.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, "record sweep:", err)
			os.Exit(1)
		}
		logger.Info("sweep recorded", "path", *dbPath, "sweep_id", id)
	}
}
