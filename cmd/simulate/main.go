package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"mindseye.ai/internal/field"
	"mindseye.ai/internal/recog"
	"mindseye.ai/internal/scenario"
	"mindseye.ai/internal/scene"
	"mindseye.ai/internal/trace"
	"mindseye.ai/internal/tuning"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "path to scenario .json")
		timingPath   = flag.String("timing", "./configs/timing.yaml", "timing config")
		schemaDir    = flag.String("schemas", "./schemas", "schema directory")
		traceDir     = flag.String("trace", "", "trace output dir (optional)")
		projectAt    = flag.Int64("project_at", -1, "project the field at this instant (default: final clock)")
		ghosts       = flag.Bool("ghosts", false, "include ghost objects in the projection")
	)
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "missing -scenario")
		os.Exit(2)
	}

	timing, err := tuning.Load(*timingPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load timing:", err)
		os.Exit(1)
	}
	if err := timing.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	doc, err := scenario.Load(*scenarioPath, filepath.Join(*schemaDir, "scenario.schema.json"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load scenario:", err)
		os.Exit(1)
	}
	src, err := doc.BuildScene()
	if err != nil {
		fmt.Fprintln(os.Stderr, "build scene:", err)
		os.Exit(1)
	}

	cfg := field.ConfigFromTiming(timing)
	var writer *trace.JSONLZstdWriter
	if *traceDir != "" {
		writer = trace.NewJSONLZstdWriter(*traceDir, "field")
		defer func() {
			if err := writer.Close(); err != nil {
				fmt.Fprintln(os.Stderr, "close trace:", err)
			}
		}()
		cfg.Trace = writer
	}

	stm := &recog.RecordingSTM{}
	f, err := field.Construct(src, doc.Oracle(), doc.Policy(), stm, cfg, doc.StartTime)
	if err != nil {
		fmt.Fprintln(os.Stderr, "construct:", err)
		os.Exit(1)
	}

	fmt.Printf("scenario %q: constructed %dx%d field, clock=%d, stm=%d chunks\n",
		doc.Name, f.Width(), f.Height(), f.AttentionClock(), len(stm.Chunks))

	for _, tb := range doc.Batches() {
		if err := f.MoveObjects(tb.Batch, tb.At); err != nil {
			fmt.Fprintf(os.Stderr, "move batch at %d: %v\n", tb.At, err)
			os.Exit(1)
		}
		fmt.Printf("move batch at %d applied, clock=%d\n", tb.At, f.AttentionClock())
	}

	at := *projectAt
	if at < 0 {
		at = f.AttentionClock()
	}
	printScene(f.AsScene(at, *ghosts), at)
}

// printScene draws the projection north row first, mirroring scenario files.
func printScene(sc *scene.Scene, at int64) {
	fmt.Printf("projection at %d:\n", at)
	for row := sc.Height() - 1; row >= 0; row-- {
		line := make([]byte, 0, sc.Width())
		for col := 0; col < sc.Width(); col++ {
			switch {
			case sc.IsBlind(col, row):
				line = append(line, '*')
			case sc.IsEmpty(col, row):
				line = append(line, '.')
			default:
				items := sc.Items(col, row)
				it := items[len(items)-1]
				if it.Creator() {
					line = append(line, '@')
				} else {
					line = append(line, it.Class[0])
				}
			}
		}
		fmt.Printf("  %s\n", line)
	}
}
