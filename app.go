package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"mystify/internal/bench"
	"mystify/internal/frame"
	"mystify/internal/render"
	"mystify/internal/sim"
)

// app wires one process: a validated config, the process-wide random
// source, and the frame sinks chosen on the command line.
type app struct {
	cfg      sim.RunConfig
	rng      *rand.Rand
	renderer frame.Renderer
	events   frame.EventSource
	window   *Game

	// last is the final World of the most recent run, kept for -snapshot.
	last *sim.World
}

// runOnce drives world under cfg until a stop condition.
func (a *app) runOnce(cfg sim.RunConfig, world *sim.World) frame.Result {
	u := sim.NewUpdater(cfg.Mode, cfg.Workers, world)
	defer u.Close()

	opts := frame.Options{
		Duration:      time.Duration(cfg.Seconds) * time.Second,
		Renderer:      a.renderer,
		Events:        a.events,
		NoPacing:      *uncappedFlag,
		StatsInterval: statsInterval,
	}
	if a.window != nil {
		workers := u.Workers()
		opts.OnStats = func(s frame.Stats) { a.window.showStats(cfg, workers, s) }
	}
	res := frame.Run(world, u, opts)
	a.last = world
	return res
}

// single runs cfg once and reports its frame statistics.
func (a *app) single() error {
	res := a.runOnce(a.cfg, sim.NewWorld(a.cfg, a.rng))
	log.Printf("%s: %d frames in %v, avg %.3f ms/frame", a.cfg.Mode, res.Frames, res.Elapsed.Round(time.Millisecond), res.AvgMS())
	if *snapshotFlag != "" && a.last != nil {
		r := render.NewRaster(a.last.Width, a.last.Height)
		r.Render(a.last)
		if err := r.SavePNG(*snapshotFlag); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		log.Printf("Snapshot written to %s", *snapshotFlag)
	}
	return nil
}

// benchmark sweeps the policies and writes the CSV report (and chart).
func (a *app) benchmark() error {
	maxThreads := *maxThreadsFlag
	if maxThreads < 1 {
		maxThreads = runtime.GOMAXPROCS(0)
	}

	seeding := bench.NewSeeding(a.cfg.Seed, *reseedFlag, a.rng)
	if seeding.Reseed {
		log.Printf("[BENCH] fresh initial shapes per configuration")
	} else {
		log.Printf("[BENCH] seed %d shared by every configuration", seeding.Seed)
	}

	run := bench.Runner(seeding, func(cfg sim.RunConfig, world *sim.World) (float64, bool) {
		res := a.runOnce(cfg, world)
		log.Printf("[BENCH] %s threads=%d: %d frames, avg %.6f ms/frame", cfg.Mode, cfg.Workers, res.Frames, res.AvgMS())
		return res.AvgMS(), a.events != nil && a.events.QuitRequested()
	})

	results, err := bench.Run(a.cfg, maxThreads, run)
	if errors.Is(err, bench.ErrStopped) {
		log.Printf("[BENCH] stopped early; writing %d rows", len(results))
	} else if err != nil {
		return err
	}
	if err := writeFile(*outFlag, func(f *os.File) error { return bench.WriteCSV(f, results) }); err != nil {
		return err
	}
	log.Printf("[BENCH] Done: %s", *outFlag)
	if *chartFlag != "" {
		if err := writeFile(*chartFlag, func(f *os.File) error { return bench.WriteChart(f, results) }); err != nil {
			return err
		}
		log.Printf("[BENCH] Chart: %s", *chartFlag)
	}
	return nil
}

// writeFile creates path and hands it to write, reporting the first error.
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
