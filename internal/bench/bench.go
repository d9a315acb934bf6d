// Package bench sweeps update policies and worker counts and reports the
// per-frame cost of each configuration relative to a sequential baseline.
package bench

import (
	"errors"
	"fmt"
	"log"

	"mystify/internal/sim"
)

// DefaultSeconds is used for each configuration when the base config is unbounded.
const DefaultSeconds = 8

// ErrStopped is returned by a RunFunc whose run was cut short by a quit
// request. The row is still recorded but the sweep ends.
var ErrStopped = errors.New("benchmark stopped")

// Result is one row of the benchmark table.
type Result struct {
	Mode       string
	Threads    int
	Shapes     int
	Points     int
	Width      int
	Height     int
	Seconds    int
	AvgMS      float64
	FPS        float64
	Speedup    float64
	Efficiency float64
}

// RunFunc executes one configuration and returns its mean frame cost in ms.
type RunFunc func(cfg sim.RunConfig) (float64, error)

// ThreadCounts returns 1, 2, 4, ... up to and including max.
func ThreadCounts(max int) []int {
	var counts []int
	for t := 1; t > 0 && t <= max; t <<= 1 {
		counts = append(counts, t)
	}
	return counts
}

// Derive fills the rate columns of a row measured at avgMS with threads workers.
func Derive(baselineMS, avgMS float64, threads int) (fps, speedup, efficiency float64) {
	if avgMS > 0 {
		fps = 1000 / avgMS
		speedup = baselineMS / avgMS
	}
	if threads > 0 {
		efficiency = speedup / float64(threads)
	}
	return fps, speedup, efficiency
}

func newResult(cfg sim.RunConfig, threads int, avgMS float64) Result {
	return Result{
		Mode:    cfg.Mode.String(),
		Threads: threads,
		Shapes:  cfg.Shapes,
		Points:  cfg.Points,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Seconds: cfg.Seconds,
		AvgMS:   avgMS,
	}
}

// Run measures a sequential baseline and then the parallel policy at every
// power-of-two worker count up to maxThreads. Rows come back in that order.
// If run fails, the rows gathered so far are returned with the error.
func Run(base sim.RunConfig, maxThreads int, run RunFunc) ([]Result, error) {
	if base.Seconds <= 0 {
		base.Seconds = DefaultSeconds
	}

	seq := base
	seq.Mode = sim.Sequential
	seq.Workers = 1
	log.Printf("[BENCH] SEQ ...")
	baseMS, err := run(seq)
	if err != nil && !errors.Is(err, ErrStopped) {
		return nil, fmt.Errorf("sequential baseline: %w", err)
	}
	row := newResult(seq, 1, baseMS)
	row.FPS, _, _ = Derive(baseMS, baseMS, 1)
	row.Speedup, row.Efficiency = 1, 1
	results := []Result{row}
	if err != nil {
		return results, err
	}

	for _, threads := range ThreadCounts(maxThreads) {
		par := base
		par.Mode = sim.Parallel
		par.Workers = threads
		log.Printf("[BENCH] PAR threads=%d ...", threads)
		ms, err := run(par)
		if err != nil && !errors.Is(err, ErrStopped) {
			return results, fmt.Errorf("parallel threads=%d: %w", threads, err)
		}
		row := newResult(par, threads, ms)
		row.FPS, row.Speedup, row.Efficiency = Derive(baseMS, ms, threads)
		results = append(results, row)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
