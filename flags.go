package main

import "flag"

// Command-line flags for the simulation, the benchmark sweep and the
// optional outputs.
var (
	// shapesFlag sets how many shapes bounce around (1..50000).
	shapesFlag = flag.Int("shapes", defaultShapes, "number of shapes (1..50000)")

	// pointsFlag sets the vertex count of every shape (3..128).
	pointsFlag = flag.Int("points", defaultPoints, "points per shape (3..128)")

	widthFlag  = flag.Int("w", defaultWidth, "window width (>= 320)")
	heightFlag = flag.Int("h", defaultHeight, "window height (>= 240)")

	// secsFlag bounds each run; 0 runs until quit.
	secsFlag = flag.Int("secs", defaultSecs, "seconds to run (0 = until quit; benchmark default 8)")

	// modeFlag selects the update policy for a single run.
	modeFlag = flag.String("mode", defaultMode, "update mode: seq|par|gpu (gpu needs -tags opencl)")

	// workersFlag sets the worker count for -mode par.
	workersFlag = flag.Int("workers", 0, "parallel workers (0 = all CPUs)")

	// benchFlag runs the sequential baseline plus the parallel sweep and writes a CSV.
	benchFlag = flag.Bool("bench", false, "benchmark seq and par over 1,2,4,... threads")

	// maxThreadsFlag caps the parallel sweep.
	maxThreadsFlag = flag.Int("max-threads", 0, "largest thread count tried by -bench (0 = GOMAXPROCS)")

	// seedFlag fixes the initial conditions.
	seedFlag = flag.Int64("seed", 0, "random seed (0 = time based)")

	// reseedFlag gives every benchmark configuration fresh random shapes
	// instead of one shared seed.
	reseedFlag = flag.Bool("reseed", false, "draw new initial shapes for every benchmark configuration")

	// uncappedFlag skips the 60 Hz pacing sleep.
	uncappedFlag = flag.Bool("uncapped", false, "do not sleep to cap the frame rate at 60 Hz")

	outFlag   = flag.String("out", defaultCSVPath, "benchmark CSV output path")
	chartFlag = flag.String("chart", "", "also write an HTML chart of the benchmark to this path")

	// rendererFlag chooses where frames go.
	rendererFlag = flag.String("renderer", defaultRenderer, "frame output: window|terminal|raster|none")

	// snapshotFlag writes the final frame of a single run as PNG.
	snapshotFlag = flag.String("snapshot", "", "write the last frame to this PNG file")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")
)
