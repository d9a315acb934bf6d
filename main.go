package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"mystify/internal/frame"
	"mystify/internal/render"
	"mystify/internal/sim"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nExamples:\n"+
			"  %[1]s -shapes 200 -points 6 -mode seq\n"+
			"  %[1]s -shapes 200 -points 6 -mode par -workers 4\n"+
			"  %[1]s -bench -secs 10 -shapes 600 -w 1280 -h 720 -chart bench.html\n", os.Args[0])
	}
	flag.Parse()
	os.Exit(run())
}

// configFromFlags builds and validates the RunConfig.
func configFromFlags() (sim.RunConfig, error) {
	mode, err := sim.ParsePolicy(*modeFlag)
	if err != nil {
		return sim.RunConfig{}, err
	}
	cfg := sim.RunConfig{
		Shapes:  *shapesFlag,
		Points:  *pointsFlag,
		Width:   *widthFlag,
		Height:  *heightFlag,
		Seconds: *secsFlag,
		Mode:    mode,
		Bench:   *benchFlag,
		Workers: *workersFlag,
		Seed:    *seedFlag,
	}
	if err := cfg.Validate(); err != nil {
		return sim.RunConfig{}, err
	}
	switch *rendererFlag {
	case rendererWindow, rendererTerminal, rendererRaster, rendererNone:
	default:
		return sim.RunConfig{}, fmt.Errorf("renderer must be window|terminal|raster|none, got %q: %w", *rendererFlag, sim.ErrInvalidConfig)
	}
	return cfg, nil
}

func run() int {
	cfg, err := configFromFlags()
	if err != nil {
		log.Printf("[ERR] %v", err)
		return exitInvalidConfig
	}

	if *cpuProfileFlag != "" {
		prof, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			log.Printf("[ERR] cpu profile: %v", err)
			return exitFailure
		}
		defer prof.Stop()
	}

	var signals frame.QuitFlag
	stopSignals := signals.NotifySignals()
	defer stopSignals()

	a := &app{
		cfg:      cfg,
		rng:      sim.NewRand(cfg.Seed),
		renderer: render.Nop{},
		events:   &signals,
	}
	body := a.single
	if cfg.Bench {
		body = a.benchmark
	}

	switch *rendererFlag {
	case rendererTerminal:
		term, err := render.NewTerminal()
		if err != nil {
			log.Printf("[WARN] terminal unavailable (%v); running headless", err)
			break
		}
		defer term.Close()
		a.renderer = term
		a.events = frame.AnyQuit(&signals, term)
	case rendererRaster:
		a.renderer = render.NewRaster(cfg.Width, cfg.Height)
	case rendererWindow:
		a.window = newGame(cfg.Width, cfg.Height)
		frames := frame.NewSwitch(a.window)
		a.renderer = frames
		a.events = frame.AnyQuit(&signals, a.window)
		var bodyErr error
		runWindow(a.window, frames, func() { bodyErr = body() })
		return exitCode(bodyErr)
	}
	return exitCode(body())
}

func exitCode(err error) int {
	if err != nil {
		log.Printf("[ERR] %v", err)
		return exitFailure
	}
	return exitOK
}
