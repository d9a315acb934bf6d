package main

import "time"

// Defaults for the command line and the window frontend.
const (
	defaultWidth      = 800
	defaultHeight     = 600
	defaultShapes     = 5
	defaultPoints     = 6
	defaultSecs       = 0 // 0 runs until the window is closed
	defaultMode       = "par"
	defaultRenderer   = rendererWindow
	defaultCSVPath    = "bench.csv"
	windowTitle       = "Mystify"
	statsInterval     = 500 * time.Millisecond
	lineWidth         = 1
	exitOK            = 0
	exitFailure       = 1
	exitInvalidConfig = 2
)

// Renderer names accepted by -renderer.
const (
	rendererWindow   = "window"
	rendererTerminal = "terminal"
	rendererRaster   = "raster"
	rendererNone     = "none"
)
