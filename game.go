package main

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"mystify/internal/frame"
	"mystify/internal/render"
	"mystify/internal/sim"
)

// Game is the ebiten frontend. The frame driver runs on its own goroutine
// and hands each finished tick to Render, which copies it; Draw only ever
// reads that copy, so the window never shows a half-updated World.
type Game struct {
	width, height int

	mu       sync.Mutex
	snapshot *sim.World
	title    string

	quit     atomic.Bool
	finished atomic.Bool

	shownTitle string
}

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// newGame constructs a window frontend of the given logical size.
func newGame(width, height int) *Game {
	return &Game{
		width:    width,
		height:   height,
		snapshot: &sim.World{},
		title:    windowTitle,
	}
}

// Render publishes a copy of w for the next Draw.
func (g *Game) Render(w *sim.World) {
	g.mu.Lock()
	w.CopyInto(g.snapshot)
	g.mu.Unlock()
}

// QuitRequested reports whether the user pressed a key, clicked, or closed
// the window.
func (g *Game) QuitRequested() bool { return g.quit.Load() }

// finish makes the next Update end the ebiten loop.
func (g *Game) finish() { g.finished.Store(true) }

// showStats refreshes the window title with the latest frame rate.
func (g *Game) showStats(cfg sim.RunConfig, workers int, s frame.Stats) {
	mode := cfg.Mode.String()
	if cfg.Mode == sim.Parallel {
		mode = fmt.Sprintf("%s x%d", mode, workers)
	}
	title := fmt.Sprintf("%s | %s | %d shapes x %d pts | FPS: %.1f",
		windowTitle, mode, cfg.Shapes, cfg.Points, s.FPS)
	g.mu.Lock()
	g.title = title
	g.mu.Unlock()
}

// Update polls input and ends the loop once the driver is done.
func (g *Game) Update() error {
	if g.finished.Load() {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() || len(inpututil.AppendJustPressedKeys(nil)) > 0 {
		g.quit.Store(true)
	}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			g.quit.Store(true)
		}
	}

	g.mu.Lock()
	title := g.title
	g.mu.Unlock()
	if title != g.shownTitle {
		ebiten.SetWindowTitle(title)
		g.shownTitle = title
	}
	return nil
}

// Draw strokes every shape as a closed polyline over the dark background.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, s := range g.snapshot.Shapes {
		n := len(s.Points)
		for i := 0; i < n; i++ {
			a, b := s.Points[i], s.Points[(i+1)%n]
			vector.StrokeLine(screen, a.X, a.Y, b.X, b.Y, lineWidth, s.Color, true)
		}
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }

// runWindow opens the ebiten window on the calling goroutine and runs body
// on another. It returns once body has finished. If the window cannot be
// created, frames is pointed at render.Nop and body keeps running headless.
func runWindow(g *Game, frames *frame.Switch, body func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer g.finish()
		body()
	}()

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(g.title)
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(g); err != nil {
		frames.Set(render.Nop{})
		log.Printf("[WARN] window unavailable (%v); continuing without it", err)
	}
	<-done
}
