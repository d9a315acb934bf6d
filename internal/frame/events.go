package frame

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"mystify/internal/sim"
)

// Renderer draws a World after each tick. It must not modify the World.
type Renderer interface {
	Render(w *sim.World)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(w *sim.World)

func (f RendererFunc) Render(w *sim.World) { f(w) }

type rendererBox struct{ r Renderer }

// Switch forwards frames to a Renderer that may be replaced from another
// goroutine while a run is in progress.
type Switch struct {
	cur atomic.Pointer[rendererBox]
}

// NewSwitch returns a Switch forwarding to r.
func NewSwitch(r Renderer) *Switch {
	s := &Switch{}
	s.Set(r)
	return s
}

// Set replaces the target; a nil r drops frames.
func (s *Switch) Set(r Renderer) { s.cur.Store(&rendererBox{r: r}) }

func (s *Switch) Render(w *sim.World) {
	if b := s.cur.Load(); b != nil && b.r != nil {
		b.r.Render(w)
	}
}

// EventSource is polled once per tick for a stop request.
type EventSource interface {
	QuitRequested() bool
}

// QuitFlag is an EventSource that can be tripped from any goroutine.
type QuitFlag struct {
	quit atomic.Bool
}

// Request marks the flag; the driver stops at the next tick boundary.
func (f *QuitFlag) Request() { f.quit.Store(true) }

func (f *QuitFlag) QuitRequested() bool { return f.quit.Load() }

// NotifySignals trips f on SIGINT or SIGTERM. The returned func stops
// delivery.
func (f *QuitFlag) NotifySignals() func() {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			f.Request()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

type anyQuit []EventSource

func (a anyQuit) QuitRequested() bool {
	quit := false
	// Poll every source so each one drains its own input.
	for _, s := range a {
		if s != nil && s.QuitRequested() {
			quit = true
		}
	}
	return quit
}

// AnyQuit combines sources; nil entries are skipped.
func AnyQuit(sources ...EventSource) EventSource {
	return anyQuit(sources)
}
