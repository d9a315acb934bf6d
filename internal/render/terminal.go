package render

import (
	"image/color"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"mystify/internal/sim"
)

const cellRune = '█'

// Terminal draws shapes into a tcell screen, scaling world coordinates to
// character cells. It doubles as an EventSource: any key or mouse press
// requests a stop.
type Terminal struct {
	screen tcell.Screen
	bg     tcell.Style
	styles map[color.RGBA]tcell.Style
	quit   atomic.Bool
	done   chan struct{}
}

// NewTerminal opens the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalScreen(screen)
}

// NewTerminalScreen initializes screen and starts polling its events.
func NewTerminalScreen(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()
	t := &Terminal{
		screen: screen,
		bg:     tcell.StyleDefault.Background(rgb(Background)),
		styles: make(map[color.RGBA]tcell.Style),
		done:   make(chan struct{}),
	}
	go t.pollEvents()
	return t, nil
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *Terminal) pollEvents() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			t.quit.Store(true)
		case *tcell.EventMouse:
			if ev.Buttons() != tcell.ButtonNone {
				t.quit.Store(true)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Terminal) QuitRequested() bool { return t.quit.Load() }

func (t *Terminal) style(c color.RGBA) tcell.Style {
	st, ok := t.styles[c]
	if !ok {
		st = t.bg.Foreground(rgb(c))
		t.styles[c] = st
	}
	return st
}

func (t *Terminal) Render(w *sim.World) {
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	t.screen.Fill(' ', t.bg)
	sx := float32(cols-1) / float32(w.Width)
	sy := float32(rows-1) / float32(w.Height)
	cell := func(p sim.Point) (int, int) {
		return clampCoord(int(p.X*sx), 0, cols-1), clampCoord(int(p.Y*sy), 0, rows-1)
	}
	for _, s := range w.Shapes {
		st := t.style(s.Color)
		n := len(s.Points)
		for i := 0; i < n; i++ {
			x0, y0 := cell(s.Points[i])
			x1, y1 := cell(s.Points[(i+1)%n])
			plotLine(x0, y0, x1, y1, func(x, y int) {
				t.screen.SetContent(x, y, cellRune, nil, st)
			})
		}
	}
	t.screen.Show()
}

// Close restores the terminal and waits for the event loop to exit.
func (t *Terminal) Close() {
	t.screen.Fini()
	<-t.done
}
