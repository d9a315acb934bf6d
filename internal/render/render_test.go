package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mystify/internal/sim"
)

func testWorld() *sim.World {
	return sim.NewWorld(sim.RunConfig{Shapes: 4, Points: 5, Width: 400, Height: 300}, sim.NewRand(12))
}

func TestPlotLine(t *testing.T) {
	type cell struct{ x, y int }
	collect := func(x0, y0, x1, y1 int) []cell {
		var out []cell
		plotLine(x0, y0, x1, y1, func(x, y int) { out = append(out, cell{x, y}) })
		return out
	}

	assert.Equal(t, []cell{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, collect(0, 0, 3, 0))
	assert.Equal(t, []cell{{2, 2}, {1, 1}, {0, 0}}, collect(2, 2, 0, 0))
	assert.Equal(t, []cell{{5, 5}}, collect(5, 5, 5, 5))

	steep := collect(0, 0, 2, 7)
	assert.Len(t, steep, 8)
	assert.Equal(t, cell{0, 0}, steep[0])
	assert.Equal(t, cell{2, 7}, steep[len(steep)-1])
}

func TestRasterDrawsShapes(t *testing.T) {
	w := testWorld()
	r := NewRaster(w.Width, w.Height)
	r.Render(w)
	img := r.Image()

	assert.Equal(t, Background, img.RGBAAt(0, 0))

	painted := 0
	for _, s := range w.Shapes {
		p := s.Points[0]
		if img.RGBAAt(int(p.X), int(p.Y)) != Background {
			painted++
		}
	}
	assert.Positive(t, painted)
}

func TestRasterHandlesEdgePoints(t *testing.T) {
	w := testWorld()
	w.Shapes[0].Points[0] = sim.Point{X: float32(w.Width), Y: float32(w.Height)}
	w.Shapes[0].Points[1] = sim.Point{X: 0, Y: 0}
	r := NewRaster(w.Width, w.Height)
	assert.NotPanics(t, func() { r.Render(w) })
}

func TestRasterSavePNG(t *testing.T) {
	w := testWorld()
	r := NewRaster(w.Width, w.Height)
	r.Render(w)

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, r.SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, r.Image().Bounds(), img.Bounds())
}

func TestTerminalRenderAndQuit(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminalScreen(screen)
	require.NoError(t, err)
	defer term.Close()
	screen.SetSize(80, 24)

	w := testWorld()
	term.Render(w)

	cells, cols, rows := screen.GetContents()
	require.Equal(t, 80, cols)
	require.Equal(t, 24, rows)
	drawn := 0
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] == cellRune {
			drawn++
		}
	}
	assert.Positive(t, drawn)

	assert.False(t, term.QuitRequested())
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	assert.Eventually(t, term.QuitRequested, time.Second, 5*time.Millisecond)
}

func TestNopRenderer(t *testing.T) {
	w := testWorld()
	before := w.Clone()
	Nop{}.Render(w)
	assert.Equal(t, before.Shapes, w.Shapes)
}
