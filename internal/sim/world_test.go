package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorldLayout(t *testing.T) {
	cfg := RunConfig{Shapes: 5, Points: 6, Width: 800, Height: 600}
	w := NewWorld(cfg, NewRand(1))

	require.Len(t, w.Shapes, 5)
	assert.Equal(t, 30, w.NumPoints())
	assert.Equal(t, 6, w.PointsPerShape)
	for _, s := range w.Shapes {
		require.Len(t, s.Points, 6)
		assert.Equal(t, 6, cap(s.Points), "shapes must not see each other's points")
		assert.Contains(t, Palette(), s.Color)
		assert.Equal(t, uint8(255), s.Color.A)
	}
}

func TestNewWorldInitialRanges(t *testing.T) {
	cfg := RunConfig{Shapes: 200, Points: 16, Width: 1024, Height: 768}
	w := NewWorld(cfg, NewRand(99))
	for _, s := range w.Shapes {
		for _, p := range s.Points {
			assert.GreaterOrEqual(t, p.X, float32(50))
			assert.LessOrEqual(t, p.X, float32(cfg.Width-50))
			assert.GreaterOrEqual(t, p.Y, float32(50))
			assert.LessOrEqual(t, p.Y, float32(cfg.Height-50))
			speed := math.Hypot(float64(p.VX), float64(p.VY))
			assert.InDelta(t, 3.5, speed, 1.5+1e-4)
		}
	}
}

func TestNewWorldSeedIsDeterministic(t *testing.T) {
	cfg := RunConfig{Shapes: 10, Points: 4, Width: 640, Height: 480}
	a := NewWorld(cfg, NewRand(42))
	b := NewWorld(cfg, NewRand(42))
	assert.Equal(t, a.Shapes, b.Shapes)
}

func TestCopyIntoReusesStorage(t *testing.T) {
	cfg := RunConfig{Shapes: 3, Points: 3, Width: 320, Height: 240}
	src := NewWorld(cfg, NewRand(3))
	dst := src.Clone()
	backing := &dst.Shapes[0].Points[0]

	Update(src, Sequential, 1)
	src.CopyInto(dst)

	assert.Same(t, backing, &dst.Shapes[0].Points[0])
	assert.Equal(t, src.Shapes, dst.Shapes)

	// Mutating the copy leaves the source alone.
	dst.Shapes[1].Points[2].X = -1
	assert.NotEqual(t, src.Shapes[1].Points[2].X, dst.Shapes[1].Points[2].X)
}

func TestFlatAliasesPoints(t *testing.T) {
	w := NewWorld(RunConfig{Shapes: 2, Points: 3, Width: 320, Height: 240}, NewRand(5))
	flat := w.Flat()
	require.Len(t, flat, w.NumPoints()*4)

	p := w.Shapes[1].Points[2]
	idx := (1*3 + 2) * 4
	assert.Equal(t, []float32{p.X, p.Y, p.VX, p.VY}, flat[idx:idx+4])

	flat[idx] = 1
	assert.Equal(t, float32(1), w.Shapes[1].Points[2].X)
}
