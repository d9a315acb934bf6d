package sim

import (
	"image/color"
	"math"
	"math/rand"
	"time"
	"unsafe"
)

const (
	spawnMargin = 50
	minSpeed    = 2
	maxSpeed    = 5
)

// Point is one vertex of a shape: position plus per-tick velocity.
type Point struct {
	X, Y   float32
	VX, VY float32
}

// Shape is a closed polyline drawn in a single color.
type Shape struct {
	Points []Point
	Color  color.RGBA
}

// palette lists the colors a shape may be assigned at creation.
var palette = [...]color.RGBA{
	{0, 170, 255, 255},
	{255, 0, 170, 255},
	{255, 255, 0, 255},
	{0, 255, 0, 255},
	{255, 128, 0, 255},
	{128, 0, 255, 255},
	{255, 0, 0, 255},
}

// Palette returns a copy of the shape color palette.
func Palette() []color.RGBA {
	out := make([]color.RGBA, len(palette))
	copy(out, palette[:])
	return out
}

// World owns the state of every shape plus the bounds they bounce inside.
type World struct {
	Width, Height  int
	PointsPerShape int
	Shapes         []Shape

	// points backs every Shape.Points slice so the whole state is contiguous.
	points []Point
}

// NewRand returns a generator seeded with seed, or with the clock when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewWorld allocates and randomizes a World for cfg using rng.
func NewWorld(cfg RunConfig, rng *rand.Rand) *World {
	w := allocWorld(cfg.Shapes, cfg.Points, cfg.Width, cfg.Height)
	for s := range w.Shapes {
		pts := w.Shapes[s].Points
		for i := range pts {
			pts[i].X = frand(rng, spawnMargin, float32(cfg.Width-spawnMargin))
			pts[i].Y = frand(rng, spawnMargin, float32(cfg.Height-spawnMargin))
			ang := float64(frand(rng, 0, 2*math.Pi))
			spd := float64(frand(rng, minSpeed, maxSpeed))
			pts[i].VX = float32(math.Cos(ang) * spd)
			pts[i].VY = float32(math.Sin(ang) * spd)
		}
		w.Shapes[s].Color = palette[rng.Intn(len(palette))]
	}
	return w
}

func allocWorld(shapes, points, width, height int) *World {
	w := &World{
		Width:          width,
		Height:         height,
		PointsPerShape: points,
		Shapes:         make([]Shape, shapes),
		points:         make([]Point, shapes*points),
	}
	for s := range w.Shapes {
		lo, hi := s*points, (s+1)*points
		w.Shapes[s].Points = w.points[lo:hi:hi]
	}
	return w
}

// frand returns a float in [a, b). The upper bound may be reached by rounding.
func frand(rng *rand.Rand, a, b float32) float32 {
	return a + rng.Float32()*(b-a)
}

// NumPoints returns the total number of points across all shapes.
func (w *World) NumPoints() int {
	return len(w.points)
}

// InBounds reports whether every point lies inside [0,Width]x[0,Height].
func (w *World) InBounds() bool {
	fw, fh := float32(w.Width), float32(w.Height)
	for _, p := range w.points {
		if p.X < 0 || p.X > fw || p.Y < 0 || p.Y > fh {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of w.
func (w *World) Clone() *World {
	c := &World{}
	w.CopyInto(c)
	return c
}

// CopyInto overwrites dst with the state of w, reusing dst storage when sizes match.
func (w *World) CopyInto(dst *World) {
	if len(dst.Shapes) != len(w.Shapes) || dst.PointsPerShape != w.PointsPerShape {
		fresh := allocWorld(len(w.Shapes), w.PointsPerShape, w.Width, w.Height)
		*dst = *fresh
	}
	dst.Width, dst.Height = w.Width, w.Height
	copy(dst.points, w.points)
	for s := range w.Shapes {
		dst.Shapes[s].Color = w.Shapes[s].Color
	}
}

// Flat exposes the point storage as X, Y, VX, VY float32 quadruples.
func (w *World) Flat() []float32 {
	if len(w.points) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&w.points[0])), len(w.points)*4)
}
