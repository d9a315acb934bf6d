package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"mystify/internal/sim"
)

// lineWidth is the stroke width of shape outlines in pixels.
const lineWidth = 1.0

// Raster draws each frame into an in-memory RGBA image with anti-aliased
// strokes. It gives headless runs a realistic render cost.
type Raster struct {
	img  *image.RGBA
	bg   *image.Uniform
	rast *vector.Rasterizer
}

// NewRaster allocates a width x height canvas.
func NewRaster(width, height int) *Raster {
	return &Raster{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		bg:   image.NewUniform(Background),
		rast: vector.NewRasterizer(width, height),
	}
}

// Image returns the most recently rendered frame.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Render(w *sim.World) {
	bounds := r.img.Bounds()
	draw.Draw(r.img, bounds, r.bg, image.Point{}, draw.Src)
	for _, s := range w.Shapes {
		r.rast.Reset(bounds.Dx(), bounds.Dy())
		n := len(s.Points)
		for i := 0; i < n; i++ {
			a, b := s.Points[i], s.Points[(i+1)%n]
			r.segment(a.X, a.Y, b.X, b.Y)
		}
		r.rast.Draw(r.img, bounds, image.NewUniform(s.Color), image.Point{})
	}
}

// segment adds a lineWidth-wide quad from (x0,y0) to (x1,y1). Every quad is
// wound the same way, so overlapping segments never cancel out.
func (r *Raster) segment(x0, y0, x1, y1 float32) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		dx, dy, length = 1, 0, 1
	}
	nx := -dy / length * lineWidth / 2
	ny := dx / length * lineWidth / 2
	r.rast.MoveTo(r.clip(x0+nx, y0+ny))
	r.rast.LineTo(r.clip(x1+nx, y1+ny))
	r.rast.LineTo(r.clip(x1-nx, y1-ny))
	r.rast.LineTo(r.clip(x0-nx, y0-ny))
	r.rast.ClosePath()
}

// clip pulls a vertex back onto the canvas; outlines on the border would
// otherwise poke half a pixel past it.
func (r *Raster) clip(x, y float32) (float32, float32) {
	size := r.rast.Size()
	return clampf(x, 0, float32(size.X)), clampf(y, 0, float32(size.Y))
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SavePNG writes the last frame to path.
func (r *Raster) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %q: %w", path, err)
	}
	return f.Close()
}
