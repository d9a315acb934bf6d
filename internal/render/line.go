// Package render holds the Renderer implementations that do not need a
// window: an offscreen raster, a terminal view and a no-op sink.
package render

import (
	"image/color"

	"mystify/internal/sim"
)

// Background is the clear color behind every shape.
var Background = color.RGBA{3, 3, 6, 255}

// Nop discards every frame.
type Nop struct{}

func (Nop) Render(*sim.World) {}

// plotLine walks the integer line from (x0,y0) to (x1,y1) with Bresenham's
// algorithm, calling plot for each cell including both endpoints.
func plotLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
