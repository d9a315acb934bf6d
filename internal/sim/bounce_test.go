package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBounceClampsAndReflects(t *testing.T) {
	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{"interior", Point{X: 10, Y: 10, VX: 2, VY: -3}, Point{X: 12, Y: 7, VX: 2, VY: -3}},
		{"past right edge", Point{X: 798, Y: 100, VX: 5, VY: 0}, Point{X: 800, Y: 100, VX: -5, VY: 0}},
		{"past left edge", Point{X: 1, Y: 100, VX: -4, VY: 1}, Point{X: 0, Y: 101, VX: 4, VY: 1}},
		{"past bottom edge", Point{X: 50, Y: 598, VX: 0, VY: 4}, Point{X: 50, Y: 600, VX: 0, VY: -4}},
		{"past top edge", Point{X: 50, Y: 2, VX: 1, VY: -3}, Point{X: 51, Y: 0, VX: 1, VY: 3}},
		{"corner", Point{X: 799, Y: 599, VX: 3, VY: 3}, Point{X: 800, Y: 600, VX: -3, VY: -3}},
		{"lands on edge", Point{X: 795, Y: 10, VX: 5, VY: 0}, Point{X: 800, Y: 10, VX: 5, VY: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			Bounce(&p, 800, 600)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestBounceOvershootEndsOnBoundary(t *testing.T) {
	const width = 800
	p := Point{X: width - 2, Y: 300, VX: 5, VY: 0}
	Bounce(&p, width, 600)
	assert.Equal(t, float32(width), p.X, "x+vx = width+3 must clamp to width")
	assert.Equal(t, float32(-5), p.VX, "vx keeps its magnitude and flips sign")
}

func TestBounceKeepsPointsInside(t *testing.T) {
	w := NewWorld(RunConfig{Shapes: 20, Points: 8, Width: 320, Height: 240}, NewRand(7))
	fw, fh := float32(w.Width), float32(w.Height)
	for tick := 0; tick < 2000; tick++ {
		for s := range w.Shapes {
			for i := range w.Shapes[s].Points {
				Bounce(&w.Shapes[s].Points[i], fw, fh)
			}
		}
		if !w.InBounds() {
			t.Fatalf("point left the box on tick %d", tick)
		}
	}
}
