package sim

// Bounce advances p by one tick. A coordinate that leaves the box is clamped
// to the edge it crossed and its velocity component is negated.
func Bounce(p *Point, width, height float32) {
	p.X += p.VX
	p.Y += p.VY
	if p.X < 0 {
		p.X = 0
		p.VX = -p.VX
	} else if p.X > width {
		p.X = width
		p.VX = -p.VX
	}
	if p.Y < 0 {
		p.Y = 0
		p.VY = -p.VY
	} else if p.Y > height {
		p.Y = height
		p.VY = -p.VY
	}
}

// bounceShapes runs Bounce over shapes[lo:hi].
func bounceShapes(w *World, lo, hi int) {
	fw, fh := float32(w.Width), float32(w.Height)
	for s := lo; s < hi; s++ {
		pts := w.Shapes[s].Points
		for i := range pts {
			Bounce(&pts[i], fw, fh)
		}
	}
}
