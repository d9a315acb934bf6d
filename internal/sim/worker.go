package sim

import "sync"

// poolUpdater keeps one goroutine per shape range alive across ticks. Each
// Update publishes a new step number and blocks until every worker has
// finished its range, so callers never see a half-advanced World.
type poolUpdater struct {
	mu      sync.Mutex
	cond    *sync.Cond
	ranges  []Range
	world   *World
	step    int
	pending int
	closed  bool
	workers int
}

// newPoolUpdater starts workers goroutines for a World of shapes shapes.
func newPoolUpdater(workers, shapes int) *poolUpdater {
	if workers < 1 {
		workers = 1
	}
	p := &poolUpdater{
		ranges:  Partition(shapes, workers),
		workers: workers,
	}
	p.cond = sync.NewCond(&p.mu)
	for i := range p.ranges {
		go p.workerLoop(i)
	}
	return p
}

// workerLoop waits for each new step and bounces the shapes owned by index.
func (p *poolUpdater) workerLoop(index int) {
	lastStep := 0
	p.mu.Lock()
	for {
		for p.step == lastStep && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		lastStep = p.step
		r := p.ranges[index]
		w := p.world
		p.mu.Unlock()

		bounceShapes(w, r.Start, r.End)

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}

func (p *poolUpdater) Update(w *World) {
	if len(w.Shapes) == 0 {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		bounceShapes(w, 0, len(w.Shapes))
		return
	}
	if len(p.ranges) == 0 || p.ranges[len(p.ranges)-1].End != len(w.Shapes) {
		// Shape count changed; workers only read ranges under the lock.
		p.mu.Unlock()
		bounceShapes(w, 0, len(w.Shapes))
		return
	}
	p.world = w
	p.pending = len(p.ranges)
	p.step++
	p.cond.Broadcast()
	for p.pending > 0 {
		p.cond.Wait()
	}
	p.world = nil
	p.mu.Unlock()
}

func (p *poolUpdater) Policy() Policy { return Parallel }

// Workers reports the requested worker count; fewer goroutines run when
// there are fewer shapes than workers.
func (p *poolUpdater) Workers() int { return p.workers }

// Close stops the worker goroutines. Later Updates run on the caller.
func (p *poolUpdater) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
}
