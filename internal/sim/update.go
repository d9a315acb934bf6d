package sim

import (
	"log"
	"runtime"
	"sync"
)

// Updater advances a World by one tick per call.
type Updater interface {
	Update(w *World)
	Policy() Policy
	Workers() int
	Close()
}

// ResolveWorkers maps a requested worker count to a usable one; 0 or less
// selects GOMAXPROCS.
func ResolveWorkers(n int) int {
	if n < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Update advances every point of w exactly once. The parallel policy splits
// the shapes with Partition and spawns one goroutine per range, returning
// after all of them finish. GPU is served on the host here; long runs should
// use NewUpdater.
func Update(w *World, policy Policy, workers int) {
	if policy != Parallel {
		bounceShapes(w, 0, len(w.Shapes))
		return
	}
	ranges := Partition(len(w.Shapes), workers)
	if len(ranges) <= 1 {
		bounceShapes(w, 0, len(w.Shapes))
		return
	}
	var wg sync.WaitGroup
	for _, r := range ranges {
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			bounceShapes(w, lo, hi)
		}(r.Start, r.End)
	}
	wg.Wait()
}

// NewUpdater builds the engine for policy. A GPU request that cannot be
// served degrades to Sequential with a warning.
func NewUpdater(policy Policy, workers int, w *World) Updater {
	switch policy {
	case Parallel:
		return newPoolUpdater(ResolveWorkers(workers), len(w.Shapes))
	case GPU:
		u, err := newGPUUpdater(w)
		if err != nil {
			log.Printf("[WARN] GPU mode unavailable (%v); using sequential mode.", err)
			return sequentialUpdater{}
		}
		return u
	default:
		return sequentialUpdater{}
	}
}

type sequentialUpdater struct{}

func (sequentialUpdater) Update(w *World) { bounceShapes(w, 0, len(w.Shapes)) }
func (sequentialUpdater) Policy() Policy  { return Sequential }
func (sequentialUpdater) Workers() int    { return 1 }
func (sequentialUpdater) Close()          {}
