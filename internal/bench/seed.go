package bench

import (
	"math/rand"

	"mystify/internal/sim"
)

// Seeding decides which random source each configuration of a sweep starts
// from. By default every configuration replays Seed, so they all begin from
// the same World. With Reseed, each one draws from Process instead.
type Seeding struct {
	Seed    int64
	Reseed  bool
	Process *rand.Rand
}

// NewSeeding resolves a sweep seed. A zero seed is drawn once from process.
func NewSeeding(seed int64, reseed bool, process *rand.Rand) Seeding {
	if seed == 0 && !reseed {
		seed = process.Int63() | 1
	}
	return Seeding{Seed: seed, Reseed: reseed, Process: process}
}

// Rand returns the generator the next configuration builds its World from.
func (s Seeding) Rand() *rand.Rand {
	if s.Reseed {
		return s.Process
	}
	return sim.NewRand(s.Seed)
}

// Measure drives one configuration on a freshly built World. It returns the
// mean frame cost in ms and whether the run was cut short by a quit request.
type Measure func(cfg sim.RunConfig, w *sim.World) (avgMS float64, stopped bool)

// Runner adapts measure into a RunFunc that builds each World from seeding
// and reports interrupted runs as ErrStopped.
func Runner(seeding Seeding, measure Measure) RunFunc {
	return func(cfg sim.RunConfig) (float64, error) {
		w := sim.NewWorld(cfg, seeding.Rand())
		ms, stopped := measure(cfg, w)
		if stopped {
			return ms, ErrStopped
		}
		return ms, nil
	}
}
