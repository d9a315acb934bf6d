package frame

import (
	"time"

	"mystify/internal/sim"
)

const (
	// DefaultBudget caps the loop at roughly 60 frames per second.
	DefaultBudget = time.Second / 60
	// DefaultStatsInterval matches how often the window title refreshes.
	DefaultStatsInterval = 500 * time.Millisecond
)

// Options configure a single Run.
type Options struct {
	// Duration bounds the run; 0 runs until Events requests a stop.
	Duration time.Duration
	// Budget is the target frame time. Faster ticks sleep the remainder.
	Budget time.Duration
	// NoPacing disables the sleep entirely.
	NoPacing bool

	Renderer Renderer
	Events   EventSource
	Clock    Clock

	StatsInterval time.Duration
	OnStats       func(Stats)
}

// Stats is a periodic progress snapshot of a running loop.
type Stats struct {
	Frames  int
	Elapsed time.Duration
	FPS     float64
	AvgMS   float64
}

// Result summarizes a finished run.
type Result struct {
	Frames int
	// Total is the summed update+render time of all frames.
	Total time.Duration
	// Elapsed is the wall time of the whole loop including pacing sleeps.
	Elapsed time.Duration
}

// AvgMS returns the mean per-frame cost in milliseconds, or 0 without frames.
func (r Result) AvgMS() float64 {
	if r.Frames == 0 {
		return 0
	}
	return float64(r.Total) / float64(r.Frames) / float64(time.Millisecond)
}

func (o *Options) setDefaults() {
	if o.Budget <= 0 {
		o.Budget = DefaultBudget
	}
	if o.Clock == nil {
		o.Clock = SystemClock{}
	}
	if o.StatsInterval <= 0 {
		o.StatsInterval = DefaultStatsInterval
	}
}

// Run ticks w with u until opts.Events asks to quit or opts.Duration has
// elapsed. Stop conditions are checked only between ticks, so an update
// always finishes and is rendered before the loop exits.
func Run(w *sim.World, u sim.Updater, opts Options) Result {
	opts.setDefaults()
	clock := opts.Clock

	var res Result
	start := clock.Now()
	lastStats := start
	statFrames := 0
	for {
		if opts.Events != nil && opts.Events.QuitRequested() {
			break
		}
		if opts.Duration > 0 && clock.Now().Sub(start) >= opts.Duration {
			break
		}

		t0 := clock.Now()
		u.Update(w)
		if opts.Renderer != nil {
			opts.Renderer.Render(w)
		}
		t1 := clock.Now()

		dt := t1.Sub(t0)
		res.Total += dt
		res.Frames++

		if !opts.NoPacing && dt < opts.Budget {
			clock.Sleep(opts.Budget - dt)
		}

		statFrames++
		if opts.OnStats != nil {
			now := clock.Now()
			if since := now.Sub(lastStats); since >= opts.StatsInterval {
				opts.OnStats(Stats{
					Frames:  res.Frames,
					Elapsed: now.Sub(start),
					FPS:     float64(statFrames) / since.Seconds(),
					AvgMS:   res.AvgMS(),
				})
				lastStats = now
				statFrames = 0
			}
		}
	}
	res.Elapsed = clock.Now().Sub(start)
	return res
}
