package bench

import (
	"errors"
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mystify/internal/sim"
)

func baseConfig() sim.RunConfig {
	return sim.RunConfig{Shapes: 600, Points: 6, Width: 1280, Height: 720, Mode: sim.Parallel, Bench: true}
}

func TestThreadCounts(t *testing.T) {
	tests := []struct {
		max  int
		want []int
	}{
		{0, nil},
		{1, []int{1}},
		{2, []int{1, 2}},
		{6, []int{1, 2, 4}},
		{8, []int{1, 2, 4, 8}},
		{12, []int{1, 2, 4, 8}},
		{16, []int{1, 2, 4, 8, 16}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ThreadCounts(tt.max), "max=%d", tt.max)
	}
}

func TestThreadCountsLargeMax(t *testing.T) {
	counts := ThreadCounts(math.MaxInt)
	require.Len(t, counts, bits.UintSize-1)
	assert.Equal(t, 1, counts[0])
	assert.Equal(t, 1<<(bits.UintSize-2), counts[len(counts)-1])
}

func TestDerive(t *testing.T) {
	fps, speedup, eff := Derive(10.0, 3.0, 4)
	assert.Equal(t, "333.333", Result{FPS: fps}.Record()[8])
	assert.InDelta(t, 3.333, speedup, 0.0005)
	assert.InDelta(t, 0.833, eff, 0.0005)

	fps, speedup, eff = Derive(10.0, 0, 4)
	assert.Zero(t, fps)
	assert.Zero(t, speedup)
	assert.Zero(t, eff)
}

func TestRunOrderAndFormulas(t *testing.T) {
	costs := map[sim.Policy]map[int]float64{
		sim.Sequential: {1: 10.0},
		sim.Parallel:   {1: 11.0, 2: 6.0, 4: 3.0, 8: 2.5},
	}
	var seen []sim.RunConfig
	results, err := Run(baseConfig(), 8, func(cfg sim.RunConfig) (float64, error) {
		seen = append(seen, cfg)
		return costs[cfg.Mode][cfg.Workers], nil
	})
	require.NoError(t, err)
	require.Len(t, results, 5)

	assert.Equal(t, Result{
		Mode: "seq", Threads: 1, Shapes: 600, Points: 6, Width: 1280, Height: 720,
		Seconds: DefaultSeconds, AvgMS: 10, FPS: 100, Speedup: 1, Efficiency: 1,
	}, results[0])

	wantThreads := []int{1, 1, 2, 4, 8}
	for i, r := range results {
		assert.Equal(t, wantThreads[i], r.Threads)
		assert.Equal(t, DefaultSeconds, seen[i].Seconds, "unbounded runs get the default duration")
		if i > 0 {
			assert.Equal(t, "par", r.Mode)
			assert.Equal(t, sim.Parallel, seen[i].Mode)
		}
	}
	assert.Equal(t, sim.Sequential, seen[0].Mode)

	four := results[3]
	assert.Equal(t, []string{"par", "4", "600", "6", "1280", "720", "8", "3.000000", "333.333", "3.333", "0.833"}, four.Record())
}

func TestRunKeepsConfiguredSeconds(t *testing.T) {
	base := baseConfig()
	base.Seconds = 3
	results, err := Run(base, 1, func(sim.RunConfig) (float64, error) { return 1, nil })
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, 3, r.Seconds)
	}
}

func TestRunZeroCost(t *testing.T) {
	results, err := Run(baseConfig(), 2, func(sim.RunConfig) (float64, error) { return 0, nil })
	require.NoError(t, err)
	assert.Zero(t, results[0].FPS)
	for _, r := range results[1:] {
		assert.Zero(t, r.FPS)
		assert.Zero(t, r.Speedup)
		assert.Zero(t, r.Efficiency)
	}
}

func TestRunStopsEarly(t *testing.T) {
	calls := 0
	results, err := Run(baseConfig(), 8, func(cfg sim.RunConfig) (float64, error) {
		calls++
		if cfg.Mode == sim.Parallel && cfg.Workers == 2 {
			return 4, ErrStopped
		}
		return 8, nil
	})
	assert.ErrorIs(t, err, ErrStopped)
	assert.Equal(t, 3, calls)
	require.Len(t, results, 3)
	assert.Equal(t, 2, results[2].Threads)
	assert.InDelta(t, 2.0, results[2].Speedup, 1e-9)
}

func TestRunPropagatesFailures(t *testing.T) {
	boom := errors.New("boom")
	results, err := Run(baseConfig(), 4, func(sim.RunConfig) (float64, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, results)
}
