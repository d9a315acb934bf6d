package sim

import (
	"errors"
	"fmt"
	"strings"
)

// Limits accepted by RunConfig.Validate.
const (
	MinShapes = 1
	MaxShapes = 50000
	MinPoints = 3
	MaxPoints = 128
	MinWidth  = 320
	MinHeight = 240
)

// ErrInvalidConfig is wrapped by every RunConfig validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Policy selects how a World is advanced each tick.
type Policy int

const (
	Sequential Policy = iota
	Parallel
	GPU
)

func (p Policy) String() string {
	switch p {
	case Sequential:
		return "seq"
	case Parallel:
		return "par"
	case GPU:
		return "gpu"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps a mode name to a Policy. "omp" is kept as an alias for par.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "seq", "sequential":
		return Sequential, nil
	case "par", "parallel", "omp":
		return Parallel, nil
	case "gpu", "opencl":
		return GPU, nil
	}
	return Sequential, fmt.Errorf("mode must be seq|par|gpu, got %q: %w", name, ErrInvalidConfig)
}

// RunConfig holds the immutable parameters of one run.
type RunConfig struct {
	Shapes  int
	Points  int
	Width   int
	Height  int
	Seconds int // 0 runs until a quit request
	Mode    Policy
	Bench   bool

	// Workers is the parallel worker count; 0 uses every available CPU.
	Workers int
	// Seed fixes the initial conditions; 0 derives one from the clock.
	Seed int64
}

// Validate reports the first out-of-range field.
func (c RunConfig) Validate() error {
	if c.Shapes < MinShapes || c.Shapes > MaxShapes {
		return fmt.Errorf("shapes %d out of range (%d..%d): %w", c.Shapes, MinShapes, MaxShapes, ErrInvalidConfig)
	}
	if c.Points < MinPoints || c.Points > MaxPoints {
		return fmt.Errorf("points %d out of range (%d..%d): %w", c.Points, MinPoints, MaxPoints, ErrInvalidConfig)
	}
	if c.Width < MinWidth || c.Height < MinHeight {
		return fmt.Errorf("window %dx%d too small (min %dx%d): %w", c.Width, c.Height, MinWidth, MinHeight, ErrInvalidConfig)
	}
	if c.Seconds < 0 {
		return fmt.Errorf("seconds %d must not be negative: %w", c.Seconds, ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d must not be negative: %w", c.Workers, ErrInvalidConfig)
	}
	switch c.Mode {
	case Sequential, Parallel, GPU:
	default:
		return fmt.Errorf("unknown mode %v: %w", c.Mode, ErrInvalidConfig)
	}
	return nil
}
