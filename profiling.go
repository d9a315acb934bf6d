package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"sync"
)

// cpuProfile is an active runtime/pprof CPU profile bound to a file.
type cpuProfile struct {
	f    *os.File
	once sync.Once
}

// startCPUProfile begins writing a CPU profile to path.
func startCPUProfile(path string) (*cpuProfile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	return &cpuProfile{f: f}, nil
}

// Stop flushes the profile; later calls do nothing.
func (p *cpuProfile) Stop() {
	p.once.Do(func() {
		pprof.StopCPUProfile()
		_ = p.f.Close()
	})
}
