//go:build !opencl

package sim

import "errors"

func newGPUUpdater(_ *World) (Updater, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}
