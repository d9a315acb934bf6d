//go:build opencl

package sim

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

const bounceKernelSource = `__kernel void bounce_points(
    const int count,
    const float width,
    const float height,
    __global float* pts)
{
    int i = get_global_id(0);
    if (i >= count) {
        return;
    }
    int base = i * 4;
    float x = pts[base] + pts[base + 2];
    float y = pts[base + 1] + pts[base + 3];
    if (x < 0.0f) {
        x = 0.0f;
        pts[base + 2] = -pts[base + 2];
    } else if (x > width) {
        x = width;
        pts[base + 2] = -pts[base + 2];
    }
    if (y < 0.0f) {
        y = 0.0f;
        pts[base + 3] = -pts[base + 3];
    } else if (y > height) {
        y = height;
        pts[base + 3] = -pts[base + 3];
    }
    pts[base] = x;
    pts[base + 1] = y;
}`

// gpuUpdater runs Bounce on an OpenCL device and reads the points back after
// every tick so renderers see host memory.
type gpuUpdater struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	pointBuf   *cl.MemObject
	count      int
	deviceName string
	synced     *World
	failed     bool
}

func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

func newGPUUpdater(w *World) (Updater, error) {
	device, err := pickDevice()
	if err != nil {
		return nil, err
	}
	u := &gpuUpdater{count: w.NumPoints(), deviceName: device.Name()}
	if u.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if u.queue, err = u.context.CreateCommandQueue(device, 0); err != nil {
		u.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if u.program, err = u.context.CreateProgramWithSource([]string{bounceKernelSource}); err != nil {
		u.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := u.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		u.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if u.kernel, err = u.program.CreateKernel("bounce_points"); err != nil {
		u.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	byteSize := u.count * int(unsafe.Sizeof(Point{}))
	if u.pointBuf, err = u.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize); err != nil {
		u.Close()
		return nil, fmt.Errorf("allocating point buffer: %w", err)
	}
	if err := u.kernel.SetArgs(
		int32(u.count),
		float32(w.Width),
		float32(w.Height),
		u.pointBuf,
	); err != nil {
		u.Close()
		return nil, fmt.Errorf("setting kernel arguments: %w", err)
	}
	log.Printf("OpenCL bounce kernel enabled (device: %s)", u.deviceName)
	return u, nil
}

func (u *gpuUpdater) Update(w *World) {
	if u.failed || w.NumPoints() != u.count {
		bounceShapes(w, 0, len(w.Shapes))
		return
	}
	if err := u.step(w); err != nil {
		log.Printf("[WARN] OpenCL step failed (%v); continuing on the host.", err)
		u.failed = true
		bounceShapes(w, 0, len(w.Shapes))
	}
}

// step advances the device copy one tick. Nothing in w changes before the
// final read, so a failed step leaves the host state untouched.
func (u *gpuUpdater) step(w *World) error {
	flat := w.Flat()
	if u.synced != w {
		if _, err := u.queue.EnqueueWriteBufferFloat32(u.pointBuf, true, 0, flat, nil); err != nil {
			return fmt.Errorf("writing point buffer: %w", err)
		}
		u.synced = w
	}
	if _, err := u.queue.EnqueueNDRangeKernel(u.kernel, nil, []int{u.count}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := u.queue.EnqueueReadBufferFloat32(u.pointBuf, true, 0, flat, nil); err != nil {
		return fmt.Errorf("reading point buffer: %w", err)
	}
	return nil
}

func (u *gpuUpdater) Policy() Policy { return GPU }
func (u *gpuUpdater) Workers() int   { return 1 }

// DeviceName reports the OpenCL device in use.
func (u *gpuUpdater) DeviceName() string { return u.deviceName }

func (u *gpuUpdater) Close() {
	if u.pointBuf != nil {
		u.pointBuf.Release()
		u.pointBuf = nil
	}
	if u.kernel != nil {
		u.kernel.Release()
		u.kernel = nil
	}
	if u.program != nil {
		u.program.Release()
		u.program = nil
	}
	if u.queue != nil {
		u.queue.Release()
		u.queue = nil
	}
	if u.context != nil {
		u.context.Release()
		u.context = nil
	}
}
