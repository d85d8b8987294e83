package enumerate_test

import (
	"context"
	"errors"
	"sync"

	"github.com/MrOnlineCoder/qmf/device"
)

var errInjected = errors.New("injected dispatch failure")

// dispatchCall records one Dispatch invocation.
type dispatchCall struct {
	offset, global, local uint64
	// seen is the Monotonic value uploaded before this dispatch.
	seen uint64
}

// fakeBackend opens a recordingDevice. It never evaluates functions: every
// dispatched index counts as monotonic, so Monotonic equals indices visited.
type fakeBackend struct {
	preferred uint64
	failAt    int  // 1-based dispatch number that fails; 0 never
	visit     bool // record per-index visits (small ranges only)

	mu   sync.Mutex
	devs []*recordingDevice
}

func (b *fakeBackend) Devices() []device.Info {
	return []device.Info{{Platform: "fake", Name: "recorder", ComputeUnits: 1, PreferredWorkGroupSize: b.preferred}}
}

func (b *fakeBackend) Open(_ context.Context, index int, spec device.KernelSpec) (device.Device, error) {
	if index != 0 {
		return nil, device.ErrNoDevice
	}
	d := &recordingDevice{
		info:   b.Devices()[0],
		spec:   spec,
		failAt: b.failAt,
		visits: map[uint64]int{},
		visit:  b.visit,
	}
	b.mu.Lock()
	b.devs = append(b.devs, d)
	b.mu.Unlock()

	return d, nil
}

func (b *fakeBackend) last() *recordingDevice {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.devs[len(b.devs)-1]
}

type recordingDevice struct {
	info   device.Info
	spec   device.KernelSpec
	failAt int
	visit  bool

	mem    device.Buffers
	calls  []dispatchCall
	visits map[uint64]int
	closes int
}

func (d *recordingDevice) Info() device.Info              { return d.info }
func (d *recordingDevice) PreferredWorkGroupSize() uint64 { return d.info.PreferredWorkGroupSize }

func (d *recordingDevice) Write(src *device.Buffers) error {
	if d.closes > 0 {
		return device.ErrDeviceClosed
	}
	d.mem = *src

	return nil
}

func (d *recordingDevice) Dispatch(_ context.Context, offset, global, local uint64) error {
	if d.closes > 0 {
		return device.ErrDeviceClosed
	}
	d.calls = append(d.calls, dispatchCall{offset: offset, global: global, local: local, seen: d.mem.Monotonic})
	if d.failAt > 0 && len(d.calls) == d.failAt {
		return errors.Join(device.ErrDispatch, errInjected)
	}
	if d.visit {
		for i := offset; i < offset+global; i++ {
			d.visits[i]++
		}
	}
	d.mem.Monotonic += global
	d.mem.Histogram[0] += global

	return nil
}

func (d *recordingDevice) Read(dst *device.Buffers) error {
	if d.closes > 0 {
		return device.ErrDeviceClosed
	}
	*dst = d.mem

	return nil
}

func (d *recordingDevice) Close() error {
	d.closes++

	return nil
}
