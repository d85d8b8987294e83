// SPDX-License-Identifier: MIT

// Package device - CPU backend.
//
// Purpose:
//   - Run the fixed classification kernel over a contiguous index range on
//     all cores, one goroutine per work-group, bounded by the worker count.
//   - Keep the accumulator buffers as typed atomics so concurrent work-items
//     increment them in place, exactly like a device-side atomic_inc.
//
// Complexity quicksheet:
//   - Open: O(workers·L) for per-worker scratch.
//   - Dispatch: O(global·n·L / workers) wall time.

package device

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/MrOnlineCoder/qmf/bitvec"
	"github.com/MrOnlineCoder/qmf/monotone"
	"github.com/MrOnlineCoder/qmf/transform"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultWorkGroupSize is the CPU backend's preferred local size.
	DefaultWorkGroupSize uint64 = 32

	cpuPlatform = "go-runtime"

	// cancelCheckEvery bounds how many work-items run between context checks.
	cancelCheckEvery = 1024
)

// CPUBackend exposes a single device backed by goroutines.
type CPUBackend struct {
	workers       int
	workGroupSize uint64
	logger        logrus.FieldLogger
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithWorkers sets the maximum number of concurrently running work-groups.
// Values ≤ 0 select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(b *CPUBackend) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		b.workers = n
	}
}

// WithWorkGroupSize sets the preferred local size reported by the device.
// Panics on 0.
func WithWorkGroupSize(n uint64) Option {
	if n == 0 {
		panic("device: WithWorkGroupSize: size must be > 0")
	}

	return func(b *CPUBackend) { b.workGroupSize = n }
}

// WithLogger sets the logger; nil keeps the default discard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *CPUBackend) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewCPUBackend returns a backend configured by opts.
func NewCPUBackend(opts ...Option) *CPUBackend {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	b := &CPUBackend{
		workers:       runtime.NumCPU(),
		workGroupSize: DefaultWorkGroupSize,
		logger:        discard,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(b)
		}
	}

	return b
}

// Devices reports the single CPU device.
func (b *CPUBackend) Devices() []Info {
	return []Info{b.info()}
}

func (b *CPUBackend) info() Info {
	return Info{
		Platform:               cpuPlatform,
		Name:                   fmt.Sprintf("cpu (%d workers)", b.workers),
		ComputeUnits:           b.workers,
		PreferredWorkGroupSize: b.workGroupSize,
	}
}

// Open builds the kernel for spec and allocates per-worker scratch.
// Errors: ErrNoDevice, ErrBadKernel.
func (b *CPUBackend) Open(ctx context.Context, index int, spec KernelSpec) (Device, error) {
	if index != 0 {
		return nil, fmt.Errorf("Open: index %d: %w", index, ErrNoDevice)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}

	sel := spec.Selector
	if sel == nil {
		var err error
		if sel, err = transform.DefaultSelector(spec.N); err != nil {
			return nil, fmt.Errorf("Open: %w: %w", ErrBadKernel, err)
		}
	}
	if err := sel.Validate(spec.N); err != nil {
		return nil, fmt.Errorf("Open: %w: %w", ErrBadKernel, err)
	}

	var oracleOpts []monotone.Option
	if spec.Tolerance > 0 {
		oracleOpts = append(oracleOpts, monotone.WithTolerance(spec.Tolerance))
	}
	oracle := monotone.New(oracleOpts...)

	// One evaluator per worker: the errgroup limit guarantees a free one.
	scratch := make(chan *monotone.Evaluator, b.workers)
	for i := 0; i < b.workers; i++ {
		ev, err := oracle.NewEvaluator(sel)
		if err != nil {
			return nil, fmt.Errorf("Open: %w: %w", ErrBadKernel, err)
		}
		scratch <- ev
	}

	total, exact, err := bitvec.FunctionCount(spec.N)
	if err != nil {
		return nil, fmt.Errorf("Open: %w: %w", ErrBadKernel, err)
	}

	d := &cpuDevice{
		info:    b.info(),
		total:   total,
		bounded: exact,
		workers: b.workers,
		scratch: scratch,
		logger: b.logger.WithFields(logrus.Fields{
			"action": "device",
			"device": b.info().Name,
			"n":      spec.N,
		}),
	}
	d.logger.WithField("selector", sel.String()).Debug("device opened")

	return d, nil
}

// deviceMemory is the device-side accumulator buffer set.
type deviceMemory struct {
	monotonic atomic.Uint64
	dual      atomic.Uint64
	hist      [HistogramBuckets]atomic.Uint64
}

type cpuDevice struct {
	info    Info
	total   uint64 // function count; meaningful when bounded
	bounded bool   // false when every 64-bit index is in domain
	workers int
	scratch chan *monotone.Evaluator
	logger  logrus.FieldLogger

	queue  sync.Mutex // in-order command queue
	mem    deviceMemory
	closed atomic.Bool
}

func (d *cpuDevice) Info() Info { return d.info }

func (d *cpuDevice) PreferredWorkGroupSize() uint64 { return d.info.PreferredWorkGroupSize }

func (d *cpuDevice) Write(src *Buffers) error {
	d.queue.Lock()
	defer d.queue.Unlock()
	if d.closed.Load() {
		return fmt.Errorf("Write: %w", ErrDeviceClosed)
	}

	d.mem.monotonic.Store(src.Monotonic)
	d.mem.dual.Store(src.Dual)
	for i := range d.mem.hist {
		d.mem.hist[i].Store(src.Histogram[i])
	}

	return nil
}

func (d *cpuDevice) Read(dst *Buffers) error {
	d.queue.Lock()
	defer d.queue.Unlock()
	if d.closed.Load() {
		return fmt.Errorf("Read: %w", ErrDeviceClosed)
	}

	dst.Monotonic = d.mem.monotonic.Load()
	dst.Dual = d.mem.dual.Load()
	for i := range d.mem.hist {
		dst.Histogram[i] = d.mem.hist[i].Load()
	}

	return nil
}

// Dispatch runs the kernel over [offset, offset+global).
// Implementation:
//   - Stage 1 (Validate): device open; range representable in 64 bits and
//     inside the function domain.
//   - Stage 2 (Execute): one errgroup task per work-group, SetLimit(workers).
//   - Stage 3 (Finalize): wait for every task; any failure → ErrDispatch.
func (d *cpuDevice) Dispatch(ctx context.Context, offset, global, local uint64) error {
	d.queue.Lock()
	defer d.queue.Unlock()
	if d.closed.Load() {
		return fmt.Errorf("Dispatch: %w", ErrDeviceClosed)
	}
	if global == 0 {
		return nil
	}
	if global-1 > math.MaxUint64-offset {
		return fmt.Errorf("Dispatch(offset=%d, global=%d): %w: %w", offset, global, ErrDispatch, bitvec.ErrRangeOverflow)
	}
	if d.bounded && (offset >= d.total || global > d.total-offset) {
		return fmt.Errorf("Dispatch(offset=%d, global=%d): %w: %w", offset, global, ErrDispatch, bitvec.ErrDomain)
	}
	if local == 0 || local > global {
		local = min(global, d.info.PreferredWorkGroupSize)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for start := uint64(0); start < global; start += local {
		if gctx.Err() != nil {
			break
		}
		first := offset + start
		size := min(local, global-start)
		g.Go(func() error { return d.runGroup(gctx, first, size) })
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		d.logger.WithError(err).WithField("offset", offset).Error("dispatch failed")
		return fmt.Errorf("Dispatch(offset=%d, global=%d): %w: %w", offset, global, ErrDispatch, err)
	}

	return nil
}

// runGroup executes one work-group with a borrowed evaluator.
func (d *cpuDevice) runGroup(ctx context.Context, first, size uint64) error {
	ev := <-d.scratch
	defer func() { d.scratch <- ev }()

	for i := uint64(0); i < size; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := d.kernel(ev, first+i); err != nil {
			return fmt.Errorf("index %d: %w", first+i, err)
		}
	}

	return nil
}

// kernel is the fixed compute kernel for one work-item.
func (d *cpuDevice) kernel(ev *monotone.Evaluator, index uint64) error {
	v, err := ev.Evaluate(index)
	if err != nil {
		return err
	}
	if !v.Monotonic {
		return nil
	}

	d.mem.monotonic.Add(1)
	if v.SelfDual {
		d.mem.dual.Add(1)
	}
	d.mem.hist[Bucket(v.Weight)].Add(1)

	return nil
}

// Close releases the device. Safe to call more than once.
func (d *cpuDevice) Close() error {
	d.queue.Lock()
	defer d.queue.Unlock()
	if d.closed.Swap(true) {
		return nil
	}
	d.logger.Debug("device closed")

	return nil
}
