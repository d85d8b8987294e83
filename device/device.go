// SPDX-License-Identifier: MIT

package device

import (
	"context"

	"github.com/MrOnlineCoder/qmf/transform"
)

// HistogramBuckets is the fixed histogram width.
const HistogramBuckets = 256

// Buffers is the host image of the accumulator buffers bound to the kernel.
type Buffers struct {
	Monotonic uint64
	Dual      uint64
	Histogram [HistogramBuckets]uint64
}

// KernelSpec fixes the kernel's build-time parameters.
type KernelSpec struct {
	N         int
	Selector  transform.Selector // nil → transform.DefaultSelector(N)
	Tolerance float64            // 0 → monotone.DefaultTolerance
}

// Info describes one discovered device.
type Info struct {
	Platform               string
	Name                   string
	ComputeUnits           int
	PreferredWorkGroupSize uint64
}

// Backend discovers devices and opens one with the kernel built for spec.
type Backend interface {
	Devices() []Info
	Open(ctx context.Context, index int, spec KernelSpec) (Device, error)
}

// Device is an opened device: kernel built, buffers allocated and bound.
// Implementations serialize Write, Dispatch and Read like an in-order queue.
type Device interface {
	Info() Info
	PreferredWorkGroupSize() uint64

	// Write copies src into the device accumulator buffers.
	Write(src *Buffers) error

	// Dispatch runs the kernel over [offset, offset+global) in work-groups of
	// local indices and returns once every work-group has finished.
	Dispatch(ctx context.Context, offset, global, local uint64) error

	// Read copies the device accumulator buffers into dst.
	Read(dst *Buffers) error

	Close() error
}

// Bucket clamps a per-function invariant into [0, HistogramBuckets).
func Bucket(v int) int {
	switch {
	case v < 0:
		return 0
	case v >= HistogramBuckets:
		return HistogramBuckets - 1
	default:
		return v
	}
}
