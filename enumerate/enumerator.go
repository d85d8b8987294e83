// SPDX-License-Identifier: MIT

// Package enumerate - chunked run loop.
//
// Complexity quicksheet:
//   - Run: O(M·n·L / workers) device time, O(1) host memory beyond State.
//   - Chunk count: ⌈M / chunkSize⌉.

package enumerate

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/MrOnlineCoder/qmf/bitvec"
	"github.com/MrOnlineCoder/qmf/device"
	"github.com/MrOnlineCoder/qmf/transform"
	"github.com/sirupsen/logrus"
)

// clampedTotal is the largest range a 64-bit run can cover: 2^64 − 2.
const clampedTotal = math.MaxUint64 - 1

// Enumerator runs exhaustive enumerations on devices from one Backend.
// Runs are independent; each opens and closes its own device.
type Enumerator struct {
	backend device.Backend
	opts    Options
}

// New returns an Enumerator over backend configured by opts.
func New(backend device.Backend, opts ...Option) *Enumerator {
	return &Enumerator{backend: backend, opts: gatherOptions(opts...)}
}

// Policy returns the effective chunk policy.
func (e *Enumerator) Policy() ChunkPolicy { return e.opts.policy }

// Run classifies every function index of n variables under sel (nil → default).
// Implementation:
//   - Stage 1 (Validate): n, selector and policy; compute M, clamp for n = 6.
//   - Stage 2 (Acquire): open the device; it is closed on every exit path.
//   - Stage 3 (Loop): one chunk barrier per contiguous chunk from 0, the
//     short remainder included; progress after each.
//   - Stage 4 (Finalize): elapsed time; final totals are the last read-back.
//
// Errors: ErrBadVars, ErrBadPolicy, transform.ErrSelectorLength,
// transform.ErrBadBlock, device.ErrNoDevice, device.ErrBadKernel,
// device.ErrDispatch, context errors.
func (e *Enumerator) Run(ctx context.Context, n int, sel transform.Selector) (st *State, err error) {
	begin := time.Now()
	if n < 1 || n > bitvec.MaxIndexVars {
		return nil, fmt.Errorf("Run: n=%d: %w", n, ErrBadVars)
	}
	if sel == nil {
		if sel, err = transform.DefaultSelector(n); err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
	} else if err = sel.Validate(n); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	if err = e.opts.policy.Validate(); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	log := e.opts.logger.WithFields(logrus.Fields{
		"action":   "enumerate",
		"n":        n,
		"selector": sel.String(),
	})

	st = &State{N: n, Selector: sel.Clone()}
	total, exact, err := bitvec.FunctionCount(n)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	if !exact {
		total = clampedTotal
		st.Partial = true
		st.Overflow = fmt.Errorf("Run: n=%d: range clamped to %d: %w", n, total, bitvec.ErrRangeOverflow)
		log.WithField("total", total).Warn("function count exceeds 64-bit index width, enumeration is partial")
	}
	st.Total = total

	dev, err := e.backend.Open(ctx, e.opts.deviceIndex, device.KernelSpec{
		N:         n,
		Selector:  st.Selector,
		Tolerance: e.opts.tolerance,
	})
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil && err == nil {
			st, err = nil, fmt.Errorf("Run: close: %w", cerr)
		}
	}()

	preferred := dev.PreferredWorkGroupSize()
	chunk := e.opts.policy.ChunkSize(n, preferred)
	local := min(preferred, chunk)
	st.ChunkSize = chunk

	log.WithFields(logrus.Fields{
		"total":  total,
		"chunk":  chunk,
		"local":  local,
		"device": dev.Info().Name,
	}).Info("enumeration started")
	e.opts.metrics.reset()

	for st.Processed < total {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("Run: offset=%d: %w", st.Processed, err)
		}

		offset := st.Processed
		size := min(chunk, total-offset)
		took, berr := e.barrier(ctx, dev, st, offset, size, local)
		if berr != nil {
			log.WithError(berr).WithField("offset", offset).Error("enumeration aborted")
			return nil, fmt.Errorf("Run: %w", berr)
		}
		st.Processed += size
		st.Chunks++

		e.opts.metrics.observeChunk(size, st.Monotonic, took)
		p := Progress{
			Offset:    offset,
			End:       offset + size,
			Percent:   100 * float64(offset+size) / float64(total),
			Monotonic: st.Monotonic,
		}
		log.WithFields(logrus.Fields{
			"offset":    p.Offset,
			"end":       p.End,
			"percent":   p.Percent,
			"monotonic": p.Monotonic,
		}).Debug("chunk done")
		if e.opts.progress != nil {
			e.opts.progress(p)
		}
	}

	st.Elapsed = time.Since(begin)
	log.WithFields(logrus.Fields{
		"monotonic": st.Monotonic,
		"dual":      st.Dual,
		"processed": st.Processed,
		"chunks":    st.Chunks,
		"elapsed":   st.Elapsed,
	}).Info("enumeration finished")

	return st, nil
}

// barrier runs one chunk: upload running totals, dispatch and wait, read back.
// The next chunk may start only after this returns.
func (e *Enumerator) barrier(ctx context.Context, dev device.Device, st *State, offset, size, local uint64) (time.Duration, error) {
	begin := time.Now()

	var buf device.Buffers
	st.upload(&buf)
	if err := dev.Write(&buf); err != nil {
		return 0, err
	}
	if err := dev.Dispatch(ctx, offset, size, local); err != nil {
		return 0, err
	}
	if err := dev.Read(&buf); err != nil {
		return 0, err
	}
	st.download(&buf)

	return time.Since(begin), nil
}
