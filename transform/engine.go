// SPDX-License-Identifier: MIT

// Package transform - engine state (current n, selector and operator).
//
// Purpose:
//   - Replace the (n, selector, operator) triple atomically on Rebuild.
//   - Hand out immutable snapshots so a query in progress never observes a
//     half-rebuilt state.

package transform

import (
	"fmt"
	"sync/atomic"

	"github.com/MrOnlineCoder/qmf/bitvec"
)

// Snapshot is one immutable engine state.
type Snapshot struct {
	n   int
	sel Selector
	op  *Operator // nil when n > MaxDenseVars
}

// N returns the vector-space size.
func (s *Snapshot) N() int { return s.n }

// Len returns L = 2^n.
func (s *Snapshot) Len() int { return 1 << uint(s.n) }

// Selector returns a copy of the selector.
func (s *Snapshot) Selector() Selector { return s.sel.Clone() }

// Operator returns the dense operator pair, or nil when n > MaxDenseVars.
func (s *Snapshot) Operator() *Operator { return s.op }

// NewTransformer returns a fresh quick-transform workspace for this snapshot.
func (s *Snapshot) NewTransformer() *Transformer { return newTransformer(s.sel) }

// NewSnapshot validates (n, sel) and builds the dense operator when n ≤ MaxDenseVars.
// A nil sel means DefaultSelector(n). sel is copied.
// Errors: ErrBadSize, ErrSelectorLength, ErrBadBlock, ErrInvariant.
func NewSnapshot(n int, sel Selector, opts ...Option) (*Snapshot, error) {
	if n < 1 || n > bitvec.MaxVars {
		return nil, fmt.Errorf("NewSnapshot: n=%d: %w", n, ErrBadSize)
	}

	var err error
	if sel == nil {
		if sel, err = DefaultSelector(n); err != nil {
			return nil, err
		}
	} else if err = sel.Validate(n); err != nil {
		return nil, fmt.Errorf("NewSnapshot: %w", err)
	}

	s := &Snapshot{n: n, sel: sel.Clone()}
	if n <= MaxDenseVars {
		if s.op, err = Build(n, s.sel, opts...); err != nil {
			return nil, fmt.Errorf("NewSnapshot: %w", err)
		}
	}

	return s, nil
}

// Engine holds the current snapshot. Safe for concurrent use.
type Engine struct {
	cur  atomic.Pointer[Snapshot]
	opts []Option
}

// NewEngine creates an engine at (n, sel); nil sel selects the default.
// Errors: see NewSnapshot.
func NewEngine(n int, sel Selector, opts ...Option) (*Engine, error) {
	e := &Engine{opts: opts}
	if _, err := e.Rebuild(n, sel); err != nil {
		return nil, err
	}

	return e, nil
}

// Rebuild replaces the current snapshot with one for (n, sel).
// On error the previous snapshot stays in place.
func (e *Engine) Rebuild(n int, sel Selector) (*Snapshot, error) {
	s, err := NewSnapshot(n, sel, e.opts...)
	if err != nil {
		return nil, err
	}
	e.cur.Store(s)

	return s, nil
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() *Snapshot { return e.cur.Load() }
