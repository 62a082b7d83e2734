// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package alternator

import (
	"fmt"
	"sync/atomic"
)

type (
	// Budget models the shared, remaining number of permitted prints, and the
	// termination flag, for a single run.
	//
	// WARNING: Budget is not synchronized. All method calls must be made
	// under the caller's mutual exclusion. See AtomicBudget for a lock-free
	// equivalent.
	Budget struct {
		remaining int64
		done      bool
	}

	// AtomicBudget is equivalent to Budget, but safe for concurrent use,
	// without external locking.
	AtomicBudget struct {
		remaining atomic.Int64
		done      atomic.Bool
	}
)

// NewBudget initializes a Budget with n remaining prints. A panic will occur
// if n is negative.
func NewBudget(n int64) *Budget {
	if n < 0 {
		panic(fmt.Errorf(`alternator: negative budget: %d`, n))
	}
	return &Budget{remaining: n}
}

// Remaining returns the number of prints left.
func (x *Budget) Remaining() int64 { return x.remaining }

// Done returns true once Finish has been called.
func (x *Budget) Done() bool { return x.done }

// Take consumes one print, returning false (without modification) if the
// budget is exhausted.
func (x *Budget) Take() bool {
	switch {
	case x.remaining > 0:
		x.remaining--
		return true
	case x.remaining == 0:
		return false
	default:
		panic(fmt.Errorf(`alternator: budget underflow: %d`, x.remaining))
	}
}

// Finish sets the termination flag, returning true only for the call that
// actually set it.
func (x *Budget) Finish() bool {
	if x.done {
		return false
	}
	x.done = true
	return true
}

// NewAtomicBudget initializes an AtomicBudget with n remaining prints. A
// panic will occur if n is negative.
func NewAtomicBudget(n int64) *AtomicBudget {
	if n < 0 {
		panic(fmt.Errorf(`alternator: negative budget: %d`, n))
	}
	var b AtomicBudget
	b.remaining.Store(n)
	return &b
}

// Remaining returns the number of prints left.
func (x *AtomicBudget) Remaining() int64 { return x.remaining.Load() }

// Done returns true once Finish has been called.
func (x *AtomicBudget) Done() bool { return x.done.Load() }

// Take atomically consumes one print, returning false (without modification)
// if the budget is exhausted.
func (x *AtomicBudget) Take() bool {
	for {
		v := x.remaining.Load()
		switch {
		case v == 0:
			return false
		case v < 0:
			panic(fmt.Errorf(`alternator: budget underflow: %d`, v))
		}
		if x.remaining.CompareAndSwap(v, v-1) {
			return true
		}
	}
}

// Finish sets the termination flag, returning true only for the call that
// actually set it.
func (x *AtomicBudget) Finish() bool {
	return x.done.CompareAndSwap(false, true)
}
