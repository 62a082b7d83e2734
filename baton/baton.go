// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package baton

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/joeycumines/go-alternator"
	"golang.org/x/sync/semaphore"
)

// ErrOverflow is returned by Baton.Pass if the baton already holds its
// maximum number of permits.
var ErrOverflow = errors.New(`baton: permit overflow`)

// Baton is a counting semaphore that starts with zero permits.
// Instances must be initialized using NewBaton.
type Baton struct {
	sem *semaphore.Weighted
	// upper bound of the permits available via sem, incremented prior to
	// release, and decremented after acquire
	available atomic.Int64
	capacity  int64
}

// NewBaton initializes a Baton, which may hold at most capacity unconsumed
// permits. A panic will occur if capacity is not positive.
func NewBaton(capacity int64) *Baton {
	if capacity <= 0 {
		panic(fmt.Errorf(`baton: invalid capacity: %d`, capacity))
	}
	sem := semaphore.NewWeighted(capacity)
	// start with zero permits
	if !sem.TryAcquire(capacity) {
		panic(`baton: failed to drain semaphore`)
	}
	return &Baton{sem: sem, capacity: capacity}
}

// Pass releases a single permit, waking a waiter, if any. Returns
// ErrOverflow if the baton is already at capacity.
func (x *Baton) Pass() error {
	for {
		v := x.available.Load()
		if v >= x.capacity {
			return ErrOverflow
		}
		if x.available.CompareAndSwap(v, v+1) {
			break
		}
	}
	x.sem.Release(1)
	return nil
}

// Wait blocks until a permit is available, then consumes it. If ctx is
// canceled first, an error wrapping alternator.ErrInterrupted is returned.
func (x *Baton) Wait(ctx context.Context) error {
	if err := x.sem.Acquire(ctx, 1); err != nil {
		return alternator.Interrupted(err)
	}
	x.available.Add(-1)
	return nil
}

// TryWait consumes a permit without blocking, returning false if none were
// available.
func (x *Baton) TryWait() bool {
	if !x.sem.TryAcquire(1) {
		return false
	}
	x.available.Add(-1)
	return true
}

// Available returns the number of unconsumed permits. The value may be stale
// by the time it is returned, if the baton is in concurrent use.
func (x *Baton) Available() int64 {
	return x.available.Load()
}

// Capacity returns the maximum number of unconsumed permits.
func (x *Baton) Capacity() int64 {
	return x.capacity
}
