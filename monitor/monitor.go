// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package monitor

import (
	"context"
	"errors"
	"sync"

	"github.com/joeycumines/go-alternator"
)

// ErrIllegalMonitorState is returned when a Held token is used after it was
// released, i.e. when the caller does not own the monitor.
var ErrIllegalMonitorState = errors.New(`monitor: illegal monitor state`)

type (
	// Monitor is a mutual exclusion lock, with an associated wait set.
	// Instances must be initialized using NewMonitor.
	Monitor struct {
		owner *Held
		cond  sync.Cond
		mu    sync.Mutex
	}

	// Held is proof of ownership of a Monitor, returned by Monitor.Enter.
	// It is valid until Held.Exit is called.
	//
	// WARNING: Held is not safe for concurrent use. It must only be used by
	// the goroutine that called Monitor.Enter.
	Held struct {
		m *Monitor
	}
)

// NewMonitor initializes a new Monitor.
func NewMonitor() *Monitor {
	var m Monitor
	m.cond.L = &m.mu
	return &m
}

// Enter blocks until the monitor is acquired.
func (x *Monitor) Enter() *Held {
	x.mu.Lock()
	h := &Held{m: x}
	x.owner = h
	return h
}

// Synchronized runs fn while holding the monitor, which will be released on
// return (including panics), unless fn already called Held.Exit.
func (x *Monitor) Synchronized(fn func(h *Held) error) error {
	h := x.Enter()
	defer func() {
		if h.m != nil {
			_ = h.Exit()
		}
	}()
	return fn(h)
}

// Wait releases the monitor, suspending until woken by Held.Notify or
// Held.NotifyAll, then re-acquires it. Callers must re-check their condition
// after Wait returns, as spurious wakeups are possible.
//
// If ctx is canceled, Wait returns an error wrapping
// alternator.ErrInterrupted. The monitor will be held, regardless.
func (x *Held) Wait(ctx context.Context) error {
	if err := x.check(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return alternator.Interrupted(err)
	}

	m := x.m

	// wakes all waiters on cancel, the lock ensures we are already waiting
	stop := context.AfterFunc(ctx, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.cond.Broadcast()
	})
	defer stop()

	m.owner = nil
	m.cond.Wait()
	m.owner = x

	if err := ctx.Err(); err != nil {
		return alternator.Interrupted(err)
	}
	return nil
}

// Notify wakes a single waiter, if any.
func (x *Held) Notify() error {
	if err := x.check(); err != nil {
		return err
	}
	x.m.cond.Signal()
	return nil
}

// NotifyAll wakes all waiters.
func (x *Held) NotifyAll() error {
	if err := x.check(); err != nil {
		return err
	}
	x.m.cond.Broadcast()
	return nil
}

// Exit releases the monitor, invalidating the receiver.
func (x *Held) Exit() error {
	if err := x.check(); err != nil {
		return err
	}
	m := x.m
	x.m = nil
	m.owner = nil
	m.mu.Unlock()
	return nil
}

func (x *Held) check() error {
	if x == nil || x.m == nil || x.m.owner != x {
		return ErrIllegalMonitorState
	}
	return nil
}
