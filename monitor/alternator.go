// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package monitor

import (
	"context"
	"sync/atomic"

	"github.com/joeycumines/go-alternator"
	"github.com/joeycumines/logiface"
)

// Name identifies this implementation, e.g. in logs.
const Name = `monitor`

// Alternator implements alternator.Alternator using a Monitor.
// Instances must be initialized using New.
type Alternator struct {
	cfg    *alternator.Config
	mon    *Monitor
	budget *alternator.Budget
	turn   alternator.Role // guarded by mon
	ran    atomic.Bool
}

var (
	// compile time assertions

	_ alternator.Alternator = (*Alternator)(nil)
	_ alternator.Factory    = Factory
)

// New initializes an Alternator. Completion lines are disabled by default.
func New(opts ...alternator.Option) (*Alternator, error) {
	cfg, err := alternator.ResolveOptions(alternator.DefaultConfig(), opts)
	if err != nil {
		return nil, err
	}
	return &Alternator{
		cfg:    cfg,
		mon:    NewMonitor(),
		budget: alternator.NewBudget(cfg.Budget),
		turn:   cfg.First,
	}, nil
}

// Factory is New, as an alternator.Factory.
func Factory(opts ...alternator.Option) (alternator.Alternator, error) {
	a, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Run implements alternator.Alternator.
func (x *Alternator) Run(ctx context.Context) error {
	if !x.ran.CompareAndSwap(false, true) {
		return alternator.ErrAlreadyRun
	}
	return alternator.RunPair(ctx, Name, x.cfg, x.work)
}

func (x *Alternator) work(ctx context.Context, role alternator.Role, logger *logiface.Logger[logiface.Event]) error {
	var n int
	for {
		more, err := x.step(ctx, role, &n, logger)
		if err != nil || !more {
			return err
		}
	}
}

// step performs a single turn, while holding the monitor, returning false
// once the worker should exit.
func (x *Alternator) step(ctx context.Context, role alternator.Role, n *int, logger *logiface.Logger[logiface.Event]) (more bool, err error) {
	err = x.mon.Synchronized(func(h *Held) error {
		for !x.budget.Done() && x.turn != role {
			if err := h.Wait(ctx); err != nil {
				return alternator.NewWorkerError(role, alternator.OpWait, err)
			}
		}

		if x.budget.Done() {
			return nil
		}

		if !x.budget.Take() {
			// exhausted: the peer must be woken to observe done
			x.budget.Finish()
			return h.NotifyAll()
		}

		*n++
		if err := x.cfg.Printer.Print(role, *n); err != nil {
			return alternator.NewWorkerError(role, alternator.OpPrint, err)
		}
		alternator.LogTurn(logger, *n, x.budget.Remaining())

		x.turn = role.Peer()
		more = true
		return h.NotifyAll()
	})
	return more, err
}
