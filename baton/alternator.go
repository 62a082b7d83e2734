// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package baton

import (
	"context"
	"sync/atomic"

	"github.com/joeycumines/go-alternator"
	"github.com/joeycumines/logiface"
)

// Name identifies this implementation, e.g. in logs.
const Name = `baton`

// batonCapacity allows for the final pass to a worker that already exited,
// in addition to the single in-flight permit.
const batonCapacity = 2

// Alternator implements alternator.Alternator using a two-party Ring.
// Instances must be initialized using New.
type Alternator struct {
	cfg    *alternator.Config
	budget *alternator.AtomicBudget
	ring   *Ring
	roles  [2]alternator.Role // ring index -> role
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
		budget: alternator.NewAtomicBudget(cfg.Budget),
		ring:   NewRing(2, batonCapacity),
		roles:  alternator.Roles(cfg.First),
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
	if err := ctx.Err(); err != nil {
		return alternator.NewWorkerError(x.roles[0], alternator.OpWait, alternator.Interrupted(err))
	}
	// the first mover may proceed without waiting for its peer
	if err := x.ring.Start(0); err != nil {
		return alternator.NewWorkerError(x.roles[0], alternator.OpPass, err)
	}
	return alternator.RunPair(ctx, Name, x.cfg, x.work)
}

func (x *Alternator) work(ctx context.Context, role alternator.Role, logger *logiface.Logger[logiface.Event]) error {
	i := x.index(role)
	var n int
	for {
		if err := x.ring.Wait(ctx, i); err != nil {
			return alternator.NewWorkerError(role, alternator.OpWait, err)
		}

		if x.budget.Done() {
			// the peer may still be waiting, and must observe done
			return alternator.NewWorkerError(role, alternator.OpPass, x.ring.Pass(i))
		}

		if !x.budget.Take() {
			x.budget.Finish()
			return alternator.NewWorkerError(role, alternator.OpPass, x.ring.Pass(i))
		}

		n++
		if err := x.cfg.Printer.Print(role, n); err != nil {
			return alternator.NewWorkerError(role, alternator.OpPrint, err)
		}
		alternator.LogTurn(logger, n, x.budget.Remaining())

		if err := x.ring.Pass(i); err != nil {
			return alternator.NewWorkerError(role, alternator.OpPass, err)
		}
	}
}

func (x *Alternator) index(role alternator.Role) int {
	if role == x.roles[0] {
		return 0
	}
	return 1
}
