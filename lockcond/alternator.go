// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package lockcond

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-alternator"
	"github.com/joeycumines/logiface"
)

// Name identifies this implementation, e.g. in logs.
const Name = `lockcond`

// Alternator implements alternator.Alternator using sync.Mutex and
// sync.Cond. Instances must be initialized using New.
type Alternator struct {
	cfg    *alternator.Config
	budget *alternator.Budget // guarded by mu
	cond   *sync.Cond
	turn   alternator.Role // guarded by mu
	mu     sync.Mutex
	ran    atomic.Bool
}

var (
	// compile time assertions

	_ alternator.Alternator = (*Alternator)(nil)
	_ alternator.Factory    = Factory
)

// New initializes an Alternator. Completion lines are enabled by default.
func New(opts ...alternator.Option) (*Alternator, error) {
	base := alternator.DefaultConfig()
	base.CompletionLines = true
	cfg, err := alternator.ResolveOptions(base, opts)
	if err != nil {
		return nil, err
	}
	x := &Alternator{
		cfg:    cfg,
		budget: alternator.NewBudget(cfg.Budget),
		turn:   cfg.First,
	}
	x.cond = sync.NewCond(&x.mu)
	return x, nil
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

func (x *Alternator) step(ctx context.Context, role alternator.Role, n *int, logger *logiface.Logger[logiface.Event]) (bool, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	for !x.budget.Done() && x.turn != role {
		if err := x.wait(ctx); err != nil {
			return false, alternator.NewWorkerError(role, alternator.OpWait, err)
		}
	}

	if x.budget.Done() {
		return false, nil
	}

	if !x.budget.Take() {
		x.budget.Finish()
		// the peer is waiting, or will observe done before it waits
		x.cond.Signal()
		return false, nil
	}

	*n++
	if err := x.cfg.Printer.Print(role, *n); err != nil {
		return false, alternator.NewWorkerError(role, alternator.OpPrint, err)
	}
	alternator.LogTurn(logger, *n, x.budget.Remaining())

	x.turn = role.Peer()
	x.cond.Signal()
	return true, nil
}

// wait must be called with mu held, and returns with mu held.
func (x *Alternator) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return alternator.Interrupted(err)
	}
	stop := context.AfterFunc(ctx, func() {
		x.mu.Lock()
		defer x.mu.Unlock()
		x.cond.Broadcast()
	})
	defer stop()
	x.cond.Wait()
	if err := ctx.Err(); err != nil {
		return alternator.Interrupted(err)
	}
	return nil
}
