// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package alternator

import (
	"context"

	"github.com/joeycumines/logiface"
	"golang.org/x/sync/errgroup"
)

type (
	// Alternator is the contract implemented by each coordination strategy.
	Alternator interface {
		// Run starts both workers, and BLOCKS until both have exited.
		// Returns nil if the budget was exhausted normally, otherwise the
		// first worker error. Run may only be called once, subsequent calls
		// return ErrAlreadyRun.
		Run(ctx context.Context) error
	}

	// Factory initializes an Alternator, from options.
	Factory func(opts ...Option) (Alternator, error)

	// Worker implements the loop of a single role. The logger is scoped to
	// the worker, and may be nil.
	Worker func(ctx context.Context, role Role, logger *logiface.Logger[logiface.Event]) error
)

// RunPair runs work once per role, on separate goroutines, blocking until
// both return. The first non-nil error cancels the context passed to the
// other worker, which must treat cancellation as an interruption of any
// blocking wait, and return. The first error is returned.
//
// If cfg.CompletionLines is set, each worker that returns without error has
// a completion line written on its behalf.
//
// A panic will occur if ctx, cfg or work are nil.
func RunPair(ctx context.Context, name string, cfg *Config, work Worker) error {
	if ctx == nil {
		panic(`alternator: nil context`)
	}
	if cfg == nil {
		panic(`alternator: nil config`)
	}
	if work == nil {
		panic(`alternator: nil worker`)
	}

	// guard context cancel - consistent behavior regardless of who moves first
	if err := ctx.Err(); err != nil {
		return NewWorkerError(cfg.First, OpWait, Interrupted(err))
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, role := range Roles(cfg.First) {
		logger := WorkerLogger(cfg.Logger, name, role)
		g.Go(func() error {
			logger.Info().Log(`worker started`)
			err := work(ctx, role, logger)
			if err == nil && cfg.CompletionLines {
				err = NewWorkerError(role, OpPrint, cfg.Printer.Finished(role))
			}
			if err != nil {
				logger.Err().
					Err(err).
					Int(`printed`, cfg.Printer.Count(role)).
					Log(`worker failed`)
				return err
			}
			logger.Info().
				Int(`printed`, cfg.Printer.Count(role)).
				Log(`worker exited`)
			return nil
		})
	}
	return g.Wait()
}

// WorkerLogger returns a sub-logger, with fields identifying the alternator
// and role. Returns nil if logger is nil.
func WorkerLogger(logger *logiface.Logger[logiface.Event], name string, role Role) *logiface.Logger[logiface.Event] {
	return logger.Clone().
		Str(`alternator`, name).
		Str(`role`, string(role)).
		Logger()
}

// LogTurn logs a single print, at debug level, subject to any rate limits the
// logger is configured with.
func LogTurn(logger *logiface.Logger[logiface.Event], n int, remaining int64) {
	logger.Debug().
		Limit().
		Int(`n`, n).
		Int64(`remaining`, remaining).
		Log(`turn`)
}
