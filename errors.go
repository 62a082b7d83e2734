// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package alternator

import (
	"errors"
	"fmt"
)

var (
	// ErrInterrupted indicates a blocking wait was interrupted, before the
	// worker was granted its turn. It is always wrapped, alongside the cause
	// (typically context.Canceled or context.DeadlineExceeded).
	ErrInterrupted = errors.New(`alternator: wait interrupted`)

	// ErrAlreadyRun is returned by Alternator.Run, on all but the first call.
	ErrAlreadyRun = errors.New(`alternator: already run`)
)

// Operations recorded by WorkerError.
const (
	OpWait  = `wait`
	OpPrint = `print`
	OpPass  = `pass`
)

// WorkerError is returned by a worker that failed, identifying the role and
// the operation.
type WorkerError struct {
	Cause error
	Role  Role
	Op    string
}

// Error implements the error interface.
func (e *WorkerError) Error() string {
	return fmt.Sprintf(`alternator: worker %s: %s: %v`, e.Role, e.Op, e.Cause)
}

// Unwrap returns the underlying error.
func (e *WorkerError) Unwrap() error {
	return e.Cause
}

// NewWorkerError returns a *WorkerError, or nil if cause is nil.
func NewWorkerError(role Role, op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &WorkerError{Role: role, Op: op, Cause: cause}
}

// Interrupted wraps cause with ErrInterrupted, such that errors.Is matches
// both. Returns nil if cause is nil.
func Interrupted(cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, ErrInterrupted) {
		return cause
	}
	return fmt.Errorf(`%w: %w`, ErrInterrupted, cause)
}
