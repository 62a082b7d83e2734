// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package monitor implements an Alternator using a monitor: a single lock,
// with wait/notify semantics, where waiting is only permitted while holding
// the lock.
//
// The [Monitor] primitive enforces this precondition by issuing a [Held]
// token from [Monitor.Enter]. All waits and notifications are made via the
// token, and return [ErrIllegalMonitorState] once it has been released.
//
// Each turn is its own critical section: a worker prints, hands over the turn,
// notifies and exits the monitor, then re-enters and waits on the turn
// predicate, rather than suspending within the same section as the print.
package monitor
