// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package alternator models a bounded, strictly alternating, two-party
// producer protocol: two workers, [RoleA] and [RoleB], take turns printing
// their label and a per-worker counter, until a shared [Budget] of prints is
// exhausted, after which both exit.
//
// This package provides the contract ([Alternator], [Factory]), the shared
// state ([Budget], [AtomicBudget]), the output sink ([Printer]), the
// configuration ([Option], [Config]) and the supervisor ([RunPair]). The
// implementations live in sub-packages, one per coordination primitive:
//
//   - [github.com/joeycumines/go-alternator/monitor]: a monitor with
//     ownership-checked wait/notify
//   - [github.com/joeycumines/go-alternator/lockcond]: an explicit mutex and
//     condition variable
//   - [github.com/joeycumines/go-alternator/baton]: a pair of counting
//     semaphores, passed between the workers like a relay baton
//
// All implementations are validated by the common test suite, in
// [github.com/joeycumines/go-alternator/alternatortest].
//
// # Output
//
// Each print is a line of the form "<role> <n>", where n is the 1-based count
// of prints by that role. Implementations may optionally write a completion
// line, "<role> done", after each worker's loop exits.
//
// # Errors
//
// Blocking waits are interruptible only via context cancellation, which is
// never expected in normal operation. An interrupted wait is surfaced as a
// [*WorkerError] wrapping [ErrInterrupted], and causes the peer to be
// interrupted as well, see [RunPair].
package alternator
