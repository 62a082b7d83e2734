// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package baton implements an Alternator using counting semaphores as
// hand-off batons: a permit on a worker's [Baton] means it is that worker's
// turn. After each turn, the worker passes a permit to its peer, then waits
// on its own baton.
//
// The [Ring] primitive generalizes this to any number of parties, arranged
// in a cycle, though the Alternator itself is always two-party.
//
// No lock is held across any blocking wait. The shared budget is accessed
// atomically, see [github.com/joeycumines/go-alternator.AtomicBudget].
package baton
