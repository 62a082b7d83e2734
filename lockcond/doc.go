// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package lockcond implements an Alternator using an explicit mutex, and a
// condition variable bound to it. Each turn is a scoped critical section,
// where the lock is released on every exit path.
//
// Unlike the other implementations, completion lines ("<role> done") are
// enabled by default.
package lockcond
