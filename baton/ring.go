// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package baton

import (
	"context"
	"fmt"
)

// Ring arranges a Baton per party, in a cycle, where each party passes to
// the next. Instances must be initialized using NewRing.
type Ring struct {
	batons []*Baton
}

// NewRing initializes a Ring of n parties, each with a Baton of the given
// capacity. No party holds a permit, see Ring.Start. A panic will occur if n
// or capacity are not positive.
func NewRing(n int, capacity int64) *Ring {
	if n <= 0 {
		panic(fmt.Errorf(`baton: invalid ring size: %d`, n))
	}
	batons := make([]*Baton, n)
	for i := range batons {
		batons[i] = NewBaton(capacity)
	}
	return &Ring{batons: batons}
}

// Len returns the number of parties.
func (x *Ring) Len() int { return len(x.batons) }

// Baton returns the baton of party i.
func (x *Ring) Baton(i int) *Baton { return x.batons[i] }

// Next returns the index of the party after i.
func (x *Ring) Next(i int) int { return (i + 1) % len(x.batons) }

// Start grants party i its first turn.
func (x *Ring) Start(i int) error { return x.batons[i].Pass() }

// Wait blocks until it is the turn of party i.
func (x *Ring) Wait(ctx context.Context, i int) error { return x.batons[i].Wait(ctx) }

// Pass ends the turn of party i, granting the next party its turn.
func (x *Ring) Pass(i int) error { return x.batons[x.Next(i)].Pass() }
