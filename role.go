// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package alternator

import (
	"fmt"
)

// Role identifies one of the two workers of an Alternator.
type Role string

const (
	// RoleA is the default first mover.
	RoleA Role = `A`
	// RoleB is the default second mover.
	RoleB Role = `B`
)

// Roles returns both roles, starting with first. Panics if first is invalid.
func Roles(first Role) [2]Role {
	if !first.Valid() {
		panic(fmt.Errorf(`alternator: invalid role: %q`, first))
	}
	return [2]Role{first, first.Peer()}
}

// Valid returns true if the receiver is RoleA or RoleB.
func (x Role) Valid() bool {
	return x == RoleA || x == RoleB
}

// Peer returns the other role. Invalid roles have no peer, and return the
// zero value.
func (x Role) Peer() Role {
	switch x {
	case RoleA:
		return RoleB
	case RoleB:
		return RoleA
	default:
		return ``
	}
}

// String implements fmt.Stringer.
func (x Role) String() string { return string(x) }

// ParseRole returns the Role matching s, which must be exactly "A" or "B".
func ParseRole(s string) (Role, error) {
	if r := Role(s); r.Valid() {
		return r, nil
	}
	return ``, fmt.Errorf(`alternator: invalid role: %q`, s)
}
