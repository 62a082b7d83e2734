// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package alternator

import (
	"io"
	"strconv"
	"sync"
)

// Printer writes the output lines of an Alternator, and tracks per-role
// counts. The first write error is sticky, and will be returned by all
// subsequent calls. Instances must be initialized using NewPrinter.
type Printer struct {
	w      io.Writer
	err    error
	counts map[Role]int
	buf    []byte
	lines  int
	mu     sync.Mutex
}

// NewPrinter initializes a Printer, writing to w. A panic will occur if w is
// nil.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		panic(`alternator: nil writer`)
	}
	return &Printer{w: w, counts: make(map[Role]int, 2)}
}

// Print writes "<role> <n>".
func (x *Printer) Print(role Role, n int) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.err != nil {
		return x.err
	}
	x.buf = append(x.buf[:0], role...)
	x.buf = append(x.buf, ' ')
	x.buf = strconv.AppendInt(x.buf, int64(n), 10)
	x.buf = append(x.buf, '\n')
	if err := x.write(); err != nil {
		return err
	}
	x.counts[role]++
	return nil
}

// Finished writes "<role> done".
func (x *Printer) Finished(role Role) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.err != nil {
		return x.err
	}
	x.buf = append(x.buf[:0], role...)
	x.buf = append(x.buf, " done\n"...)
	return x.write()
}

// Count returns the number of successful Print calls for role.
func (x *Printer) Count(role Role) int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.counts[role]
}

// Lines returns the total number of lines written, including completion
// lines.
func (x *Printer) Lines() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.lines
}

// Err returns the sticky write error, if any.
func (x *Printer) Err() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.err
}

func (x *Printer) write() error {
	if _, err := x.w.Write(x.buf); err != nil {
		x.err = err
		return err
	}
	x.lines++
	return nil
}
