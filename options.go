// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package alternator

import (
	"fmt"
	"io"
	"os"

	"github.com/joeycumines/logiface"
)

// DefaultBudget is the total number of prints, if not configured.
const DefaultBudget = 100

// Config is the resolved configuration of an Alternator, see ResolveOptions.
type Config struct {
	// Output is used to initialize Printer, if Printer is nil.
	// Defaults to os.Stdout.
	Output io.Writer

	// Printer receives all output lines.
	Printer *Printer

	// Logger is optional, and receives structured worker lifecycle events.
	Logger *logiface.Logger[logiface.Event]

	// First is the role that takes the first turn. Defaults to RoleA.
	First Role

	// Budget is the total number of prints, shared by both workers.
	Budget int64

	// CompletionLines enables writing "<role> done", after each worker exits.
	CompletionLines bool
}

// --- Options ---

// Option configures an Alternator.
type Option interface {
	applyOption(*Config) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyOptionFunc func(*Config) error
}

func (o *optionImpl) applyOption(c *Config) error {
	return o.applyOptionFunc(c)
}

// WithBudget sets the total number of prints. Negative values are invalid.
func WithBudget(n int64) Option {
	return &optionImpl{func(c *Config) error {
		if n < 0 {
			return fmt.Errorf(`alternator: negative budget: %d`, n)
		}
		c.Budget = n
		return nil
	}}
}

// WithFirst sets the role that takes the first turn.
func WithFirst(role Role) Option {
	return &optionImpl{func(c *Config) error {
		if !role.Valid() {
			return fmt.Errorf(`alternator: invalid first role: %q`, role)
		}
		c.First = role
		return nil
	}}
}

// WithOutput sets the writer for output lines. Ignored if WithPrinter is
// also used.
func WithOutput(w io.Writer) Option {
	return &optionImpl{func(c *Config) error {
		if w == nil {
			return fmt.Errorf(`alternator: nil output`)
		}
		c.Output = w
		return nil
	}}
}

// WithPrinter sets the Printer, e.g. to allow access to per-role counts.
func WithPrinter(p *Printer) Option {
	return &optionImpl{func(c *Config) error {
		c.Printer = p
		return nil
	}}
}

// WithCompletionLines toggles writing "<role> done" lines.
func WithCompletionLines(enabled bool) Option {
	return &optionImpl{func(c *Config) error {
		c.CompletionLines = enabled
		return nil
	}}
}

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(c *Config) error {
		c.Logger = logger
		return nil
	}}
}

// ResolveOptions applies opts to a copy of base, which provides any
// implementation-specific defaults. Zero values for Budget and First are NOT
// defaulted, i.e. base must set them, see DefaultConfig.
func ResolveOptions(base Config, opts []Option) (*Config, error) {
	cfg := base
	for _, opt := range opts {
		if opt == nil {
			continue // Skip nil options gracefully
		}
		if err := opt.applyOption(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.Budget < 0 {
		return nil, fmt.Errorf(`alternator: negative budget: %d`, cfg.Budget)
	}
	if !cfg.First.Valid() {
		return nil, fmt.Errorf(`alternator: invalid first role: %q`, cfg.First)
	}
	if cfg.Printer == nil {
		if cfg.Output == nil {
			cfg.Output = os.Stdout
		}
		cfg.Printer = NewPrinter(cfg.Output)
	}
	return &cfg, nil
}

// DefaultConfig returns the base configuration shared by all
// implementations.
func DefaultConfig() Config {
	return Config{
		Budget: DefaultBudget,
		First:  RoleA,
	}
}
