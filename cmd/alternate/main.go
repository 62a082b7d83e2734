// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Command alternate runs one or all of the alternator implementations,
// writing the transcript of each to stdout.
//
// Usage:
//
//	alternate [-variant monitor|lockcond|baton|all] [-n 100] [-first A|B] [-log-level disabled]
//
// If more than one variant is selected, each transcript is preceded by a
// "# <variant>" header line. Structured logs are written to stderr, as JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joeycumines/go-alternator"
	"github.com/joeycumines/go-alternator/baton"
	"github.com/joeycumines/go-alternator/lockcond"
	"github.com/joeycumines/go-alternator/monitor"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"golang.org/x/exp/slices"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2

	variantAll = `all`
)

type variant struct {
	factory alternator.Factory
	name    string
}

var (
	variants = []variant{
		{monitor.Factory, monitor.Name},
		{lockcond.Factory, lockcond.Name},
		{baton.Factory, baton.Name},
	}

	levels = []logiface.Level{
		logiface.LevelDisabled,
		logiface.LevelEmergency,
		logiface.LevelAlert,
		logiface.LevelCritical,
		logiface.LevelError,
		logiface.LevelWarning,
		logiface.LevelNotice,
		logiface.LevelInformational,
		logiface.LevelDebug,
		logiface.LevelTrace,
	}

	// per-turn logs are limited per call site
	turnRateLimits = map[time.Duration]int{
		time.Second: 20,
		time.Minute: 200,
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(`alternate`, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		variantFlag  = fs.String(`variant`, variantAll, `implementation to run: `+strings.Join(variantNames(), `|`)+`|`+variantAll)
		budgetFlag   = fs.Int64(`n`, alternator.DefaultBudget, `total number of prints, shared by both workers`)
		firstFlag    = fs.String(`first`, string(alternator.RoleA), `role that takes the first turn: A|B`)
		logLevelFlag = fs.String(`log-level`, logiface.LevelDisabled.String(), `log level keyword, e.g. info or debug`)
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	usageError := func(format string, a ...any) int {
		_, _ = fmt.Fprintf(stderr, format+"\n", a...)
		fs.Usage()
		return exitUsage
	}
	if fs.NArg() != 0 {
		return usageError(`alternate: unexpected arguments: %q`, fs.Args())
	}
	selected, err := selectVariants(*variantFlag)
	if err != nil {
		return usageError(`%v`, err)
	}
	first, err := alternator.ParseRole(*firstFlag)
	if err != nil {
		return usageError(`%v`, err)
	}
	level, err := parseLevel(*logLevelFlag)
	if err != nil {
		return usageError(`%v`, err)
	}

	if *budgetFlag < 0 {
		return usageError(`alternate: negative budget: %d`, *budgetFlag)
	}

	logger := newLogger(stderr, level)

	for _, v := range selected {
		if len(selected) > 1 {
			if _, err := fmt.Fprintf(stdout, "# %s\n", v.name); err != nil {
				_, _ = fmt.Fprintf(stderr, "alternate: %v\n", err)
				return exitError
			}
		}

		a, err := v.factory(
			alternator.WithBudget(*budgetFlag),
			alternator.WithFirst(first),
			alternator.WithOutput(stdout),
			alternator.WithLogger(logger),
		)
		if err != nil {
			return usageError(`%v`, err)
		}

		if err := a.Run(ctx); err != nil {
			logger.Err().
				Str(`alternator`, v.name).
				Err(err).
				Log(`run failed`)
			_, _ = fmt.Fprintf(stderr, "alternate: %s: %v\n", v.name, err)
			return exitError
		}
	}

	return exitOK
}

func variantNames() []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.name
	}
	return names
}

func selectVariants(name string) ([]variant, error) {
	if name == variantAll {
		return variants, nil
	}
	i := slices.IndexFunc(variants, func(v variant) bool { return v.name == name })
	if i < 0 {
		return nil, fmt.Errorf(`alternate: unknown variant: %q`, name)
	}
	return variants[i : i+1], nil
}

func parseLevel(s string) (logiface.Level, error) {
	i := slices.IndexFunc(levels, func(level logiface.Level) bool { return level.String() == s })
	if i < 0 {
		return logiface.LevelDisabled, fmt.Errorf(`alternate: unknown log level: %q`, s)
	}
	return levels[i], nil
}

func newLogger(w io.Writer, level logiface.Level) *logiface.Logger[logiface.Event] {
	if !level.Enabled() {
		return nil
	}
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		stumpy.L.WithLevel(level),
		stumpy.L.WithCategoryRateLimits(turnRateLimits),
	).Logger()
}
