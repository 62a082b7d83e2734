package main

import (
	"context"
	"strings"
	"testing"

	"github.com/joeycumines/go-alternator"
	"github.com/joeycumines/go-alternator/alternatortest"
	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_single(t *testing.T) {
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			var stdout, stderr alternatortest.SafeBuffer
			code := run(context.Background(), []string{`-variant`, v.name, `-n`, `7`, `-first`, `B`}, &stdout, &stderr)
			require.Equal(t, exitOK, code, stderr.String())
			assert.Empty(t, stderr.String())

			tr, err := alternatortest.ParseTranscript(stdout.String())
			require.NoError(t, err)
			require.NoError(t, tr.Check(7, alternator.RoleB))
		})
	}
}

func TestRun_all(t *testing.T) {
	var stdout, stderr alternatortest.SafeBuffer
	code := run(context.Background(), []string{`-n`, `3`}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	sections := strings.Split(stdout.String(), "# ")[1:]
	require.Len(t, sections, len(variants))
	for i, v := range variants {
		name, body, ok := strings.Cut(sections[i], "\n")
		require.True(t, ok)
		assert.Equal(t, v.name, name)
		tr, err := alternatortest.ParseTranscript(body)
		require.NoError(t, err)
		require.NoError(t, tr.Check(3, alternator.RoleA))
	}
}

func TestRun_logging(t *testing.T) {
	var stdout, stderr alternatortest.SafeBuffer
	code := run(context.Background(), []string{`-variant`, `baton`, `-n`, `2`, `-log-level`, `info`}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, "A 1\nB 1\n", stdout.String())
	logs := stderr.String()
	assert.Contains(t, logs, `"lvl":"info"`)
	assert.Contains(t, logs, `"alternator":"baton"`)
	assert.Contains(t, logs, `"msg":"worker exited"`)
	assert.NotContains(t, logs, `"msg":"turn"`)
}

func TestRun_interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr alternatortest.SafeBuffer
	code := run(ctx, []string{`-variant`, `monitor`}, &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `alternate: monitor: alternator: worker A: wait: alternator: wait interrupted: context canceled`)
}

func TestRun_usage(t *testing.T) {
	for _, tc := range [...]struct {
		name string
		args []string
		err  string
	}{
		{`unknown variant`, []string{`-variant`, `spin`}, `alternate: unknown variant: "spin"`},
		{`invalid first`, []string{`-first`, `C`}, `alternator: invalid role: "C"`},
		{`negative budget`, []string{`-n`, `-1`}, `alternate: negative budget: -1`},
		{`unknown level`, []string{`-log-level`, `verbose`}, `alternate: unknown log level: "verbose"`},
		{`extra args`, []string{`foo`}, `alternate: unexpected arguments: ["foo"]`},
		{`unknown flag`, []string{`-bar`}, `flag provided but not defined: -bar`},
		{`malformed budget`, []string{`-n`, `x`}, `invalid value "x" for flag -n`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr alternatortest.SafeBuffer
			code := run(context.Background(), tc.args, &stdout, &stderr)
			assert.Equal(t, exitUsage, code)
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), tc.err)
			assert.Contains(t, stderr.String(), `Usage of alternate:`)
		})
	}
}

func TestRun_help(t *testing.T) {
	var stdout, stderr alternatortest.SafeBuffer
	assert.Equal(t, exitOK, run(context.Background(), []string{`-h`}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `-variant`)
}

func TestParseLevel(t *testing.T) {
	for _, level := range levels {
		v, err := parseLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, v)
	}
	assert.Nil(t, newLogger(nil, logiface.LevelDisabled))
}
