// Package alternatortest provides a common test suite for implementations of
// alternator.Alternator, which operates by parsing (and validating) the
// output.
package alternatortest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/joeycumines/go-alternator"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

// Config models the configuration used to initialize the test suite.
type Config struct {
	// Factory initializes the implementation under test.
	Factory alternator.Factory

	// Name identifies the implementation, and must match the "alternator"
	// field of its logs.
	Name string

	// Timeout is the max amount of time a run may take to terminate.
	// Defaults to 10 seconds.
	Timeout time.Duration

	// CompletionLines indicates the implementation writes completion lines
	// by default.
	CompletionLines bool
}

// budgets exercised by TestTranscripts
var budgets = [...]int64{0, 1, 2, 3, 4, 5, 7, 16, 100, 1001}

// TestSuite runs the test suite, using the provided configuration.
func TestSuite(t *testing.T, cfg Config) {
	t.Run(`TestTranscripts`, func(t *testing.T) { TestTranscripts(t, cfg) })
	t.Run(`TestExactFour`, func(t *testing.T) { TestExactFour(t, cfg) })
	t.Run(`TestBudgetOne`, func(t *testing.T) { TestBudgetOne(t, cfg) })
	t.Run(`TestBudgetZero`, func(t *testing.T) { TestBudgetZero(t, cfg) })
	t.Run(`TestDefaults`, func(t *testing.T) { TestDefaults(t, cfg) })
	t.Run(`TestCompletionLines`, func(t *testing.T) { TestCompletionLines(t, cfg) })
	t.Run(`TestRunOnce`, func(t *testing.T) { TestRunOnce(t, cfg) })
	t.Run(`TestInvalidOptions`, func(t *testing.T) { TestInvalidOptions(t, cfg) })
	t.Run(`TestInterruptedBeforeRun`, func(t *testing.T) { TestInterruptedBeforeRun(t, cfg) })
	t.Run(`TestInterruptedDuringRun`, func(t *testing.T) { TestInterruptedDuringRun(t, cfg) })
	t.Run(`TestWriteError`, func(t *testing.T) { TestWriteError(t, cfg) })
	t.Run(`TestConcurrentInstances`, func(t *testing.T) { TestConcurrentInstances(t, cfg) })
	t.Run(`TestLogging`, func(t *testing.T) { TestLogging(t, cfg) })
}

// Run initializes and runs an implementation, returning the output, failing
// the test if it does not terminate within the timeout. The opts are applied
// after an output option, which captures the returned output.
func (x Config) Run(t testing.TB, ctx context.Context, opts ...alternator.Option) (string, error) {
	t.Helper()
	var buf SafeBuffer
	a, err := x.Factory(append([]alternator.Option{alternator.WithOutput(&buf)}, opts...)...)
	require.NoError(t, err)
	require.NotNil(t, a)
	err = x.wait(t, ctx, a)
	return buf.String(), err
}

func (x Config) wait(t testing.TB, ctx context.Context, a alternator.Alternator) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	timer := time.NewTimer(x.timeout())
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		t.Fatalf(`%s: run did not terminate within %s`, x.Name, x.timeout())
		return nil
	}
}

func (x Config) timeout() time.Duration {
	if x.Timeout > 0 {
		return x.Timeout
	}
	return 10 * time.Second
}

// TestTranscripts validates the output of normal runs, for a range of
// budgets, with each role as the first mover.
func TestTranscripts(t *testing.T, cfg Config) {
	for _, first := range [...]alternator.Role{alternator.RoleA, alternator.RoleB} {
		for _, budget := range budgets {
			t.Run(fmt.Sprintf(`%s/%d`, first, budget), func(t *testing.T) {
				defer checkNumGoroutines(time.Second * 3)(t)

				out, err := cfg.Run(t, context.Background(),
					alternator.WithBudget(budget),
					alternator.WithFirst(first),
				)
				require.NoError(t, err)

				tr, err := ParseTranscript(out)
				require.NoError(t, err)
				require.NoError(t, tr.Check(budget, first))
				require.NoError(t, tr.CheckFinished(cfg.CompletionLines))
				expectText(t, tr.FormatPrints(), Expected(budget, first))
			})
		}
	}
}

// TestExactFour validates the only possible output, for a budget of 4.
func TestExactFour(t *testing.T, cfg Config) {
	for _, tc := range [...]struct {
		first    alternator.Role
		expected string
	}{
		{alternator.RoleA, "A 1\nB 1\nA 2\nB 2\n"},
		{alternator.RoleB, "B 1\nA 1\nB 2\nA 2\n"},
	} {
		t.Run(string(tc.first), func(t *testing.T) {
			out, err := cfg.Run(t, context.Background(),
				alternator.WithBudget(4),
				alternator.WithFirst(tc.first),
				alternator.WithCompletionLines(false),
			)
			require.NoError(t, err)
			expectText(t, out, tc.expected)
		})
	}
}

// TestBudgetOne validates that only the first mover prints.
func TestBudgetOne(t *testing.T, cfg Config) {
	p := alternator.NewPrinter(&SafeBuffer{})
	a, err := cfg.Factory(
		alternator.WithBudget(1),
		alternator.WithFirst(alternator.RoleB),
		alternator.WithPrinter(p),
	)
	require.NoError(t, err)
	require.NoError(t, cfg.wait(t, context.Background(), a))
	assert.Equal(t, 1, p.Count(alternator.RoleB))
	assert.Equal(t, 0, p.Count(alternator.RoleA))
}

// TestBudgetZero validates that both workers exit without printing.
func TestBudgetZero(t *testing.T, cfg Config) {
	out, err := cfg.Run(t, context.Background(),
		alternator.WithBudget(0),
		alternator.WithCompletionLines(false),
	)
	require.NoError(t, err)
	assert.Empty(t, out)
}

// TestDefaults validates a run with no options, other than the output,
// which should be 100 prints, starting with A.
func TestDefaults(t *testing.T, cfg Config) {
	out, err := cfg.Run(t, context.Background())
	require.NoError(t, err)
	tr, err := ParseTranscript(out)
	require.NoError(t, err)
	require.NoError(t, tr.Check(alternator.DefaultBudget, alternator.RoleA))
	require.NoError(t, tr.CheckFinished(cfg.CompletionLines))
}

// TestCompletionLines validates both settings of the completion lines option.
func TestCompletionLines(t *testing.T, cfg Config) {
	for _, enabled := range [...]bool{false, true} {
		t.Run(fmt.Sprint(enabled), func(t *testing.T) {
			out, err := cfg.Run(t, context.Background(),
				alternator.WithBudget(9),
				alternator.WithCompletionLines(enabled),
			)
			require.NoError(t, err)
			tr, err := ParseTranscript(out)
			require.NoError(t, err)
			require.NoError(t, tr.Check(9, alternator.RoleA))
			require.NoError(t, tr.CheckFinished(enabled))
		})
	}
}

// TestRunOnce validates that a completed run cannot print again.
func TestRunOnce(t *testing.T, cfg Config) {
	var buf SafeBuffer
	a, err := cfg.Factory(
		alternator.WithBudget(6),
		alternator.WithOutput(&buf),
		alternator.WithCompletionLines(false),
	)
	require.NoError(t, err)
	require.NoError(t, cfg.wait(t, context.Background(), a))
	out := buf.String()
	expectText(t, out, Expected(6, alternator.RoleA))
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cfg.wait(t, context.Background(), a), alternator.ErrAlreadyRun)
	}
	assert.Equal(t, out, buf.String())
}

// TestInvalidOptions validates that the factory rejects invalid options.
func TestInvalidOptions(t *testing.T, cfg Config) {
	for _, tc := range [...]struct {
		name string
		opt  alternator.Option
	}{
		{`negative budget`, alternator.WithBudget(-1)},
		{`empty role`, alternator.WithFirst(``)},
		{`unknown role`, alternator.WithFirst(`C`)},
		{`nil output`, alternator.WithOutput(nil)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a, err := cfg.Factory(tc.opt)
			assert.Error(t, err)
			assert.Nil(t, a)
		})
	}
	t.Run(`nil option`, func(t *testing.T) {
		a, err := cfg.Factory(nil, alternator.WithOutput(&SafeBuffer{}))
		require.NoError(t, err)
		assert.NotNil(t, a)
	})
}

// TestInterruptedBeforeRun validates that a canceled context is surfaced,
// without printing.
func TestInterruptedBeforeRun(t *testing.T, cfg Config) {
	defer checkNumGoroutines(time.Second * 3)(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := cfg.Run(t, ctx, alternator.WithCompletionLines(false))
	require.ErrorIs(t, err, alternator.ErrInterrupted)
	require.ErrorIs(t, err, context.Canceled)
	var werr *alternator.WorkerError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, alternator.OpWait, werr.Op)
	assert.Empty(t, out)
}

// TestInterruptedDuringRun cancels the context while a worker is within its
// turn, which must fail both workers, without further prints.
func TestInterruptedDuringRun(t *testing.T, cfg Config) {
	defer checkNumGoroutines(time.Second * 3)(t)

	const block = 5
	w := NewBlockingWriter(block)
	defer w.Release()

	a, err := cfg.Factory(alternator.WithOutput(w), alternator.WithCompletionLines(false))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case <-w.Entered():
	case <-time.After(cfg.timeout()):
		t.Fatal(`timed out waiting for blocking write`)
	}

	cancel()
	w.Release()

	select {
	case err = <-done:
	case <-time.After(cfg.timeout()):
		t.Fatal(`run did not terminate after interruption`)
	}

	require.ErrorIs(t, err, alternator.ErrInterrupted)
	require.ErrorIs(t, err, context.Canceled)

	tr, err := ParseTranscript(w.String())
	require.NoError(t, err)
	require.NoError(t, tr.CheckPartial(alternator.RoleA))
	assert.Len(t, tr.Prints, block)
}

// TestWriteError validates that a failed print fails the run, identifying
// the worker and operation.
func TestWriteError(t *testing.T, cfg Config) {
	defer checkNumGoroutines(time.Second * 3)(t)

	errWrite := errors.New(`some write error`)
	w := &FailingWriter{Err: errWrite, Fail: 4}

	a, err := cfg.Factory(alternator.WithOutput(w))
	require.NoError(t, err)

	err = cfg.wait(t, context.Background(), a)
	require.ErrorIs(t, err, errWrite)
	var werr *alternator.WorkerError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, alternator.OpPrint, werr.Op)
	assert.Equal(t, alternator.RoleB, werr.Role)

	tr, err := ParseTranscript(w.String())
	require.NoError(t, err)
	assert.Equal(t, "A 1\nB 1\nA 2\n", tr.FormatPrints())
}

// TestConcurrentInstances validates that instances share no state.
func TestConcurrentInstances(t *testing.T, cfg Config) {
	const instances = 8
	var wg sync.WaitGroup
	wg.Add(instances)
	outputs := make([]SafeBuffer, instances)
	errs := make([]error, instances)
	alternators := make([]alternator.Alternator, instances)
	for i := range alternators {
		a, err := cfg.Factory(
			alternator.WithBudget(int64(50+i)),
			alternator.WithFirst(alternator.Roles(alternator.RoleA)[i%2]),
			alternator.WithOutput(&outputs[i]),
			alternator.WithCompletionLines(false),
		)
		require.NoError(t, err)
		alternators[i] = a
	}
	for i, a := range alternators {
		go func() {
			defer wg.Done()
			errs[i] = a.Run(context.Background())
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(cfg.timeout()):
		t.Fatal(`instances did not terminate`)
	}

	for i := range alternators {
		require.NoError(t, errs[i])
		expectText(t, outputs[i].String(), Expected(int64(50+i), alternator.Roles(alternator.RoleA)[i%2]))
	}
}

// TestLogging validates the worker lifecycle logs.
func TestLogging(t *testing.T, cfg Config) {
	var buf SafeBuffer
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(
			stumpy.WithWriter(&buf),
			stumpy.WithTimeField(``),
		),
		stumpy.L.WithLevel(logiface.LevelDebug),
	).Logger()

	_, err := cfg.Run(t, context.Background(),
		alternator.WithBudget(5),
		alternator.WithLogger(logger),
	)
	require.NoError(t, err)

	type event struct {
		Alternator string `json:"alternator"`
		Role       string `json:"role"`
		Msg        string `json:"msg"`
		Printed    any    `json:"printed"`
	}
	var events []event
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev event
		require.NoError(t, json.Unmarshal([]byte(line), &ev), line)
		assert.Equal(t, cfg.Name, ev.Alternator, line)
		events = append(events, ev)
	}

	count := func(msg, role string) (n int) {
		for _, ev := range events {
			if ev.Msg == msg && ev.Role == role {
				n++
			}
		}
		return
	}
	for _, role := range [...]string{`A`, `B`} {
		assert.Equal(t, 1, count(`worker started`, role), role)
		assert.Equal(t, 1, count(`worker exited`, role), role)
	}
	assert.Equal(t, 3, count(`turn`, `A`))
	assert.Equal(t, 2, count(`turn`, `B`))

	idx := slices.IndexFunc(events, func(ev event) bool { return ev.Msg == `worker exited` && ev.Role == `A` })
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, `3`, fmt.Sprint(events[idx].Printed))
}

func expectText(t testing.TB, actual, expected string) {
	if actual == expected {
		return
	}
	t.Helper()
	t.Errorf("unexpected value: %q\n%s", actual, unifiedTextDiff(
		`expected`,
		`actual`,
		expected,
		actual,
	))
}

func checkNumGoroutines(timeout time.Duration) func(t testing.TB) {
	before := runtime.NumGoroutine()
	return func(t testing.TB) {
		t.Helper()
		deadline := time.Now().Add(timeout)
		for {
			after := runtime.NumGoroutine()
			if after <= before {
				return
			}
			if time.Now().After(deadline) {
				t.Errorf(`goroutine leak: before=%d after=%d`, before, after)
				return
			}
			time.Sleep(time.Millisecond * 10)
		}
	}
}
