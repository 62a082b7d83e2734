package alternatortest

import (
	"testing"

	"github.com/joeycumines/go-alternator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTranscript(t *testing.T) {
	for _, tc := range [...]struct {
		name     string
		input    string
		prints   []Line
		finished []alternator.Role
		err      string
	}{
		{name: `empty`},
		{
			name:   `prints`,
			input:  "A 1\nB 1\nA 2\n",
			prints: []Line{{alternator.RoleA, 1}, {alternator.RoleB, 1}, {alternator.RoleA, 2}},
		},
		{
			name:     `completion lines`,
			input:    "B 1\nB done\nA done\n",
			prints:   []Line{{alternator.RoleB, 1}},
			finished: []alternator.Role{alternator.RoleB, alternator.RoleA},
		},
		{name: `unterminated`, input: "A 1\nB 1", err: `unterminated line: "B 1"`},
		{name: `unknown role`, input: "C 1\n", err: `line 1: malformed: "C 1"`},
		{name: `no separator`, input: "A 1\nA1\n", err: `line 2: malformed: "A1"`},
		{name: `zero count`, input: "A 0\n", err: `line 1: invalid count: "A 0"`},
		{name: `leading zero`, input: "A 01\n", err: `line 1: invalid count: "A 01"`},
		{name: `print after done`, input: "A done\nB 1\n", err: `line 2: print after completion: "B 1"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := ParseTranscript(tc.input)
			if tc.err != `` {
				assert.EqualError(t, err, tc.err)
				assert.Nil(t, tr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.prints, tr.Prints)
			assert.Equal(t, tc.finished, tr.Finished)
		})
	}
}

func TestTranscript_Check(t *testing.T) {
	for _, tc := range [...]struct {
		name   string
		input  string
		budget int64
		first  alternator.Role
		err    string
	}{
		{name: `empty`, first: alternator.RoleA},
		{name: `exact`, input: "A 1\nB 1\nA 2\nB 2\n", budget: 4, first: alternator.RoleA},
		{name: `odd first b`, input: "B 1\nA 1\nB 2\n", budget: 3, first: alternator.RoleB},
		{name: `wrong first`, input: "B 1\nA 1\n", budget: 2, first: alternator.RoleA, err: `line 1: expected first mover A: B 1`},
		{name: `consecutive`, input: "A 1\nA 2\n", budget: 2, first: alternator.RoleA, err: `line 2: consecutive prints by A: A 2`},
		{name: `skipped count`, input: "A 1\nB 2\n", budget: 2, first: alternator.RoleA, err: `line 2: expected B 1: B 2`},
		{name: `short`, input: "A 1\nB 1\n", budget: 3, first: alternator.RoleA, err: `expected 3 prints, got 2`},
		{name: `long`, input: "A 1\n", budget: 0, first: alternator.RoleA, err: `expected 0 prints, got 1`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := ParseTranscript(tc.input)
			require.NoError(t, err)
			err = tr.Check(tc.budget, tc.first)
			if tc.err != `` {
				assert.EqualError(t, err, tc.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTranscript_CheckFinished(t *testing.T) {
	tr := &Transcript{}
	assert.NoError(t, tr.CheckFinished(false))
	assert.Error(t, tr.CheckFinished(true))

	tr.Finished = []alternator.Role{alternator.RoleA, alternator.RoleB}
	assert.NoError(t, tr.CheckFinished(true))
	assert.Error(t, tr.CheckFinished(false))

	tr.Finished = []alternator.Role{alternator.RoleA, alternator.RoleA}
	assert.Error(t, tr.CheckFinished(true))
}

func TestExpected(t *testing.T) {
	assert.Equal(t, ``, Expected(0, alternator.RoleA))
	assert.Equal(t, "B 1\n", Expected(1, alternator.RoleB))
	assert.Equal(t, "A 1\nB 1\nA 2\nB 2\nA 3\n", Expected(5, alternator.RoleA))

	tr, err := ParseTranscript(Expected(100, alternator.RoleB))
	require.NoError(t, err)
	require.NoError(t, tr.Check(100, alternator.RoleB))
	assert.Equal(t, 50, tr.Count(alternator.RoleA))
	assert.Equal(t, Expected(100, alternator.RoleB), tr.FormatPrints())
}

func TestUnifiedTextDiff(t *testing.T) {
	diff := unifiedTextDiff(`a`, `b`, "A 1\nB 1\n", "A 1\nA 2\n")
	assert.Contains(t, diff, "--- a\n+++ b\n")
	assert.Contains(t, diff, "\n-B 1\n+A 2\n")
	assert.Empty(t, unifiedTextDiff(`a`, `b`, "A 1\n", "A 1\n"))
}

func TestBlockingWriter(t *testing.T) {
	w := NewBlockingWriter(2)
	_, err := w.Write([]byte(`a`))
	require.NoError(t, err)
	select {
	case <-w.Entered():
		t.Fatal(`unexpected entered`)
	default:
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = w.Write([]byte(`b`))
	}()
	<-w.Entered()
	assert.Equal(t, `a`, w.String())
	w.Release()
	w.Release()
	<-done
	assert.Equal(t, `ab`, w.String())
}
