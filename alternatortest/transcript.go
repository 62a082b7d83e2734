package alternatortest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/joeycumines/go-alternator"
)

type (
	// Transcript models parsed output, split into print lines and completion
	// lines (which must follow all print lines).
	Transcript struct {
		Prints   []Line
		Finished []alternator.Role
	}

	// Line models a single "<role> <n>" print line.
	Line struct {
		Role alternator.Role
		N    int
	}
)

// String formats the line as it would be printed, sans newline.
func (x Line) String() string {
	return fmt.Sprintf(`%s %d`, x.Role, x.N)
}

// ParseTranscript parses output. Every line must be newline terminated.
func ParseTranscript(s string) (*Transcript, error) {
	var t Transcript
	if s == `` {
		return &t, nil
	}
	if !strings.HasSuffix(s, "\n") {
		return nil, fmt.Errorf(`unterminated line: %q`, s[strings.LastIndexByte(s, '\n')+1:])
	}
	for i, v := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		role, rest, ok := strings.Cut(v, ` `)
		if !ok || !alternator.Role(role).Valid() {
			return nil, fmt.Errorf(`line %d: malformed: %q`, i+1, v)
		}
		if rest == `done` {
			t.Finished = append(t.Finished, alternator.Role(role))
			continue
		}
		if len(t.Finished) != 0 {
			return nil, fmt.Errorf(`line %d: print after completion: %q`, i+1, v)
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 || strconv.Itoa(n) != rest {
			return nil, fmt.Errorf(`line %d: invalid count: %q`, i+1, v)
		}
		t.Prints = append(t.Prints, Line{Role: alternator.Role(role), N: n})
	}
	return &t, nil
}

// Count returns the number of prints by role.
func (x *Transcript) Count(role alternator.Role) (count int) {
	for _, v := range x.Prints {
		if v.Role == role {
			count++
		}
	}
	return
}

// Check validates the properties that must hold for any transcript of a run
// with the given budget and first mover, that completed normally.
func (x *Transcript) Check(budget int64, first alternator.Role) error {
	if err := x.CheckPartial(first); err != nil {
		return err
	}
	if int64(len(x.Prints)) != budget {
		return fmt.Errorf(`expected %d prints, got %d`, budget, len(x.Prints))
	}
	if c, want := x.Count(first), int((budget+1)/2); c != want {
		return fmt.Errorf(`expected %d prints by %s, got %d`, want, first, c)
	}
	if c, want := x.Count(first.Peer()), int(budget/2); c != want {
		return fmt.Errorf(`expected %d prints by %s, got %d`, want, first.Peer(), c)
	}
	return nil
}

// CheckPartial validates the properties that must hold for any prefix of a
// transcript, e.g. an interrupted run: the first mover, strict alternation,
// and per-role counters increasing by one, from one.
func (x *Transcript) CheckPartial(first alternator.Role) error {
	next := map[alternator.Role]int{alternator.RoleA: 1, alternator.RoleB: 1}
	for i, v := range x.Prints {
		switch {
		case i == 0 && v.Role != first:
			return fmt.Errorf(`line %d: expected first mover %s: %s`, i+1, first, v)
		case i != 0 && v.Role == x.Prints[i-1].Role:
			return fmt.Errorf(`line %d: consecutive prints by %s: %s`, i+1, v.Role, v)
		case v.N != next[v.Role]:
			return fmt.Errorf(`line %d: expected %s %d: %s`, i+1, v.Role, next[v.Role], v)
		}
		next[v.Role]++
	}
	return nil
}

// CheckFinished validates the completion lines, which must include each role
// exactly once, if enabled, or be absent.
func (x *Transcript) CheckFinished(enabled bool) error {
	if !enabled {
		if len(x.Finished) != 0 {
			return fmt.Errorf(`unexpected completion lines: %q`, x.Finished)
		}
		return nil
	}
	if len(x.Finished) != 2 || x.Finished[0] == x.Finished[1] {
		return fmt.Errorf(`expected one completion line per role: %q`, x.Finished)
	}
	return nil
}

// Expected returns the exact print lines of a normal run.
func Expected(budget int64, first alternator.Role) string {
	roles := alternator.Roles(first)
	var b strings.Builder
	for i := int64(0); i < budget; i++ {
		b.WriteString(Line{Role: roles[i%2], N: int(i/2) + 1}.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatPrints returns the print lines of the transcript, as they were
// printed.
func (x *Transcript) FormatPrints() string {
	var b strings.Builder
	for _, v := range x.Prints {
		b.WriteString(v.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func unifiedTextDiff(aName, bName, aText, bText string) string {
	return fmt.Sprint(gotextdiff.ToUnified(
		aName,
		bName,
		aText,
		myers.ComputeEdits(span.URIFromPath(aName), aText, bText),
	))
}
