package fix

import (
	"fmt"
)

// Range is a half-open interval [Start, End) of token indices.
type Range struct {
	Start int
	End   int
}

// Empty reports whether the range is a pure insertion point.
func (r Range) Empty() bool { return r.Start == r.End }

func (r Range) String() string {
	if r.Empty() {
		return fmt.Sprintf("@%d", r.Start)
	}
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Edit replaces the tokens in Range with Text.
type Edit struct {
	Range Range
	Text  string
}

func (e Edit) String() string {
	return fmt.Sprintf("%s %q", e.Range, e.Text)
}

// rangesConflict reports whether two ranges overlap.
// Two insertions never conflict. An insertion conflicts with a non-empty
// range when Start <= pos < End. Two non-empty ranges conflict on any overlap.
func rangesConflict(a, b Range) bool {
	if a.Empty() && b.Empty() {
		return false
	}
	if a.Empty() {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.Empty() {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}
