package diagfmt

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultDiffContext is the number of unchanged lines around each hunk.
const DefaultDiffContext = 3

// Diff returns a unified diff turning before into after, or "" when they
// are equal. Paths get the usual a/ and b/ prefixes.
func Diff(path, before, after string, context int) (string, error) {
	if before == after {
		return "", nil
	}
	if context <= 0 {
		context = DefaultDiffContext
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(before),
		B:        splitLinesKeepNL(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  context,
	}
	return difflib.GetUnifiedDiffString(u)
}

// splitLinesKeepNL keeps "\n" on every line; a final line without one
// gets a marker so hunks stay line-aligned.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] = last + "\n\\ No newline at end of file\n"
	}
	return lines
}
