package fix

import (
	"sort"
	"strings"

	"sniff/internal/token"
)

// TokenSource is the read-only view Apply needs; *stream.Stream satisfies it.
type TokenSource interface {
	Len() int
	At(i int) token.Token
}

// Apply re-serializes src with edits applied. Edits must be conflict-free,
// as produced by Fixer or Resolve. Insertions at the same index keep their
// commit order.
func Apply(src TokenSource, edits []Edit) string {
	ordered := make([]Edit, len(edits))
	copy(ordered, edits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Range.Start < ordered[j].Range.Start
	})

	var b strings.Builder
	n := src.Len()
	k := 0
	for i := 0; i < n; {
		replaced := false
		for k < len(ordered) && ordered[k].Range.Start == i {
			e := ordered[k]
			k++
			b.WriteString(e.Text)
			if !e.Range.Empty() {
				i = e.Range.End
				replaced = true
				break
			}
		}
		if replaced {
			continue
		}
		b.WriteString(src.At(i).Text)
		i++
	}
	for ; k < len(ordered); k++ {
		b.WriteString(ordered[k].Text)
	}
	return b.String()
}
