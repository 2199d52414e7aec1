package fix

import (
	"fmt"
)

// Changeset is an ordered group of edits proposed atomically by one check.
type Changeset struct {
	Owner string
	Edits []Edit
}

// NewChangeset builds a changeset for owner.
func NewChangeset(owner string, edits ...Edit) Changeset {
	return Changeset{Owner: owner, Edits: edits}
}

// SkipReason explains why a changeset did not land.
type SkipReason uint8

const (
	SkipConflict SkipReason = iota + 1 // overlaps an earlier committed changeset
	SkipInvalid                        // range outside the stream or self-overlapping
	SkipAborted                        // owner failed before ending the changeset
	SkipEmpty                          // no edits
)

func (r SkipReason) String() string {
	switch r {
	case SkipConflict:
		return "conflict"
	case SkipInvalid:
		return "invalid"
	case SkipAborted:
		return "aborted"
	case SkipEmpty:
		return "empty"
	}
	return "unknown"
}

// Discard records a changeset that was not committed.
type Discard struct {
	Owner  string
	Edits  []Edit
	Reason SkipReason
	// Conflict is the committed range the changeset collided with.
	Conflict Range
	// ConflictOwner is the rule that committed Conflict.
	ConflictOwner string
}

func (d Discard) String() string {
	if d.Reason == SkipConflict {
		return fmt.Sprintf("%s: %s with %s at %s", d.Owner, d.Reason, d.ConflictOwner, d.Conflict)
	}
	return fmt.Sprintf("%s: %s", d.Owner, d.Reason)
}

type committedRange struct {
	r     Range
	owner string
}

// ledger holds ranges committed so far in one pass.
type ledger struct {
	limit  int
	ranges []committedRange
}

// admit tries to commit cs. On success the ranges are recorded.
func (l *ledger) admit(cs Changeset) (Discard, bool) {
	d := Discard{Owner: cs.Owner, Edits: cs.Edits}
	if len(cs.Edits) == 0 {
		d.Reason = SkipEmpty
		return d, false
	}
	for i, e := range cs.Edits {
		if e.Range.Start < 0 || e.Range.End < e.Range.Start || e.Range.End > l.limit {
			d.Reason = SkipInvalid
			return d, false
		}
		for _, other := range cs.Edits[:i] {
			if rangesConflict(e.Range, other.Range) {
				d.Reason = SkipInvalid
				return d, false
			}
		}
	}
	for _, e := range cs.Edits {
		for _, c := range l.ranges {
			if rangesConflict(e.Range, c.r) {
				d.Reason = SkipConflict
				d.Conflict = c.r
				d.ConflictOwner = c.owner
				return d, false
			}
		}
	}
	for _, e := range cs.Edits {
		l.ranges = append(l.ranges, committedRange{r: e.Range, owner: cs.Owner})
	}
	return Discard{}, true
}

// Resolve is the deterministic reducer: proposals are admitted in order,
// each against everything admitted before it. limit is the token count.
func Resolve(limit int, proposals []Changeset) (committed []Changeset, discarded []Discard) {
	l := ledger{limit: limit}
	for _, cs := range proposals {
		if d, ok := l.admit(cs); !ok {
			discarded = append(discarded, d)
			continue
		}
		committed = append(committed, cs)
	}
	return committed, discarded
}

// Flatten returns all edits of the changesets in commit order.
func Flatten(css []Changeset) []Edit {
	var out []Edit
	for _, cs := range css {
		out = append(out, cs.Edits...)
	}
	return out
}
