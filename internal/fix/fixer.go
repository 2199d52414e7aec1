package fix

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChangeset is returned by End/Rollback when nothing is open.
	ErrNoChangeset = errors.New("no open changeset")
	// ErrChangesetOpen is returned by Begin when a changeset is already open.
	ErrChangesetOpen = errors.New("changeset already open")
)

// State of the per-pass commit protocol.
type State uint8

const (
	Idle State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "idle"
}

// Fixer accumulates changesets for one pass over a stream of n tokens.
//
// Idle -> Begin -> Open -> End -> (committed | discarded) -> Idle.
// Edit calls made while Idle form an implicit single-edit changeset.
type Fixer struct {
	ledger    ledger
	owner     string
	state     State
	open      Changeset
	committed []Changeset
	discarded []Discard
}

// NewFixer creates a fixer for a stream of n tokens.
func NewFixer(n int) *Fixer {
	return &Fixer{ledger: ledger{limit: n}}
}

// SetOwner sets the rule credited with subsequent changesets.
func (f *Fixer) SetOwner(rule string) { f.owner = rule }

func (f *Fixer) Owner() string { return f.owner }

func (f *Fixer) State() State { return f.state }

// Begin opens a changeset.
func (f *Fixer) Begin() error {
	if f.state == Open {
		return fmt.Errorf("%s: %w", f.owner, ErrChangesetOpen)
	}
	f.state = Open
	f.open = Changeset{Owner: f.owner}
	return nil
}

// Add appends an edit to the open changeset, or commits it on its own
// when no changeset is open. The bool reports whether the edit was
// committed immediately; inside a changeset it is always false.
func (f *Fixer) Add(e Edit) bool {
	if f.state == Open {
		f.open.Edits = append(f.open.Edits, e)
		return false
	}
	return f.Propose(NewChangeset(f.owner, e))
}

func (f *Fixer) Replace(start, end int, text string) bool {
	return f.Add(ReplaceRange(start, end, text))
}

func (f *Fixer) ReplaceToken(i int, text string) bool {
	return f.Add(ReplaceToken(i, text))
}

func (f *Fixer) InsertBefore(i int, text string) bool {
	return f.Add(InsertText(i, text))
}

func (f *Fixer) InsertAfter(i int, text string) bool {
	return f.Add(InsertAfter(i, text))
}

func (f *Fixer) Delete(start, end int) bool {
	return f.Add(DeleteRange(start, end))
}

// End closes the open changeset and tries to commit it.
func (f *Fixer) End() (bool, error) {
	if f.state != Open {
		return false, fmt.Errorf("%s: %w", f.owner, ErrNoChangeset)
	}
	cs := f.open
	f.open = Changeset{}
	f.state = Idle
	return f.Propose(cs), nil
}

// Rollback drops the open changeset without recording it.
func (f *Fixer) Rollback() error {
	if f.state != Open {
		return ErrNoChangeset
	}
	f.open = Changeset{}
	f.state = Idle
	return nil
}

// Abort discards a changeset left open by a failed check.
func (f *Fixer) Abort() {
	if f.state != Open {
		return
	}
	f.discarded = append(f.discarded, Discard{Owner: f.open.Owner, Edits: f.open.Edits, Reason: SkipAborted})
	f.open = Changeset{}
	f.state = Idle
}

// Propose submits a complete changeset.
func (f *Fixer) Propose(cs Changeset) bool {
	if cs.Owner == "" {
		cs.Owner = f.owner
	}
	if d, ok := f.ledger.admit(cs); !ok {
		f.discarded = append(f.discarded, d)
		return false
	}
	f.committed = append(f.committed, cs)
	return true
}

// Committed returns changesets in commit order.
func (f *Fixer) Committed() []Changeset { return f.committed }

// Edits returns all committed edits in commit order.
func (f *Fixer) Edits() []Edit { return Flatten(f.committed) }

// Discarded returns changesets that did not land, in proposal order.
func (f *Fixer) Discarded() []Discard { return f.discarded }

// HasEdits reports whether anything was committed.
func (f *Fixer) HasEdits() bool { return len(f.committed) > 0 }
