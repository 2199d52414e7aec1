// Package check defines the contract every style rule implements and the
// Context the engine hands to it.
package check

import (
	"sniff/internal/diag"
	"sniff/internal/stream"
	"sniff/internal/token"
)

// Check is one style rule. Process is called for every token whose kind is
// listed by Kinds. An empty Kinds list means the check runs once per file
// at index 0, dispatched under token.StartOfFile.
//
// Process must not mutate the stream. It reports through ctx and may
// propose changesets through ctx.Fixer(); a changeset that loses a conflict
// is silently dropped, so a check never assumes its edit landed.
type Check interface {
	Kinds() []token.Kind
	Process(ctx *Context, pos int) error
}

// FileStarter is implemented by checks that keep per-file state.
// BeginFile runs before the first Process call of every pass.
type FileStarter interface {
	BeginFile(s *stream.Stream)
}

// Definition is the registration record of a check.
type Definition struct {
	ID          string // "<Category>.<Name>"
	Description string
	Severity    diag.Severity // default severity of its findings
	Fixable     bool
	Factory     func() Check
}

// Instance pairs a definition with a fresh check value.
type Instance struct {
	Def   *Definition
	Check Check
}

// New creates an instance with its own state.
func (d *Definition) New() Instance {
	return Instance{Def: d, Check: d.Factory()}
}

// Instantiate creates fresh instances for every definition, preserving order.
func Instantiate(defs []*Definition) []Instance {
	out := make([]Instance, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.New())
	}
	return out
}
