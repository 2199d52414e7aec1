package engine

import (
	"sniff/internal/diag"
	"sniff/internal/observ"
	"sniff/internal/source"
	"sniff/internal/token"
	"sniff/internal/trace"
)

// DefaultMaxPasses bounds iterative fixing when Options.MaxPasses is 0.
const DefaultMaxPasses = 50

// Tokenizer is the host collaborator that turns one file version into tokens.
type Tokenizer interface {
	Tokenize(file *source.File) ([]token.Token, error)
}

// Options is the opaque configuration surface of a pass.
type Options struct {
	// Enabled filters checks by ID; nil enables everything passed in.
	Enabled func(id string) bool
	// Severity overrides the severity reported by a check.
	Severity map[string]diag.Severity
	// Fix enables changeset collection.
	Fix bool
	// MaxPasses bounds Fix; 0 means DefaultMaxPasses.
	MaxPasses int
	// MaxViolations caps the report per file; 0 means unlimited.
	MaxViolations int

	Tracer trace.Tracer
	// ParentSpan parents the pass and analyze spans; Fix falls back to
	// trace.ParentFrom(ctx) when it is 0.
	ParentSpan uint64
	Timer      *observ.Timer
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}

func (o Options) maxPasses() int {
	if o.MaxPasses <= 0 {
		return DefaultMaxPasses
	}
	return o.MaxPasses
}

func (o Options) enabled(id string) bool {
	return o.Enabled == nil || o.Enabled(id)
}

// EnabledSet builds an Enabled filter from an explicit list of IDs.
func EnabledSet(ids ...string) func(string) bool {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(id string) bool {
		_, ok := set[id]
		return ok
	}
}
