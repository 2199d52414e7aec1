package rules

import (
	"sniff/internal/check"
	"sniff/internal/stream"
	"sniff/internal/token"
)

// methodScope requires every named class method to carry a visibility
// modifier on its own line.
type methodScope struct{}

func (methodScope) Kinds() []token.Kind { return []token.Kind{token.Function} }

func (methodScope) Process(ctx *check.Context, pos int) error {
	s := ctx.Stream
	if _, owner := s.EnclosingOwner(pos); owner != token.Class {
		return nil
	}
	name := s.DeclarationName(pos)
	if name == "" {
		return nil
	}
	mod := s.FindPrevious(token.ScopeModifiers, pos-1, -1, stream.Include)
	if mod == stream.NotFound || s.At(mod).Line != s.At(pos).Line {
		ctx.AddError(pos, "Missing", `No scope modifier specified for function "%s"`, name)
	}
	return nil
}
