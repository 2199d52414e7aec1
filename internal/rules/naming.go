package rules

import (
	"strings"

	"sniff/internal/check"
	"sniff/internal/stream"
	"sniff/internal/token"
)

var (
	classLikeSet = token.NewKindSet(token.Class, token.Interface, token.Trait)
	qualifiedSet = token.NewKindSet(token.String, token.Backslash)
)

// declaredName returns the identifier right after a class-like keyword;
// empty for anonymous classes.
func declaredName(s *stream.Stream, kw int) string {
	n := s.NextContent(kw + 1)
	if s.Kind(n) != token.String {
		return ""
	}
	return s.At(n).Text
}

// qualifiedTail returns the last segment of the (possibly qualified) name
// starting at the first content token after i.
func qualifiedTail(s *stream.Stream, i int) string {
	n := s.NextContent(i + 1)
	name := ""
	for ; n != stream.NotFound && n < s.Len() && qualifiedSet.Has(s.Kind(n)); n++ {
		if s.Kind(n) == token.String {
			name = s.At(n).Text
		}
	}
	return name
}

// validClassName enforces Interface, Trait and Exception name suffixes.
type validClassName struct{}

func (validClassName) Kinds() []token.Kind {
	return []token.Kind{token.Interface, token.Trait, token.Extends}
}

func (validClassName) Process(ctx *check.Context, pos int) error {
	s := ctx.Stream
	switch s.At(pos).Kind {
	case token.Interface:
		if name := declaredName(s, pos); name != "" && !strings.HasSuffix(name, "Interface") {
			ctx.AddError(pos, "InvalidInterfaceName", `Interface name is not suffixed with "Interface"`)
		}
	case token.Trait:
		if name := declaredName(s, pos); name != "" && !strings.HasSuffix(name, "Trait") {
			ctx.AddError(pos, "InvalidTraitName", `Trait name is not suffixed with "Trait"`)
		}
	case token.Extends:
		parent := qualifiedTail(s, pos)
		if !strings.HasSuffix(parent, "Exception") {
			return nil
		}
		decl := s.FindPrevious(classLikeSet, pos-1, -1, stream.Include)
		if s.Kind(decl) != token.Class {
			return nil
		}
		if name := declaredName(s, decl); name != "" && !strings.HasSuffix(name, "Exception") {
			ctx.AddError(pos, "InvalidExceptionName", `Exception name is not suffixed with "Exception"`)
		}
	}
	return nil
}
