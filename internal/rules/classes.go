package rules

import (
	"sniff/internal/check"
	"sniff/internal/stream"
	"sniff/internal/token"
)

// multipleClassesOneFile counts class declarations per file.
type multipleClassesOneFile struct {
	count int
}

func (*multipleClassesOneFile) Kinds() []token.Kind { return []token.Kind{token.Class} }

func (c *multipleClassesOneFile) BeginFile(*stream.Stream) { c.count = 0 }

func (c *multipleClassesOneFile) Process(ctx *check.Context, pos int) error {
	// анонимный класс (new class {}) не считается
	if prev := ctx.Stream.PrevContent(pos - 1); prev != stream.NotFound && ctx.Stream.At(prev).Kind == token.New {
		return nil
	}
	c.count++
	if c.count > 1 {
		ctx.AddError(pos, "multipleClassesOneFile", "Multiple classes defined in a single file")
	}
	return nil
}

// токены между модификатором и именем свойства: static, readonly, тип
var propertyPrefix = token.EmptyTokens.Union(token.NewKindSet(
	token.Static, token.Question, token.String, token.Backslash,
	token.BitwiseOr, token.BitwiseAnd, token.Null, token.False, token.True,
))

// propertyDeclaration reports properties declared after the first method.
type propertyDeclaration struct{}

func (propertyDeclaration) Kinds() []token.Kind { return []token.Kind{token.Class} }

func (propertyDeclaration) Process(ctx *check.Context, pos int) error {
	s := ctx.Stream
	open := s.ScopeOpener(pos)
	if open == stream.NotFound {
		return nil
	}
	end := s.MatchingClose(open)
	first := s.FindNext(functionSet, open+1, end, stream.Include)
	if first == stream.NotFound {
		return nil
	}
	for m := s.FindNext(token.ScopeModifiers, first+1, end, stream.Include); m != stream.NotFound; m = s.FindNext(token.ScopeModifiers, m+1, end, stream.Include) {
		if s.Enclosing(m) != open {
			continue
		}
		// promoted constructor parameter
		if prev := s.PrevContent(m - 1); s.Kind(prev) == token.OpenParen || s.Kind(prev) == token.Comma {
			continue
		}
		next := s.FindNext(propertyPrefix, m+1, end, stream.Exclude)
		if s.Kind(next) == token.Variable {
			ctx.AddError(m, "Invalid", "Declare class properties before methods")
		}
	}
	return nil
}
