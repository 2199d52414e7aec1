package rules

import (
	"sniff/internal/check"
	"sniff/internal/stream"
	"sniff/internal/token"
)

var scopeOrderExempt = map[string]bool{
	"__construct": true,
	"setUp":       true,
	"tearDown":    true,
}

// scopeOrder requires method visibility ranks to be non-decreasing.
type scopeOrder struct{}

func (scopeOrder) Kinds() []token.Kind {
	return []token.Kind{token.Class, token.Interface}
}

func (scopeOrder) Process(ctx *check.Context, pos int) error {
	s := ctx.Stream
	previous := -1
	for _, fn := range memberFunctions(s, pos) {
		if s.ParenOpener(fn) == stream.NotFound {
			continue
		}
		mod := visibilityOf(s, fn)
		name := s.DeclarationName(fn)
		if mod == stream.NotFound || name == "" || scopeOrderExempt[name] {
			continue
		}
		current := visibilityRank[s.At(mod).Kind]
		if previous >= 0 && current < previous {
			ctx.AddError(mod, "Invalid", "Declare public methods first, then protected ones and finally private ones")
		}
		previous = current
	}
	return nil
}
