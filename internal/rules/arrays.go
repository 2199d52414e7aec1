package rules

import (
	"sniff/internal/check"
	"sniff/internal/fix"
	"sniff/internal/stream"
	"sniff/internal/token"
)

// multiLineArrayComma requires a comma after the last item of an array
// whose closer sits on another line than its opener.
type multiLineArrayComma struct{}

func (multiLineArrayComma) Kinds() []token.Kind {
	return []token.Kind{token.Array, token.OpenShortArray}
}

func (multiLineArrayComma) Process(ctx *check.Context, pos int) error {
	s := ctx.Stream
	open, closer := pos, s.MatchingClose(pos)
	if s.At(pos).Kind == token.Array {
		open, closer = s.ParenOpener(pos), s.ParenCloser(pos)
	}
	if closer == stream.NotFound {
		return nil
	}
	if s.At(pos).Line == s.At(closer).Line {
		return nil
	}
	last := s.PrevContent(closer - 1)
	if last == open || s.At(last).Kind == token.Comma {
		return nil
	}
	if ctx.AddFixableError(pos, "Invalid", "Add a comma after each item in a multi-line array") {
		ctx.Fix(pos, fix.InsertAfter(last, ","))
	}
	return nil
}
