package rules

import (
	"sniff/internal/check"
	"sniff/internal/fix"
	"sniff/internal/token"
)

// blankLineBeforeReturn wants an empty line before return, except right
// after a block opener or a case label.
type blankLineBeforeReturn struct{}

func (blankLineBeforeReturn) Kinds() []token.Kind { return []token.Kind{token.Return} }

func (blankLineBeforeReturn) Process(ctx *check.Context, pos int) error {
	s := ctx.Stream
	line := s.At(pos).Line
	if line <= 1 {
		return nil
	}
	prevLine := line - 1

	// последний значимый токен предыдущей строки
	last := token.Invalid
	for i := pos - 1; i >= 0; i-- {
		t := s.At(i)
		if t.LastLine() < prevLine {
			break
		}
		if t.LastLine() == prevLine && !t.IsEmpty() {
			last = t.Kind
			break
		}
	}
	switch last {
	case token.Invalid, token.OpenCurly, token.Colon:
		return nil
	}
	if ctx.AddFixableError(pos, "missingBlankLine", "Missing blank line before return statement") {
		ctx.Fix(pos, fix.InsertText(s.FirstOnLine(pos), "\n"))
	}
	return nil
}
