package lexer

import (
	"fmt"

	"sniff/internal/source"
)

// Reporter: тонкий интерфейс, чтобы не тянуть diag сюда.
type Reporter interface {
	Report(span source.Span, msg string)
}

// Options configures a Lexer.
type Options struct {
	Reporter Reporter // может быть nil, тогда ошибки только копятся в Errors
	// MaxTokens aborts tokenization once exceeded; 0 means unlimited.
	MaxTokens int
}

// Error describes a lexical problem at a span.
type Error struct {
	Span source.Span
	Pos  source.LineCol
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

func (lx *Lexer) report(sp source.Span, msg string) {
	lx.errs = append(lx.errs, &Error{Span: sp, Pos: lx.file.Position(sp.Start), Msg: msg})
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(sp, msg)
	}
}
