package stream

import (
	"fmt"

	"sniff/internal/token"
)

// MalformedError reports unbalanced structural tokens. Analysis of the file
// stops at the first one.
type MalformedError struct {
	Path string
	Pos  int // token index, or -1 when the stream ended early
	Line uint32
	Col  uint32
	Kind token.Kind
	Msg  string
}

func (e *MalformedError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s: malformed input: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: malformed input: %s (%s)", e.Path, e.Line, e.Col, e.Msg, e.Kind)
}
