package token

import (
	"sniff/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line uint32 // 1-based line of the first byte
	Col  uint32 // 1-based column of the first byte
}

// IsEmpty reports whether the token is whitespace or a comment.
func (t Token) IsEmpty() bool { return t.Kind.IsEmpty() }

// EndsLine reports whether the token text terminates its line.
func (t Token) EndsLine() bool {
	return len(t.Text) > 0 && t.Text[len(t.Text)-1] == '\n'
}

// LastLine returns the line of the token's last byte (block comments span lines).
func (t Token) LastLine() uint32 {
	line := t.Line
	for i := 0; i < len(t.Text)-1; i++ {
		if t.Text[i] == '\n' {
			line++
		}
	}
	return line
}
