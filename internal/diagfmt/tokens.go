package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"sniff/internal/source"
	"sniff/internal/token"
)

type TokenOutput struct {
	Index int         `json:"index"`
	Kind  string      `json:"kind"`
	Text  string      `json:"text"`
	Line  uint32      `json:"line"`
	Col   uint32      `json:"col"`
	Span  source.Span `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%4d: %-28s %q at %d:%d [%d,%d)\n",
			i, tok.Kind.Name(), tok.Text, tok.Line, tok.Col, tok.Span.Start, tok.Span.End); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for i, tok := range tokens {
		output = append(output, TokenOutput{
			Index: i,
			Kind:  tok.Kind.Name(),
			Text:  tok.Text,
			Line:  tok.Line,
			Col:   tok.Col,
			Span:  tok.Span,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
