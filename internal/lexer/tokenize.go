package lexer

import (
	"sniff/internal/source"
	"sniff/internal/token"
)

// Tokenize is a convenience wrapper around New(...).All().
func Tokenize(file *source.File) ([]token.Token, error) {
	return New(file, Options{}).All()
}

// Tokenizer adapts the lexer to the engine's tokenizer hook.
type Tokenizer struct {
	Opts Options
}

func (t Tokenizer) Tokenize(file *source.File) ([]token.Token, error) {
	return New(file, t.Opts).All()
}
