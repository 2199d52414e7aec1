package stream

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"sniff/internal/source"
	"sniff/internal/token"
)

// NotFound is returned by navigation queries that match nothing.
const NotFound = -1

const none int32 = -1

// Stream is an immutable, indexable token sequence with precomputed pairs.
type Stream struct {
	File   *source.File
	tokens []token.Token

	match       []int32 // bracket partner
	scopeOpener []int32 // owner keyword -> '{'
	scopeOwner  []int32 // '{' -> owner keyword
	parenOpener []int32 // function/closure/array -> '('
	enclosing   []int32 // innermost '{' containing the token
}

// Build pairs every opener with its closer and resolves scope owners.
// Unbalanced input yields *MalformedError.
func Build(file *source.File, toks []token.Token) (*Stream, error) {
	if _, err := safecast.Conv[int32](len(toks)); err != nil {
		return nil, fmt.Errorf("too many tokens: %w", err)
	}
	n := len(toks)
	s := &Stream{
		File:        file,
		tokens:      toks,
		match:       filled(n),
		scopeOpener: filled(n),
		scopeOwner:  filled(n),
		parenOpener: filled(n),
		enclosing:   filled(n),
	}
	if err := s.pairBrackets(); err != nil {
		return nil, err
	}
	s.resolveOwners()
	return s, nil
}

func filled(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = none
	}
	return out
}

func (s *Stream) path() string {
	if s.File == nil {
		return "<memory>"
	}
	return s.File.Path
}

func (s *Stream) malformed(pos int, msg string) *MalformedError {
	e := &MalformedError{Path: s.path(), Pos: pos, Msg: msg}
	if pos >= 0 {
		t := s.tokens[pos]
		e.Line, e.Col, e.Kind = t.Line, t.Col, t.Kind
	}
	return e
}

func (s *Stream) pairBrackets() error {
	var stack []int32
	curly := none
	var curlyStack []int32
	for i, t := range s.tokens {
		// #nosec G115 -- len(tokens) checked in Build
		idx := int32(i)
		s.enclosing[i] = curly
		switch {
		case t.Kind.IsOpener():
			stack = append(stack, idx)
			if t.Kind == token.OpenCurly {
				curlyStack = append(curlyStack, curly)
				curly = idx
			}
		case t.Kind.IsCloser():
			if len(stack) == 0 {
				return s.malformed(i, "unexpected closer")
			}
			open := stack[len(stack)-1]
			if s.tokens[open].Kind.Closer() != t.Kind {
				return s.malformed(i, fmt.Sprintf("closer does not match %s at line %d",
					s.tokens[open].Kind, s.tokens[open].Line))
			}
			stack = stack[:len(stack)-1]
			s.match[open] = idx
			s.match[i] = open
			if t.Kind == token.CloseCurly {
				// закрывающая скобка принадлежит внешнему блоку
				curly = curlyStack[len(curlyStack)-1]
				curlyStack = curlyStack[:len(curlyStack)-1]
				s.enclosing[i] = curly
			}
		}
	}
	if len(stack) > 0 {
		return s.malformed(int(stack[len(stack)-1]), "unclosed opener")
	}
	return nil
}

func (s *Stream) resolveOwners() {
	for i, t := range s.tokens {
		switch t.Kind {
		case token.Function, token.Closure, token.Array:
			if p := s.findParen(i); p != NotFound {
				// #nosec G115 -- bounded by len(tokens)
				s.parenOpener[i] = int32(p)
			}
		}
		if !t.Kind.IsScopeOwner() {
			continue
		}
		if c := s.findScopeCurly(i); c != NotFound {
			// #nosec G115 -- bounded by len(tokens)
			s.scopeOpener[i] = int32(c)
			// #nosec G115 -- bounded by len(tokens)
			s.scopeOwner[c] = int32(i)
		}
	}
}

func (s *Stream) findParen(owner int) int {
	if s.tokens[owner].Kind == token.Array {
		next := s.NextContent(owner + 1)
		if next != NotFound && s.tokens[next].Kind == token.OpenParen {
			return next
		}
		return NotFound
	}
	for i := owner + 1; i < len(s.tokens); i++ {
		switch s.tokens[i].Kind {
		case token.OpenParen:
			return i
		case token.OpenCurly, token.Semicolon:
			return NotFound
		}
	}
	return NotFound
}

// findScopeCurly finds the '{' opening the body of a scope owner.
func (s *Stream) findScopeCurly(owner int) int {
	isFunc := s.tokens[owner].Kind == token.Function || s.tokens[owner].Kind == token.Closure
	for i := owner + 1; i < len(s.tokens); i++ {
		k := s.tokens[i].Kind
		switch {
		case k == token.OpenCurly:
			return i
		case k == token.OpenParen:
			if m := s.match[i]; m != none {
				i = int(m)
			}
		case k == token.Semicolon, k.IsCloser():
			return NotFound
		case k == token.Colon && !isFunc:
			return NotFound
		case k.IsScopeOwner() && k != token.Closure:
			// else if (...) {: скобка принадлежит if
			return NotFound
		}
	}
	return NotFound
}

// Len returns the number of tokens.
func (s *Stream) Len() int { return len(s.tokens) }

// At returns the token at index i.
func (s *Stream) At(i int) token.Token { return s.tokens[i] }

// Kind returns the kind at index i, or token.Invalid when out of range.
func (s *Stream) Kind(i int) token.Kind {
	if i < 0 || i >= len(s.tokens) {
		return token.Invalid
	}
	return s.tokens[i].Kind
}

// Tokens exposes the underlying slice. Callers must not modify it.
func (s *Stream) Tokens() []token.Token { return s.tokens }

func (s *Stream) link(arr []int32, i int) int {
	if i < 0 || i >= len(arr) || arr[i] == none {
		return NotFound
	}
	return int(arr[i])
}

// MatchingClose returns the closer paired with opener i.
func (s *Stream) MatchingClose(i int) int {
	if !s.Kind(i).IsOpener() {
		return NotFound
	}
	return s.link(s.match, i)
}

// MatchingOpen returns the opener paired with closer i.
func (s *Stream) MatchingOpen(i int) int {
	if !s.Kind(i).IsCloser() {
		return NotFound
	}
	return s.link(s.match, i)
}

// ScopeOpener returns the '{' that opens the body owned by token i.
func (s *Stream) ScopeOpener(i int) int { return s.link(s.scopeOpener, i) }

// ScopeCloser returns the '}' that closes the body owned by token i.
func (s *Stream) ScopeCloser(i int) int {
	o := s.ScopeOpener(i)
	if o == NotFound {
		return NotFound
	}
	return s.link(s.match, o)
}

// ScopeOwner returns the keyword owning the '{' at i.
func (s *Stream) ScopeOwner(i int) int { return s.link(s.scopeOwner, i) }

// ParenOpener returns the '(' of a function, closure or array() token.
func (s *Stream) ParenOpener(i int) int { return s.link(s.parenOpener, i) }

// ParenCloser returns the ')' matching ParenOpener(i).
func (s *Stream) ParenCloser(i int) int {
	o := s.ParenOpener(i)
	if o == NotFound {
		return NotFound
	}
	return s.link(s.match, o)
}

// Enclosing returns the innermost '{' containing token i.
func (s *Stream) Enclosing(i int) int { return s.link(s.enclosing, i) }

// EnclosingOwner returns the kind owning the innermost block around i,
// or token.Invalid at file level and for anonymous blocks.
func (s *Stream) EnclosingOwner(i int) (int, token.Kind) {
	c := s.Enclosing(i)
	if c == NotFound {
		return NotFound, token.Invalid
	}
	o := s.ScopeOwner(c)
	return o, s.Kind(o)
}

// Content concatenates token text in [start, end).
func (s *Stream) Content(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.tokens) {
		end = len(s.tokens)
	}
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(s.tokens[i].Text)
	}
	return b.String()
}

// Text reassembles the whole file.
func (s *Stream) Text() string { return s.Content(0, len(s.tokens)) }

// DeclarationName returns the name declared by a class, interface, trait
// or function token; empty for closures and anything else.
func (s *Stream) DeclarationName(i int) string {
	switch s.Kind(i) {
	case token.Class, token.Interface, token.Trait, token.Function:
	default:
		return ""
	}
	for j := i + 1; j < len(s.tokens); j++ {
		switch s.tokens[j].Kind {
		case token.String:
			return s.tokens[j].Text
		case token.OpenParen, token.OpenCurly, token.Semicolon:
			return ""
		}
	}
	return ""
}
