package stream_test

import (
	"errors"
	"testing"

	"sniff/internal/lexer"
	"sniff/internal/source"
	"sniff/internal/stream"
	"sniff/internal/testkit"
	"sniff/internal/token"
)

func build(t *testing.T, src string) *stream.Stream {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.php", []byte(src))
	f := fs.Get(id)
	toks, err := lexer.Tokenize(f)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	s, err := stream.Build(f, toks)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return s
}

func find(t *testing.T, s *stream.Stream, k token.Kind, nth int) int {
	t.Helper()
	pos := -1
	for i := 0; i <= nth; i++ {
		pos = s.FindNext(token.NewKindSet(k), pos+1, -1, stream.Include)
		if pos == stream.NotFound {
			t.Fatalf("%s #%d not found", k, nth)
		}
	}
	return pos
}

const sample = `<?php
class A extends B
{
    public function foo($a = [1, [2]], $b = array(3))
    {
        if ($a) {
            return $b[0];
        }
        $f = function () use ($a) { return $a; };
    }

    abstract protected function bar();
}
`

func TestMatchingPairsAreSymmetric(t *testing.T) {
	s := build(t, sample)
	openers := 0
	for i := 0; i < s.Len(); i++ {
		k := s.At(i).Kind
		switch {
		case k.IsOpener():
			openers++
			c := s.MatchingClose(i)
			if c == stream.NotFound || s.MatchingOpen(c) != i {
				t.Fatalf("opener %d (%s) not symmetric: close=%d", i, k, c)
			}
			if s.At(c).Kind != k.Closer() {
				t.Fatalf("opener %s paired with %s", k, s.At(c).Kind)
			}
		case k.IsCloser():
			o := s.MatchingOpen(i)
			if o == stream.NotFound || s.MatchingClose(o) != i {
				t.Fatalf("closer %d (%s) not symmetric", i, k)
			}
		default:
			if s.MatchingClose(i) != stream.NotFound || s.MatchingOpen(i) != stream.NotFound {
				t.Fatalf("non-bracket %d (%s) has a partner", i, k)
			}
		}
	}
	if openers == 0 {
		t.Fatalf("sample has no brackets")
	}
	if err := testkit.CheckStreamPairs(s); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestScopeOwners(t *testing.T) {
	s := build(t, sample)
	class := find(t, s, token.Class, 0)
	open := s.ScopeOpener(class)
	if open == stream.NotFound || s.ScopeOwner(open) != class {
		t.Fatalf("class scope not linked: opener=%d", open)
	}
	if s.At(s.ScopeCloser(class)).Line != 13 {
		t.Fatalf("class closer on line %d, want 13", s.At(s.ScopeCloser(class)).Line)
	}

	foo := find(t, s, token.Function, 0)
	if s.DeclarationName(foo) != "foo" {
		t.Fatalf("DeclarationName = %q", s.DeclarationName(foo))
	}
	if s.At(s.ScopeOpener(foo)).Line != 5 {
		t.Fatalf("foo body opens on line %d, want 5", s.At(s.ScopeOpener(foo)).Line)
	}
	if s.At(s.ParenOpener(foo)).Kind != token.OpenParen || s.At(s.ParenCloser(foo)).Line != 4 {
		t.Fatalf("foo parens not linked")
	}
	if owner, kind := s.EnclosingOwner(foo); owner != class || kind != token.Class {
		t.Fatalf("foo enclosed by %d (%s), want class", owner, kind)
	}

	bar := find(t, s, token.Function, 1)
	if s.ScopeOpener(bar) != stream.NotFound {
		t.Fatalf("abstract method must not own a scope")
	}

	closure := find(t, s, token.Closure, 0)
	if s.ScopeOpener(closure) == stream.NotFound || s.DeclarationName(closure) != "" {
		t.Fatalf("closure scope not resolved")
	}

	arr := find(t, s, token.Array, 0)
	if s.ParenOpener(arr) != arr+1 {
		t.Fatalf("array( paren not linked")
	}

	ifTok := find(t, s, token.If, 0)
	ret := find(t, s, token.Return, 0)
	if s.ScopeOwner(s.Enclosing(ret)) != ifTok {
		t.Fatalf("return not enclosed by if")
	}
}

func TestFindNextAndPreviousRespectBounds(t *testing.T) {
	s := build(t, "<?php $a = 1; $b = 2;")
	vars := token.NewKindSet(token.Variable)
	first := s.FindNext(vars, 0, -1, stream.Include)
	second := s.FindNext(vars, first+1, -1, stream.Include)
	if first == stream.NotFound || second == stream.NotFound {
		t.Fatalf("variables not found")
	}
	if got := s.FindNext(vars, first+1, second, stream.Include); got != stream.NotFound {
		t.Fatalf("bound is exclusive, got %d", got)
	}
	if got := s.FindPrevious(vars, second-1, first, stream.Include); got != stream.NotFound {
		t.Fatalf("lower bound is exclusive, got %d", got)
	}
	if got := s.FindPrevious(vars, second-1, -1, stream.Include); got != first {
		t.Fatalf("FindPrevious = %d, want %d", got, first)
	}
	if got := s.FindNext(token.EmptyTokens, first+1, -1, stream.Exclude); s.At(got).Kind != token.Equal {
		t.Fatalf("exclude mode found %s", s.At(got).Kind)
	}
	if got := s.PrevContent(second - 1); s.At(got).Kind != token.Semicolon {
		t.Fatalf("PrevContent found %s", s.At(got).Kind)
	}
}

func TestLineHelpers(t *testing.T) {
	s := build(t, "<?php\n  $a = 1;\n\n$b;\n")
	a := s.FindNext(token.NewKindSet(token.Variable), 0, -1, stream.Include)
	start, end := s.LineTokens(a)
	if s.At(start).Text != "  " || s.At(end-1).Text != "\n" {
		t.Fatalf("line tokens %q..%q", s.At(start).Text, s.At(end-1).Text)
	}
	if !s.IsBlankLine(end) {
		t.Fatalf("line 3 should be blank")
	}
	if s.IsBlankLine(a) {
		t.Fatalf("line 2 is not blank")
	}
	if s.Text() != "<?php\n  $a = 1;\n\n$b;\n" {
		t.Fatalf("Text() does not round-trip")
	}
}

func TestMalformedInput(t *testing.T) {
	cases := []string{
		"<?php function f() {",
		"<?php }",
		"<?php $a = [1, 2);",
	}
	for _, src := range cases {
		fs := source.NewFileSet()
		id := fs.AddVirtual("bad.php", []byte(src))
		toks, err := lexer.Tokenize(fs.Get(id))
		if err != nil {
			t.Fatalf("lex %q: %v", src, err)
		}
		_, err = stream.Build(fs.Get(id), toks)
		var me *stream.MalformedError
		if !errors.As(err, &me) {
			t.Fatalf("%q: expected MalformedError, got %v", src, err)
		}
	}
}
