package lexer_test

import (
	"strings"
	"testing"
	"time"

	"sniff/internal/lexer"
	"sniff/internal/source"
	"sniff/internal/testkit"
	"sniff/internal/token"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.php", []byte(src))
	toks, err := lexer.Tokenize(fs.Get(id))
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		if tk.Kind == token.Whitespace {
			continue
		}
		out = append(out, tk.Kind)
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	got := kinds(lex(t, src))
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %s, want %s (all: %v)", src, i, got[i], want[i], got)
		}
	}
}

func TestTokensCoverInput(t *testing.T) {
	src := "<html>\n<?php\nclass A {\n    public function b($x = [1, 2]) { return $x[0] ?? null; } // c\n}\n?>\ntail"
	toks := lex(t, src)
	var b strings.Builder
	for _, tk := range toks {
		b.WriteString(tk.Text)
	}
	if b.String() != src {
		t.Fatalf("concatenation mismatch:\n%q\n%q", b.String(), src)
	}
}

func TestOpenTagAndInlineHTML(t *testing.T) {
	toks := lex(t, "hi <?php $a;")
	if toks[0].Kind != token.InlineHTML || toks[0].Text != "hi " {
		t.Fatalf("unexpected first token %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.OpenTag || toks[1].Text != "<?php " {
		t.Fatalf("unexpected open tag %v %q", toks[1].Kind, toks[1].Text)
	}
}

func TestWhitespaceSplitsAfterNewline(t *testing.T) {
	toks := lex(t, "<?php\n$a;\n\n\n  $b;")
	var ws []string
	for _, tk := range toks {
		if tk.Kind == token.Whitespace {
			ws = append(ws, tk.Text)
		}
	}
	want := []string{"\n", "\n", "\n", "  "}
	if len(ws) != len(want) {
		t.Fatalf("whitespace tokens = %q, want %q", ws, want)
	}
	for i := range want {
		if ws[i] != want[i] {
			t.Fatalf("whitespace tokens = %q, want %q", ws, want)
		}
	}
}

func TestShortArrayVersusIndex(t *testing.T) {
	expectKinds(t, "<?php $a = [1, $b[2]];",
		token.OpenTag, token.Variable, token.Equal, token.OpenShortArray,
		token.Number, token.Comma, token.Variable, token.OpenSquare, token.Number,
		token.CloseSquare, token.CloseShortArray, token.Semicolon)
}

func TestFunctionVersusClosure(t *testing.T) {
	expectKinds(t, "<?php function f() {} $g = function () {};",
		token.OpenTag, token.Function, token.String, token.OpenParen, token.CloseParen,
		token.OpenCurly, token.CloseCurly, token.Variable, token.Equal, token.Closure,
		token.OpenParen, token.CloseParen, token.OpenCurly, token.CloseCurly, token.Semicolon)
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	expectKinds(t, "<?php CLASS Foo {}",
		token.OpenTag, token.Class, token.String, token.OpenCurly, token.CloseCurly)
}

func TestMemberNamesAreNotKeywords(t *testing.T) {
	expectKinds(t, "<?php Foo::class; $a->list;",
		token.OpenTag, token.String, token.DoubleColon, token.String, token.Semicolon,
		token.Variable, token.ObjectOperator, token.String, token.Semicolon)
}

func TestArrayKeywordNeedsParen(t *testing.T) {
	expectKinds(t, "<?php function f(array $a) { return array(1); }",
		token.OpenTag, token.Function, token.String, token.OpenParen, token.String, token.Variable,
		token.CloseParen, token.OpenCurly, token.Return, token.Array, token.OpenParen,
		token.Number, token.CloseParen, token.Semicolon, token.CloseCurly)
}

func TestOperatorsLongestMatch(t *testing.T) {
	expectKinds(t, "<?php $a ??= $b <=> $c !== $d;",
		token.OpenTag, token.Variable, token.CoalesceEqual, token.Variable, token.Spaceship,
		token.Variable, token.IsNotIdentical, token.Variable, token.Semicolon)
}

func TestComments(t *testing.T) {
	toks := lex(t, "<?php\n/** doc */\n/**/\n# hash\n// slashes\n")
	var got []token.Kind
	for _, tk := range toks {
		if tk.Kind.IsEmpty() && tk.Kind != token.Whitespace {
			got = append(got, tk.Kind)
		}
	}
	want := []token.Kind{token.DocComment, token.Comment, token.Comment, token.Comment}
	if len(got) != len(want) {
		t.Fatalf("comments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("comments = %v, want %v", got, want)
		}
	}
}

func TestLineAndColumn(t *testing.T) {
	toks := lex(t, "<?php\n  $a = 1;\n")
	for _, tk := range toks {
		if tk.Kind == token.Variable {
			if tk.Line != 2 || tk.Col != 3 {
				t.Fatalf("$a at %d:%d, want 2:3", tk.Line, tk.Col)
			}
			return
		}
	}
	t.Fatalf("variable not found")
}

func TestUnterminatedStringReportsError(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.php", []byte("<?php $a = 'oops;"))
	toks, err := lexer.Tokenize(fs.Get(id))
	if err == nil {
		t.Fatalf("expected error for unterminated string")
	}
	if !strings.Contains(err.Error(), "unterminated string") {
		t.Fatalf("unexpected error %v", err)
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.ConstantString {
		t.Fatalf("expected trailing string token")
	}
}

func TestMaxTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("big.php", []byte("<?php $a; $b; $c;"))
	_, err := lexer.New(fs.Get(id), lexer.Options{MaxTokens: 3}).All()
	if err != lexer.ErrTooManyTokens {
		t.Fatalf("expected ErrTooManyTokens, got %v", err)
	}
}

func TestTokenInvariants(t *testing.T) {
	srcs := []string{
		"",
		"just html",
		"<?php\n/** doc\n * more\n */\nfunction f(array $a = []) { return \"x\\\"y\" . 'z'; }\n?>\n<b>\n<?php echo 0x1F + 1.5e3;",
		"<?php $имя = 'юникод';\n",
	}
	for _, src := range srcs {
		fs := source.NewFileSet()
		f := fs.Get(fs.AddVirtual("inv.php", []byte(src)))
		toks, err := lexer.Tokenize(f)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if err := testkit.CheckTokenInvariants(toks, f); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestNonLetterRunesBecomeInvalidTokens(t *testing.T) {
	srcs := map[string]string{
		"<?php\n$a =\u00a01;\n":   "\u00a0",
		"<?php\necho 1 \u2014 2;\n": "\u2014",
		"<?php\u0338":              "\u0338",
	}
	for src, bad := range srcs {
		fs := source.NewFileSet()
		f := fs.Get(fs.AddVirtual("rune.php", []byte(src)))

		type outcome struct {
			toks []token.Token
			err  error
		}
		done := make(chan outcome, 1)
		go func() {
			toks, err := lexer.Tokenize(f)
			done <- outcome{toks: toks, err: err}
		}()
		var out outcome
		select {
		case out = <-done:
		case <-time.After(3 * time.Second):
			t.Fatalf("%q: lexer did not finish", src)
		}

		if out.err == nil || !strings.Contains(out.err.Error(), "unexpected character") {
			t.Fatalf("%q: want unexpected character error, got %v", src, out.err)
		}
		if err := testkit.CheckTokenInvariants(out.toks, f); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		found := false
		for _, tk := range out.toks {
			if tk.Kind == token.Invalid && tk.Text == bad {
				found = true
			}
		}
		if !found {
			t.Fatalf("%q: no invalid token for %q", src, bad)
		}
	}
}

func TestCombiningMarkContinuesName(t *testing.T) {
	toks := lex(t, "<?php $cafe\u0301 = 1;")
	for _, tk := range toks {
		if tk.Kind == token.Variable {
			if tk.Text != "$cafe\u0301" {
				t.Fatalf("variable text: want %q, got %q", "$cafe\u0301", tk.Text)
			}
			return
		}
	}
	t.Fatalf("variable not found")
}
