package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"sniff/internal/engine"
	"sniff/internal/lexer"
	"sniff/internal/rules"
	"sniff/internal/source"
	"sniff/internal/stream"
	"sniff/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// fixTimeout is the maximum time allowed for fixing a single input.
// If fixing takes longer, it indicates a potential infinite loop.
const fixTimeout = 5 * time.Second

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.php", input))

		// ошибки лексера допустимы, но токены всё равно покрывают вход
		toks, _ := lexer.Tokenize(file) //nolint:errcheck // lexical errors are expected here
		if err := testkit.CheckTokenInvariants(toks, file); err != nil {
			t.Fatalf("token tiling broken: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

func FuzzAnalyzeCatalog(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.php", input))
		toks, err := lexer.Tokenize(file)
		if err != nil {
			return
		}

		res, err := engine.Analyze(file, toks, rules.Instances(), engine.Options{Fix: true})
		if err != nil {
			var me *stream.MalformedError
			if !errors.As(err, &me) {
				t.Fatalf("unexpected analyze error: %v", err)
			}
			return
		}
		if err := testkit.CheckStreamPairs(res.Stream); err != nil {
			t.Fatalf("stream pairs: %v", err)
		}
		if err := testkit.CheckEditsDisjoint(res.Edits); err != nil {
			t.Fatalf("committed edits overlap: %v", err)
		}
	})
}

// FuzzFixNoHang tests that iterative fixing stops on any input.
func FuzzFixNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), fixTimeout)
		defer cancel()

		type outcome struct {
			res *engine.FixResult
			err error
		}
		done := make(chan outcome, 1)
		go func() {
			fs := source.NewFileSet()
			id := fs.AddVirtual("fuzz.php", input)
			res, err := engine.Fix(ctx, fs, id, lexer.Tokenizer{}, rules.Instances, engine.Options{MaxPasses: 20})
			done <- outcome{res: res, err: err}
		}()

		select {
		case out := <-done:
			if out.err == nil && (out.res == nil || !out.res.Converged) {
				t.Fatalf("nil error without convergence\ninput: %q", truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("fixer hang detected: took longer than %v\ninput (%d bytes): %q",
				fixTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
