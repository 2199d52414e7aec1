package driver

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"sniff/internal/diag"
	"sniff/internal/engine"
	"sniff/internal/lexer"
	"sniff/internal/source"
	"sniff/internal/stream"
	"sniff/internal/trace"
)

// CheckPath analyzes root (a file or a directory) without modifying
// anything. Every file gets its own FileSet and fresh check instances.
func CheckPath(ctx context.Context, root string, opts Options) (*Result, error) {
	cfg := opts.config()
	files, err := ListFiles(root, cfg)
	if err != nil {
		return nil, err
	}
	eopts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	cfgHash, err := cfg.Hash()
	if err != nil {
		return nil, err
	}
	eopts.Tracer = opts.tracer()
	eopts.Timer = opts.Timer

	return runFiles(ctx, files, &opts, StageCheck, "check", func(ctx context.Context, path string) FileResult {
		fs := source.NewFileSet()
		stopLoad := opts.Timer.Measure("load")
		id, err := fs.Load(path)
		stopLoad()
		if err != nil {
			return FileResult{Path: path, Err: fmt.Errorf("failed to load file: %w", err)}
		}
		file := fs.Get(id)
		res := FileResult{Path: path, File: file}
		emit(opts.Progress, Event{File: path, Stage: StageCheck, Status: StatusWorking})

		key := CacheKey(file.Hash, cfgHash)
		if opts.Cache != nil {
			var payload DiskPayload
			if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
				res.Report = payloadToReport(&payload, file, eopts.MaxViolations)
				res.Cached = true
				return res
			}
		}

		span := trace.BeginFile(eopts.Tracer, file.Path, trace.ParentFrom(ctx))
		fileOpts := eopts
		fileOpts.ParentSpan = span.ID()
		res.Report = analyzeFile(file, fileOpts, opts.factory())
		span.End("")

		if opts.Cache != nil {
			_ = opts.Cache.Put(key, reportToPayload(res.Report)) //nolint:errcheck // Cache is best-effort, errors are acceptable
		}
		return res
	})
}

func analyzeFile(file *source.File, eopts engine.Options, factory engine.Factory) *diag.Report {
	stopTok := eopts.Timer.Measure("tokenize")
	toks, err := lexer.Tokenize(file)
	stopTok()
	if err != nil {
		return problemReport(file, err, eopts.MaxViolations)
	}
	r, err := engine.Analyze(file, toks, factory(), eopts)
	if err != nil {
		return problemReport(file, err, eopts.MaxViolations)
	}
	return r.Report
}

// problemReport turns tokenizer and stream-building failures into
// Internal.Malformed violations.
func problemReport(file *source.File, err error, max int) *diag.Report {
	r := diag.NewReport(file.Path, max)
	var me *stream.MalformedError
	if errors.As(err, &me) {
		v := diag.Violation{
			Pos:      me.Pos,
			Line:     me.Line,
			Col:      me.Col,
			Rule:     diag.RuleMalformed,
			Code:     "Unbalanced",
			Message:  me.Msg,
			Severity: diag.SevError,
		}
		if me.Pos < 0 {
			if n, err := safecast.Conv[uint32](file.LineCount()); err == nil {
				v.Line = n
			}
		}
		r.Add(v)
		return r
	}
	lexErrs := collectLexErrors(err)
	if len(lexErrs) == 0 {
		r.Add(diag.Violation{Pos: -1, Rule: diag.RuleMalformed, Code: "Internal", Message: err.Error(), Severity: diag.SevError})
		return r
	}
	for i, le := range lexErrs {
		r.Add(diag.Violation{
			// индекса токена нет; отрицательные позиции не склеиваются при дедупликации
			Pos:      -1 - i,
			Span:     le.Span,
			Line:     le.Pos.Line,
			Col:      le.Pos.Col,
			Rule:     diag.RuleMalformed,
			Code:     "Tokenize",
			Message:  le.Msg,
			Severity: diag.SevError,
		})
	}
	r.Sort()
	return r
}

func collectLexErrors(err error) []*lexer.Error {
	var out []*lexer.Error
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if le, ok := e.(*lexer.Error); ok {
			out = append(out, le)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
