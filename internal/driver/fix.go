package driver

import (
	"context"
	"errors"
	"fmt"

	"sniff/internal/engine"
	"sniff/internal/lexer"
	"sniff/internal/source"
	"sniff/internal/trace"
)

// ErrFixDisabled is returned by FixPath when the config turns fixing off.
var ErrFixDisabled = errors.New("fixing is disabled by configuration")

// FixPath runs the iterative fixer over root and writes changed files
// back unless opts.DryRun is set. A file whose fixes do not converge is
// still written with its last content.
func FixPath(ctx context.Context, root string, opts Options) (*Result, error) {
	cfg := opts.config()
	if !cfg.Fix.Enabled {
		return nil, ErrFixDisabled
	}
	files, err := ListFiles(root, cfg)
	if err != nil {
		return nil, err
	}
	eopts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	eopts.Tracer = opts.tracer()
	eopts.Timer = opts.Timer

	return runFiles(ctx, files, &opts, StageFix, "fix", func(ctx context.Context, path string) FileResult {
		fs := source.NewFileSet()
		id, err := fs.Load(path)
		if err != nil {
			return FileResult{Path: path, Err: fmt.Errorf("failed to load file: %w", err)}
		}
		file := fs.Get(id)
		emit(opts.Progress, Event{File: path, Stage: StageFix, Status: StatusWorking})
		res := FileResult{
			Path:     path,
			File:     file,
			Original: string(file.Content),
			Fixed:    string(file.Content),
		}

		span := trace.BeginFile(eopts.Tracer, file.Path, trace.ParentFrom(ctx))
		fr, err := engine.Fix(trace.WithSpan(ctx, span), fs, id, lexer.Tokenizer{}, opts.factory(), eopts)
		if fr != nil {
			res.Passes = fr.Passes
			res.Applied = fr.Applied
			res.Converged = fr.Converged
			res.Fixed = fr.Text
			res.File = fs.Get(fr.FileID)
			res.Report = fr.Report
		}
		switch {
		case err == nil:
		case errors.Is(err, engine.ErrNonConvergence):
			trace.Failure(eopts.Tracer, trace.ScopeFile, "non-convergence", err, span.ID(), nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			res.Err = err
			span.End("canceled")
			return res
		default:
			// сломанный вход: ничего не пишем
			res.Report = problemReport(res.File, err, eopts.MaxViolations)
			res.Fixed = res.Original
			res.Converged = false
			span.End("malformed")
			return res
		}
		span.End("")

		if !res.Changed() || opts.DryRun {
			return res
		}
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		stopWrite := opts.Timer.Measure("write")
		err = writeBack(path, file.Flags, res.Fixed)
		stopWrite()
		if err != nil {
			res.Err = fmt.Errorf("write %s: %w", path, err)
			return res
		}
		res.Written = true
		return res
	})
}
