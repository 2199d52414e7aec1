package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"

	"sniff/internal/check"
	"sniff/internal/diag"
	"sniff/internal/fix"
	"sniff/internal/source"
	"sniff/internal/trace"
)

// ErrNonConvergence is returned (wrapped) when fixing hits MaxPasses or
// starts repeating content. The FixResult still carries the last text.
var ErrNonConvergence = errors.New("fixing did not converge")

// Factory produces fresh check instances for one pass.
type Factory func() []check.Instance

// FixResult summarizes an iterative fix run over one file.
type FixResult struct {
	// Text is the last corrected content.
	Text string
	// FileID is the file version holding Text.
	FileID source.FileID
	// Passes counts analysis passes run, including the final clean one.
	Passes int
	// Applied counts committed changesets over all passes.
	Applied int
	// Report comes from the last pass.
	Report    *diag.Report
	Converged bool
	Discarded []fix.Discard
}

// Changed reports whether Text differs from the original content.
func (r *FixResult) Changed() bool { return r.Applied > 0 }

// Fix analyzes and rewrites fs's file id until it is stable. Every pass
// tokenizes the current text afresh and runs new instances from factory.
func Fix(ctx context.Context, fs *source.FileSet, id source.FileID, tz Tokenizer, factory Factory, opts Options) (*FixResult, error) {
	opts.Fix = true
	limit := opts.maxPasses()
	tr := opts.tracer()

	file := fs.Get(id)
	if file == nil {
		return nil, fmt.Errorf("unknown file id %d", id)
	}
	if opts.ParentSpan == 0 {
		opts.ParentSpan = trace.ParentFrom(ctx)
	}
	res := &FixResult{Text: string(file.Content), FileID: id}
	seen := map[[32]byte]int{file.Hash: 0}

	for pass := 1; ; pass++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		span := trace.BeginPass(tr, file.Path, pass, opts.ParentSpan)
		passOpts := opts
		passOpts.ParentSpan = span.ID()

		stopTok := opts.Timer.Measure("tokenize")
		toks, err := tz.Tokenize(file)
		stopTok()
		if err != nil {
			span.End("tokenize failed")
			return res, fmt.Errorf("tokenize %s: %w", file.Path, err)
		}
		r, err := Analyze(file, toks, factory(), passOpts)
		if err != nil {
			span.End("malformed")
			return res, err
		}
		res.Passes = pass
		res.Report = r.Report
		res.Discarded = append(res.Discarded, r.Discarded...)

		if len(r.Edits) == 0 {
			span.End("clean")
			res.Converged = true
			return res, nil
		}

		stopApply := opts.Timer.Measure("apply")
		text := fix.Apply(r.Stream, r.Edits)
		stopApply()
		res.Applied += len(r.Changesets)
		span.WithExtra("changesets", strconv.Itoa(len(r.Changesets)))
		if text == string(file.Content) {
			span.End("no-op")
			res.Converged = true
			return res, nil
		}

		next := fs.AddRevision(file.ID, []byte(text))
		file = fs.Get(next)
		res.Text = text
		res.FileID = next

		if prev, dup := seen[sha256.Sum256([]byte(text))]; dup {
			span.End("oscillation")
			return res, fmt.Errorf("%s: pass %d reproduced the content of pass %d: %w", file.Path, pass, prev, ErrNonConvergence)
		}
		seen[file.Hash] = pass
		span.End("")

		if pass >= limit {
			return res, fmt.Errorf("%s: still changing after %d passes: %w", file.Path, limit, ErrNonConvergence)
		}
	}
}
