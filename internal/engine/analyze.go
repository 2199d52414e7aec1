package engine

import (
	"fmt"
	"runtime/debug"
	"strconv"

	"sniff/internal/check"
	"sniff/internal/diag"
	"sniff/internal/fix"
	"sniff/internal/source"
	"sniff/internal/stream"
	"sniff/internal/token"
	"sniff/internal/trace"
)

// Result is the outcome of one pass.
type Result struct {
	Stream     *stream.Stream
	Report     *diag.Report
	Changesets []fix.Changeset
	Edits      []fix.Edit
	Discarded  []fix.Discard
}

// Analyze runs one pass of insts over tokens. Malformed input returns a
// *stream.MalformedError and no report.
func Analyze(file *source.File, toks []token.Token, insts []check.Instance, opts Options) (*Result, error) {
	tr := opts.tracer()
	span := trace.Begin(tr, trace.ScopeFile, "analyze", opts.ParentSpan)

	stopBuild := opts.Timer.Measure("build")
	s, err := stream.Build(file, toks)
	stopBuild()
	if err != nil {
		span.End("malformed")
		return nil, err
	}

	d := &dispatcher{
		stream: s,
		index:  NewIndex(insts, opts.enabled),
		report: diag.NewReport(file.Path, opts.MaxViolations),
		tracer: tr,
		span:   span.ID(),
	}
	if opts.Fix {
		d.fixer = fix.NewFixer(s.Len())
	}
	d.contexts = make([]*check.Context, d.index.Len())
	d.failed = make([]bool, d.index.Len())
	for i, inst := range d.index.Instances() {
		d.contexts[i] = check.NewContext(s, inst.Def.ID, opts.Severity[inst.Def.ID], d.report, d.fixer)
	}

	stopDispatch := opts.Timer.Measure("dispatch")
	d.run()
	stopDispatch()

	d.report.Sort()
	res := &Result{Stream: s, Report: d.report}
	if d.fixer != nil {
		res.Changesets = d.fixer.Committed()
		res.Edits = d.fixer.Edits()
		res.Discarded = d.fixer.Discarded()
		for _, disc := range res.Discarded {
			trace.Point(tr, trace.ScopeCheck, "changeset-discarded", disc.Reason.String(), span.ID(), map[string]string{
				"rule":     disc.Owner,
				"owner":    disc.ConflictOwner,
				"conflict": disc.Conflict.String(),
			})
		}
	}
	span.WithExtra("violations", strconv.Itoa(d.report.Len())).
		WithExtra("changesets", strconv.Itoa(len(res.Changesets)))
	span.End("")
	return res, nil
}

type dispatcher struct {
	stream   *stream.Stream
	index    *Index
	contexts []*check.Context
	failed   []bool
	report   *diag.Report
	fixer    *fix.Fixer
	tracer   trace.Tracer
	span     uint64
}

func (d *dispatcher) run() {
	for i, inst := range d.index.Instances() {
		if fs, ok := inst.Check.(check.FileStarter); ok {
			d.guard(i, 0, func() error {
				fs.BeginFile(d.stream)
				return nil
			})
		}
	}
	n := d.stream.Len()
	if n == 0 {
		return
	}
	for _, i := range d.index.For(token.StartOfFile) {
		d.invoke(i, 0)
	}
	for pos := 0; pos < n; pos++ {
		for _, i := range d.index.For(d.stream.At(pos).Kind) {
			d.invoke(i, pos)
		}
	}
}

func (d *dispatcher) invoke(i, pos int) {
	if d.failed[i] {
		return
	}
	inst := d.index.Instances()[i]
	d.guard(i, pos, func() error {
		return inst.Check.Process(d.contexts[i], pos)
	})
}

// guard runs fn and turns an error or panic into one Internal.CheckError
// violation; the check is skipped for the rest of the pass.
func (d *dispatcher) guard(i, pos int, fn func() error) {
	err := safeCall(fn)
	if d.fixer != nil {
		// незакрытый changeset после вызова считается брошенным
		d.fixer.Abort()
	}
	if err == nil {
		return
	}
	id := d.index.Instances()[i].Def.ID
	d.failed[i] = true
	v := diag.Violation{
		Pos:      pos,
		Rule:     diag.RuleCheckError,
		Code:     id,
		Message:  fmt.Sprintf("check %s failed: %v", id, err),
		Severity: diag.SevError,
	}
	if pos < d.stream.Len() {
		t := d.stream.At(pos)
		v.Span, v.Line, v.Col = t.Span, t.Line, t.Col
	}
	d.report.Add(v)
	trace.Failure(d.tracer, trace.ScopeCheck, "check-failed", err, d.span, map[string]string{
		"rule": id,
		"pos":  strconv.Itoa(pos),
	})
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// PanicError wraps a value recovered from a check.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
