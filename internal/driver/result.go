package driver

import (
	"sniff/internal/check"
	"sniff/internal/config"
	"sniff/internal/diag"
	"sniff/internal/observ"
	"sniff/internal/rules"
	"sniff/internal/source"
	"sniff/internal/trace"
)

// Options configures a multi-file run.
type Options struct {
	Config *config.Config
	// Jobs overrides Config.Jobs when > 0.
	Jobs int
	// Cache is used by CheckPath only; nil disables caching.
	Cache *DiskCache
	// DryRun makes FixPath compute fixes without writing files.
	DryRun   bool
	Progress ProgressSink
	Tracer   trace.Tracer
	Timer    *observ.Timer
	// Factory produces check instances; nil means the built-in catalog.
	Factory func() []check.Instance
}

func (o *Options) config() *config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return o.Config
}

func (o *Options) factory() func() []check.Instance {
	if o.Factory == nil {
		return rules.Instances
	}
	return o.Factory
}

func (o *Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path string
	// File is the last version analyzed: the fixed content after FixPath.
	File   *source.File
	Report *diag.Report
	// Err is an I/O failure; analysis problems are violations in Report.
	Err    error
	Cached bool

	// Filled by FixPath.
	Original  string
	Fixed     string
	Passes    int
	Applied   int
	Converged bool
	Written   bool
}

// Changed reports whether fixing altered the content.
func (r *FileResult) Changed() bool { return r.Fixed != r.Original }

// Result aggregates a run in file order.
type Result struct {
	Files []FileResult
}

// Counts sums violations over all files.
func (r *Result) Counts() (errors, warnings, fixable int) {
	for _, f := range r.Files {
		if f.Report == nil {
			continue
		}
		e, w, fx := f.Report.Counts()
		errors += e
		warnings += w
		fixable += fx
	}
	return errors, warnings, fixable
}

// Failed reports whether any file has errors, an I/O failure or a fix
// that did not converge.
func (r *Result) Failed() bool {
	for _, f := range r.Files {
		if f.Err != nil || (f.Report != nil && f.Report.HasErrors()) {
			return true
		}
		if f.Passes > 0 && !f.Converged {
			return true
		}
	}
	return false
}
