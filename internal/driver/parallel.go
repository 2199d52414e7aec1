package driver

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"sniff/internal/trace"
)

// fileJob runs under a ctx whose trace parent is the run span.
type fileJob func(ctx context.Context, path string) FileResult

// runFiles processes files in parallel; results keep the input order.
func runFiles(ctx context.Context, files []string, opts *Options, stage Stage, name string, job fileJob) (*Result, error) {
	tr := opts.tracer()
	span := trace.Begin(tr, trace.ScopeDriver, name, trace.ParentFrom(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	for _, f := range files {
		emit(opts.Progress, Event{File: f, Stage: stage, Status: StatusQueued})
	}

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = opts.config().Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return &Result{}, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path // per-iteration copies (go.mod targets go 1.21)
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
			res := job(gctx, path)
			status := StatusDone
			if res.Err != nil {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: stage, Status: status, Err: res.Err, Elapsed: time.Since(start)})
			results[i] = res
			return nil
		})
	}
	err := g.Wait()
	span.WithExtra("files", strconv.Itoa(len(files)))
	return &Result{Files: results}, err
}
