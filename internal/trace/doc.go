// Package trace records what the linter is doing while it runs.
//
// # Usage
//
//	sniff check --trace=- --trace-level=detail src/
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: last N events in memory, dumped on failure
//   - MultiTracer: fan-out to several tracers
//
// # Levels and scopes
//
// Level filters by scope: phase keeps driver and pass spans, detail adds
// per-file stages, debug adds per-check events. Failure events (check
// errors) pass at every level except off.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "pass", parentID)
//	defer span.End("")
package trace
