package trace

import "context"

type (
	tracerKey struct{}
	parentKey struct{}
)

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// WithSpan makes sp the parent for spans opened further down ctx.
// Inert spans leave ctx unchanged, so the nearest live ancestor wins.
func WithSpan(ctx context.Context, sp *Span) context.Context {
	if sp.ID() == 0 {
		return ctx
	}
	return context.WithValue(ctx, parentKey{}, sp.ID())
}

// ParentFrom returns the span ID recorded by WithSpan, 0 at the root.
func ParentFrom(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}
