package trace

import "context"

// ctxKey is the key type for storing Tracer in context.
type ctxKey struct{}

// spanCtxKey is the key type for storing the active span context.
type spanCtxKey struct{}

// SpanContext identifies the active span for parent/child linking.
type SpanContext struct {
	ID uint64
}

// WithTracer attaches a Tracer to the context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if ctx == nil || t == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext extracts the Tracer from context.
// If not found, returns Nop tracer.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// CurrentSpan retrieves the active span context from context.
// Returns zero SpanContext if not found.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	if sc, ok := ctx.Value(spanCtxKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}

// WithSpanContext attaches span context.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanCtxKey{}, sc)
}
