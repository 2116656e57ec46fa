// Package trace provides a tracing subsystem for the flint backend.
//
// The trace package tracks pipeline stages and per-module processing to
// help diagnose slow builds and hangs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	flint build --trace=- --trace-level=phase app.fir
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Reserved for crash paths
//   - LevelPhase: Driver and stage boundaries
//   - LevelDetail: Per-module events
//   - LevelDebug: Everything
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: Top-level CLI operations
//   - ScopePass: Pipeline stages (decode, validate, emit, build, link)
//   - ScopeModule: Per-module processing
//
// # Context Propagation
//
// Tracers travel through context.Context so that deeply nested code can
// emit events without plumbing an extra parameter:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	...
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "emit", 0)
//	defer sp.End("")
package trace
