// Package trace is the logging layer of the bonk toolchain.
//
// Events are grouped by scope (driver, pass, module, node) and filtered by
// level. Spans are opened with Begin and closed with End; instant events are
// emitted with Point.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "sema", 0)
//	defer span.End("")
//
// Storage: StreamTracer writes each event immediately, RingTracer keeps the
// last N events for crash dumps, MultiTracer fans out to both.
//
//	bonk check --trace=- --trace-level=phase src/
package trace
