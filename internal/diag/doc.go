// Package diag defines the diagnostic model shared by every phase of the
// Bonk front end.
//
// A Diagnostic carries a Severity, a stable Code, a short Message, the primary
// source.Span and optional Notes pointing at related locations (for example
// the first return statement when return types disagree).
//
// Phases never write to a global error flag. They receive a Reporter and emit
// through it, usually with the fluent builder:
//
//	diag.ReportError(r, diag.SemaUnresolvedSymbol, span, msg).
//		WithNote(declSpan, "declared here").
//		Emit()
//
// BagReporter collects into a Bag (sorting, dedup, limits); DedupReporter
// drops repeats of an identical diagnostic, which the type inference engine
// relies on when it recomputes discarded speculative results; Tracker answers
// "did this module fail?" for the driver.
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt.
package diag
