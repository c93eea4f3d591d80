package diag

import "bonk/internal/source"

// Tracker forwards diagnostics and remembers whether any error was seen.
// One Tracker belongs to one module; it replaces a process-wide
// "compiler has errored" flag.
type Tracker struct {
	next   Reporter
	errors int
	fatal  bool
}

func NewTracker(next Reporter) *Tracker {
	return &Tracker{next: next}
}

func (t *Tracker) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if t == nil {
		return
	}
	if sev >= SevError {
		t.errors++
	}
	if sev == SevFatal {
		t.fatal = true
	}
	if t.next != nil {
		t.next.Report(code, sev, primary, msg, notes)
	}
}

// Failed reports whether an error (or fatal error) passed through.
func (t *Tracker) Failed() bool { return t != nil && t.errors > 0 }

// Fatal reports whether analysis must stop for the module.
func (t *Tracker) Fatal() bool { return t != nil && t.fatal }

// Errors counts error-level diagnostics seen so far.
func (t *Tracker) Errors() int {
	if t == nil {
		return 0
	}
	return t.errors
}
