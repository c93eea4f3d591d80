package diag

import (
	"errors"
	"fmt"
	"runtime"

	"bonk/internal/source"
)

// InternalError is panicked by analysis code when an invariant breaks.
// RecoverInternal turns it into a single FatalInternal diagnostic.
type InternalError struct {
	Span source.Span
	Err  error
}

func (e *InternalError) Error() string { return "internal error: " + e.Err.Error() }

func (e *InternalError) Unwrap() error { return e.Err }

// Internalf panics with an InternalError.
func Internalf(sp source.Span, format string, args ...any) {
	panic(&InternalError{Span: sp, Err: fmt.Errorf(format, args...)})
}

// RecoverInternal must be deferred directly. Internal errors and plain error
// panics (arena overflows) become a FatalInternal diagnostic and set *aborted;
// runtime faults are re-panicked.
func RecoverInternal(r Reporter, aborted *bool) {
	rec := recover()
	if rec == nil {
		return
	}
	err, ok := rec.(error)
	var rt runtime.Error
	if !ok || errors.As(err, &rt) {
		panic(rec)
	}
	var sp source.Span
	var ie *InternalError
	if errors.As(err, &ie) {
		sp = ie.Span
	}
	ReportFatal(r, FatalInternal, sp, err.Error()).Emit()
	if aborted != nil {
		*aborted = true
	}
}
