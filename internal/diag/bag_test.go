package diag

import (
	"testing"

	"bonk/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(SemaUnresolvedSymbol, source.Span{Start: 4}, "a")) {
		t.Fatalf("first add must succeed")
	}
	bag.Add(New(SevWarning, SemaNeverReturns, source.Span{Start: 1}, "b"))
	if bag.Add(NewError(SemaNonCallable, source.Span{}, "c")) {
		t.Fatalf("limit must reject third diagnostic")
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected errors and warnings")
	}
	bag.Sort()
	if bag.Items()[0].Code != SemaNeverReturns {
		t.Fatalf("expected sort by start offset, got %v", bag.Items()[0].Code)
	}
}

func TestDedupReporterSuppressesRepeats(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	span := source.Span{File: 1, Start: 3, End: 9}
	for i := 0; i < 3; i++ {
		ReportError(r, SemaArgumentTypeMismatch, span, "mismatch").Emit()
	}
	ReportError(r, SemaArgumentTypeMismatch, span, "other message").Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestTrackerCountsErrors(t *testing.T) {
	bag := NewBag(0)
	tr := NewTracker(BagReporter{Bag: bag})
	ReportWarning(tr, SemaNeverReturns, source.Span{}, "w").Emit()
	if tr.Failed() {
		t.Fatalf("warnings must not fail the module")
	}
	ReportFatal(tr, FatalInternal, source.Span{}, "boom").Emit()
	if !tr.Failed() || !tr.Fatal() || tr.Errors() != 1 {
		t.Fatalf("expected fatal failure, got errors=%d fatal=%v", tr.Errors(), tr.Fatal())
	}
}

func TestBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SemaReturnTypeMismatch, source.Span{}, "x").
		WithNote(source.Span{Start: 1}, "first returned here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected one diagnostic with one note, got %+v", bag.Items())
	}
}

func TestCodeID(t *testing.T) {
	if got := SemaDuplicateSymbol.ID(); got != "SEM3001" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := Code(4242).ID(); got != "E4242" {
		t.Fatalf("unexpected fallback id %q", got)
	}
}

func TestRecoverInternalReportsFatal(t *testing.T) {
	bag := NewBag(0)
	aborted := false
	func() {
		defer RecoverInternal(BagReporter{Bag: bag}, &aborted)
		Internalf(source.Span{Start: 3, End: 4}, "arena %s", "overflow")
	}()
	if !aborted || bag.Count(FatalInternal) != 1 {
		t.Fatalf("expected one fatal diagnostic, got %d", bag.Count(FatalInternal))
	}
	if got := bag.Items()[0].Primary.Start; got != 3 {
		t.Fatalf("fatal diagnostic must keep the span, got %d", got)
	}
}
