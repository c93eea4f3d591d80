package observ

import (
	"strings"
	"testing"
)

func TestNilTimerIsInert(t *testing.T) {
	var timer *Timer
	idx := timer.Begin("parse")
	if idx != -1 {
		t.Fatalf("nil timer Begin = %d, want -1", idx)
	}
	timer.End(idx, "ignored")
	if timer.Enabled() {
		t.Fatalf("nil timer reports enabled")
	}
	if got := timer.Report(); len(got.Phases) != 0 || got.TotalMS != 0 {
		t.Fatalf("nil timer report = %+v", got)
	}
}

func TestTimerReportKeepsOrderAndNotes(t *testing.T) {
	timer := NewTimer()
	a := timer.Begin("load")
	timer.End(a, "")
	b := timer.Begin("sema")
	timer.End(b, "modules=2")
	timer.End(42, "out of range")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "load" || report.Phases[1].Name != "sema" {
		t.Fatalf("unexpected order: %+v", report.Phases)
	}
	if report.Phases[1].Note != "modules=2" {
		t.Fatalf("note = %q", report.Phases[1].Note)
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Fatalf("total %f smaller than a phase", report.TotalMS)
	}

	summary := timer.Summary()
	for _, want := range []string{"timings:", "load", "sema", "// modules=2", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary misses %q:\n%s", want, summary)
		}
	}
}

func TestTimerMergePrefixesNames(t *testing.T) {
	inner := NewTimer()
	inner.End(inner.Begin("parse"), "")
	outer := NewTimer()
	outer.Merge("a.bonk/", inner)
	report := outer.Report()
	if len(report.Phases) != 1 || report.Phases[0].Name != "a.bonk/parse" {
		t.Fatalf("merged phases = %+v", report.Phases)
	}
}
