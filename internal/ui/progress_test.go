package ui

import (
	"strings"
	"testing"

	"bonk/internal/buildpipeline"
)

func TestApplyEventTracksFinalStates(t *testing.T) {
	m := newCheckModel("checking", []string{"a.bonk", "b.bonk", "c.bonk"}, nil)

	m.applyEvent(buildpipeline.Event{File: "a.bonk", Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusDone})
	if m.items[0].final {
		t.Fatalf("a finished load only")
	}
	m.applyEvent(buildpipeline.Event{File: "a.bonk", Stage: buildpipeline.StageSema, Status: buildpipeline.StatusWorking})
	if m.items[0].status != "checking" {
		t.Fatalf("a status %q", m.items[0].status)
	}
	m.applyEvent(buildpipeline.Event{File: "a.bonk", Stage: buildpipeline.StageSema, Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{File: "b.bonk", Stage: buildpipeline.StageSema, Status: buildpipeline.StatusError})
	m.applyEvent(buildpipeline.Event{File: "b.bonk", Stage: buildpipeline.StageSema, Status: buildpipeline.StatusWorking})
	m.applyEvent(buildpipeline.Event{File: "unknown.bonk", Stage: buildpipeline.StageSema, Status: buildpipeline.StatusDone})

	if m.items[0].status != "ok" || m.items[1].status != "error" {
		t.Fatalf("statuses %q %q", m.items[0].status, m.items[1].status)
	}
	finished, failed := m.counts()
	if finished != 2 || failed != 1 {
		t.Fatalf("finished=%d failed=%d", finished, failed)
	}
	if got := m.percent(); got < 0.66 || got > 0.67 {
		t.Fatalf("percent = %f", got)
	}

	view := m.View()
	if !strings.Contains(view, "checking 2/3, 1 with errors") {
		t.Fatalf("view header:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a/very/long/path.bonk", 10); got != "a/very/..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("got %q", got)
	}
}

func TestDoneMsgQuits(t *testing.T) {
	events := make(chan buildpipeline.Event)
	close(events)
	m := newCheckModel("checking", []string{"a.bonk"}, events)
	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("closed channel should yield doneMsg, got %T", msg)
	}
	_, cmd := m.Update(msg)
	if !m.done || cmd == nil {
		t.Fatalf("model should be done and quit")
	}
}
