package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", c.level, c.scope, got, c.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("DeBuG"); err != nil || l != LevelDebug {
		t.Fatalf("ParseLevel(DeBuG) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestStreamTextSpansAndPoints(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)

	span := Begin(tr, ScopePass, "sema", 0)
	Point(tr, ScopeNode, "sink", "area", map[string]string{"kept": "3", "dropped": "1"})
	span.WithExtra("file", "main.bonk").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ sema") {
		t.Fatalf("begin line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "• sink (area) {dropped=1, kept=3}") {
		t.Fatalf("point line: %q", lines[1])
	}
	if !strings.Contains(lines[2], "← sema (ok) {file=main.bonk}") {
		t.Fatalf("end line: %q", lines[2])
	}
}

func TestPointRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	Point(tr, ScopeNode, "cycle", "f", nil)
	if buf.Len() != 0 {
		t.Fatalf("node point leaked at phase level: %q", buf.String())
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "check", 0).End("")

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json %q: %v", line, err)
		}
		if m["name"] != "check" || m["scope"] != "driver" {
			t.Fatalf("unexpected event %v", m)
		}
	}
}

func TestChromeIsValidJSONArray(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatChrome)
	s := Begin(tr, ScopePass, "parse", 0)
	Point(tr, ScopeNode, "speculate", "f", nil)
	s.End("")
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	var events []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &events); err != nil {
		t.Fatalf("chrome output is not a json array: %v\n%s", err, buf.String())
	}
	if len(events) != 3 || events[0]["ph"] != "B" || events[1]["ph"] != "i" || events[2]["ph"] != "E" {
		t.Fatalf("unexpected chrome events %v", events)
	}
}

func TestRingKeepsTail(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeNode, name, "", nil)
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("dump: %q", buf.String())
	}
}

func TestMultiFansOut(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)
	Begin(m, ScopePass, "resolve", 0).End("")
	if m.Ring() != ring || len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatalf("fan-out failed: ring=%d stream=%q", len(ring.Snapshot()), buf.String())
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop from empty context")
	}
	r := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer not propagated")
	}
	s := Begin(r, ScopeDriver, "check", 0)
	if ParentID(WithSpan(ctx, s)) != s.ID() || s.ID() == 0 {
		t.Fatalf("span id not propagated")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	if Begin(tr, ScopeDriver, "x", 0).End("") != 0 {
		t.Fatalf("inert span should report zero duration")
	}
}

func TestStartAndChildNest(t *testing.T) {
	r := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), r)

	ctx, outer := Start(ctx, ScopeDriver, "diagnose")
	inner := outer.Child(ScopePass, "parse")
	_, nested := Start(ctx, ScopeModule, "module:geo")
	nested.End("")
	inner.End("")
	outer.End("")

	byName := map[string]Event{}
	for _, ev := range r.Snapshot() {
		if ev.Kind == KindSpanBegin {
			byName[ev.Name] = ev
		}
	}
	if ev, ok := byName["parse"]; !ok || ev.ParentID != outer.ID() {
		t.Fatalf("child span not parented to outer: %+v", byName["parse"])
	}
	if ev, ok := byName["module:geo"]; !ok || ev.ParentID != outer.ID() {
		t.Fatalf("context span not parented to outer: %+v", byName["module:geo"])
	}
}

func TestStartWithoutTracerIsInert(t *testing.T) {
	ctx := context.Background()
	got, s := Start(ctx, ScopeDriver, "x")
	if got != ctx || s.ID() != 0 || s.Child(ScopePass, "y").ID() != 0 {
		t.Fatalf("expected inert span and unchanged context")
	}
}
