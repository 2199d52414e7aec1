package trace

import (
	"bytes"
	"context"
	"errors"
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
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeCheck, false},
		{LevelDebug, ScopeCheck, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s.ShouldEmit(%s): want %v, got %v", tc.level, tc.scope, tc.want, got)
		}
	}
}

func TestFailurePassesErrorLevel(t *testing.T) {
	ring := NewRingTracer(8, LevelError)

	sp := Begin(ring, ScopePass, "pass", 0)
	sp.End("")
	Point(ring, ScopeCheck, "discard", "overlap", 0, nil)
	Failure(ring, ScopeCheck, "check", errors.New("boom"), 0, map[string]string{"rule": "Scope.MethodScope"})

	events := ring.Snapshot()
	if len(events) != 1 {
		t.Fatalf("want 1 event at error level, got %d", len(events))
	}
	ev := events[0]
	if ev.Name != "check" || ev.Extra[ExtraError] != "boom" || ev.Extra["rule"] != "Scope.MethodScope" {
		t.Fatalf("unexpected failure event: %+v", ev)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeCheck, name, "", 0, nil)
	}
	events := ring.Snapshot()
	if len(events) != 3 {
		t.Fatalf("want 3 events, got %d", len(events))
	}
	var names []string
	for _, ev := range events {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Fatalf("want c,d,e, got %s", got)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 || !strings.Contains(buf.String(), "check:e") {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)

	sp := Begin(tr, ScopePass, "pass", 0)
	sp.WithExtra("pass", "1").End("converged")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want begin and end lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"kind":"begin"`) || !strings.Contains(lines[0], `"name":"pass"`) {
		t.Fatalf("unexpected begin line: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"detail":"converged"`) || !strings.Contains(lines[1], `"pass":"1"`) {
		t.Fatalf("unexpected end line: %s", lines[1])
	}
}

func TestContextCarriesTracer(t *testing.T) {
	if FromContext(context.Background()).Enabled() {
		t.Fatalf("empty context must yield a disabled tracer")
	}
	ring := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatalf("tracer not propagated through context")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "text": FormatText, "JSON": FormatNDJSON, "ndjson": FormatNDJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestSpanParentsFlowThroughContext(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := context.Background()
	if ParentFrom(ctx) != 0 {
		t.Fatalf("root context must have no parent")
	}

	run := Begin(ring, ScopeDriver, "fix", ParentFrom(ctx))
	ctx = WithSpan(ctx, run)
	file := BeginFile(ring, "src/A.php", ParentFrom(ctx))
	pass := BeginPass(ring, "src/A.php", 2, ParentFrom(WithSpan(ctx, file)))
	pass.End("clean")
	file.End("")
	run.End("")

	var passEnd, fileBegin *Event
	events := ring.Snapshot()
	for i := range events {
		ev := &events[i]
		if ev.Kind == KindSpanEnd && ev.Name == "pass" {
			passEnd = ev
		}
		if ev.Kind == KindSpanBegin && ev.Scope == ScopeFile {
			fileBegin = ev
		}
	}
	if fileBegin == nil || fileBegin.ParentID != run.ID() || fileBegin.Name != "file:src/A.php" {
		t.Fatalf("file span not parented to run: %+v", fileBegin)
	}
	if passEnd == nil || passEnd.ParentID != file.ID() {
		t.Fatalf("pass span not parented to file: %+v", passEnd)
	}
	if passEnd.Extra[ExtraPass] != "2" || passEnd.Extra[ExtraPath] != "src/A.php" || passEnd.Extra[ExtraMillis] == "" {
		t.Fatalf("pass extras: %v", passEnd.Extra)
	}
}

func TestInertSpanKeepsParent(t *testing.T) {
	ring := NewRingTracer(4, LevelPhase)
	run := Begin(ring, ScopeDriver, "check", 0)
	ctx := WithSpan(context.Background(), run)

	// file spans are filtered at phase level
	file := BeginFile(ring, "a.php", ParentFrom(ctx))
	if file.ID() != 0 {
		t.Fatalf("filtered span must be inert")
	}
	if got := ParentFrom(WithSpan(ctx, file)); got != run.ID() {
		t.Fatalf("parent: want %d, got %d", run.ID(), got)
	}
	if d := file.WithExtra("k", "v").End(""); d != 0 {
		t.Fatalf("inert span reported duration %v", d)
	}
}
