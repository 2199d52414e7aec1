package ui

import (
	"errors"
	"strings"
	"testing"

	"sniff/internal/driver"
)

func TestProgressModelTracksStages(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.php", "b.php"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.php", Stage: driver.StageLoad, Status: driver.StatusWorking})
	if m.items[0].status != "loading" {
		t.Fatalf("want loading, got %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.php", Stage: driver.StageCheck, Status: driver.StatusWorking})
	if m.items[0].status != "checking" {
		t.Fatalf("want checking, got %q", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.php", Stage: driver.StageCheck, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.php", Stage: driver.StageCheck, Status: driver.StatusError, Err: errors.New("boom")})
	// поздние события не перетирают финальный статус
	m.applyEvent(driver.Event{File: "a.php", Stage: driver.StageWrite, Status: driver.StatusWorking})

	if m.items[0].status != "done" || m.items[1].status != "error" {
		t.Fatalf("unexpected statuses %+v", m.items)
	}
	if m.finished() != 2 || m.failed != 1 {
		t.Fatalf("finished=%d failed=%d", m.finished(), m.failed)
	}
	if p := m.percent(); p != 1.0 {
		t.Fatalf("want 100%%, got %v", p)
	}
	view := m.View()
	if !strings.Contains(view, "check 2/2, 1 failed") || !strings.Contains(view, "b.php") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestProgressFromStageOrder(t *testing.T) {
	if !(progressFromStage(driver.StageLoad) < progressFromStage(driver.StageCheck) &&
		progressFromStage(driver.StageFix) < progressFromStage(driver.StageWrite)) {
		t.Fatalf("stage progress must grow")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("src/very/long/path.php", 10); got != "src/ver..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a.php", 10); got != "a.php" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("src/very/long/path.php", 4); got != "s..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("got %q", got)
	}
}
