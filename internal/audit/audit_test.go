package audit

import (
	"strings"
	"testing"
	"time"
)

func TestLogger_LogAndEvents(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	now := time.Now().Truncate(time.Millisecond)

	events := []Event{
		{Timestamp: now, Type: EventStart, Component: "primary", Details: "pid=1001"},
		{Timestamp: now.Add(time.Second), Type: EventPromote, Component: "gateway", Details: "secondary (port 4002)"},
		{Timestamp: now.Add(2 * time.Second), Type: EventHealth, Component: "gateway", Details: "healthy"},
		{Timestamp: now.Add(3 * time.Second), Type: EventRollback, Component: "gateway", Details: "primary (port 4001)"},
	}

	for _, e := range events {
		if err := logger.Log(e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	// Gateway events only; primary is a separate log
	result, err := logger.Events("gateway")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(result) != 3 {
		t.Fatalf("got %d events, want 3", len(result))
	}

	want := []EventType{EventPromote, EventHealth, EventRollback}
	for i, e := range result {
		if e.Type != want[i] {
			t.Errorf("event %d: type = %q, want %q", i, e.Type, want[i])
		}
		if e.Component != "gateway" {
			t.Errorf("event %d: component = %q, want gateway", i, e.Component)
		}
	}
}

func TestLogger_EventsEmpty(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	result, err := logger.Events("nonexistent")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(result) != 0 {
		t.Errorf("got %d events, want 0", len(result))
	}
}

func TestLogger_LogEvent(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	if err := logger.LogEvent(EventDegraded, "gateway", "router not running"); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	events, err := logger.Events("gateway")
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Type != EventDegraded {
		t.Errorf("type = %q, want %q", events[0].Type, EventDegraded)
	}
	if events[0].Timestamp.IsZero() {
		t.Error("LogEvent should stamp the event")
	}
}

func TestLogger_DefaultComponent(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	if err := logger.Log(Event{Type: EventError, Details: "probe failed"}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := logger.Events(GatewayComponent)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}

func TestLogger_Tail(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	for i := 0; i < 5; i++ {
		if err := logger.LogEvent(EventPromote, "gateway", "entry"); err != nil {
			t.Fatalf("LogEvent failed: %v", err)
		}
	}

	tail, err := logger.Tail("gateway", 2)
	if err != nil {
		t.Fatalf("Tail failed: %v", err)
	}
	if len(tail) != 2 {
		t.Errorf("Tail(2) returned %d events", len(tail))
	}

	all, err := logger.Tail("gateway", 0)
	if err != nil {
		t.Fatalf("Tail failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Tail(0) returned %d events, want all 5", len(all))
	}
}

func TestLogger_TraversalConfined(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	// A hostile component name must not escape the state dir
	if err := logger.LogEvent(EventError, "../../etc/passwd", "x"); err != nil {
		// Rejection is fine
		return
	}

	path, err := logger.eventPath("../../etc/passwd")
	if err != nil {
		return
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("event path %q escapes state dir %q", path, dir)
	}
}
