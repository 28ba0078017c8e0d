// Package audit provides structured event logging for gateway lifecycle
// events. Events are stored as JSON Lines (JSONL) files, one per
// gateway component.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// EventType classifies a gateway event.
type EventType string

const (
	EventPromote  EventType = "promote"
	EventRollback EventType = "rollback"
	EventDegraded EventType = "degraded"
	EventStart    EventType = "start"
	EventHealth   EventType = "health"
	EventError    EventType = "error"
)

// GatewayComponent is the component name used for router-level events.
const GatewayComponent = "gateway"

// Event represents a single audit log entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Component string    `json:"component"`
	Details   string    `json:"details,omitempty"`
}

// Logger writes and reads audit events for gateway components.
// Events are stored in {stateDir}/events/{component}.events.jsonl.
type Logger struct {
	stateDir string
}

// NewLogger creates a new audit logger rooted at stateDir.
func NewLogger(stateDir string) *Logger {
	return &Logger{stateDir: stateDir}
}

// eventPath returns the path to the JSONL event log for a component.
// The component name may come from CLI input, so the join is confined
// to the state dir.
func (l *Logger) eventPath(component string) (string, error) {
	return securejoin.SecureJoin(filepath.Join(l.stateDir, "events"), component+".events.jsonl")
}

// Log appends an event to the component's audit log.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Component == "" {
		event.Component = GatewayComponent
	}

	path, err := l.eventPath(event.Component)
	if err != nil {
		return fmt.Errorf("invalid component name %q: %w", event.Component, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, component, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Component: component,
		Details:   details,
	})
}

// Events reads all events for a component in chronological order.
func (l *Logger) Events(component string) ([]Event, error) {
	path, err := l.eventPath(component)
	if err != nil {
		return nil, fmt.Errorf("invalid component name %q: %w", component, err)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}

// Tail returns the most recent n events for a component.
func (l *Logger) Tail(component string, n int) ([]Event, error) {
	events, err := l.Events(component)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}
