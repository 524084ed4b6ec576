// Package events announces schedule changes to other clients.
package events

import (
	"context"
	"sync"
	"time"
)

// Event types.
const (
	ScheduleCopied   = "schedule.copied"
	ScheduleShifted  = "schedule.shifted"
	ScheduleRepaired = "schedule.repaired"
	ScheduleImported = "schedule.imported"
)

// Event is one published change. Payload is encoded as JSON.
type Event struct {
	Type       string         `json:"type"`
	ProjectID  string         `json:"project_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Publisher sends events. Publish failures are reported to the caller, who
// decides whether they matter.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Noop discards events.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Memory records events in order; it backs tests and dry runs.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

func (m *Memory) Publish(_ context.Context, e Event) error {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
	return nil
}

// Events returns a copy of everything published so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}
