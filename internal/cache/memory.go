package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sitecrew/gantt/internal/domain"
)

type memoryEntry struct {
	tasks   []domain.ScheduleTask
	expires time.Time
}

// Memory is an in-process TaskCache. Entries are copied on the way in and
// out so callers cannot mutate cached state.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates a Memory cache. A ttl of zero keeps entries until
// invalidated.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, projectID string) ([]domain.ScheduleTask, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[projectID]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.mu.Lock()
		delete(m.entries, projectID)
		m.mu.Unlock()
		return nil, false, nil
	}
	return domain.CloneTasks(e.tasks), true, nil
}

func (m *Memory) Set(_ context.Context, projectID string, tasks []domain.ScheduleTask) error {
	e := memoryEntry{tasks: domain.CloneTasks(tasks)}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.entries[projectID] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Invalidate(_ context.Context, projectID string) error {
	m.mu.Lock()
	delete(m.entries, projectID)
	m.mu.Unlock()
	return nil
}
