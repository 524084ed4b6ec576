package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithStartDate(d string) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = dateonly.MustParse(d)
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		StartDate: dateonly.MustParse("2024-01-01"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.ScheduleTask)

// WithDates sets start and end from YYYY-MM-DD strings.
func WithDates(start, end string) TaskOption {
	return func(t *domain.ScheduleTask) {
		t.StartDate = dateonly.MustParse(start)
		t.EndDate = dateonly.MustParse(end)
	}
}

func WithDuration(d int) TaskOption {
	return func(t *domain.ScheduleTask) {
		t.Duration = d
	}
}

func WithProgress(p int) TaskOption {
	return func(t *domain.ScheduleTask) {
		t.Progress = p
	}
}

func WithPredecessor(p string) TaskOption {
	return func(t *domain.ScheduleTask) {
		t.Predecessor = p
	}
}

func WithHierarchy(key string) TaskOption {
	return func(t *domain.ScheduleTask) {
		t.HierarchyNumber = key
	}
}

func WithResources(r string) TaskOption {
	return func(t *domain.ScheduleTask) {
		t.Resources = r
	}
}

func WithCreatedAt(ts time.Time) TaskOption {
	return func(t *domain.ScheduleTask) {
		t.CreatedAt = ts
		t.UpdatedAt = ts
	}
}

// NewTestTask returns a one-day task on Monday 2024-01-01.
func NewTestTask(projectID, name string, opts ...TaskOption) *domain.ScheduleTask {
	now := time.Now().UTC().Truncate(time.Second)
	day := dateonly.MustParse("2024-01-01")
	t := &domain.ScheduleTask{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		StartDate: day,
		EndDate:   day,
		Duration:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
