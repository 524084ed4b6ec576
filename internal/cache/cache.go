// Package cache holds per-project task snapshots so repeated reads of a
// schedule (view, copy source, repair scan) skip the store. Every write path
// in the service layer invalidates the affected project.
package cache

import (
	"context"

	"github.com/sitecrew/gantt/internal/domain"
)

// TaskCache stores the ordered task list of a project.
type TaskCache interface {
	// Get reports a miss with ok=false and a nil error.
	Get(ctx context.Context, projectID string) (tasks []domain.ScheduleTask, ok bool, err error)
	Set(ctx context.Context, projectID string, tasks []domain.ScheduleTask) error
	Invalidate(ctx context.Context, projectID string) error
}

// Noop never hits.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]domain.ScheduleTask, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, string, []domain.ScheduleTask) error { return nil }

func (Noop) Invalidate(context.Context, string) error { return nil }
