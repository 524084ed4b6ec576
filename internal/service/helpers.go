package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sitecrew/gantt/internal/domain"
	"github.com/sitecrew/gantt/internal/events"
	"github.com/sitecrew/gantt/internal/repository"
)

// UpdateFailure records one task write that failed during a best-effort
// batch. The batch carries on past it.
type UpdateFailure struct {
	TaskID string
	Err    error
}

func (f UpdateFailure) Error() string {
	return fmt.Sprintf("task %s: %v", f.TaskID, f.Err)
}

// loadTasks returns a project's tasks in hierarchy order, from the cache
// when possible. Cache faults are logged and fall through to the store.
func (o *options) loadTasks(ctx context.Context, repo repository.TaskRepo, projectID string) ([]domain.ScheduleTask, error) {
	tasks, ok, err := o.cache.Get(ctx, projectID)
	if err != nil {
		o.logger.WarnContext(ctx, "task cache read failed", "project_id", projectID, "error", err)
	}
	if ok {
		return tasks, nil
	}

	tasks, err = repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if err := o.cache.Set(ctx, projectID, tasks); err != nil {
		o.logger.WarnContext(ctx, "task cache write failed", "project_id", projectID, "error", err)
	}
	return tasks, nil
}

// invalidate drops a project's cached tasks after a write.
func (o *options) invalidate(ctx context.Context, projectID string) {
	if err := o.cache.Invalidate(ctx, projectID); err != nil {
		o.logger.WarnContext(ctx, "task cache invalidation failed", "project_id", projectID, "error", err)
	}
}

// publish sends an event; delivery failures are logged only.
func (o *options) publish(ctx context.Context, eventType, projectID string, payload map[string]any) {
	e := events.Event{
		Type:       eventType,
		ProjectID:  projectID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	if err := o.publisher.Publish(ctx, e); err != nil {
		o.logger.WarnContext(ctx, "event publish failed", "type", eventType, "project_id", projectID, "error", err)
	}
}
