package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sitecrew/gantt/internal/domain"
	"github.com/sitecrew/gantt/internal/repository"
)

type taskService struct {
	tasks repository.TaskRepo
	opts  *options
}

func NewTaskService(tasks repository.TaskRepo, opts ...Option) TaskService {
	return &taskService{tasks: tasks, opts: buildOptions(opts)}
}

// Create fills in defaults before storing t: a missing end date equals the
// start, and a zero duration becomes the business-day span.
func (s *taskService) Create(ctx context.Context, t *domain.ScheduleTask) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.EndDate.IsZero() {
		t.EndDate = t.StartDate
	}
	if t.Duration == 0 {
		t.Duration = t.SpanBusinessDays()
	}
	if err := domain.JoinErrors("invalid task", domain.ValidateTask(t)); err != nil {
		return err
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.tasks.Create(ctx, t); err != nil {
		return err
	}
	s.opts.invalidate(ctx, t.ProjectID)
	return nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.ScheduleTask, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]domain.ScheduleTask, error) {
	return s.opts.loadTasks(ctx, s.tasks, projectID)
}

func (s *taskService) Update(ctx context.Context, t *domain.ScheduleTask) error {
	if err := domain.JoinErrors("invalid task", domain.ValidateTask(t)); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, t); err != nil {
		return err
	}
	s.opts.invalidate(ctx, t.ProjectID)
	return nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.opts.invalidate(ctx, t.ProjectID)
	return nil
}
