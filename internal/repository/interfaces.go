package repository

import (
	"context"

	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// TaskRepo stores schedule tasks. ListByProject returns tasks in hierarchy
// order, with unnumbered tasks last in creation order.
type TaskRepo interface {
	Create(ctx context.Context, t *domain.ScheduleTask) error
	BulkCreate(ctx context.Context, tasks []domain.ScheduleTask) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleTask, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.ScheduleTask, error)
	Update(ctx context.Context, t *domain.ScheduleTask) error
	UpdateDates(ctx context.Context, id string, start, end dateonly.Date) error
	UpdateHierarchyNumber(ctx context.Context, id, key string) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int, error)
}
