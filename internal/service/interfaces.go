package service

import (
	"context"

	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
	"github.com/sitecrew/gantt/internal/importer"
	"github.com/sitecrew/gantt/internal/repair"
	"github.com/sitecrew/gantt/internal/schedule"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.ScheduleTask) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleTask, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.ScheduleTask, error)
	Update(ctx context.Context, t *domain.ScheduleTask) error
	Delete(ctx context.Context, id string) error
}

// CopyRequest duplicates one project's schedule onto another. A zero Anchor
// means today.
type CopyRequest struct {
	SourceProjectID    string
	TargetProjectID    string
	Anchor             dateonly.Date
	StripResources     bool
	HonorRelationships bool
}

// CopyResult reports what a copy persisted. Rederived counts dependent tasks
// whose recomputed dates were written; FailedUpdates lists those that were
// not and so keep their shifted dates.
type CopyResult struct {
	Copied        int
	ShiftDays     int
	Anchor        dateonly.Date
	Rederived     int
	Unresolved    []schedule.Miss
	FailedUpdates []UpdateFailure
	Fingerprint   string
}

// ShiftRequest moves a project's own schedule so its earliest task starts
// on Anchor. A zero Anchor means today.
type ShiftRequest struct {
	ProjectID          string
	Anchor             dateonly.Date
	HonorRelationships bool
}

type ShiftResult struct {
	Shifted       int
	ShiftDays     int
	Anchor        dateonly.Date
	Rederived     int
	Unresolved    []schedule.Miss
	FailedUpdates []UpdateFailure
	Fingerprint   string
}

type ScheduleService interface {
	CopySchedule(ctx context.Context, req CopyRequest) (*CopyResult, error)
	ShiftSchedule(ctx context.Context, req ShiftRequest) (*ShiftResult, error)
}

// RepairRequest asks for placeholder hierarchy numbers in a project to be
// replaced. DryRun computes the plan without writing.
type RepairRequest struct {
	ProjectID     string
	DeleteOrphans bool
	DryRun        bool
}

type RepairResult struct {
	Plan       repair.Plan
	Deleted    int
	Renumbered int
	Failed     []UpdateFailure
}

type RepairService interface {
	RepairHierarchy(ctx context.Context, req RepairRequest) (*RepairResult, error)
}

// ImportResult holds the outcome of a schedule import.
type ImportResult struct {
	Project     *domain.Project
	TaskCount   int
	Fingerprint string
}

type ImportService interface {
	ImportSchedule(ctx context.Context, filePath string) (*ImportResult, error)
	ImportScheduleFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
