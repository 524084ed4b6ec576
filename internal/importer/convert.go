package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
)

// Converted is an import ready for persistence.
type Converted struct {
	Project *domain.Project
	Tasks   []domain.ScheduleTask
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid but
// still runs task-level validation on the result.
func Convert(schema *ImportSchema) (*Converted, error) {
	now := time.Now().UTC()

	startDate, err := dateonly.Parse(schema.Project.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}

	project := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   strings.ToUpper(schema.Project.ShortID),
		Name:      schema.Project.Name,
		StartDate: startDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tasks := make([]domain.ScheduleTask, 0, len(schema.Tasks))
	var errs []error
	for i, ti := range schema.Tasks {
		task, err := convertTask(project.ID, ti, now)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		for _, verr := range domain.ValidateTask(&task) {
			errs = append(errs, fmt.Errorf("tasks[%d]: %w", i, verr))
		}
		tasks = append(tasks, task)
	}
	if len(errs) > 0 {
		return nil, domain.JoinErrors("invalid tasks", errs)
	}

	return &Converted{Project: project, Tasks: tasks}, nil
}

func convertTask(projectID string, ti TaskImport, now time.Time) (domain.ScheduleTask, error) {
	start, err := dateonly.Parse(ti.StartDate)
	if err != nil {
		return domain.ScheduleTask{}, fmt.Errorf("parsing start_date: %w", err)
	}
	end := start
	if ti.EndDate != "" {
		if end, err = dateonly.Parse(ti.EndDate); err != nil {
			return domain.ScheduleTask{}, fmt.Errorf("parsing end_date: %w", err)
		}
	}

	task := domain.ScheduleTask{
		ID:              uuid.New().String(),
		ProjectID:       projectID,
		Name:            strings.TrimSpace(ti.Name),
		StartDate:       start,
		EndDate:         end,
		Predecessor:     strings.TrimSpace(ti.Predecessor),
		HierarchyNumber: strings.TrimSpace(ti.HierarchyNumber),
		Resources:       ti.Resources,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if ti.Duration != nil {
		task.Duration = *ti.Duration
	} else {
		task.Duration = dateonly.BusinessDaysBetween(start, end)
	}
	if ti.Progress != nil {
		task.Progress = *ti.Progress
	}
	return task, nil
}
