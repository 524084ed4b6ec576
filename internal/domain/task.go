package domain

import (
	"time"

	"github.com/sitecrew/gantt/internal/dateonly"
)

// ScheduleTask is one unit of work on a project schedule.
type ScheduleTask struct {
	ID              string        `json:"id" validate:"required"`
	ProjectID       string        `json:"project_id" validate:"required"`
	Name            string        `json:"name" validate:"max=255"`
	StartDate       dateonly.Date `json:"start_date" validate:"required"`
	EndDate         dateonly.Date `json:"end_date" validate:"required"`
	Duration        int           `json:"duration" validate:"gte=0"`
	Progress        int           `json:"progress" validate:"gte=0,lte=100"`
	Predecessor     string        `json:"predecessor,omitempty" validate:"omitempty,max=64"`
	HierarchyNumber string        `json:"hierarchy_number,omitempty" validate:"omitempty,max=64"`
	Resources       string        `json:"resources,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// HasPredecessor reports whether the task references another task.
func (t *ScheduleTask) HasPredecessor() bool {
	return t.Predecessor != ""
}

// SetDates assigns start and end, collapsing end onto start when the two
// are out of order.
func (t *ScheduleTask) SetDates(start, end dateonly.Date) {
	if end.Before(start) {
		end = start
	}
	t.StartDate = start
	t.EndDate = end
}

// SpanBusinessDays returns the number of business days the task covers.
func (t *ScheduleTask) SpanBusinessDays() int {
	return dateonly.BusinessDaysBetween(t.StartDate, t.EndDate)
}

// EffectiveDuration is Duration, or the business-day span when Duration is unset.
func (t *ScheduleTask) EffectiveDuration() int {
	if t.Duration > 0 {
		return t.Duration
	}
	if span := t.SpanBusinessDays(); span > 0 {
		return span
	}
	return 1
}

// CloneTasks returns a shallow copy of tasks; ScheduleTask holds no pointers.
func CloneTasks(tasks []ScheduleTask) []ScheduleTask {
	if tasks == nil {
		return nil
	}
	out := make([]ScheduleTask, len(tasks))
	copy(out, tasks)
	return out
}
