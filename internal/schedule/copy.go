package schedule

import (
	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
)

// Result combines both passes of a schedule copy.
type Result struct {
	Tasks      []domain.ScheduleTask
	ShiftDays  int
	Rederived  int
	Unresolved []Miss
}

// Copy shifts tasks onto anchor and then re-derives dependent dates. It is
// the in-memory form of the two-pass copy; callers that persist between the
// passes use Shift and Rederive directly.
func Copy(tasks []domain.ScheduleTask, anchor dateonly.Date, opts Options) (Result, error) {
	shifted, err := Shift(tasks, anchor, opts)
	if err != nil {
		return Result{}, err
	}
	re := Rederive(shifted.Tasks, opts)
	return Result{
		Tasks:      re.Tasks,
		ShiftDays:  shifted.ShiftDays,
		Rederived:  len(re.Changed),
		Unresolved: re.Unresolved,
	}, nil
}
