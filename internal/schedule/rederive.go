package schedule

import (
	"errors"
	"fmt"

	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
)

var (
	ErrPredecessorNotFound = errors.New("predecessor not found")
	ErrSelfReference       = errors.New("task references itself")
	ErrDependencyCycle     = errors.New("dependency cycle")
)

// Miss records a task whose predecessor could not be resolved. The task keeps
// the dates it had before re-derivation.
type Miss struct {
	TaskID      string
	Predecessor string
	Err         error
}

func (m Miss) Error() string {
	return fmt.Sprintf("task %s predecessor %q: %v", m.TaskID, m.Predecessor, m.Err)
}

// RederiveResult is the output of the predecessor pass.
type RederiveResult struct {
	Tasks []domain.ScheduleTask
	// Changed holds indexes into Tasks whose dates moved.
	Changed []int
	// Resolved counts tasks whose dates were recomputed from a predecessor,
	// whether or not the dates actually moved.
	Resolved   int
	Unresolved []Miss
}

type link struct {
	pred int
	rel  domain.Relationship
}

// Rederive recomputes the dates of every task that names a predecessor, using
// the predecessor's current dates. Tasks are processed after their
// predecessors, so a change at the head of a chain reaches its tail.
//
// Predecessors are looked up by canonical hierarchy number. When two tasks
// share a hierarchy number the first one in input order wins. A predecessor
// without dates is reported as a miss rather than derived from.
func Rederive(tasks []domain.ScheduleTask, opts Options) RederiveResult {
	out := domain.CloneTasks(tasks)
	res := RederiveResult{Tasks: out}

	byKey := make(map[string]int, len(out))
	for i, t := range out {
		key := domain.NormalizeHierarchy(t.HierarchyNumber)
		if key == "" {
			continue
		}
		if _, dup := byKey[key]; !dup {
			byKey[key] = i
		}
	}

	links := make(map[int]link)
	for i, t := range out {
		if !t.HasPredecessor() {
			continue
		}
		p, err := domain.ParsePredecessor(t.Predecessor)
		if err != nil {
			res.Unresolved = append(res.Unresolved, Miss{TaskID: t.ID, Predecessor: t.Predecessor, Err: err})
			continue
		}
		pi, ok := byKey[p.Key]
		if !ok {
			res.Unresolved = append(res.Unresolved, Miss{TaskID: t.ID, Predecessor: t.Predecessor, Err: ErrPredecessorNotFound})
			continue
		}
		if pi == i {
			res.Unresolved = append(res.Unresolved, Miss{TaskID: t.ID, Predecessor: t.Predecessor, Err: ErrSelfReference})
			continue
		}
		if pt := out[pi]; pt.StartDate.IsZero() || pt.EndDate.IsZero() {
			res.Unresolved = append(res.Unresolved, Miss{
				TaskID: t.ID, Predecessor: t.Predecessor,
				Err: fmt.Errorf("%w: predecessor %s has no start/end date", dateonly.ErrInvalidDate, pt.ID),
			})
			continue
		}
		rel := p.Relationship
		if !opts.HonorRelationships {
			rel = domain.FinishToStart
		}
		links[i] = link{pred: pi, rel: rel}
	}

	order, cyclic := dependencyOrder(len(out), links)
	for _, i := range cyclic {
		res.Unresolved = append(res.Unresolved, Miss{TaskID: out[i].ID, Predecessor: out[i].Predecessor, Err: ErrDependencyCycle})
	}

	for _, i := range order {
		l, ok := links[i]
		if !ok {
			continue
		}
		start, end := deriveDates(out[l.pred], out[i].Duration, l.rel)
		if start != out[i].StartDate || end != out[i].EndDate {
			res.Changed = append(res.Changed, i)
		}
		out[i].StartDate, out[i].EndDate = start, end
		res.Resolved++
	}

	return res
}

// deriveDates applies one dependency rule. duration is in business days; a
// duration of 1 or less yields a single-day task.
func deriveDates(pred domain.ScheduleTask, duration int, rel domain.Relationship) (start, end dateonly.Date) {
	span := duration - 1
	switch rel {
	case domain.StartToStart:
		start = dateonly.EnsureBusinessDay(pred.StartDate)
		end = dateonly.AddBusinessDays(start, span)
	case domain.FinishToFinish:
		end = dateonly.EnsureBusinessDay(pred.EndDate)
		start = dateonly.SubtractBusinessDays(end, span)
	case domain.StartToFinish:
		end = dateonly.EnsureBusinessDay(pred.StartDate)
		start = dateonly.SubtractBusinessDays(end, span)
	default:
		start = dateonly.AddBusinessDays(pred.EndDate, 1)
		end = dateonly.AddBusinessDays(start, span)
	}
	return start, end
}

// dependencyOrder returns task indexes so that every linked task comes after
// its predecessor; the order is deterministic for a given input. Tasks on or
// behind a cycle are returned separately and left out of the order.
func dependencyOrder(n int, links map[int]link) (order, cyclic []int) {
	indegree := make([]int, n)
	dependents := make(map[int][]int)
	for i := 0; i < n; i++ {
		if l, ok := links[i]; ok {
			indegree[i] = 1
			dependents[l.pred] = append(dependents[l.pred], i)
		}
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		for _, d := range dependents[i] {
			indegree[d]--
			if indegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(order) < n {
		done := make([]bool, n)
		for _, i := range order {
			done[i] = true
		}
		for i := 0; i < n; i++ {
			if !done[i] {
				cyclic = append(cyclic, i)
			}
		}
	}
	return order, cyclic
}
