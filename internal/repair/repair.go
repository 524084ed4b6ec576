// Package repair finds tasks whose hierarchy numbers were left as placeholder
// values and plans clean replacement keys for them.
//
// Planning is pure. Applying a plan (deleting orphans, writing keys) is the
// caller's job and is expected to be best-effort per task.
package repair

import (
	"github.com/sitecrew/gantt/internal/domain"
)

// Options controls plan construction.
type Options struct {
	// DeleteOrphans plans deletion of tasks that have both a placeholder name
	// and a sentinel key. Otherwise orphans are reported and left alone.
	DeleteOrphans bool
	// Classifier decides top-level versus child. Nil means the default
	// phase vocabulary.
	Classifier Classifier
	// ChildBand is the top-level key under which child tasks are numbered.
	// Zero means the highest top-level key already in use.
	ChildBand int
}

// KeyUpdate is one planned hierarchy number change.
type KeyUpdate struct {
	TaskID   string
	Name     string
	OldKey   string
	NewKey   string
	TopLevel bool
}

// Plan is the outcome of scanning a task list.
type Plan struct {
	// Orphans are planned for deletion.
	Orphans []domain.ScheduleTask
	// SkippedOrphans were detected but not planned for deletion.
	SkippedOrphans []domain.ScheduleTask
	Updates        []KeyUpdate
}

// Empty reports whether the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.Orphans) == 0 && len(p.Updates) == 0
}

// keyspace tracks which keys are in use while assigning new ones.
type keyspace struct {
	topMax   int
	childMax map[int]int
}

func newKeyspace(tasks []domain.ScheduleTask) *keyspace {
	ks := &keyspace{childMax: make(map[int]int)}
	for _, t := range tasks {
		if IsSentinelKey(t.HierarchyNumber) {
			continue
		}
		segs, ok := domain.ParseHierarchy(t.HierarchyNumber)
		if !ok {
			continue
		}
		if segs[0] > ks.topMax {
			ks.topMax = segs[0]
		}
		if len(segs) >= 2 && segs[1] > ks.childMax[segs[0]] {
			ks.childMax[segs[0]] = segs[1]
		}
	}
	return ks
}

func (ks *keyspace) nextTop() string {
	ks.topMax++
	return domain.FormatHierarchy(ks.topMax)
}

func (ks *keyspace) nextChild(band int) string {
	ks.childMax[band]++
	return domain.FormatHierarchy(band, ks.childMax[band])
}

// BuildPlan partitions sentinel-keyed tasks into orphans and repairable
// tasks, then assigns repairable tasks new keys in input order. Top-level
// tasks get the next unused integer key. Children get the next unused key
// in the child band; when no band exists yet the task is numbered as
// top-level instead.
func BuildPlan(tasks []domain.ScheduleTask, opts Options) Plan {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = NewPhaseClassifier()
	}

	var plan Plan
	ks := newKeyspace(tasks)
	for _, t := range tasks {
		if !IsSentinelKey(t.HierarchyNumber) {
			continue
		}
		if IsPlaceholderName(t.Name) {
			if opts.DeleteOrphans {
				plan.Orphans = append(plan.Orphans, t)
			} else {
				plan.SkippedOrphans = append(plan.SkippedOrphans, t)
			}
			continue
		}

		u := KeyUpdate{TaskID: t.ID, Name: t.Name, OldKey: t.HierarchyNumber}
		band := opts.ChildBand
		if band <= 0 {
			band = ks.topMax
		}
		if classifier.IsTopLevel(t.Name) || band <= 0 {
			u.NewKey = ks.nextTop()
			u.TopLevel = true
		} else {
			u.NewKey = ks.nextChild(band)
		}
		plan.Updates = append(plan.Updates, u)
	}
	return plan
}

// Apply returns a copy of tasks with the plan's key updates written and its
// orphans removed.
func Apply(tasks []domain.ScheduleTask, plan Plan) []domain.ScheduleTask {
	drop := make(map[string]struct{}, len(plan.Orphans))
	for _, o := range plan.Orphans {
		drop[o.ID] = struct{}{}
	}
	keys := make(map[string]string, len(plan.Updates))
	for _, u := range plan.Updates {
		keys[u.TaskID] = u.NewKey
	}

	out := make([]domain.ScheduleTask, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := drop[t.ID]; ok {
			continue
		}
		if k, ok := keys[t.ID]; ok {
			t.HierarchyNumber = k
		}
		out = append(out, t)
	}
	return out
}
