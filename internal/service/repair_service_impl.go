package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sitecrew/gantt/internal/events"
	"github.com/sitecrew/gantt/internal/repair"
	"github.com/sitecrew/gantt/internal/repository"
)

type repairService struct {
	tasks      repository.TaskRepo
	classifier repair.Classifier
	opts       *options
}

// NewRepairService returns a RepairService. A nil classifier uses the
// default construction phase vocabulary.
func NewRepairService(tasks repository.TaskRepo, classifier repair.Classifier, opts ...Option) RepairService {
	if classifier == nil {
		classifier = repair.NewPhaseClassifier()
	}
	return &repairService{tasks: tasks, classifier: classifier, opts: buildOptions(opts)}
}

// RepairHierarchy plans and applies hierarchy number repairs for a project.
// Each delete and key write stands alone; failures are logged and collected
// and the rest of the plan is still applied.
func (s *repairService) RepairHierarchy(ctx context.Context, req RepairRequest) (res *RepairResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": req.ProjectID, "dry_run": req.DryRun}
	defer s.opts.observe(ctx, "schedule.repair", startedAt, fields, &err)

	tasks, err := s.tasks.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	plan := repair.BuildPlan(tasks, repair.Options{
		DeleteOrphans: req.DeleteOrphans,
		Classifier:    s.classifier,
	})
	res = &RepairResult{Plan: plan}
	fields["orphans"] = len(plan.Orphans)
	fields["updates"] = len(plan.Updates)
	if req.DryRun || plan.Empty() {
		return res, nil
	}

	for _, o := range plan.Orphans {
		if err := s.tasks.Delete(ctx, o.ID); err != nil {
			s.opts.logger.WarnContext(ctx, "orphan delete failed", "task_id", o.ID, "error", err)
			res.Failed = append(res.Failed, UpdateFailure{TaskID: o.ID, Err: err})
			continue
		}
		res.Deleted++
	}
	for _, u := range plan.Updates {
		if err := s.tasks.UpdateHierarchyNumber(ctx, u.TaskID, u.NewKey); err != nil {
			s.opts.logger.WarnContext(ctx, "hierarchy update failed",
				"task_id", u.TaskID, "new_key", u.NewKey, "error", err)
			res.Failed = append(res.Failed, UpdateFailure{TaskID: u.TaskID, Err: err})
			continue
		}
		res.Renumbered++
	}
	fields["deleted"] = res.Deleted
	fields["renumbered"] = res.Renumbered

	if res.Deleted > 0 || res.Renumbered > 0 {
		s.opts.invalidate(ctx, req.ProjectID)
		s.opts.publish(ctx, events.ScheduleRepaired, req.ProjectID, map[string]any{
			"deleted":    res.Deleted,
			"renumbered": res.Renumbered,
			"failed":     len(res.Failed),
		})
	}
	return res, nil
}
