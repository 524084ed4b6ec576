package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sitecrew/gantt/internal/db"
	"github.com/sitecrew/gantt/internal/domain"
	"github.com/sitecrew/gantt/internal/events"
	"github.com/sitecrew/gantt/internal/repository"
	"github.com/sitecrew/gantt/internal/schedule"
)

var ErrSameProject = errors.New("source and target project must differ")

type scheduleService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	opts     *options
}

func NewScheduleService(
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	opts ...Option,
) ScheduleService {
	return &scheduleService{
		projects: projects,
		tasks:    tasks,
		uow:      uow,
		opts:     buildOptions(opts),
	}
}

// CopySchedule inserts shifted copies of the source project's tasks into the
// target project in one transaction, then re-derives dependent dates and
// writes those one task at a time. A failed write in the second pass leaves
// that task on its shifted dates and is reported, not returned.
func (s *scheduleService) CopySchedule(ctx context.Context, req CopyRequest) (res *CopyResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"source_project_id": req.SourceProjectID,
		"target_project_id": req.TargetProjectID,
	}
	defer s.opts.observe(ctx, "schedule.copy", startedAt, fields, &err)

	if req.SourceProjectID == req.TargetProjectID {
		return nil, ErrSameProject
	}
	if _, err := s.projects.GetByID(ctx, req.SourceProjectID); err != nil {
		return nil, fmt.Errorf("loading source project: %w", err)
	}
	if _, err := s.projects.GetByID(ctx, req.TargetProjectID); err != nil {
		return nil, fmt.Errorf("loading target project: %w", err)
	}

	source, err := s.opts.loadTasks(ctx, s.tasks, req.SourceProjectID)
	if err != nil {
		return nil, err
	}
	anchor := req.Anchor
	if anchor.IsZero() {
		anchor = s.opts.clock.Today()
	}
	engineOpts := schedule.Options{
		StripResources:     req.StripResources,
		HonorRelationships: req.HonorRelationships,
	}
	shifted, err := schedule.Shift(source, anchor, engineOpts)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	copies := shifted.Tasks
	for i := range copies {
		copies[i].ID = uuid.New().String()
		copies[i].ProjectID = req.TargetProjectID
		copies[i].CreatedAt = now
		copies[i].UpdatedAt = now
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLTaskRepo(tx).BulkCreate(ctx, copies)
	})
	if err != nil {
		return nil, fmt.Errorf("copying tasks: %w", err)
	}
	s.opts.invalidate(ctx, req.TargetProjectID)

	final, re, written, failed := s.rederive(ctx, copies, engineOpts)

	res = &CopyResult{
		Copied:        len(copies),
		ShiftDays:     shifted.ShiftDays,
		Anchor:        anchor,
		Rederived:     written,
		Unresolved:    re.Unresolved,
		FailedUpdates: failed,
		Fingerprint:   schedule.Fingerprint(final),
	}
	fields["copied"] = res.Copied
	fields["shift_days"] = res.ShiftDays
	fields["rederived"] = res.Rederived
	fields["failed_updates"] = len(failed)

	s.opts.publish(ctx, events.ScheduleCopied, req.TargetProjectID, map[string]any{
		"source_project_id": req.SourceProjectID,
		"anchor":            anchor.String(),
		"copied":            res.Copied,
		"shift_days":        res.ShiftDays,
		"fingerprint":       res.Fingerprint,
	})
	return res, nil
}

// ShiftSchedule moves a project's own tasks so the earliest one starts on
// the anchor. The uniform shift is written atomically; re-derived dates are
// written best-effort as in CopySchedule.
func (s *scheduleService) ShiftSchedule(ctx context.Context, req ShiftRequest) (res *ShiftResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": req.ProjectID}
	defer s.opts.observe(ctx, "schedule.shift", startedAt, fields, &err)

	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	current, err := s.tasks.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	anchor := req.Anchor
	if anchor.IsZero() {
		anchor = s.opts.clock.Today()
	}
	engineOpts := schedule.Options{HonorRelationships: req.HonorRelationships}
	shifted, err := schedule.Shift(current, anchor, engineOpts)
	if err != nil {
		return nil, err
	}

	if shifted.ShiftDays != 0 {
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			txTasks := repository.NewSQLTaskRepo(tx)
			for _, t := range shifted.Tasks {
				if err := txTasks.UpdateDates(ctx, t.ID, t.StartDate, t.EndDate); err != nil {
					return fmt.Errorf("task %s: %w", t.ID, err)
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("shifting tasks: %w", err)
		}
	}
	s.opts.invalidate(ctx, req.ProjectID)

	final, re, written, failed := s.rederive(ctx, shifted.Tasks, engineOpts)

	res = &ShiftResult{
		Shifted:       len(shifted.Tasks),
		ShiftDays:     shifted.ShiftDays,
		Anchor:        anchor,
		Rederived:     written,
		Unresolved:    re.Unresolved,
		FailedUpdates: failed,
		Fingerprint:   schedule.Fingerprint(final),
	}
	fields["shift_days"] = res.ShiftDays
	fields["rederived"] = res.Rederived
	fields["failed_updates"] = len(failed)

	s.opts.publish(ctx, events.ScheduleShifted, req.ProjectID, map[string]any{
		"anchor":      anchor.String(),
		"shift_days":  res.ShiftDays,
		"fingerprint": res.Fingerprint,
	})
	return res, nil
}

// rederive runs the predecessor pass over persisted tasks and writes each
// changed task individually. It returns the tasks as they now stand in the
// store: a task whose write failed keeps its pre-pass dates.
func (s *scheduleService) rederive(
	ctx context.Context,
	persisted []domain.ScheduleTask,
	opts schedule.Options,
) ([]domain.ScheduleTask, schedule.RederiveResult, int, []UpdateFailure) {
	re := schedule.Rederive(persisted, opts)
	final := domain.CloneTasks(re.Tasks)

	var (
		written int
		failed  []UpdateFailure
	)
	for _, i := range re.Changed {
		t := re.Tasks[i]
		if err := s.tasks.UpdateDates(ctx, t.ID, t.StartDate, t.EndDate); err != nil {
			s.opts.logger.WarnContext(ctx, "rederived date update failed",
				"task_id", t.ID, "project_id", t.ProjectID, "error", err)
			failed = append(failed, UpdateFailure{TaskID: t.ID, Err: err})
			final[i] = persisted[i]
			continue
		}
		written++
	}
	if len(re.Changed) > 0 && len(persisted) > 0 {
		s.opts.invalidate(ctx, persisted[0].ProjectID)
	}
	return final, re, written, failed
}
