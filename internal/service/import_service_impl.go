package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sitecrew/gantt/internal/db"
	"github.com/sitecrew/gantt/internal/domain"
	"github.com/sitecrew/gantt/internal/events"
	"github.com/sitecrew/gantt/internal/importer"
	"github.com/sitecrew/gantt/internal/repository"
	"github.com/sitecrew/gantt/internal/schedule"
	"github.com/spf13/afero"
)

type importService struct {
	uow  db.UnitOfWork
	fs   afero.Fs
	opts *options
}

// NewImportService returns an ImportService reading files from fsys. A nil
// fsys means the OS filesystem.
func NewImportService(uow db.UnitOfWork, fsys afero.Fs, opts ...Option) ImportService {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &importService{uow: uow, fs: fsys, opts: buildOptions(opts)}
}

func (s *importService) ImportSchedule(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(s.fs, filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportScheduleFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (res *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"short_id": schema.Project.ShortID}
	defer s.opts.observe(ctx, "schedule.import", startedAt, fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, domain.JoinErrors("import validation failed", errs)
	}

	converted, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLProjectRepo(tx).Create(ctx, converted.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		if err := repository.NewSQLTaskRepo(tx).BulkCreate(ctx, converted.Tasks); err != nil {
			return fmt.Errorf("creating tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res = &ImportResult{
		Project:     converted.Project,
		TaskCount:   len(converted.Tasks),
		Fingerprint: schedule.Fingerprint(converted.Tasks),
	}
	fields["project_id"] = converted.Project.ID
	fields["tasks"] = res.TaskCount

	s.opts.publish(ctx, events.ScheduleImported, converted.Project.ID, map[string]any{
		"short_id":    converted.Project.ShortID,
		"tasks":       res.TaskCount,
		"fingerprint": res.Fingerprint,
	})
	return res, nil
}
