package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/db"
	"github.com/sitecrew/gantt/internal/domain"
)

// SQLTaskRepo implements TaskRepo over any DBTX bound to its dialect.
type SQLTaskRepo struct {
	db db.DBTX
}

// NewSQLTaskRepo creates a new SQLTaskRepo.
func NewSQLTaskRepo(conn db.DBTX) *SQLTaskRepo {
	return &SQLTaskRepo{db: conn}
}

const taskColumns = `id, project_id, name, start_date, end_date, duration, progress,
	predecessor, hierarchy_number, resources, created_at, updated_at`

func (r *SQLTaskRepo) Create(ctx context.Context, t *domain.ScheduleTask) error {
	query := `INSERT INTO schedule_tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Name,
		t.StartDate.String(),
		t.EndDate.String(),
		t.Duration,
		t.Progress,
		nullableString(t.Predecessor),
		nullableString(t.HierarchyNumber),
		nullableString(t.Resources),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task %s: %w", t.ID, err)
	}
	return nil
}

// BulkCreate inserts tasks one statement at a time. Run it inside a unit of
// work so a failure leaves nothing behind.
func (r *SQLTaskRepo) BulkCreate(ctx context.Context, tasks []domain.ScheduleTask) error {
	for i := range tasks {
		if err := r.Create(ctx, &tasks[i]); err != nil {
			return fmt.Errorf("bulk insert row %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLTaskRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleTask, error) {
	query := `SELECT ` + taskColumns + ` FROM schedule_tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLTaskRepo) ListByProject(ctx context.Context, projectID string) ([]domain.ScheduleTask, error) {
	query := `SELECT ` + taskColumns + ` FROM schedule_tasks WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.ScheduleTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	// Dotted keys do not sort correctly as text ("10" < "2"), so order here.
	sort.SliceStable(tasks, func(i, j int) bool {
		return domain.CompareHierarchy(tasks[i].HierarchyNumber, tasks[j].HierarchyNumber) < 0
	})
	return tasks, nil
}

func (r *SQLTaskRepo) Update(ctx context.Context, t *domain.ScheduleTask) error {
	query := `UPDATE schedule_tasks SET name = ?, start_date = ?, end_date = ?, duration = ?, progress = ?,
		predecessor = ?, hierarchy_number = ?, resources = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.StartDate.String(),
		t.EndDate.String(),
		t.Duration,
		t.Progress,
		nullableString(t.Predecessor),
		nullableString(t.HierarchyNumber),
		nullableString(t.Resources),
		formatTimestamp(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return affectOne(res, "updating task")
}

func (r *SQLTaskRepo) UpdateDates(ctx context.Context, id string, start, end dateonly.Date) error {
	query := `UPDATE schedule_tasks SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, start.String(), end.String(), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating task dates: %w", err)
	}
	return affectOne(res, "updating task dates")
}

func (r *SQLTaskRepo) UpdateHierarchyNumber(ctx context.Context, id, key string) error {
	query := `UPDATE schedule_tasks SET hierarchy_number = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nullableString(key), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating hierarchy number: %w", err)
	}
	return affectOne(res, "updating hierarchy number")
}

func (r *SQLTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return affectOne(res, "deleting task")
}

func (r *SQLTaskRepo) DeleteByProject(ctx context.Context, projectID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule_tasks WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("deleting project tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking deleted task count: %w", err)
	}
	return int(n), nil
}

func scanTask(row scanner) (domain.ScheduleTask, error) {
	var t domain.ScheduleTask
	var predecessor, hierarchy, resources sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Name,
		&t.StartDate, &t.EndDate,
		&t.Duration, &t.Progress,
		&predecessor, &hierarchy, &resources,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, fmt.Errorf("task: %w", ErrNotFound)
		}
		return t, fmt.Errorf("scanning task: %w", err)
	}

	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return t, fmt.Errorf("scanning task %s: %w: empty start_date or end_date", t.ID, dateonly.ErrInvalidDate)
	}

	t.Predecessor = predecessor.String
	t.HierarchyNumber = hierarchy.String
	t.Resources = resources.String
	if t.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return t, err
	}
	if t.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return t, err
	}
	return t, nil
}
