package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/db"
	"github.com/sitecrew/gantt/internal/domain"
	"github.com/sitecrew/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTaskRepo(t *testing.T) (*SQLTaskRepo, *domain.Project) {
	t.Helper()
	db := testutil.NewTestDB(t)
	proj := testutil.NewTestProject("Schedule")
	require.NoError(t, NewSQLProjectRepo(db).Create(context.Background(), proj))
	return NewSQLTaskRepo(db), proj
}

func TestTaskRepo_CreateAndGetByID(t *testing.T) {
	repo, proj := setupTaskRepo(t)
	ctx := context.Background()

	task := testutil.NewTestTask(proj.ID, "Pour footings",
		testutil.WithDates("2024-01-08", "2024-01-10"),
		testutil.WithDuration(3),
		testutil.WithProgress(40),
		testutil.WithPredecessor("1.1FS"),
		testutil.WithHierarchy("1.2"),
		testutil.WithResources("Concrete crew"),
	)
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Name, got.Name)
	assert.Equal(t, "2024-01-08", got.StartDate.String())
	assert.Equal(t, "2024-01-10", got.EndDate.String())
	assert.Equal(t, 3, got.Duration)
	assert.Equal(t, 40, got.Progress)
	assert.Equal(t, "1.1FS", got.Predecessor)
	assert.Equal(t, "1.2", got.HierarchyNumber)
	assert.Equal(t, "Concrete crew", got.Resources)
	assert.True(t, task.CreatedAt.Equal(got.CreatedAt))
}

func TestTaskRepo_OptionalFieldsRoundTripEmpty(t *testing.T) {
	repo, proj := setupTaskRepo(t)
	ctx := context.Background()

	task := testutil.NewTestTask(proj.ID, "Unnumbered")
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Predecessor)
	assert.Empty(t, got.HierarchyNumber)
	assert.Empty(t, got.Resources)
}

func TestTaskRepo_ListByProject_HierarchyOrder(t *testing.T) {
	repo, proj := setupTaskRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	keys := []string{"10", "2.1", "", "2", "1", "temp", "2.10", "2.2"}
	for i, k := range keys {
		task := testutil.NewTestTask(proj.ID, "T"+k,
			testutil.WithHierarchy(k),
			testutil.WithCreatedAt(base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, repo.Create(ctx, task))
	}

	tasks, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	got := make([]string, len(tasks))
	for i, tk := range tasks {
		got[i] = tk.HierarchyNumber
	}
	assert.Equal(t, []string{"1", "2", "2.1", "2.2", "2.10", "10", "", "temp"}, got)
}

func TestTaskRepo_BulkCreate(t *testing.T) {
	repo, proj := setupTaskRepo(t)
	ctx := context.Background()

	tasks := []domain.ScheduleTask{
		*testutil.NewTestTask(proj.ID, "A", testutil.WithHierarchy("1")),
		*testutil.NewTestTask(proj.ID, "B", testutil.WithHierarchy("2")),
		*testutil.NewTestTask(proj.ID, "C", testutil.WithHierarchy("3")),
	}
	require.NoError(t, repo.BulkCreate(ctx, tasks))

	list, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestTaskRepo_BulkCreate_RollsBackInUnitOfWork(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Rollback")
	require.NoError(t, NewSQLProjectRepo(database).Create(ctx, proj))

	injected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Match: "INSERT INTO schedule_tasks", Err: injected}

	tasks := []domain.ScheduleTask{
		*testutil.NewTestTask(proj.ID, "A"),
		*testutil.NewTestTask(proj.ID, "B"),
		*testutil.NewTestTask(proj.ID, "C"),
		*testutil.NewTestTask(proj.ID, "D"),
	}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLTaskRepo(tx).BulkCreate(ctx, tasks)
	})
	require.ErrorIs(t, err, injected)
	assert.Equal(t, 3, uow.Execs())

	list, err := NewSQLTaskRepo(database).ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTaskRepo_Updates(t *testing.T) {
	repo, proj := setupTaskRepo(t)
	ctx := context.Background()

	task := testutil.NewTestTask(proj.ID, "Framing", testutil.WithHierarchy("temp"))
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, repo.UpdateDates(ctx, task.ID, dateonly.MustParse("2024-02-05"), dateonly.MustParse("2024-02-09")))
	require.NoError(t, repo.UpdateHierarchyNumber(ctx, task.ID, "3"))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-05", got.StartDate.String())
	assert.Equal(t, "2024-02-09", got.EndDate.String())
	assert.Equal(t, "3", got.HierarchyNumber)

	got.Name = "Wall framing"
	got.Progress = 100
	got.Resources = ""
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wall framing", again.Name)
	assert.Equal(t, 100, again.Progress)

	assert.ErrorIs(t, repo.UpdateDates(ctx, "missing", got.StartDate, got.EndDate), ErrNotFound)
	assert.ErrorIs(t, repo.UpdateHierarchyNumber(ctx, "missing", "1"), ErrNotFound)
}

func TestTaskRepo_Delete(t *testing.T) {
	repo, proj := setupTaskRepo(t)
	ctx := context.Background()

	a := testutil.NewTestTask(proj.ID, "A")
	b := testutil.NewTestTask(proj.ID, "B")
	c := testutil.NewTestTask(proj.ID, "C")
	for _, tk := range []*domain.ScheduleTask{a, b, c} {
		require.NoError(t, repo.Create(ctx, tk))
	}

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), ErrNotFound)

	n, err := repo.DeleteByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTaskRepo_RejectsRowWithEmptyDate(t *testing.T) {
	repo, proj := setupTaskRepo(t)
	ctx := context.Background()

	// Written by another client straight into the table; NOT NULL lets '' through.
	_, err := repo.db.ExecContext(ctx, `INSERT INTO schedule_tasks
		(id, project_id, name, start_date, end_date, created_at, updated_at)
		VALUES ('blank', ?, 'Framing', '', '2024-01-05', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`, proj.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, "blank")
	assert.ErrorIs(t, err, dateonly.ErrInvalidDate)

	_, err = repo.ListByProject(ctx, proj.ID)
	assert.ErrorIs(t, err, dateonly.ErrInvalidDate, "a bad row fails the listing instead of reaching the engine")
}
