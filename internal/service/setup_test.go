package service

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"testing"

	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/db"
	"github.com/sitecrew/gantt/internal/domain"
	"github.com/sitecrew/gantt/internal/repository"
	"github.com/sitecrew/gantt/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testRepos struct {
	db       *sql.DB
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:       database,
		projects: repository.NewSQLProjectRepo(database),
		tasks:    repository.NewSQLTaskRepo(database),
		uow:      testutil.NewTestUoW(database),
	}
}

func (r testRepos) seedProject(t *testing.T, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, opts...)
	require.NoError(t, r.projects.Create(context.Background(), p))
	return p
}

func (r testRepos) seedTask(t *testing.T, projectID, name string, opts ...testutil.TaskOption) *domain.ScheduleTask {
	t.Helper()
	task := testutil.NewTestTask(projectID, name, opts...)
	require.NoError(t, r.tasks.Create(context.Background(), task))
	return task
}

// seedSiteSchedule stores a four task schedule starting Monday 2024-01-01.
// Framing sits two days later than its predecessor allows, so
// re-derivation always moves it.
func (r testRepos) seedSiteSchedule(t *testing.T, projectID string) {
	t.Helper()
	r.seedTask(t, projectID, "Site Work", testutil.WithHierarchy("1"),
		testutil.WithDates("2024-01-01", "2024-01-05"), testutil.WithDuration(5))
	r.seedTask(t, projectID, "Clear lot", testutil.WithHierarchy("1.1"),
		testutil.WithDates("2024-01-01", "2024-01-02"), testutil.WithDuration(2),
		testutil.WithResources("Crew A"))
	r.seedTask(t, projectID, "Grade pad", testutil.WithHierarchy("1.2"),
		testutil.WithDates("2024-01-03", "2024-01-05"), testutil.WithDuration(3),
		testutil.WithPredecessor("1.1"))
	r.seedTask(t, projectID, "Framing", testutil.WithHierarchy("2"),
		testutil.WithDates("2024-01-10", "2024-01-12"), testutil.WithDuration(3),
		testutil.WithPredecessor("1.2"))
}

func byKey(tasks []domain.ScheduleTask) map[string]domain.ScheduleTask {
	out := make(map[string]domain.ScheduleTask, len(tasks))
	for _, t := range tasks {
		out[t.HierarchyNumber] = t
	}
	return out
}

func d(s string) dateonly.Date { return dateonly.MustParse(s) }

func intPtr(v int) *int { return &v }

// captureLogger returns a logger writing text records into a buffer.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// failingTaskRepo wraps a TaskRepo and fails selected single-row writes.
type failingTaskRepo struct {
	repository.TaskRepo
	failDates func(id string) bool
	failKeys  func(id string) bool
	failDel   func(id string) bool
	err       error
}

func (f *failingTaskRepo) UpdateDates(ctx context.Context, id string, start, end dateonly.Date) error {
	if f.failDates != nil && f.failDates(id) {
		return f.err
	}
	return f.TaskRepo.UpdateDates(ctx, id, start, end)
}

func (f *failingTaskRepo) UpdateHierarchyNumber(ctx context.Context, id, key string) error {
	if f.failKeys != nil && f.failKeys(id) {
		return f.err
	}
	return f.TaskRepo.UpdateHierarchyNumber(ctx, id, key)
}

func (f *failingTaskRepo) Delete(ctx context.Context, id string) error {
	if f.failDel != nil && f.failDel(id) {
		return f.err
	}
	return f.TaskRepo.Delete(ctx, id)
}

// recordingObserver keeps every observed use case.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}
