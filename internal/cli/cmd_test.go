package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sitecrew/gantt/internal/clock"
	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/sitecrew/gantt/internal/domain"
	"github.com/sitecrew/gantt/internal/repository"
	"github.com/sitecrew/gantt/internal/service"
	"github.com/sitecrew/gantt/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app   *App
	tasks repository.TaskRepo
	fs    afero.Fs
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	projRepo := repository.NewSQLProjectRepo(database)
	taskRepo := repository.NewSQLTaskRepo(database)
	uow := testutil.NewTestUoW(database)
	fsys := afero.NewMemMapFs()
	clk := clock.Fixed(dateonly.MustParse("2024-03-04"))

	app := &App{
		Projects: service.NewProjectService(projRepo, service.WithClock(clk)),
		Tasks:    service.NewTaskService(taskRepo),
		Schedule: service.NewScheduleService(projRepo, taskRepo, uow, service.WithClock(clk)),
		Repair:   service.NewRepairService(taskRepo, nil),
		Import:   service.NewImportService(uow, fsys),
		Clock:    clk,
		Confirm: func(string, string) (bool, error) {
			return false, errors.New("unexpected prompt")
		},
	}
	return testEnv{app: app, tasks: taskRepo, fs: fsys}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedProjectWithTasks(t *testing.T, env testEnv, shortID string) *domain.Project {
	t.Helper()
	ctx := context.Background()
	p := testutil.NewTestProject("CLI "+shortID, testutil.WithShortID(shortID))
	require.NoError(t, env.app.Projects.Create(ctx, p))
	for _, task := range []*domain.ScheduleTask{
		testutil.NewTestTask(p.ID, "Site Work", testutil.WithHierarchy("1"), testutil.WithDates("2024-01-01", "2024-01-05"), testutil.WithDuration(5)),
		testutil.NewTestTask(p.ID, "Clear lot", testutil.WithHierarchy("1.1"), testutil.WithDates("2024-01-01", "2024-01-02"), testutil.WithDuration(2)),
		testutil.NewTestTask(p.ID, "Framing", testutil.WithHierarchy("2"), testutil.WithDates("2024-01-10", "2024-01-12"), testutil.WithDuration(3), testutil.WithPredecessor("1.1")),
	} {
		require.NoError(t, env.tasks.Create(ctx, task))
	}
	return p
}

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	env := testApp(t)
	output, err := executeCmd(t, env.app)
	require.NoError(t, err)
	assert.Contains(t, output, "gantt")
}

func TestProjectAddAndList(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "project", "add", "--id", "hse01", "--name", "Lakeside")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Lakeside [HSE01]")

	p, err := env.app.Projects.GetByShortID(context.Background(), "HSE01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", p.StartDate.String(), "start defaults to today")

	out, err = executeCmd(t, env.app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "HSE01")
	assert.Contains(t, out, "Lakeside")
}

func TestProjectAdd_RequiresFlags(t *testing.T) {
	env := testApp(t)
	_, err := executeCmd(t, env.app, "project", "add", "--name", "No ID")
	assert.Error(t, err)
}

func TestProjectAdd_InvalidStartDate(t *testing.T) {
	env := testApp(t)
	_, err := executeCmd(t, env.app, "project", "add", "--id", "HSE01", "--name", "X", "--start", "2024-02-30")
	assert.ErrorContains(t, err, "invalid date")
}

func TestProjectRemove_NeedsYesWhenNotInteractive(t *testing.T) {
	env := testApp(t)
	seedProjectWithTasks(t, env, "HSE01")

	_, err := executeCmd(t, env.app, "project", "remove", "HSE01")
	assert.ErrorContains(t, err, "--yes")

	out, err := executeCmd(t, env.app, "project", "remove", "hse01", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted project HSE01")
}

func TestProjectRemove_AsksWhenInteractive(t *testing.T) {
	env := testApp(t)
	seedProjectWithTasks(t, env, "HSE01")
	env.app.IsInteractive = func() bool { return true }
	asked := 0
	env.app.Confirm = func(title, _ string) (bool, error) {
		asked++
		assert.Contains(t, title, "HSE01")
		return false, nil
	}

	_, err := executeCmd(t, env.app, "project", "remove", "HSE01")
	require.NoError(t, err)
	assert.Equal(t, 1, asked)
	_, err = env.app.Projects.GetByShortID(context.Background(), "HSE01")
	assert.NoError(t, err, "declined removal keeps the project")
}

func TestTaskAddListRemove(t *testing.T) {
	env := testApp(t)
	seedProjectWithTasks(t, env, "HSE01")

	out, err := executeCmd(t, env.app, "task", "add", "-p", "HSE01", "--name", "Roof",
		"--key", "3", "--start", "2024-01-15", "--end", "2024-01-19", "--predecessor", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 3 Roof (2024-01-15 to 2024-01-19, 5 days)")

	out, err = executeCmd(t, env.app, "task", "list", "HSE01")
	require.NoError(t, err)
	assert.Contains(t, out, "Roof")
	assert.Contains(t, out, "Clear lot")

	out, err = executeCmd(t, env.app, "task", "list", "HSE01", "--timeline", "--width", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-01 .. 2024-01-19")

	_, err = executeCmd(t, env.app, "task", "remove", "-p", "HSE01", "3")
	require.NoError(t, err)
	out, err = executeCmd(t, env.app, "task", "list", "HSE01")
	require.NoError(t, err)
	assert.NotContains(t, out, "Roof")
}

func TestTaskAdd_ValidationError(t *testing.T) {
	env := testApp(t)
	seedProjectWithTasks(t, env, "HSE01")

	_, err := executeCmd(t, env.app, "task", "add", "-p", "HSE01", "--name", "Bad",
		"--start", "2024-01-15", "--progress", "140")
	assert.ErrorContains(t, err, "invalid task")
}

func TestScheduleCopyCmd(t *testing.T) {
	env := testApp(t)
	seedProjectWithTasks(t, env, "HSE01")
	_, err := executeCmd(t, env.app, "project", "add", "--id", "BRN02", "--name", "Barn")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "schedule", "copy", "--from", "HSE01", "--to", "brn02", "--anchor", "2024-02-05")
	require.NoError(t, err)
	assert.Contains(t, out, "+35 days")
	assert.Contains(t, out, "3 tasks")

	out, err = executeCmd(t, env.app, "task", "list", "BRN02")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-02-05")
	assert.Contains(t, out, "2024-02-07", "framing re-derived after clear lot")
}

func TestScheduleCopyCmd_DefaultsToToday(t *testing.T) {
	env := testApp(t)
	seedProjectWithTasks(t, env, "HSE01")
	_, err := executeCmd(t, env.app, "project", "add", "--id", "BRN02", "--name", "Barn")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "schedule", "copy", "--from", "HSE01", "--to", "BRN02")
	require.NoError(t, err)
	assert.Contains(t, out, "Mon Mar 4, 2024")
}

func TestScheduleCopyCmd_UnknownProject(t *testing.T) {
	env := testApp(t)
	seedProjectWithTasks(t, env, "HSE01")

	_, err := executeCmd(t, env.app, "schedule", "copy", "--from", "HSE01", "--to", "NOPE99")
	assert.ErrorContains(t, err, "--to: project not found")
}

func TestScheduleShiftCmd(t *testing.T) {
	env := testApp(t)
	seedProjectWithTasks(t, env, "HSE01")

	out, err := executeCmd(t, env.app, "schedule", "shift", "HSE01", "--anchor", "2024-01-08")
	require.NoError(t, err)
	assert.Contains(t, out, "+7 days")
}

func TestScheduleRepairCmd(t *testing.T) {
	env := testApp(t)
	p := seedProjectWithTasks(t, env, "HSE01")
	ctx := context.Background()
	require.NoError(t, env.tasks.Create(ctx, testutil.NewTestTask(p.ID, "New Task", testutil.WithHierarchy("temp"))))
	require.NoError(t, env.tasks.Create(ctx, testutil.NewTestTask(p.ID, "Grade pad", testutil.WithHierarchy("tmp_2"))))

	out, err := executeCmd(t, env.app, "schedule", "repair", "HSE01", "--delete-orphans", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Grade pad")
	assert.Contains(t, out, "delete")

	_, err = executeCmd(t, env.app, "schedule", "repair", "HSE01", "--delete-orphans")
	assert.ErrorContains(t, err, "--yes", "orphan deletion needs confirmation")

	out, err = executeCmd(t, env.app, "schedule", "repair", "HSE01", "--delete-orphans", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "RENUMBERED")

	tasks, err := env.tasks.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
	keys := make([]string, len(tasks))
	for i, task := range tasks {
		keys[i] = task.HierarchyNumber
	}
	assert.ElementsMatch(t, []string{"1", "1.1", "2", "2.1"}, keys)
}

func TestScheduleRepairCmd_DeclinedPromptAborts(t *testing.T) {
	env := testApp(t)
	p := seedProjectWithTasks(t, env, "HSE01")
	ctx := context.Background()
	orphan := testutil.NewTestTask(p.ID, "untitled", testutil.WithHierarchy("null"))
	require.NoError(t, env.tasks.Create(ctx, orphan))

	env.app.IsInteractive = func() bool { return true }
	env.app.Confirm = func(string, string) (bool, error) { return false, nil }

	out, err := executeCmd(t, env.app, "schedule", "repair", "HSE01", "--delete-orphans")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	_, err = env.tasks.GetByID(ctx, orphan.ID)
	assert.NoError(t, err)
}

func TestImportCmd(t *testing.T) {
	env := testApp(t)
	doc := `{"project":{"short_id":"IMP01","name":"Imported","start_date":"2024-01-01"},
"tasks":[{"name":"Footings","hierarchy_number":"1","start_date":"2024-01-01","end_date":"2024-01-03"}]}`
	require.NoError(t, afero.WriteFile(env.fs, "/in/plan.json", []byte(doc), 0o644))

	out, err := executeCmd(t, env.app, "import", "/in/plan.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")
	assert.Contains(t, out, "IMP01")
	assert.Contains(t, out, "1 tasks")
}

func TestDateCmds(t *testing.T) {
	env := testApp(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"date", "next", "2024-01-05"}, "2024-01-08\n"},
		{[]string{"date", "prev", "2024-01-08"}, "2024-01-05\n"},
		{[]string{"date", "ensure", "2024-01-06"}, "2024-01-08\n"},
		{[]string{"date", "ensure", "2024-01-09"}, "2024-01-09\n"},
		{[]string{"date", "add", "2024-01-05", "1"}, "2024-01-08\n"},
		{[]string{"date", "add", "2024-01-08", "-1"}, "2024-01-05\n"},
		{[]string{"date", "add", "2024-01-05", "0"}, "2024-01-05\n"},
		{[]string{"date", "between", "2024-01-01", "2024-01-14"}, "10 business days, 14 calendar days\n"},
		{[]string{"date", "next", "today"}, "2024-03-05\n"},
	}
	for _, tt := range tests {
		out, err := executeCmd(t, env.app, tt.args...)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, out, tt.args)
	}

	_, err := executeCmd(t, env.app, "date", "next", "2023-02-29")
	assert.ErrorIs(t, err, dateonly.ErrInvalidDate)
}

func TestViewCmd_NonInteractivePrintsTable(t *testing.T) {
	env := testApp(t)
	seedProjectWithTasks(t, env, "HSE01")

	out, err := executeCmd(t, env.app, "view", "HSE01")
	require.NoError(t, err)
	assert.Contains(t, out, "HSE01")
	assert.Contains(t, out, "Framing")
}
