package service

import (
	"context"
	"testing"

	"github.com/sitecrew/gantt/internal/cache"
	"github.com/sitecrew/gantt/internal/clock"
	"github.com/sitecrew/gantt/internal/domain"
	"github.com/sitecrew/gantt/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create_ValidShortID(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects, WithClock(clock.Fixed(d("2024-05-06"))))

	proj := &domain.Project{Name: "Lakeside House", ShortID: " hse01 "}
	require.NoError(t, svc.Create(ctx, proj))
	assert.NotEmpty(t, proj.ID, "UUID should be generated")
	assert.Equal(t, "HSE01", proj.ShortID)
	assert.Equal(t, d("2024-05-06"), proj.StartDate, "start defaults to today")

	fetched, err := svc.GetByShortID(ctx, "hse01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Lakeside House", fetched.Name)

	byID, err := svc.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, d("2024-05-06"), byID.StartDate)
}

func TestProjectService_Create_InvalidShortID(t *testing.T) {
	r := setupRepos(t)
	svc := NewProjectService(r.projects)

	tests := []struct {
		name    string
		shortID string
	}{
		{"empty", ""},
		{"no digits", "HOUSE"},
		{"too short letters", "HS01"},
		{"too many digits", "HSE01234"},
		{"digits first", "01HSE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(context.Background(), &domain.Project{Name: "X", ShortID: tt.shortID})
			assert.Error(t, err)
		})
	}
}

func TestProjectService_Create_RequiresName(t *testing.T) {
	r := setupRepos(t)
	svc := NewProjectService(r.projects)

	err := svc.Create(context.Background(), &domain.Project{ShortID: "HSE01", Name: "  "})
	assert.ErrorContains(t, err, "name is required")
}

func TestProjectService_Create_DuplicateShortID(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)

	require.NoError(t, svc.Create(ctx, &domain.Project{ShortID: "HSE01", Name: "One"}))
	err := svc.Create(ctx, &domain.Project{ShortID: "hse01", Name: "Two"})
	assert.ErrorIs(t, err, repository.ErrDuplicateShortID)
}

func TestProjectService_List(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewProjectService(r.projects)
	require.NoError(t, svc.Create(ctx, &domain.Project{ShortID: "HSE01", Name: "One"}))
	require.NoError(t, svc.Create(ctx, &domain.Project{ShortID: "BARN02", Name: "Two"}))

	projects, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestProjectService_DeleteCascadesAndInvalidates(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	p := r.seedProject(t, "Maple House")
	task := r.seedTask(t, p.ID, "Footings")

	c := cache.NewMemory(0)
	require.NoError(t, c.Set(ctx, p.ID, []domain.ScheduleTask{*task}))
	svc := NewProjectService(r.projects, WithCache(c))

	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err := svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = r.tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, ok, err := c.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID), repository.ErrNotFound)
}
