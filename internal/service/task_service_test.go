package service

import (
	"context"
	"testing"

	"github.com/sitecrew/gantt/internal/cache"
	"github.com/sitecrew/gantt/internal/domain"
	"github.com/sitecrew/gantt/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create_Defaults(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	p := r.seedProject(t, "Maple House")
	svc := NewTaskService(r.tasks)

	oneDay := &domain.ScheduleTask{ProjectID: p.ID, Name: "Survey", StartDate: d("2024-01-03")}
	require.NoError(t, svc.Create(ctx, oneDay))
	assert.NotEmpty(t, oneDay.ID)
	assert.Equal(t, d("2024-01-03"), oneDay.EndDate)
	assert.Equal(t, 1, oneDay.Duration)

	span := &domain.ScheduleTask{ProjectID: p.ID, Name: "Framing", StartDate: d("2024-01-04"), EndDate: d("2024-01-10")}
	require.NoError(t, svc.Create(ctx, span))
	assert.Equal(t, 5, span.Duration, "thu to wed is five business days")

	stored, err := svc.GetByID(ctx, span.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Duration)
}

func TestTaskService_Create_CollectsValidationErrors(t *testing.T) {
	r := setupRepos(t)
	p := r.seedProject(t, "Maple House")
	svc := NewTaskService(r.tasks)

	bad := &domain.ScheduleTask{
		ProjectID:   p.ID,
		Name:        "Roof",
		StartDate:   d("2024-01-10"),
		EndDate:     d("2024-01-08"),
		Progress:    120,
		Predecessor: "roofing first",
	}
	err := svc.Create(context.Background(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task (3 errors)")
	assert.Contains(t, err.Error(), "end_date must not be before start_date")
}

func TestTaskService_ListIsCachedUntilWrite(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	p := r.seedProject(t, "Maple House")
	c := cache.NewMemory(0)
	svc := NewTaskService(r.tasks, WithCache(c))

	task := &domain.ScheduleTask{ProjectID: p.ID, Name: "Footings", StartDate: d("2024-01-01"), HierarchyNumber: "1"}
	require.NoError(t, svc.Create(ctx, task))

	list, err := svc.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	_, ok, _ := c.Get(ctx, p.ID)
	assert.True(t, ok, "list populates the cache")

	// A write that bypasses the service is not seen until invalidation.
	require.NoError(t, r.tasks.UpdateHierarchyNumber(ctx, task.ID, "2"))
	list, err = svc.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", list[0].HierarchyNumber)

	task.Name = "Footings and piers"
	task.HierarchyNumber = "2"
	require.NoError(t, svc.Update(ctx, task))
	list, err = svc.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Footings and piers", list[0].Name)
	assert.Equal(t, "2", list[0].HierarchyNumber)
}

func TestTaskService_Delete(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	p := r.seedProject(t, "Maple House")
	svc := NewTaskService(r.tasks)
	task := r.seedTask(t, p.ID, "Footings")

	require.NoError(t, svc.Delete(ctx, task.ID))
	_, err := svc.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, task.ID), repository.ErrNotFound)
}
