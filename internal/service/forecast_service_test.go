package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sergioanunez/phase/internal/forecast"
	"github.com/sergioanunez/phase/internal/repository"
	"github.com/sergioanunez/phase/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastService_LinearChainPersistsOffsets(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	home := testutil.NewTestHome("Lot 1") // starts Monday 2025-06-16
	foundation := testutil.NewTestTemplateItem("Foundation pour", 10, testutil.WithDuration(1))
	framing := testutil.NewTestTemplateItem("Framing", 20, testutil.WithDuration(2))
	roofing := testutil.NewTestTemplateItem("Roofing", 30, testutil.WithDuration(3))
	tasks := createHomeWithItems(t, env, home, foundation, framing, roofing)

	require.NoError(t, env.templates.AddDependency(ctx, framing.ID, foundation.ID, nil))
	require.NoError(t, env.templates.AddDependency(ctx, roofing.ID, framing.ID, nil))

	result, err := env.forecast.ComputeHomeForecast(ctx, home.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, result.TotalWorkingDays)
	require.NotNil(t, result.CompletionDate)
	// Monday + 6 working days lands the following Tuesday.
	assert.Equal(t, time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC), *result.CompletionDate)

	// Per-task offsets are persisted.
	framingTask, err := env.taskRepo.GetByID(ctx, tasks["Framing"].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, framingTask.ForecastEarlyStartOffsetWorkingDays)
	assert.Equal(t, 3, framingTask.ForecastEarlyFinishOffsetWorkingDays)
	assert.True(t, framingTask.IsCriticalPath)
	assert.Equal(t, 1, framingTask.BlockedByCount)

	roofingTask, err := env.taskRepo.GetByID(ctx, tasks["Roofing"].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, roofingTask.ForecastEarlyStartOffsetWorkingDays)
	assert.Equal(t, 6, roofingTask.ForecastEarlyFinishOffsetWorkingDays)

	// The home summary is persisted alongside.
	stored, err := env.homeRepo.GetByID(ctx, home.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ForecastTotalWorkingDays)
	assert.Equal(t, 6, *stored.ForecastTotalWorkingDays)
	require.NotNil(t, stored.ForecastCompletionDate)
	assert.Equal(t, *result.CompletionDate, *stored.ForecastCompletionDate)
	assert.NotNil(t, stored.ForecastComputedAt)
}

func TestForecastService_NoStartDateClearsForecast(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	home := testutil.NewTestHome("Lot 2")
	item := testutil.NewTestTemplateItem("Framing", 10)
	createHomeWithItems(t, env, home, item)

	// Compute once with an anchor so there is something to clear.
	_, err := env.forecast.ComputeHomeForecast(ctx, home.ID)
	require.NoError(t, err)

	require.NoError(t, env.homes.SetStartDate(ctx, home.ID, nil))
	result, err := env.forecast.ComputeHomeForecast(ctx, home.ID)
	require.NoError(t, err)
	assert.Nil(t, result.CompletionDate)
	assert.Zero(t, result.TotalWorkingDays)

	stored, err := env.homeRepo.GetByID(ctx, home.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ForecastTotalWorkingDays)
	assert.Nil(t, stored.ForecastCompletionDate)
	assert.NotNil(t, stored.ForecastComputedAt, "a recompute ran even without an anchor")
}

func TestForecastService_EmptyHomeCompletesOnStartDate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	home := testutil.NewTestHome("Lot 3")
	require.NoError(t, env.homeRepo.Create(ctx, home))

	result, err := env.forecast.ComputeHomeForecast(ctx, home.ID)
	require.NoError(t, err)
	assert.Zero(t, result.TotalWorkingDays)
	require.NotNil(t, result.CompletionDate)
	assert.Equal(t, *home.StartDate, *result.CompletionDate)
}

func TestForecastService_CycleWritesNothing(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	home := testutil.NewTestHome("Lot 4")
	a := testutil.NewTestTemplateItem("Electrical rough-in", 10, testutil.WithDuration(2))
	b := testutil.NewTestTemplateItem("Plumbing rough-in", 20, testutil.WithDuration(2))
	tasks := createHomeWithItems(t, env, home, a, b)

	require.NoError(t, env.templates.AddDependency(ctx, b.ID, a.ID, nil))

	// First compute succeeds and persists a baseline.
	first, err := env.forecast.ComputeHomeForecast(ctx, home.ID)
	require.NoError(t, err)
	require.Equal(t, 4, first.TotalWorkingDays)

	// Close the loop and recompute: fatal, and the stored baseline survives.
	require.NoError(t, env.templates.AddDependency(ctx, a.ID, b.ID, nil))
	_, err = env.forecast.ComputeHomeForecast(ctx, home.ID)
	var cycleErr *forecast.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.ElementsMatch(t, []string{"Electrical rough-in", "Plumbing rough-in"}, cycleErr.TaskNames)

	stored, err := env.homeRepo.GetByID(ctx, home.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ForecastTotalWorkingDays)
	assert.Equal(t, 4, *stored.ForecastTotalWorkingDays)

	taskB, err := env.taskRepo.GetByID(ctx, tasks["Plumbing rough-in"].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, taskB.ForecastEarlyStartOffsetWorkingDays)
	assert.Equal(t, 4, taskB.ForecastEarlyFinishOffsetWorkingDays)
}

func TestForecastService_RecomputeIsIdempotent(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	home := testutil.NewTestHome("Lot 5")
	a := testutil.NewTestTemplateItem("Grading", 10, testutil.WithDuration(3))
	b := testutil.NewTestTemplateItem("Footings", 20, testutil.WithDuration(2))
	createHomeWithItems(t, env, home, a, b)
	require.NoError(t, env.templates.AddDependency(ctx, b.ID, a.ID, nil))

	first, err := env.forecast.ComputeHomeForecast(ctx, home.ID)
	require.NoError(t, err)
	second, err := env.forecast.ComputeHomeForecast(ctx, home.ID)
	require.NoError(t, err)

	assert.Equal(t, first.TotalWorkingDays, second.TotalWorkingDays)
	assert.Equal(t, *first.CompletionDate, *second.CompletionDate)
	require.Equal(t, len(first.Tasks), len(second.Tasks))
	for i := range first.Tasks {
		assert.Equal(t, first.Tasks[i].EarlyStartOffset, second.Tasks[i].EarlyStartOffset)
		assert.Equal(t, first.Tasks[i].LateFinishOffset, second.Tasks[i].LateFinishOffset)
		assert.Equal(t, first.Tasks[i].Critical, second.Tasks[i].Critical)
	}
}

func TestForecastService_UnknownHome(t *testing.T) {
	env := setupEnv(t)

	_, err := env.forecast.ComputeHomeForecast(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
