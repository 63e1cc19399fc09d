package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sergioanunez/phase/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteHomeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	home := testutil.NewTestHome("Lot 12")
	require.NoError(t, repo.Create(ctx, home))

	got, err := repo.GetByID(ctx, home.ID)
	require.NoError(t, err)
	assert.Equal(t, home.Name, got.Name)
	assert.Equal(t, home.TenantID, got.TenantID)
	assert.Equal(t, home.Address, got.Address)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, *home.StartDate, *got.StartDate)
	assert.Nil(t, got.ForecastCompletionDate)
	assert.Nil(t, got.ForecastTotalWorkingDays)
	assert.Nil(t, got.ForecastComputedAt)
}

func TestHomeRepo_GetMissingReturnsNotFound(t *testing.T) {
	repo := NewSQLiteHomeRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHomeRepo_ListFiltersByTenant(t *testing.T) {
	repo := NewSQLiteHomeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestHome("Lot 1")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestHome("Lot 2")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestHome("Other", testutil.WithHomeTenant("tenant-other"))))

	homes, err := repo.List(ctx, "tenant-test")
	require.NoError(t, err)
	require.Len(t, homes, 2)
	for _, h := range homes {
		assert.Equal(t, "tenant-test", h.TenantID)
	}
}

func TestHomeRepo_UpdateForecastSetAndClear(t *testing.T) {
	repo := NewSQLiteHomeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	home := testutil.NewTestHome("Lot 9")
	require.NoError(t, repo.Create(ctx, home))

	total := 42
	completion := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	computedAt := time.Date(2025, 6, 20, 12, 30, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateForecast(ctx, home.ID, &total, &completion, computedAt))

	got, err := repo.GetByID(ctx, home.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ForecastTotalWorkingDays)
	assert.Equal(t, 42, *got.ForecastTotalWorkingDays)
	require.NotNil(t, got.ForecastCompletionDate)
	assert.Equal(t, completion, *got.ForecastCompletionDate)
	require.NotNil(t, got.ForecastComputedAt)

	// Clearing leaves only the computed-at stamp.
	later := computedAt.Add(time.Hour)
	require.NoError(t, repo.UpdateForecast(ctx, home.ID, nil, nil, later))

	got, err = repo.GetByID(ctx, home.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ForecastTotalWorkingDays)
	assert.Nil(t, got.ForecastCompletionDate)
	require.NotNil(t, got.ForecastComputedAt)
	assert.Equal(t, later, *got.ForecastComputedAt)
}

func TestHomeRepo_Delete(t *testing.T) {
	repo := NewSQLiteHomeRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	home := testutil.NewTestHome("Lot 3")
	require.NoError(t, repo.Create(ctx, home))
	require.NoError(t, repo.Delete(ctx, home.ID))

	_, err := repo.GetByID(ctx, home.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
