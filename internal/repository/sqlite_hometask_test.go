package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/sergioanunez/phase/internal/domain"
	"github.com/sergioanunez/phase/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// taskTestSetup seeds one home with template items and instantiated tasks.
func taskTestSetup(t *testing.T, items ...*domain.WorkTemplateItem) (*sql.DB, *SQLiteHomeTaskRepo, *domain.Home, []*domain.HomeTask) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	homeRepo := NewSQLiteHomeRepo(database)
	itemRepo := NewSQLiteTemplateItemRepo(database)
	taskRepo := NewSQLiteHomeTaskRepo(database)

	home := testutil.NewTestHome("TaskTest")
	require.NoError(t, homeRepo.Create(ctx, home))

	tasks := make([]*domain.HomeTask, 0, len(items))
	for _, item := range items {
		require.NoError(t, itemRepo.Create(ctx, item))
		task := testutil.NewTestTask(home, item)
		require.NoError(t, taskRepo.Create(ctx, task))
		tasks = append(tasks, task)
	}
	return database, taskRepo, home, tasks
}

func TestHomeTaskRepo_CreateAndGet(t *testing.T) {
	item := testutil.NewTestTemplateItem("Framing", 20, testutil.WithDuration(5))
	_, repo, _, tasks := taskTestSetup(t, item)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Framing", got.NameSnapshot)
	assert.Equal(t, 5, got.DurationDaysSnapshot)
	assert.Equal(t, 20, got.SortOrderSnapshot)
	assert.Equal(t, domain.TaskUnscheduled, got.Status)
	assert.Nil(t, got.ScheduledDate)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHomeTaskRepo_SnapshotsKeepFrozenFieldsButLiveTopology(t *testing.T) {
	item := testutil.NewTestTemplateItem("Framing", 20,
		testutil.WithDuration(5), testutil.WithCategory("Structural"))
	database, repo, home, _ := taskTestSetup(t, item)
	ctx := context.Background()

	// Edit the template after instantiation.
	itemRepo := NewSQLiteTemplateItemRepo(database)
	item.Name = "Framing v2"
	item.DefaultDurationDays = 8
	item.SortOrder = 99
	item.Category = "Foundation"
	item.IsCriticalGate = true
	item.GateScope = domain.ScopeAllScheduling
	item.GateName = "Frame Gate"
	require.NoError(t, itemRepo.Update(ctx, item))

	snapshots, err := repo.ListSnapshotsByHome(ctx, home.ID)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)

	// Frozen fields come from the task row.
	assert.Equal(t, "Framing", snapshots[0].Name)
	assert.Equal(t, 5, snapshots[0].DurationDays)
	assert.Equal(t, 20, snapshots[0].SortOrder)

	// Gate topology and category come from the live template.
	assert.Equal(t, "Foundation", snapshots[0].Category)
	assert.True(t, snapshots[0].IsCriticalGate)
	assert.Equal(t, domain.ScopeAllScheduling, snapshots[0].GateScope)
	assert.Equal(t, "Frame Gate", snapshots[0].GateName)
}

func TestHomeTaskRepo_SnapshotsOrderedByFrozenSortOrder(t *testing.T) {
	first := testutil.NewTestTemplateItem("First", 10)
	second := testutil.NewTestTemplateItem("Second", 20)
	third := testutil.NewTestTemplateItem("Third", 30)
	_, repo, home, _ := taskTestSetup(t, third, first, second)
	ctx := context.Background()

	snapshots, err := repo.ListSnapshotsByHome(ctx, home.ID)
	require.NoError(t, err)
	require.Len(t, snapshots, 3)
	assert.Equal(t, "First", snapshots[0].Name)
	assert.Equal(t, "Second", snapshots[1].Name)
	assert.Equal(t, "Third", snapshots[2].Name)
}

func TestHomeTaskRepo_UpdateForecastFields(t *testing.T) {
	item := testutil.NewTestTemplateItem("Framing", 20)
	_, repo, _, tasks := taskTestSetup(t, item)
	ctx := context.Background()

	require.NoError(t, repo.UpdateForecastFields(ctx, tasks[0].ID, 3, 8, true, 2))

	got, err := repo.GetByID(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ForecastEarlyStartOffsetWorkingDays)
	assert.Equal(t, 8, got.ForecastEarlyFinishOffsetWorkingDays)
	assert.True(t, got.IsCriticalPath)
	assert.Equal(t, 2, got.BlockedByCount)

	// Status and snapshots are untouched by a forecast write.
	assert.Equal(t, domain.TaskUnscheduled, got.Status)
	assert.Equal(t, "Framing", got.NameSnapshot)
}
