package service

import (
	"context"
	"testing"

	"github.com/sergioanunez/phase/internal/domain"
	"github.com/sergioanunez/phase/internal/repository"
	"github.com/sergioanunez/phase/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires every repo and service against one in-memory database.
type testEnv struct {
	homeRepo *repository.SQLiteHomeRepo
	itemRepo *repository.SQLiteTemplateItemRepo
	depRepo  *repository.SQLiteTemplateDependencyRepo
	gateRepo *repository.SQLiteCategoryGateRepo
	taskRepo *repository.SQLiteHomeTaskRepo
	punch    *repository.SQLitePunchItemRepo

	homes      HomeService
	templates  TemplateService
	gates      CategoryGateService
	tasks      TaskService
	punchItems PunchService
	scheduling SchedulingService
	forecast   ForecastService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	env := &testEnv{
		homeRepo: repository.NewSQLiteHomeRepo(database),
		itemRepo: repository.NewSQLiteTemplateItemRepo(database),
		depRepo:  repository.NewSQLiteTemplateDependencyRepo(database),
		gateRepo: repository.NewSQLiteCategoryGateRepo(database),
		taskRepo: repository.NewSQLiteHomeTaskRepo(database),
		punch:    repository.NewSQLitePunchItemRepo(database),
	}
	env.homes = NewHomeService(env.homeRepo)
	env.templates = NewTemplateService(env.itemRepo, env.depRepo)
	env.gates = NewCategoryGateService(env.gateRepo)
	env.tasks = NewTaskService(env.homeRepo, env.taskRepo, env.itemRepo, env.depRepo, env.gateRepo, env.punch, uow)
	env.punchItems = NewPunchService(env.punch, env.taskRepo)
	env.scheduling = NewSchedulingService(env.homeRepo, env.taskRepo, env.depRepo, env.gateRepo, env.punch)
	env.forecast = NewForecastService(env.homeRepo, env.taskRepo, env.depRepo, uow)
	return env
}

// createHomeWithItems persists a home and template items, then instantiates
// the home's task list. Returns the created tasks keyed by template item name.
func createHomeWithItems(t *testing.T, env *testEnv, home *domain.Home, items ...*domain.WorkTemplateItem) map[string]*domain.HomeTask {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, env.homeRepo.Create(ctx, home))
	for _, item := range items {
		require.NoError(t, env.itemRepo.Create(ctx, item))
	}
	created, err := env.tasks.InstantiateFromTemplate(ctx, home.ID)
	require.NoError(t, err)
	require.Len(t, created, len(items))

	byName := make(map[string]*domain.HomeTask, len(created))
	for _, task := range created {
		byName[task.NameSnapshot] = task
	}
	return byName
}
