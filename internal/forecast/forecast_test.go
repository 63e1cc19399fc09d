package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTask(id, templateItemID string, duration int) Task {
	return Task{ID: id, TemplateItemID: templateItemID, Name: "Task " + id, DurationDays: duration}
}

func scheduleByID(t *testing.T, r *Result, id string) TaskSchedule {
	t.Helper()
	for _, s := range r.Tasks {
		if s.TaskID == id {
			return s
		}
	}
	t.Fatalf("no schedule for task %s", id)
	return TaskSchedule{}
}

func TestCompute_EmptyHome(t *testing.T) {
	r, err := Compute(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, r.TotalWorkingDays)
	assert.Empty(t, r.Tasks)
}

func TestCompute_IndependentTasksRunInParallel(t *testing.T) {
	tasks := []Task{
		makeTask("a", "tpl-a", 2),
		makeTask("b", "tpl-b", 3),
		makeTask("c", "tpl-c", 1),
	}

	r, err := Compute(tasks, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, r.TotalWorkingDays, "span is the max duration with no edges")
	for _, s := range r.Tasks {
		assert.Equal(t, 0, s.EarlyStart)
		assert.Equal(t, 0, s.PredecessorCount)
	}
	// Only the longest task has zero slack.
	assert.True(t, scheduleByID(t, r, "b").Critical)
	assert.False(t, scheduleByID(t, r, "a").Critical)
	assert.False(t, scheduleByID(t, r, "c").Critical)
}

func TestCompute_LinearChain(t *testing.T) {
	tasks := []Task{
		makeTask("a", "tpl-a", 2),
		makeTask("b", "tpl-b", 3),
		makeTask("c", "tpl-c", 1),
	}
	deps := []Edge{
		{TemplateItemID: "tpl-b", DependsOnItemID: "tpl-a"},
		{TemplateItemID: "tpl-c", DependsOnItemID: "tpl-b"},
	}

	r, err := Compute(tasks, deps)
	require.NoError(t, err)

	assert.Equal(t, 6, r.TotalWorkingDays)

	a := scheduleByID(t, r, "a")
	b := scheduleByID(t, r, "b")
	c := scheduleByID(t, r, "c")

	assert.Equal(t, 0, a.EarlyStart)
	assert.Equal(t, 2, a.EarlyFinish)
	assert.Equal(t, 2, b.EarlyStart)
	assert.Equal(t, 5, b.EarlyFinish)
	assert.Equal(t, 5, c.EarlyStart)
	assert.Equal(t, 6, c.EarlyFinish)

	for _, s := range []TaskSchedule{a, b, c} {
		assert.Equal(t, 0, s.Slack)
		assert.True(t, s.Critical)
	}
	assert.Equal(t, 0, a.PredecessorCount)
	assert.Equal(t, 1, b.PredecessorCount)
	assert.Equal(t, 1, c.PredecessorCount)
}

func TestCompute_DiamondSlack(t *testing.T) {
	// a -> b (5d) -> d, a -> c (2d) -> d: the short branch has slack.
	tasks := []Task{
		makeTask("a", "tpl-a", 1),
		makeTask("b", "tpl-b", 5),
		makeTask("c", "tpl-c", 2),
		makeTask("d", "tpl-d", 1),
	}
	deps := []Edge{
		{TemplateItemID: "tpl-b", DependsOnItemID: "tpl-a"},
		{TemplateItemID: "tpl-c", DependsOnItemID: "tpl-a"},
		{TemplateItemID: "tpl-d", DependsOnItemID: "tpl-b"},
		{TemplateItemID: "tpl-d", DependsOnItemID: "tpl-c"},
	}

	r, err := Compute(tasks, deps)
	require.NoError(t, err)

	assert.Equal(t, 7, r.TotalWorkingDays)
	assert.True(t, scheduleByID(t, r, "a").Critical)
	assert.True(t, scheduleByID(t, r, "b").Critical)
	assert.True(t, scheduleByID(t, r, "d").Critical)

	c := scheduleByID(t, r, "c")
	assert.False(t, c.Critical)
	assert.Equal(t, 3, c.Slack)
	assert.Equal(t, 2, scheduleByID(t, r, "d").PredecessorCount)
}

func TestCompute_CycleIsFatal(t *testing.T) {
	tasks := []Task{
		makeTask("a", "tpl-a", 2),
		makeTask("b", "tpl-b", 3),
	}
	deps := []Edge{
		{TemplateItemID: "tpl-a", DependsOnItemID: "tpl-b"},
		{TemplateItemID: "tpl-b", DependsOnItemID: "tpl-a"},
	}

	r, err := Compute(tasks, deps)
	assert.Nil(t, r)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.ElementsMatch(t, []string{"Task a", "Task b"}, cycleErr.TaskNames)
}

func TestCompute_CycleNamesOnlyStuckTasks(t *testing.T) {
	tasks := []Task{
		makeTask("free", "tpl-free", 1),
		makeTask("a", "tpl-a", 2),
		makeTask("b", "tpl-b", 3),
	}
	deps := []Edge{
		{TemplateItemID: "tpl-a", DependsOnItemID: "tpl-b"},
		{TemplateItemID: "tpl-b", DependsOnItemID: "tpl-a"},
	}

	_, err := Compute(tasks, deps)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.NotContains(t, cycleErr.TaskNames, "Task free")
}

func TestCompute_NegativeDurationClampedToZero(t *testing.T) {
	tasks := []Task{
		makeTask("a", "tpl-a", -4),
		makeTask("b", "tpl-b", 3),
	}
	deps := []Edge{{TemplateItemID: "tpl-b", DependsOnItemID: "tpl-a"}}

	r, err := Compute(tasks, deps)
	require.NoError(t, err)

	a := scheduleByID(t, r, "a")
	assert.Equal(t, 0, a.EarlyStart)
	assert.Equal(t, 0, a.EarlyFinish)
	assert.Equal(t, 3, r.TotalWorkingDays)
}

func TestCompute_DuplicateEdgesCountOnce(t *testing.T) {
	tasks := []Task{
		makeTask("a", "tpl-a", 2),
		makeTask("b", "tpl-b", 3),
	}
	deps := []Edge{
		{TemplateItemID: "tpl-b", DependsOnItemID: "tpl-a"},
		{TemplateItemID: "tpl-b", DependsOnItemID: "tpl-a"},
	}

	r, err := Compute(tasks, deps)
	require.NoError(t, err)
	assert.Equal(t, 1, scheduleByID(t, r, "b").PredecessorCount)
}

func TestCompute_EdgeWithMissingEndpointIgnored(t *testing.T) {
	tasks := []Task{makeTask("a", "tpl-a", 2)}
	deps := []Edge{{TemplateItemID: "tpl-a", DependsOnItemID: "tpl-missing"}}

	r, err := Compute(tasks, deps)
	require.NoError(t, err)
	assert.Equal(t, 0, scheduleByID(t, r, "a").PredecessorCount)
	assert.Equal(t, 2, r.TotalWorkingDays)
}

func TestCompute_Deterministic(t *testing.T) {
	tasks := []Task{
		makeTask("a", "tpl-a", 2),
		makeTask("b", "tpl-b", 3),
		makeTask("c", "tpl-c", 1),
		makeTask("d", "tpl-d", 4),
	}
	deps := []Edge{
		{TemplateItemID: "tpl-b", DependsOnItemID: "tpl-a"},
		{TemplateItemID: "tpl-c", DependsOnItemID: "tpl-a"},
		{TemplateItemID: "tpl-d", DependsOnItemID: "tpl-b"},
		{TemplateItemID: "tpl-d", DependsOnItemID: "tpl-c"},
	}

	first, err := Compute(tasks, deps)
	require.NoError(t, err)
	second, err := Compute(tasks, deps)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
