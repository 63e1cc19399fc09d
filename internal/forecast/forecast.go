// Package forecast computes critical-path schedules for one home's tasks.
// All offsets are in working days relative to the home's start date; the
// calendar conversion happens in the caller. The computation is pure: it
// reads nothing and writes nothing.
package forecast

import (
	"fmt"
	"strings"
)

// Task is the minimal view of a home task the engine needs. DurationDays
// is the frozen snapshot value; negative snapshots are clamped to zero so
// bad template data cannot corrupt the schedule.
type Task struct {
	ID             string
	TemplateItemID string
	Name           string
	DurationDays   int
}

// Edge is a template-level dependency: the item TemplateItemID cannot
// start until DependsOnItemID is finished. Edges are projected onto the
// home's tasks; edges whose endpoints have no task on this home are
// ignored.
type Edge struct {
	TemplateItemID  string
	DependsOnItemID string
}

// TaskSchedule holds the computed offsets for one task.
type TaskSchedule struct {
	TaskID           string
	EarlyStart       int
	EarlyFinish      int
	LateStart        int
	LateFinish       int
	Slack            int
	Critical         bool
	PredecessorCount int
}

// Result is the schedule for a whole home. Tasks is in input order.
type Result struct {
	TotalWorkingDays int
	Tasks            []TaskSchedule
}

// CycleError reports a dependency cycle among the named tasks. A cycle is
// bad admin input on the template, never a runtime condition to resolve;
// no partial schedule is produced.
type CycleError struct {
	TaskNames []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected among tasks: %s", strings.Join(e.TaskNames, ", "))
}

// Compute runs the forward and backward critical-path passes over the
// home's tasks. Tasks with no projected predecessors start at offset 0
// and run in parallel.
func Compute(tasks []Task, deps []Edge) (*Result, error) {
	n := len(tasks)
	if n == 0 {
		return &Result{}, nil
	}

	// Tasks are id-indexed by slice position; a template item may be
	// instantiated more than once on a home.
	byTemplate := make(map[string][]int, n)
	for i, t := range tasks {
		byTemplate[t.TemplateItemID] = append(byTemplate[t.TemplateItemID], i)
	}

	preds := make([][]int, n)
	succs := make([][]int, n)
	indeg := make([]int, n)
	seen := make(map[[2]int]bool)

	for _, e := range deps {
		for _, p := range byTemplate[e.DependsOnItemID] {
			for _, s := range byTemplate[e.TemplateItemID] {
				if p == s || seen[[2]int{p, s}] {
					continue
				}
				seen[[2]int{p, s}] = true
				succs[p] = append(succs[p], s)
				preds[s] = append(preds[s], p)
				indeg[s]++
			}
		}
	}

	// Kahn's algorithm. A queue shorter than the task count means a cycle.
	order := make([]int, 0, n)
	queue := make([]int, 0, n)
	remaining := make([]int, n)
	copy(remaining, indeg)
	for i := 0; i < n; i++ {
		if remaining[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		for _, s := range succs[i] {
			remaining[s]--
			if remaining[s] == 0 {
				queue = append(queue, s)
			}
		}
	}

	if len(order) < n {
		var stuck []string
		for i := 0; i < n; i++ {
			if remaining[i] > 0 {
				stuck = append(stuck, tasks[i].Name)
			}
		}
		return nil, &CycleError{TaskNames: stuck}
	}

	duration := func(i int) int {
		if d := tasks[i].DurationDays; d > 0 {
			return d
		}
		return 0
	}

	// Forward pass: earliest offsets.
	earlyStart := make([]int, n)
	earlyFinish := make([]int, n)
	total := 0
	for _, i := range order {
		es := 0
		for _, p := range preds[i] {
			if earlyFinish[p] > es {
				es = earlyFinish[p]
			}
		}
		earlyStart[i] = es
		earlyFinish[i] = es + duration(i)
		if earlyFinish[i] > total {
			total = earlyFinish[i]
		}
	}

	// Backward pass: latest offsets and slack.
	lateStart := make([]int, n)
	lateFinish := make([]int, n)
	for k := len(order) - 1; k >= 0; k-- {
		i := order[k]
		lf := total
		for _, s := range succs[i] {
			if lateStart[s] < lf {
				lf = lateStart[s]
			}
		}
		lateFinish[i] = lf
		lateStart[i] = lf - duration(i)
	}

	result := &Result{
		TotalWorkingDays: total,
		Tasks:            make([]TaskSchedule, n),
	}
	for i, t := range tasks {
		slack := lateStart[i] - earlyStart[i]
		result.Tasks[i] = TaskSchedule{
			TaskID:           t.ID,
			EarlyStart:       earlyStart[i],
			EarlyFinish:      earlyFinish[i],
			LateStart:        lateStart[i],
			LateFinish:       lateFinish[i],
			Slack:            slack,
			Critical:         slack == 0,
			PredecessorCount: len(preds[i]),
		}
	}
	return result, nil
}
