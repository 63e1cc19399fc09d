// Package schedule is the authoritative set of checks run before a task's
// scheduled date may be set. Four rules run in a fixed order with the
// first match winning: template prerequisite edges, category gates, legacy
// ordering dependencies, and critical-gate punch blocking. The batch form
// precomputes shared lookups but must return exactly what the single-task
// form returns for each task.
package schedule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sergioanunez/phase/internal/domain"
	"github.com/sergioanunez/phase/internal/gate"
)

// Input carries everything the resolver needs, loaded once by the caller.
// OpenPunchCounts holds outstanding punch counts keyed by task id; only
// critical-gate tasks need entries.
type Input struct {
	Tasks           []domain.TaskSnapshot
	Dependencies    []domain.TemplateDependency
	Gates           []domain.CategoryGate
	OpenPunchCounts map[string]int
}

// BlockReason resolves the first blocking reason for one task. The second
// return is false when the task is free to schedule.
func BlockReason(in Input, taskID string) (string, bool) {
	pre := precompute(in)
	for _, t := range in.Tasks {
		if t.ID == taskID {
			return resolve(in, pre, t)
		}
	}
	return "", false
}

// BlockReasons resolves every task on the home against shared precomputed
// lookups. The result maps task id to reason for blocked tasks only;
// absence means not blocked.
func BlockReasons(in Input) map[string]string {
	pre := precompute(in)
	reasons := make(map[string]string)
	for _, t := range in.Tasks {
		if reason, blocked := resolve(in, pre, t); blocked {
			reasons[t.ID] = reason
		}
	}
	return reasons
}

type lookups struct {
	byTemplate   map[string][]domain.TaskSnapshot
	depsByTarget map[string][]string
	ordered      []domain.TaskSnapshot
}

func precompute(in Input) *lookups {
	pre := &lookups{
		byTemplate:   make(map[string][]domain.TaskSnapshot, len(in.Tasks)),
		depsByTarget: make(map[string][]string, len(in.Dependencies)),
		ordered:      make([]domain.TaskSnapshot, len(in.Tasks)),
	}
	for _, t := range in.Tasks {
		pre.byTemplate[t.TemplateItemID] = append(pre.byTemplate[t.TemplateItemID], t)
	}
	for _, d := range in.Dependencies {
		pre.depsByTarget[d.TemplateItemID] = append(pre.depsByTarget[d.TemplateItemID], d.DependsOnItemID)
	}
	copy(pre.ordered, in.Tasks)
	sort.SliceStable(pre.ordered, func(i, j int) bool {
		if pre.ordered[i].SortOrder != pre.ordered[j].SortOrder {
			return pre.ordered[i].SortOrder < pre.ordered[j].SortOrder
		}
		return pre.ordered[i].ID < pre.ordered[j].ID
	})
	return pre
}

func resolve(in Input, pre *lookups, t domain.TaskSnapshot) (string, bool) {
	// 1. Template prerequisite edges.
	var prereqs []string
	for _, dependsOn := range pre.depsByTarget[t.TemplateItemID] {
		for _, p := range pre.byTemplate[dependsOn] {
			if p.ID != t.ID && p.Status != domain.TaskCompleted {
				prereqs = append(prereqs, p.Name)
			}
		}
	}
	if len(prereqs) > 0 {
		sort.Strings(prereqs)
		return fmt.Sprintf("Waiting on prerequisite task(s): %s", strings.Join(prereqs, ", ")), true
	}

	// 2. Category gates.
	if r := gate.CategoryGates(in.Tasks, t, in.Gates); r != nil {
		return r.Reason, true
	}

	// 3. Legacy ordering dependencies: older mechanism than category
	// gates, kept active for templates that predate them.
	var earlier []string
	for _, other := range pre.ordered {
		if other.SortOrder >= t.SortOrder {
			break
		}
		if other.IsDependency && other.Status != domain.TaskCompleted {
			earlier = append(earlier, other.Name)
		}
	}
	if len(earlier) > 0 {
		return fmt.Sprintf("Waiting on earlier dependency task(s): %s", strings.Join(earlier, ", ")), true
	}

	// 4. Critical-gate punch blocking.
	if r := gate.CriticalGates(in.Tasks, t, in.OpenPunchCounts); r != nil {
		return r.Reason, true
	}

	return "", false
}
