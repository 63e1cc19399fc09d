// Package gate decides whether a critical gate or a category gate blocks
// scheduling a task. Both passes are pure: punch counts and task snapshots
// are loaded by the caller, so the single-task and batch paths share one
// implementation.
package gate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sergioanunez/phase/internal/category"
	"github.com/sergioanunez/phase/internal/domain"
)

// Result describes an active block. A nil *Result means not blocked.
type Result struct {
	GateName       string
	GateTaskID     string
	OpenPunchCount int
	Reason         string
}

// Evaluate runs the critical-gate pass and, only if that finds nothing,
// the category-gate pass. The first applicable open gate wins; reasons are
// never aggregated.
func Evaluate(tasks []domain.TaskSnapshot, candidate domain.TaskSnapshot, gates []domain.CategoryGate, openPunch map[string]int) *Result {
	if r := CriticalGates(tasks, candidate, openPunch); r != nil {
		return r
	}
	return CategoryGates(tasks, candidate, gates)
}

// CriticalGates checks every task flagged as a critical gate, in task
// order. A gate applies to the candidate when its scope is all-scheduling,
// or when it is downstream-only and the candidate's frozen sort order is
// strictly greater than the gate's. An applicable gate with outstanding
// punch items blocks.
func CriticalGates(tasks []domain.TaskSnapshot, candidate domain.TaskSnapshot, openPunch map[string]int) *Result {
	ordered := sortedBySortOrder(tasks)
	for _, g := range ordered {
		if !g.IsCriticalGate {
			continue
		}
		switch g.GateScope {
		case domain.ScopeAllScheduling:
			// applies to every task on the home
		case domain.ScopeDownstreamOnly:
			if candidate.SortOrder <= g.SortOrder {
				continue
			}
		default:
			continue
		}
		count := openPunch[g.ID]
		if count == 0 {
			continue
		}
		name := g.GateName
		if name == "" {
			name = g.Name
		}
		return &Result{
			GateName:       name,
			GateTaskID:     g.ID,
			OpenPunchCount: count,
			Reason:         fmt.Sprintf("Blocked by critical gate %q: %d open punch item(s)", name, count),
		}
	}
	return nil
}

// CategoryGates checks per-tenant category gates for phases strictly
// earlier than the candidate's. A gated earlier phase with any unfinished
// task blocks the candidate. Category matching uses normalized labels, not
// raw string equality.
func CategoryGates(tasks []domain.TaskSnapshot, candidate domain.TaskSnapshot, gates []domain.CategoryGate) *Result {
	candidateIdx := category.Index(candidate.Category)

	ordered := make([]domain.CategoryGate, len(gates))
	copy(ordered, gates)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := category.Index(ordered[i].CategoryName), category.Index(ordered[j].CategoryName)
		if a != b {
			return a < b
		}
		return ordered[i].CategoryName < ordered[j].CategoryName
	})

	for _, g := range ordered {
		gateIdx := category.Index(g.CategoryName)
		if gateIdx >= candidateIdx {
			continue
		}
		switch g.GateScope {
		case domain.ScopeAllScheduling:
		case domain.ScopeDownstreamOnly:
			// Downstream here means a later phase, which the strict
			// index comparison above already guarantees.
		default:
			continue
		}

		var incomplete []string
		for _, t := range sortedBySortOrder(tasks) {
			if category.Same(t.Category, g.CategoryName) && !t.Status.Finished() {
				incomplete = append(incomplete, t.Name)
			}
		}
		if len(incomplete) == 0 {
			continue
		}

		name := g.GateName
		if name == "" {
			name = category.DisplayName(g.CategoryName) + " Gate"
		}
		return &Result{
			GateName: name,
			Reason:   fmt.Sprintf("Blocked by %s: incomplete tasks: %s", name, strings.Join(incomplete, ", ")),
		}
	}
	return nil
}

func sortedBySortOrder(tasks []domain.TaskSnapshot) []domain.TaskSnapshot {
	ordered := make([]domain.TaskSnapshot, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SortOrder != ordered[j].SortOrder {
			return ordered[i].SortOrder < ordered[j].SortOrder
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}
