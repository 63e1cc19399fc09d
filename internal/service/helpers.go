package service

import (
	"context"
	"fmt"

	"github.com/sergioanunez/phase/internal/domain"
	"github.com/sergioanunez/phase/internal/repository"
	"github.com/sergioanunez/phase/internal/schedule"
)

// blockLoader assembles the resolver input for one home: task snapshots,
// the tenant's template dependency edges (including global rows), the
// tenant's category gates, and outstanding punch counts for the tasks
// flagged as critical gates.
type blockLoader struct {
	homes repository.HomeRepo
	tasks repository.HomeTaskRepo
	deps  repository.TemplateDependencyRepo
	gates repository.CategoryGateRepo
	punch repository.PunchItemRepo
}

func (l blockLoader) load(ctx context.Context, homeID string) (schedule.Input, error) {
	var in schedule.Input

	home, err := l.homes.GetByID(ctx, homeID)
	if err != nil {
		return in, fmt.Errorf("loading home: %w", err)
	}

	in.Tasks, err = l.tasks.ListSnapshotsByHome(ctx, homeID)
	if err != nil {
		return in, fmt.Errorf("loading tasks: %w", err)
	}

	itemIDs := make([]string, 0, len(in.Tasks))
	gateTaskIDs := make([]string, 0, 4)
	for _, t := range in.Tasks {
		itemIDs = append(itemIDs, t.TemplateItemID)
		if t.IsCriticalGate {
			gateTaskIDs = append(gateTaskIDs, t.ID)
		}
	}

	in.Dependencies, err = l.deps.ListForItems(ctx, itemIDs, home.TenantID)
	if err != nil {
		return in, fmt.Errorf("loading template dependencies: %w", err)
	}

	gates, err := l.gates.List(ctx, home.TenantID)
	if err != nil {
		return in, fmt.Errorf("loading category gates: %w", err)
	}
	in.Gates = make([]domain.CategoryGate, 0, len(gates))
	for _, g := range gates {
		in.Gates = append(in.Gates, *g)
	}

	if len(gateTaskIDs) > 0 {
		in.OpenPunchCounts, err = l.punch.CountOutstandingForTasks(ctx, gateTaskIDs)
		if err != nil {
			return in, fmt.Errorf("counting punch items: %w", err)
		}
	}

	return in, nil
}
