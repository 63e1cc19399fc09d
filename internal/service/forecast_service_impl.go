package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sergioanunez/phase/internal/calendar"
	"github.com/sergioanunez/phase/internal/db"
	"github.com/sergioanunez/phase/internal/forecast"
	"github.com/sergioanunez/phase/internal/repository"
)

type forecastService struct {
	homes    repository.HomeRepo
	tasks    repository.HomeTaskRepo
	deps     repository.TemplateDependencyRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewForecastService(
	homes repository.HomeRepo,
	tasks repository.HomeTaskRepo,
	deps repository.TemplateDependencyRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ForecastService {
	return &forecastService{
		homes:    homes,
		tasks:    tasks,
		deps:     deps,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// ComputeHomeForecast recomputes the full critical-path forecast for one
// home and persists every per-task offset together with the home summary
// in a single transaction. A dependency cycle aborts the recompute with no
// rows written.
func (s *forecastService) ComputeHomeForecast(ctx context.Context, homeID string) (result *HomeForecastResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"home_id": homeID}
	defer func() {
		if result != nil {
			fields["total_working_days"] = result.TotalWorkingDays
			fields["task_count"] = len(result.Tasks)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "compute-forecast",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	home, err := s.homes.GetByID(ctx, homeID)
	if err != nil {
		return nil, fmt.Errorf("loading home: %w", err)
	}

	computedAt := time.Now().UTC()

	// No anchor date: the stored forecast is meaningless, so clear it and
	// record that a recompute ran.
	if home.StartDate == nil {
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteHomeRepo(tx).UpdateForecast(ctx, homeID, nil, nil, computedAt)
		})
		if err != nil {
			return nil, err
		}
		return &HomeForecastResult{HomeID: homeID, ComputedAt: computedAt}, nil
	}

	snapshots, err := s.tasks.ListSnapshotsByHome(ctx, homeID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	itemIDs := make([]string, 0, len(snapshots))
	for _, t := range snapshots {
		itemIDs = append(itemIDs, t.TemplateItemID)
	}
	edges, err := s.deps.ListForItems(ctx, itemIDs, home.TenantID)
	if err != nil {
		return nil, fmt.Errorf("loading template dependencies: %w", err)
	}

	engineTasks := make([]forecast.Task, 0, len(snapshots))
	for _, t := range snapshots {
		engineTasks = append(engineTasks, forecast.Task{
			ID:             t.ID,
			TemplateItemID: t.TemplateItemID,
			Name:           t.Name,
			DurationDays:   t.DurationDays,
		})
	}
	engineEdges := make([]forecast.Edge, 0, len(edges))
	for _, e := range edges {
		engineEdges = append(engineEdges, forecast.Edge{
			TemplateItemID:  e.TemplateItemID,
			DependsOnItemID: e.DependsOnItemID,
		})
	}

	computed, err := forecast.Compute(engineTasks, engineEdges)
	if err != nil {
		return nil, err
	}

	total := computed.TotalWorkingDays
	completion := calendar.AddWorkingDays(*home.StartDate, total)

	nameByID := make(map[string]string, len(snapshots))
	for _, t := range snapshots {
		nameByID[t.ID] = t.Name
	}
	result = &HomeForecastResult{
		HomeID:           homeID,
		TotalWorkingDays: total,
		CompletionDate:   &completion,
		ComputedAt:       computedAt,
		Tasks:            make([]TaskForecast, 0, len(computed.Tasks)),
	}
	for _, ts := range computed.Tasks {
		result.Tasks = append(result.Tasks, TaskForecast{
			TaskID:            ts.TaskID,
			Name:              nameByID[ts.TaskID],
			EarlyStartOffset:  ts.EarlyStart,
			EarlyFinishOffset: ts.EarlyFinish,
			LateStartOffset:   ts.LateStart,
			LateFinishOffset:  ts.LateFinish,
			Slack:             ts.Slack,
			Critical:          ts.Critical,
			PredecessorCount:  ts.PredecessorCount,
		})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteHomeTaskRepo(tx)
		for _, ts := range computed.Tasks {
			if err := txTasks.UpdateForecastFields(ctx, ts.TaskID, ts.EarlyStart, ts.EarlyFinish, ts.Critical, ts.PredecessorCount); err != nil {
				return fmt.Errorf("writing forecast for task %s: %w", ts.TaskID, err)
			}
		}
		return repository.NewSQLiteHomeRepo(tx).UpdateForecast(ctx, homeID, &total, &completion, computedAt)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
