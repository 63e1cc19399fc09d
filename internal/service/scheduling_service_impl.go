package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sergioanunez/phase/internal/gate"
	"github.com/sergioanunez/phase/internal/repository"
	"github.com/sergioanunez/phase/internal/schedule"
)

type schedulingService struct {
	loader   blockLoader
	tasks    repository.HomeTaskRepo
	observer UseCaseObserver
}

func NewSchedulingService(
	homes repository.HomeRepo,
	tasks repository.HomeTaskRepo,
	deps repository.TemplateDependencyRepo,
	gates repository.CategoryGateRepo,
	punch repository.PunchItemRepo,
	observers ...UseCaseObserver,
) SchedulingService {
	return &schedulingService{
		loader: blockLoader{
			homes: homes,
			tasks: tasks,
			deps:  deps,
			gates: gates,
			punch: punch,
		},
		tasks:    tasks,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *schedulingService) CheckGateBlocking(ctx context.Context, taskID string) (result *gate.Result, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "check-gate-blocking",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"task_id": taskID, "blocked": result != nil},
		})
	}()

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("loading task: %w", err)
	}
	in, err := s.loader.load(ctx, task.HomeID)
	if err != nil {
		return nil, err
	}
	for _, t := range in.Tasks {
		if t.ID == taskID {
			return gate.Evaluate(in.Tasks, t, in.Gates, in.OpenPunchCounts), nil
		}
	}
	return nil, fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
}

func (s *schedulingService) BlockReason(ctx context.Context, taskID string) (reason string, blocked bool, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "block-reason",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"task_id": taskID, "blocked": blocked},
		})
	}()

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return "", false, fmt.Errorf("loading task: %w", err)
	}
	in, err := s.loader.load(ctx, task.HomeID)
	if err != nil {
		return "", false, err
	}
	reason, blocked = schedule.BlockReason(in, taskID)
	return reason, blocked, nil
}

func (s *schedulingService) BlockReasons(ctx context.Context, homeID string) (reasons map[string]string, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "block-reasons",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"home_id": homeID, "blocked_count": len(reasons)},
		})
	}()

	in, err := s.loader.load(ctx, homeID)
	if err != nil {
		return nil, err
	}
	return schedule.BlockReasons(in), nil
}
