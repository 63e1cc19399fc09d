package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sergioanunez/phase/internal/db"
	"github.com/sergioanunez/phase/internal/domain"
	"github.com/sergioanunez/phase/internal/gate"
	"github.com/sergioanunez/phase/internal/repository"
	"github.com/sergioanunez/phase/internal/schedule"
)

type taskService struct {
	loader   blockLoader
	tasks    repository.HomeTaskRepo
	items    repository.TemplateItemRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTaskService(
	homes repository.HomeRepo,
	tasks repository.HomeTaskRepo,
	items repository.TemplateItemRepo,
	deps repository.TemplateDependencyRepo,
	gates repository.CategoryGateRepo,
	punch repository.PunchItemRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		loader: blockLoader{
			homes: homes,
			tasks: tasks,
			deps:  deps,
			gates: gates,
			punch: punch,
		},
		tasks:    tasks,
		items:    items,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// InstantiateFromTemplate copies the tenant's template catalog onto a home,
// one task per item, freezing name, duration and sort order. All rows are
// written in one transaction.
func (s *taskService) InstantiateFromTemplate(ctx context.Context, homeID string) (created []*domain.HomeTask, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "instantiate-tasks",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"home_id": homeID, "task_count": len(created)},
		})
	}()

	home, err := s.loader.homes.GetByID(ctx, homeID)
	if err != nil {
		return nil, fmt.Errorf("loading home: %w", err)
	}

	existing, err := s.tasks.ListByHome(ctx, homeID)
	if err != nil {
		return nil, fmt.Errorf("loading existing tasks: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("home %s already has %d task(s)", homeID, len(existing))
	}

	items, err := s.items.List(ctx, home.TenantID)
	if err != nil {
		return nil, fmt.Errorf("loading template items: %w", err)
	}

	now := time.Now().UTC()
	created = make([]*domain.HomeTask, 0, len(items))
	for _, item := range items {
		created = append(created, &domain.HomeTask{
			ID:                   uuid.New().String(),
			HomeID:               homeID,
			TemplateItemID:       item.ID,
			NameSnapshot:         item.Name,
			DurationDaysSnapshot: item.DefaultDurationDays,
			SortOrderSnapshot:    item.SortOrder,
			Status:               domain.TaskUnscheduled,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteHomeTaskRepo(tx)
		for _, t := range created {
			if err := txTasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.NameSnapshot, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.HomeTask, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByHome(ctx context.Context, homeID string) ([]*domain.HomeTask, error) {
	return s.tasks.ListByHome(ctx, homeID)
}

func (s *taskService) ListSnapshots(ctx context.Context, homeID string) ([]domain.TaskSnapshot, error) {
	return s.tasks.ListSnapshotsByHome(ctx, homeID)
}

// Schedule sets the task's scheduled date after running the block
// resolver. A blocked task is left untouched and a *BlockedError is
// returned with the first blocking reason.
func (s *taskService) Schedule(ctx context.Context, taskID string, date time.Time) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "schedule-task",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"task_id": taskID},
		})
	}()

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("loading task: %w", err)
	}
	if task.Status.Finished() {
		return fmt.Errorf("task %s is %s and cannot be scheduled", taskID, task.Status)
	}

	in, err := s.loader.load(ctx, task.HomeID)
	if err != nil {
		return err
	}
	if reason, blocked := schedule.BlockReason(in, taskID); blocked {
		return &BlockedError{TaskID: taskID, Reason: reason}
	}

	task.ScheduledDate = &date
	if task.Status == domain.TaskUnscheduled {
		task.Status = domain.TaskScheduled
	}
	task.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, task)
}

// Confirm moves a scheduled or pending task to confirmed. Only gates whose
// block mode covers confirmation are re-checked here; schedule-only gates
// had their say when the date was set.
func (s *taskService) Confirm(ctx context.Context, taskID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("loading task: %w", err)
	}
	if task.Status != domain.TaskScheduled && task.Status != domain.TaskPendingConfirm {
		return fmt.Errorf("task %s is %s and cannot be confirmed", taskID, task.Status)
	}

	in, err := s.loader.load(ctx, task.HomeID)
	if err != nil {
		return err
	}
	if r := confirmGateResult(in, taskID); r != nil {
		return &BlockedError{TaskID: taskID, Reason: r.Reason}
	}

	task.Status = domain.TaskConfirmed
	task.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, task)
}

// confirmGateResult runs the gate passes restricted to gates that block
// confirmation as well as scheduling.
func confirmGateResult(in schedule.Input, taskID string) *gate.Result {
	var candidate *domain.TaskSnapshot
	for i := range in.Tasks {
		if in.Tasks[i].ID == taskID {
			candidate = &in.Tasks[i]
			break
		}
	}
	if candidate == nil {
		return nil
	}

	punch := make(map[string]int, len(in.OpenPunchCounts))
	for _, t := range in.Tasks {
		if t.IsCriticalGate && t.GateBlockMode == domain.ModeScheduleAndConfirm {
			punch[t.ID] = in.OpenPunchCounts[t.ID]
		}
	}
	var gates []domain.CategoryGate
	for _, g := range in.Gates {
		if g.GateBlockMode == domain.ModeScheduleAndConfirm {
			gates = append(gates, g)
		}
	}
	return gate.Evaluate(in.Tasks, *candidate, gates, punch)
}

func (s *taskService) UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) error {
	if !domain.ValidTaskStatuses[string(status)] {
		return fmt.Errorf("invalid task status %q", status)
	}
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	task.Status = status
	task.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, task)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
