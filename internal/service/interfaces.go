package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sergioanunez/phase/internal/domain"
	"github.com/sergioanunez/phase/internal/gate"
)

type HomeService interface {
	Create(ctx context.Context, h *domain.Home) error
	GetByID(ctx context.Context, id string) (*domain.Home, error)
	List(ctx context.Context, tenantID string) ([]*domain.Home, error)
	Update(ctx context.Context, h *domain.Home) error
	SetStartDate(ctx context.Context, id string, start *time.Time) error
	Delete(ctx context.Context, id string) error
}

type TemplateService interface {
	CreateItem(ctx context.Context, item *domain.WorkTemplateItem) error
	GetItem(ctx context.Context, id string) (*domain.WorkTemplateItem, error)
	ListItems(ctx context.Context, tenantID string) ([]*domain.WorkTemplateItem, error)
	UpdateItem(ctx context.Context, item *domain.WorkTemplateItem) error
	DeleteItem(ctx context.Context, id string) error

	AddDependency(ctx context.Context, templateItemID, dependsOnItemID string, tenantID *string) error
	RemoveDependency(ctx context.Context, templateItemID, dependsOnItemID string) error
	ListDependencies(ctx context.Context, templateItemIDs []string, tenantID string) ([]domain.TemplateDependency, error)
}

type CategoryGateService interface {
	Create(ctx context.Context, g *domain.CategoryGate) error
	GetByID(ctx context.Context, id string) (*domain.CategoryGate, error)
	List(ctx context.Context, tenantID string) ([]*domain.CategoryGate, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	// InstantiateFromTemplate creates one task per template item for the
	// home, freezing name, duration and sort order at creation time.
	InstantiateFromTemplate(ctx context.Context, homeID string) ([]*domain.HomeTask, error)
	GetByID(ctx context.Context, id string) (*domain.HomeTask, error)
	ListByHome(ctx context.Context, homeID string) ([]*domain.HomeTask, error)
	ListSnapshots(ctx context.Context, homeID string) ([]domain.TaskSnapshot, error)
	// Schedule runs the block resolver first and fails with a
	// *BlockedError when the task is not free to schedule.
	Schedule(ctx context.Context, taskID string, date time.Time) error
	// Confirm moves a pending task to confirmed; gates whose block mode
	// covers confirmation are re-checked here.
	Confirm(ctx context.Context, taskID string) error
	UpdateStatus(ctx context.Context, taskID string, status domain.TaskStatus) error
	Delete(ctx context.Context, id string) error
}

type PunchService interface {
	Open(ctx context.Context, taskID, description string) (*domain.PunchItem, error)
	MarkReadyForReview(ctx context.Context, id string) error
	Close(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.PunchItem, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.PunchItem, error)
}

type SchedulingService interface {
	// CheckGateBlocking runs only the gate passes for one task. A nil
	// result means no gate blocks it.
	CheckGateBlocking(ctx context.Context, taskID string) (*gate.Result, error)
	// BlockReason runs the full resolver for one task.
	BlockReason(ctx context.Context, taskID string) (string, bool, error)
	// BlockReasons runs the full resolver for every task on a home.
	// Tasks absent from the map are not blocked.
	BlockReasons(ctx context.Context, homeID string) (map[string]string, error)
}

// TaskForecast is the computed schedule of one task, in working-day
// offsets from the home's start date.
type TaskForecast struct {
	TaskID            string
	Name              string
	EarlyStartOffset  int
	EarlyFinishOffset int
	LateStartOffset   int
	LateFinishOffset  int
	Slack             int
	Critical          bool
	PredecessorCount  int
}

// HomeForecastResult is the outcome of one forecast recompute.
// CompletionDate is nil when the home has no start date to anchor on.
type HomeForecastResult struct {
	HomeID           string
	TotalWorkingDays int
	CompletionDate   *time.Time
	ComputedAt       time.Time
	Tasks            []TaskForecast
}

type ForecastService interface {
	ComputeHomeForecast(ctx context.Context, homeID string) (*HomeForecastResult, error)
}

// BlockedError is returned when a scheduling action is refused by the
// block resolver.
type BlockedError struct {
	TaskID string
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("task %s cannot be scheduled: %s", e.TaskID, e.Reason)
}
