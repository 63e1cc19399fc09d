package repository

import (
	"context"
	"time"

	"github.com/sergioanunez/phase/internal/domain"
)

type HomeRepo interface {
	Create(ctx context.Context, h *domain.Home) error
	GetByID(ctx context.Context, id string) (*domain.Home, error)
	List(ctx context.Context, tenantID string) ([]*domain.Home, error)
	Update(ctx context.Context, h *domain.Home) error
	// UpdateForecast writes only the computed forecast summary fields.
	// Nil total/completion clears the forecast (missing anchor date).
	UpdateForecast(ctx context.Context, homeID string, totalWorkingDays *int, completionDate *time.Time, computedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type TemplateItemRepo interface {
	Create(ctx context.Context, item *domain.WorkTemplateItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkTemplateItem, error)
	List(ctx context.Context, tenantID string) ([]*domain.WorkTemplateItem, error)
	Update(ctx context.Context, item *domain.WorkTemplateItem) error
	Delete(ctx context.Context, id string) error
}

type TemplateDependencyRepo interface {
	Create(ctx context.Context, d *domain.TemplateDependency) error
	Delete(ctx context.Context, templateItemID, dependsOnItemID string) error
	// ListForItems returns edges targeting or leaving the given template
	// items, including global rows whose tenant id is NULL.
	ListForItems(ctx context.Context, templateItemIDs []string, tenantID string) ([]domain.TemplateDependency, error)
}

type CategoryGateRepo interface {
	Create(ctx context.Context, g *domain.CategoryGate) error
	GetByID(ctx context.Context, id string) (*domain.CategoryGate, error)
	List(ctx context.Context, tenantID string) ([]*domain.CategoryGate, error)
	Delete(ctx context.Context, id string) error
}

type HomeTaskRepo interface {
	Create(ctx context.Context, t *domain.HomeTask) error
	GetByID(ctx context.Context, id string) (*domain.HomeTask, error)
	ListByHome(ctx context.Context, homeID string) ([]*domain.HomeTask, error)
	// ListSnapshotsByHome returns the joined task+template read model for
	// one home, ordered by frozen sort order. Snapshot fields come from
	// the task row; gate and dependency topology come from the live
	// template.
	ListSnapshotsByHome(ctx context.Context, homeID string) ([]domain.TaskSnapshot, error)
	Update(ctx context.Context, t *domain.HomeTask) error
	// UpdateForecastFields writes only the computed offsets for one task.
	UpdateForecastFields(ctx context.Context, taskID string, earlyStart, earlyFinish int, critical bool, blockedByCount int) error
	Delete(ctx context.Context, id string) error
}

type PunchItemRepo interface {
	Create(ctx context.Context, p *domain.PunchItem) error
	GetByID(ctx context.Context, id string) (*domain.PunchItem, error)
	ListByTask(ctx context.Context, taskID string) ([]*domain.PunchItem, error)
	Update(ctx context.Context, p *domain.PunchItem) error
	// CountOutstanding counts open and ready-for-review items for one task.
	CountOutstanding(ctx context.Context, taskID string) (int, error)
	// CountOutstandingForTasks is the batch form; tasks with no
	// outstanding items are absent from the result.
	CountOutstandingForTasks(ctx context.Context, taskIDs []string) (map[string]int, error)
	Delete(ctx context.Context, id string) error
}
