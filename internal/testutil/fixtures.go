package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/sergioanunez/phase/internal/domain"
)

var fixtureNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

// Home options
type HomeOption func(*domain.Home)

func WithStartDate(d time.Time) HomeOption {
	return func(h *domain.Home) {
		h.StartDate = &d
	}
}

func WithNoStartDate() HomeOption {
	return func(h *domain.Home) {
		h.StartDate = nil
	}
}

func WithHomeTenant(tenantID string) HomeOption {
	return func(h *domain.Home) {
		h.TenantID = tenantID
	}
}

// NewTestHome builds a home anchored on a Monday start date by default.
func NewTestHome(name string, opts ...HomeOption) *domain.Home {
	start := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC) // a Monday
	h := &domain.Home{
		ID:        uuid.New().String(),
		TenantID:  "tenant-test",
		Name:      name,
		Address:   "1 Test Street",
		StartDate: &start,
		CreatedAt: fixtureNow,
		UpdatedAt: fixtureNow,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Template item options
type ItemOption func(*domain.WorkTemplateItem)

func WithCategory(c string) ItemOption {
	return func(i *domain.WorkTemplateItem) {
		i.Category = c
	}
}

func WithDuration(days int) ItemOption {
	return func(i *domain.WorkTemplateItem) {
		i.DefaultDurationDays = days
	}
}

func AsDependency() ItemOption {
	return func(i *domain.WorkTemplateItem) {
		i.IsDependency = true
	}
}

func AsCriticalGate(scope domain.GateScope, gateName string) ItemOption {
	return func(i *domain.WorkTemplateItem) {
		i.IsCriticalGate = true
		i.GateScope = scope
		i.GateName = gateName
	}
}

func WithGateBlockMode(mode domain.GateBlockMode) ItemOption {
	return func(i *domain.WorkTemplateItem) {
		i.GateBlockMode = mode
	}
}

func WithItemTenant(tenantID string) ItemOption {
	return func(i *domain.WorkTemplateItem) {
		i.TenantID = tenantID
	}
}

func NewTestTemplateItem(name string, sortOrder int, opts ...ItemOption) *domain.WorkTemplateItem {
	i := &domain.WorkTemplateItem{
		ID:                  uuid.New().String(),
		TenantID:            "tenant-test",
		Name:                name,
		DefaultDurationDays: 1,
		SortOrder:           sortOrder,
		GateScope:           domain.ScopeDownstreamOnly,
		GateBlockMode:       domain.ModeScheduleOnly,
		CreatedAt:           fixtureNow,
		UpdatedAt:           fixtureNow,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Task options
type TaskOption func(*domain.HomeTask)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.HomeTask) {
		t.Status = s
	}
}

func WithScheduledDate(d time.Time) TaskOption {
	return func(t *domain.HomeTask) {
		t.ScheduledDate = &d
	}
}

// NewTestTask instantiates a task from a template item, freezing name,
// duration, and sort order the way the task service does.
func NewTestTask(home *domain.Home, item *domain.WorkTemplateItem, opts ...TaskOption) *domain.HomeTask {
	t := &domain.HomeTask{
		ID:                   uuid.New().String(),
		HomeID:               home.ID,
		TemplateItemID:       item.ID,
		NameSnapshot:         item.Name,
		DurationDaysSnapshot: item.DefaultDurationDays,
		SortOrderSnapshot:    item.SortOrder,
		Status:               domain.TaskUnscheduled,
		CreatedAt:            fixtureNow,
		UpdatedAt:            fixtureNow,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestPunchItem(taskID string, status domain.PunchStatus) *domain.PunchItem {
	return &domain.PunchItem{
		ID:          uuid.New().String(),
		HomeTaskID:  taskID,
		Description: "test defect",
		Status:      status,
		CreatedAt:   fixtureNow,
		UpdatedAt:   fixtureNow,
	}
}
