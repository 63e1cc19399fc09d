package domain

import "time"

// HomeTask is one scheduled instance of a template item for one home.
// NameSnapshot, DurationDaysSnapshot and SortOrderSnapshot are frozen at
// creation time; later template edits must not change them.
type HomeTask struct {
	ID             string
	HomeID         string
	TemplateItemID string

	NameSnapshot         string
	DurationDaysSnapshot int
	SortOrderSnapshot    int

	Status        TaskStatus
	ScheduledDate *time.Time

	// Computed by the forecast engine.
	ForecastEarlyStartOffsetWorkingDays  int
	ForecastEarlyFinishOffsetWorkingDays int
	IsCriticalPath                       bool
	BlockedByCount                       int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskSnapshot is the joined read model of a home task with its live
// template metadata, as loaded in one query. The snapshot fields come from
// the task row; Category and the gate/dependency fields come from the
// template and may change between loads.
type TaskSnapshot struct {
	ID             string
	HomeID         string
	TemplateItemID string

	Name         string
	DurationDays int
	SortOrder    int

	Status        TaskStatus
	ScheduledDate *time.Time

	Category       string
	IsDependency   bool
	IsCriticalGate bool
	GateScope      GateScope
	GateBlockMode  GateBlockMode
	GateName       string
}
