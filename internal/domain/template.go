package domain

import "time"

// WorkTemplateItem is a reusable catalog entry. Tasks reference it but
// never own it: duration and sort order are copied onto the task at
// creation time, while gate and dependency topology stay live here.
type WorkTemplateItem struct {
	ID                  string
	TenantID            string
	Name                string
	DefaultDurationDays int
	SortOrder           int
	Category            string

	// IsDependency is the legacy ordering marker: earlier-ordered items
	// flagged here block later tasks until completed.
	IsDependency bool

	IsCriticalGate bool
	GateScope      GateScope
	GateBlockMode  GateBlockMode
	GateName       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateDependency is a directed edge at the template level:
// TemplateItemID cannot start until DependsOnItemID is complete.
// TenantID is nil for global rows that apply to every tenant.
type TemplateDependency struct {
	TemplateItemID  string
	DependsOnItemID string
	TenantID        *string
}
