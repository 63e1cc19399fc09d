package domain

import "time"

// CategoryGate is a per-tenant rule declaring an entire construction phase
// a gate, independent of any single task.
type CategoryGate struct {
	ID            string
	TenantID      string
	CategoryName  string
	GateScope     GateScope
	GateBlockMode GateBlockMode
	GateName      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
