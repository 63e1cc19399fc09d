package domain

type TaskStatus string

const (
	TaskUnscheduled    TaskStatus = "unscheduled"
	TaskScheduled      TaskStatus = "scheduled"
	TaskPendingConfirm TaskStatus = "pending_confirm"
	TaskConfirmed      TaskStatus = "confirmed"
	TaskDeclined       TaskStatus = "declined"
	TaskInProgress     TaskStatus = "in_progress"
	TaskCompleted      TaskStatus = "completed"
	TaskCanceled       TaskStatus = "canceled"
)

// Finished reports whether the task no longer counts as outstanding work
// for gate purposes: completed or canceled.
func (s TaskStatus) Finished() bool {
	return s == TaskCompleted || s == TaskCanceled
}

type PunchStatus string

const (
	PunchOpen           PunchStatus = "open"
	PunchReadyForReview PunchStatus = "ready_for_review"
	PunchClosed         PunchStatus = "closed"
	PunchCanceled       PunchStatus = "canceled"
)

// Outstanding reports whether a punch item still counts toward gate blocking.
func (s PunchStatus) Outstanding() bool {
	return s == PunchOpen || s == PunchReadyForReview
}

// GateScope controls which tasks a gate applies to.
type GateScope string

const (
	// ScopeDownstreamOnly blocks only tasks ordered after the gate.
	ScopeDownstreamOnly GateScope = "downstream_only"
	// ScopeAllScheduling blocks every task on the home.
	ScopeAllScheduling GateScope = "all_scheduling"
)

// GateBlockMode controls which scheduling transitions a gate blocks.
type GateBlockMode string

const (
	ModeScheduleOnly       GateBlockMode = "schedule_only"
	ModeScheduleAndConfirm GateBlockMode = "schedule_and_confirm"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"unscheduled": true, "scheduled": true, "pending_confirm": true,
	"confirmed": true, "declined": true, "in_progress": true,
	"completed": true, "canceled": true,
}

// ValidPunchStatuses is the canonical set of accepted punch status strings.
var ValidPunchStatuses = map[string]bool{
	"open": true, "ready_for_review": true, "closed": true, "canceled": true,
}
