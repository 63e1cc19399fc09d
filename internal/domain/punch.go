package domain

import "time"

// PunchItem is a quality defect raised against a home task. Only
// outstanding items (open or ready for review) count toward gate blocking.
type PunchItem struct {
	ID          string
	HomeTaskID  string
	Description string
	Status      PunchStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
