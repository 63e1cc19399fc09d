package domain

import "time"

// Home is one house under construction. StartDate anchors the forecast;
// the Forecast* fields are computed, never entered by hand.
type Home struct {
	ID       string
	TenantID string
	Name     string
	Address  string

	StartDate *time.Time

	ForecastCompletionDate   *time.Time
	ForecastTotalWorkingDays *int
	ForecastComputedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
