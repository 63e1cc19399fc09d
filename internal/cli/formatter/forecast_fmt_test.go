package formatter

import (
	"testing"
	"time"

	"github.com/sergioanunez/phase/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatForecast_RendersSummaryAndRows(t *testing.T) {
	start := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	completion := time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)

	out := FormatForecast(ForecastData{
		HomeName:         "Lot 12",
		StartDate:        &start,
		CompletionDate:   &completion,
		TotalWorkingDays: 6,
		Rows: []ForecastRow{
			{Name: "Framing", EarlyStart: 1, EarlyFinish: 3, LateStart: 1, LateFinish: 3, Slack: 0, Critical: true, Predecessors: 1},
			{Name: "Landscaping", EarlyStart: 0, EarlyFinish: 1, LateStart: 5, LateFinish: 6, Slack: 5},
		},
	})

	assert.Contains(t, out, "LOT 12")
	assert.Contains(t, out, "Framing")
	assert.Contains(t, out, "Landscaping")
	assert.Contains(t, out, "2025-06-16")
	assert.Contains(t, out, "2025-06-24")
	assert.Contains(t, out, "6")
}

func TestFormatForecast_NoStartDate(t *testing.T) {
	out := FormatForecast(ForecastData{HomeName: "Lot 1"})
	assert.Contains(t, out, "No start date")
}

func TestFormatBlockers_MarksReadyAndBlocked(t *testing.T) {
	out := FormatBlockers("Lot 12", []BlockerRow{
		{Name: "Footings", Status: domain.TaskCompleted},
		{Name: "Framing", Status: domain.TaskUnscheduled, Reason: "Waiting on prerequisite task(s): Footings"},
	})

	assert.Contains(t, out, "ready")
	assert.Contains(t, out, "Waiting on prerequisite task(s): Footings")
}

func TestFormatHomeList_ShowsForecastWhenPresent(t *testing.T) {
	start := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	completion := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	days := 34
	homes := []*domain.Home{
		{ID: "abcdef12-0000", Name: "Lot 12", Address: "4 Elm St", StartDate: &start,
			ForecastCompletionDate: &completion, ForecastTotalWorkingDays: &days},
		{ID: "99999999-0000", Name: "Lot 13", Address: "6 Elm St"},
	}

	out := FormatHomeList(homes)

	assert.Contains(t, out, "abcdef12")
	assert.NotContains(t, out, "abcdef12-0000")
	assert.Contains(t, out, "2025-08-01")
	assert.Contains(t, out, "34")
}
