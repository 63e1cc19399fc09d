package formatter

import (
	"fmt"
	"strings"
	"time"
)

// ForecastRow is one task's computed schedule, in working-day offsets.
type ForecastRow struct {
	Name         string
	EarlyStart   int
	EarlyFinish  int
	LateStart    int
	LateFinish   int
	Slack        int
	Critical     bool
	Predecessors int
}

// ForecastData drives the forecast view for one home.
type ForecastData struct {
	HomeName         string
	StartDate        *time.Time
	CompletionDate   *time.Time
	TotalWorkingDays int
	Rows             []ForecastRow
}

// FormatForecast renders the per-task schedule table plus the home summary.
func FormatForecast(data ForecastData) string {
	var b strings.Builder
	b.WriteString(Header("Forecast: " + data.HomeName))
	b.WriteString("\n\n")

	if data.StartDate == nil {
		b.WriteString(Dim("No start date set; forecast cleared.") + "\n")
		return b.String()
	}

	if len(data.Rows) == 0 {
		b.WriteString(Dim("No tasks.") + "\n")
	} else {
		rows := make([][]string, 0, len(data.Rows))
		for _, r := range data.Rows {
			marker := ""
			name := StyleFg.Render(r.Name)
			if r.Critical {
				marker = StyleRed.Render("●")
				name = StyleBold.Render(r.Name)
			}
			rows = append(rows, []string{
				marker,
				name,
				fmt.Sprintf("%d", r.EarlyStart),
				fmt.Sprintf("%d", r.EarlyFinish),
				fmt.Sprintf("%d", r.LateStart),
				fmt.Sprintf("%d", r.LateFinish),
				slackCell(r.Slack),
				fmt.Sprintf("%d", r.Predecessors),
			})
		}
		b.WriteString(RenderTable(
			[]string{"", "Task", "ES", "EF", "LS", "LF", "Slack", "Deps"},
			rows,
		))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Start:"), data.StartDate.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("%s %d\n", Bold("Total working days:"), data.TotalWorkingDays))
	if data.CompletionDate != nil {
		b.WriteString(fmt.Sprintf("%s %s\n", Bold("Forecast completion:"), StyleGreen.Render(data.CompletionDate.Format("2006-01-02"))))
	}
	return b.String()
}

func slackCell(slack int) string {
	if slack == 0 {
		return StyleRed.Render("0")
	}
	return StyleGreen.Render(fmt.Sprintf("%d", slack))
}
