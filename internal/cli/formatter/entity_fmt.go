package formatter

import (
	"fmt"

	"github.com/sergioanunez/phase/internal/domain"
)

// FormatHomeList renders the home list table.
func FormatHomeList(homes []*domain.Home) string {
	rows := make([][]string, 0, len(homes))
	for _, h := range homes {
		start := Dim("-")
		if h.StartDate != nil {
			start = h.StartDate.Format("2006-01-02")
		}
		completion := Dim("-")
		if h.ForecastCompletionDate != nil {
			completion = StyleGreen.Render(h.ForecastCompletionDate.Format("2006-01-02"))
		}
		days := Dim("-")
		if h.ForecastTotalWorkingDays != nil {
			days = fmt.Sprintf("%d", *h.ForecastTotalWorkingDays)
		}
		rows = append(rows, []string{
			Dim(shortID(h.ID)),
			StyleFg.Render(h.Name),
			h.Address,
			start,
			days,
			completion,
		})
	}
	return RenderTable([]string{"ID", "Name", "Address", "Start", "Days", "Completion"}, rows)
}

// FormatTaskList renders a home's task snapshots.
func FormatTaskList(tasks []domain.TaskSnapshot) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		scheduled := Dim("-")
		if t.ScheduledDate != nil {
			scheduled = t.ScheduledDate.Format("2006-01-02")
		}
		flags := ""
		if t.IsDependency {
			flags += StylePurple.Render("D")
		}
		if t.IsCriticalGate {
			flags += StyleRed.Render("G")
		}
		rows = append(rows, []string{
			Dim(shortID(t.ID)),
			fmt.Sprintf("%d", t.SortOrder),
			StyleFg.Render(t.Name),
			t.Category,
			fmt.Sprintf("%dd", t.DurationDays),
			StatusColor(t.Status).Render(string(t.Status)),
			scheduled,
			flags,
		})
	}
	return RenderTable([]string{"ID", "Order", "Task", "Category", "Dur", "Status", "Scheduled", ""}, rows)
}

// FormatTemplateItemList renders the template catalog.
func FormatTemplateItemList(items []*domain.WorkTemplateItem) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		gateCol := Dim("-")
		if item.IsCriticalGate {
			name := item.GateName
			if name == "" {
				name = item.Name
			}
			gateCol = StyleRed.Render(fmt.Sprintf("%s (%s, %s)", name, item.GateScope, item.GateBlockMode))
		}
		dep := Dim("-")
		if item.IsDependency {
			dep = StylePurple.Render("yes")
		}
		rows = append(rows, []string{
			Dim(shortID(item.ID)),
			fmt.Sprintf("%d", item.SortOrder),
			StyleFg.Render(item.Name),
			item.Category,
			fmt.Sprintf("%dd", item.DefaultDurationDays),
			dep,
			gateCol,
		})
	}
	return RenderTable([]string{"ID", "Order", "Item", "Category", "Dur", "Dep", "Gate"}, rows)
}

// FormatCategoryGateList renders the tenant's category gate rules.
func FormatCategoryGateList(gates []*domain.CategoryGate) string {
	rows := make([][]string, 0, len(gates))
	for _, g := range gates {
		name := g.GateName
		if name == "" {
			name = Dim("-")
		}
		rows = append(rows, []string{
			Dim(shortID(g.ID)),
			StyleFg.Render(g.CategoryName),
			string(g.GateScope),
			string(g.GateBlockMode),
			name,
		})
	}
	return RenderTable([]string{"ID", "Category", "Scope", "Blocks", "Name"}, rows)
}

// FormatPunchList renders a task's punch items.
func FormatPunchList(items []*domain.PunchItem) string {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{
			Dim(shortID(p.ID)),
			PunchStatusColor(p.Status).Render(string(p.Status)),
			StyleFg.Render(p.Description),
		})
	}
	return RenderTable([]string{"ID", "Status", "Description"}, rows)
}

// shortID truncates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
