package formatter

import (
	"strings"

	"github.com/sergioanunez/phase/internal/domain"
)

// BlockerRow is one task with its resolver verdict.
type BlockerRow struct {
	Name   string
	Status domain.TaskStatus
	Reason string
}

// FormatBlockers renders the batch block-reason view for one home. Rows
// with an empty Reason show as free to schedule.
func FormatBlockers(homeName string, rows []BlockerRow) string {
	var b strings.Builder
	b.WriteString(Header("Blockers: " + homeName))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(Dim("No tasks.") + "\n")
		return b.String()
	}

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		verdict := StyleGreen.Render("ready")
		if r.Reason != "" {
			verdict = StyleRed.Render(r.Reason)
		}
		table = append(table, []string{
			StyleFg.Render(r.Name),
			StatusColor(r.Status).Render(string(r.Status)),
			verdict,
		})
	}
	b.WriteString(RenderTable([]string{"Task", "Status", "Blocking"}, table))
	return b.String()
}
