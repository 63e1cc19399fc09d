package cli

import (
	"github.com/sergioanunez/phase/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Homes      service.HomeService
	Templates  service.TemplateService
	Gates      service.CategoryGateService
	Tasks      service.TaskService
	PunchItems service.PunchService
	Scheduling service.SchedulingService
	Forecast   service.ForecastService

	// TenantID scopes every list and lookup; set from the root flag.
	TenantID string

	// IsInteractive reports whether stdin is a terminal; confirmation
	// prompts are skipped when it is not.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "phase" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "phase",
		Short: "Homebuilding production scheduler",
	}

	root.PersistentFlags().StringVar(&app.TenantID, "tenant", app.TenantID, "Tenant scope for all operations")

	root.AddCommand(
		newHomeCmd(app),
		newTemplateCmd(app),
		newGateCmd(app),
		newTaskCmd(app),
		newPunchCmd(app),
		newForecastCmd(app),
		newBlockersCmd(app),
	)

	return root
}
