package cli

import (
	"context"
	"fmt"

	"github.com/sergioanunez/phase/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newForecastCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast HOME",
		Short: "Recompute and show a home's completion forecast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			homeID, err := resolveHomeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			home, err := app.Homes.GetByID(ctx, homeID)
			if err != nil {
				return err
			}

			result, err := app.Forecast.ComputeHomeForecast(ctx, homeID)
			if err != nil {
				return err
			}

			data := formatter.ForecastData{
				HomeName:         home.Name,
				StartDate:        home.StartDate,
				CompletionDate:   result.CompletionDate,
				TotalWorkingDays: result.TotalWorkingDays,
				Rows:             make([]formatter.ForecastRow, 0, len(result.Tasks)),
			}
			for _, t := range result.Tasks {
				data.Rows = append(data.Rows, formatter.ForecastRow{
					Name:         t.Name,
					EarlyStart:   t.EarlyStartOffset,
					EarlyFinish:  t.EarlyFinishOffset,
					LateStart:    t.LateStartOffset,
					LateFinish:   t.LateFinishOffset,
					Slack:        t.Slack,
					Critical:     t.Critical,
					Predecessors: t.PredecessorCount,
				})
			}

			fmt.Printf("%s\n", formatter.FormatForecast(data))
			return nil
		},
	}
}
