package cli

import (
	"context"
	"fmt"

	"github.com/sergioanunez/phase/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBlockersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "blockers HOME",
		Short: "Show why each of a home's tasks can or cannot be scheduled",
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
			tasks, err := app.Tasks.ListSnapshots(ctx, homeID)
			if err != nil {
				return err
			}
			reasons, err := app.Scheduling.BlockReasons(ctx, homeID)
			if err != nil {
				return err
			}

			rows := make([]formatter.BlockerRow, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, formatter.BlockerRow{
					Name:   t.Name,
					Status: t.Status,
					Reason: reasons[t.ID],
				})
			}
			fmt.Printf("%s\n", formatter.FormatBlockers(home.Name, rows))
			return nil
		},
	}
}
