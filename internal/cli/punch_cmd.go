package cli

import (
	"context"
	"fmt"

	"github.com/sergioanunez/phase/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPunchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "punch",
		Short: "Manage punch items",
	}

	add := &cobra.Command{
		Use:   "add HOME TASK DESCRIPTION",
		Short: "Open a punch item against a task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, err := resolveTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			p, err := app.PunchItems.Open(ctx, task.ID, args[2])
			if err != nil {
				return err
			}
			fmt.Printf("Opened punch item %s on %s\n", p.ID[:8], task.NameSnapshot)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list HOME TASK",
		Short: "List a task's punch items",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, err := resolveTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			items, err := app.PunchItems.ListByTask(ctx, task.ID)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No punch items.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatPunchList(items))
			return nil
		},
	}

	review := &cobra.Command{
		Use:   "review ID",
		Short: "Mark a punch item ready for review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.PunchItems.MarkReadyForReview(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Marked ready for review.")
			return nil
		},
	}

	closeCmd := &cobra.Command{
		Use:   "close ID",
		Short: "Close a punch item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.PunchItems.Close(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Closed.")
			return nil
		},
	}

	cancel := &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a punch item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.PunchItems.Cancel(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Canceled.")
			return nil
		},
	}

	cmd.AddCommand(add, list, review, closeCmd, cancel)
	return cmd
}
