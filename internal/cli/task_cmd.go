package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sergioanunez/phase/internal/cli/formatter"
	"github.com/sergioanunez/phase/internal/domain"
	"github.com/sergioanunez/phase/internal/service"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage a home's tasks",
	}

	cmd.AddCommand(
		newTaskInitCmd(app),
		newTaskListCmd(app),
		newTaskScheduleCmd(app),
		newTaskConfirmCmd(app),
		newTaskStatusCmd(app),
	)

	return cmd
}

func newTaskInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init HOME",
		Short: "Create the home's task list from the template catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			homeID, err := resolveHomeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			created, err := app.Tasks.InstantiateFromTemplate(ctx, homeID)
			if err != nil {
				return err
			}
			fmt.Printf("Created %d task(s).\n", len(created))
			return nil
		},
	}
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list HOME",
		Short: "List a home's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			homeID, err := resolveHomeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListSnapshots(ctx, homeID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks. Run `phase task init` first.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTaskList(tasks))
			return nil
		},
	}
}

func newTaskScheduleCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "schedule HOME TASK",
		Short: "Set a task's scheduled date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, err := resolveTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			scheduledDate, err := time.Parse("2006-01-02", date)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}

			err = app.Tasks.Schedule(ctx, task.ID, scheduledDate)
			var blocked *service.BlockedError
			if errors.As(err, &blocked) {
				fmt.Printf("%s\n", formatter.StyleRed.Render(blocked.Reason))
				return fmt.Errorf("task %s was not scheduled", task.NameSnapshot)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Scheduled %s for %s\n", task.NameSnapshot, date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Scheduled date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newTaskConfirmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm HOME TASK",
		Short: "Confirm a scheduled task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, err := resolveTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}

			err = app.Tasks.Confirm(ctx, task.ID)
			var blocked *service.BlockedError
			if errors.As(err, &blocked) {
				fmt.Printf("%s\n", formatter.StyleRed.Render(blocked.Reason))
				return fmt.Errorf("task %s was not confirmed", task.NameSnapshot)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Confirmed %s\n", task.NameSnapshot)
			return nil
		},
	}
}

func newTaskStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status HOME TASK STATUS",
		Short: "Set a task's status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			task, err := resolveTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Tasks.UpdateStatus(ctx, task.ID, domain.TaskStatus(args[2])); err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", task.NameSnapshot, args[2])
			return nil
		},
	}
}
