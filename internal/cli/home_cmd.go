package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/sergioanunez/phase/internal/cli/formatter"
	"github.com/sergioanunez/phase/internal/domain"
	"github.com/spf13/cobra"
)

func newHomeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "home",
		Short: "Manage homes",
	}

	cmd.AddCommand(
		newHomeAddCmd(app),
		newHomeListCmd(app),
		newHomeSetStartCmd(app),
		newHomeRemoveCmd(app),
	)

	return cmd
}

func newHomeAddCmd(app *App) *cobra.Command {
	var name, address, start string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new home",
		RunE: func(cmd *cobra.Command, args []string) error {
			h := &domain.Home{
				TenantID: app.TenantID,
				Name:     name,
				Address:  address,
			}
			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				h.StartDate = &startDate
			}

			if err := app.Homes.Create(context.Background(), h); err != nil {
				return err
			}
			fmt.Printf("Created home %s\n", h.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Home name")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&start, "start", "", "Construction start date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newHomeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List homes",
		RunE: func(cmd *cobra.Command, args []string) error {
			homes, err := app.Homes.List(context.Background(), app.TenantID)
			if err != nil {
				return err
			}
			if len(homes) == 0 {
				fmt.Println("No homes found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatHomeList(homes))
			return nil
		},
	}
}

func newHomeSetStartCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "set-start HOME [DATE]",
		Short: "Set or clear a home's construction start date",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			homeID, err := resolveHomeID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if clear {
				if err := app.Homes.SetStartDate(ctx, homeID, nil); err != nil {
					return err
				}
				fmt.Println("Start date cleared. Run `phase forecast` to refresh.")
				return nil
			}

			if len(args) < 2 {
				return fmt.Errorf("a date is required unless --clear is set")
			}
			startDate, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", args[1], err)
			}
			if err := app.Homes.SetStartDate(ctx, homeID, &startDate); err != nil {
				return err
			}
			fmt.Printf("Start date set to %s. Run `phase forecast` to refresh.\n", args[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the start date")

	return cmd
}

func newHomeRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove HOME",
		Short: "Remove a home and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			homeID, err := resolveHomeID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !force && app.IsInteractive != nil && app.IsInteractive() {
				var confirmed bool
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Remove home %q and all of its tasks?", args[0])).
						Affirmative("Yes").
						Negative("No").
						Value(&confirmed),
				))
				if err := form.Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := app.Homes.Delete(ctx, homeID); err != nil {
				return err
			}
			fmt.Printf("Removed home %s\n", homeID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}
