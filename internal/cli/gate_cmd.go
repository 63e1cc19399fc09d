package cli

import (
	"context"
	"fmt"

	"github.com/sergioanunez/phase/internal/cli/formatter"
	"github.com/sergioanunez/phase/internal/domain"
	"github.com/spf13/cobra"
)

func newGateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gate",
		Short: "Manage category gates",
	}

	var gateScope, gateMode, gateName string
	add := &cobra.Command{
		Use:   "add CATEGORY",
		Short: "Declare a construction phase a gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := &domain.CategoryGate{
				TenantID:      app.TenantID,
				CategoryName:  args[0],
				GateScope:     domain.GateScope(gateScope),
				GateBlockMode: domain.GateBlockMode(gateMode),
				GateName:      gateName,
			}
			if err := app.Gates.Create(context.Background(), g); err != nil {
				return err
			}
			fmt.Printf("Gate created for category %s\n", g.CategoryName)
			return nil
		},
	}
	add.Flags().StringVar(&gateScope, "scope", string(domain.ScopeDownstreamOnly), "Gate scope (downstream_only|all_scheduling)")
	add.Flags().StringVar(&gateMode, "mode", string(domain.ModeScheduleOnly), "Block mode (schedule_only|schedule_and_confirm)")
	add.Flags().StringVar(&gateName, "name", "", "Display name used in blocking messages")

	list := &cobra.Command{
		Use:   "list",
		Short: "List category gates",
		RunE: func(cmd *cobra.Command, args []string) error {
			gates, err := app.Gates.List(context.Background(), app.TenantID)
			if err != nil {
				return err
			}
			if len(gates) == 0 {
				fmt.Println("No category gates found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatCategoryGateList(gates))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a category gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Gates.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed gate %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}
