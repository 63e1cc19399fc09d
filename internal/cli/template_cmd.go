package cli

import (
	"context"
	"fmt"

	"github.com/sergioanunez/phase/internal/cli/formatter"
	"github.com/sergioanunez/phase/internal/domain"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage the work template catalog",
	}

	cmd.AddCommand(
		newTemplateAddCmd(app),
		newTemplateListCmd(app),
		newTemplateUpdateCmd(app),
		newTemplateRemoveCmd(app),
		newTemplateDepCmd(app),
	)

	return cmd
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var name, categoryName, gateScope, gateMode, gateName string
	var order, duration int
	var isDep, isGate bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a template item",
		RunE: func(cmd *cobra.Command, args []string) error {
			item := &domain.WorkTemplateItem{
				TenantID:            app.TenantID,
				Name:                name,
				DefaultDurationDays: duration,
				SortOrder:           order,
				Category:            categoryName,
				IsDependency:        isDep,
				IsCriticalGate:      isGate,
				GateScope:           domain.GateScope(gateScope),
				GateBlockMode:       domain.GateBlockMode(gateMode),
				GateName:            gateName,
			}
			if err := app.Templates.CreateItem(context.Background(), item); err != nil {
				return err
			}
			fmt.Printf("Added template item %s\n", item.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().IntVar(&order, "order", 0, "Sort order")
	cmd.Flags().IntVar(&duration, "duration", 1, "Default duration in working days")
	cmd.Flags().StringVar(&categoryName, "category", "", "Construction phase category")
	cmd.Flags().BoolVar(&isDep, "dependency", false, "Mark as a legacy ordering dependency")
	cmd.Flags().BoolVar(&isGate, "critical-gate", false, "Mark as a critical gate")
	cmd.Flags().StringVar(&gateScope, "gate-scope", string(domain.ScopeDownstreamOnly), "Gate scope (downstream_only|all_scheduling)")
	cmd.Flags().StringVar(&gateMode, "gate-mode", string(domain.ModeScheduleOnly), "Gate block mode (schedule_only|schedule_and_confirm)")
	cmd.Flags().StringVar(&gateName, "gate-name", "", "Display name used in blocking messages")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("order")

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List template items",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Templates.ListItems(context.Background(), app.TenantID)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No template items found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTemplateItemList(items))
			return nil
		},
	}
}

func newTemplateUpdateCmd(app *App) *cobra.Command {
	var name, categoryName, gateName string
	var order, duration int
	var isDep, isGate bool

	cmd := &cobra.Command{
		Use:   "update ITEM",
		Short: "Update a template item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			itemID, err := resolveTemplateItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := app.Templates.GetItem(ctx, itemID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				item.Name = name
			}
			if cmd.Flags().Changed("order") {
				item.SortOrder = order
			}
			if cmd.Flags().Changed("duration") {
				item.DefaultDurationDays = duration
			}
			if cmd.Flags().Changed("category") {
				item.Category = categoryName
			}
			if cmd.Flags().Changed("dependency") {
				item.IsDependency = isDep
			}
			if cmd.Flags().Changed("critical-gate") {
				item.IsCriticalGate = isGate
			}
			if cmd.Flags().Changed("gate-name") {
				item.GateName = gateName
			}

			if err := app.Templates.UpdateItem(ctx, item); err != nil {
				return err
			}
			fmt.Printf("Updated template item %s\n", item.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().IntVar(&order, "order", 0, "Sort order")
	cmd.Flags().IntVar(&duration, "duration", 0, "Default duration in working days")
	cmd.Flags().StringVar(&categoryName, "category", "", "Construction phase category")
	cmd.Flags().BoolVar(&isDep, "dependency", false, "Mark as a legacy ordering dependency")
	cmd.Flags().BoolVar(&isGate, "critical-gate", false, "Mark as a critical gate")
	cmd.Flags().StringVar(&gateName, "gate-name", "", "Display name used in blocking messages")

	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ITEM",
		Short: "Remove a template item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			itemID, err := resolveTemplateItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Templates.DeleteItem(ctx, itemID); err != nil {
				return err
			}
			fmt.Printf("Removed template item %s\n", itemID)
			return nil
		},
	}
}

func newTemplateDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage template prerequisite edges",
	}

	var global bool
	add := &cobra.Command{
		Use:   "add ITEM PREREQUISITE",
		Short: "Declare that ITEM cannot start until PREREQUISITE is complete",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			itemID, err := resolveTemplateItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			prereqID, err := resolveTemplateItemID(ctx, app, args[1])
			if err != nil {
				return err
			}

			var tenant *string
			if !global {
				t := app.TenantID
				tenant = &t
			}
			if err := app.Templates.AddDependency(ctx, itemID, prereqID, tenant); err != nil {
				return err
			}
			fmt.Println("Dependency added.")
			return nil
		},
	}
	add.Flags().BoolVar(&global, "global", false, "Apply to every tenant")

	remove := &cobra.Command{
		Use:   "remove ITEM PREREQUISITE",
		Short: "Remove a prerequisite edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			itemID, err := resolveTemplateItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			prereqID, err := resolveTemplateItemID(ctx, app, args[1])
			if err != nil {
				return err
			}
			if err := app.Templates.RemoveDependency(ctx, itemID, prereqID); err != nil {
				return err
			}
			fmt.Println("Dependency removed.")
			return nil
		},
	}

	cmd.AddCommand(add, remove)
	return cmd
}
