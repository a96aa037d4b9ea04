package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/homestock/internal/inventory"
)

func updateCmd() *cobra.Command {
	var (
		name     string
		quantity int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an item's name or quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			items, err := service.Refresh(cmd.Context(), session())
			if err != nil {
				return err
			}

			var current *inventory.Item
			for i := range items {
				if items[i].ID == id {
					current = &items[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("item not found: %s", id)
			}

			draft := inventory.ItemDraft{Name: current.Name, Quantity: current.Quantity}
			if cmd.Flags().Changed("name") {
				draft.Name = name
			}
			if cmd.Flags().Changed("quantity") {
				draft.Quantity = quantity
			}

			resp, err := service.RequestUpdate(cmd.Context(), session(), id, draft)
			if err != nil {
				return err
			}
			switch {
			case resp.Outcome == inventory.OutcomeDeleted:
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			case resp.Item != nil:
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s x%d\n", id, resp.Item.Name, resp.Item.Quantity)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new item name")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "new quantity (zero or more)")
	cmd.MarkFlagsOneRequired("name", "quantity")
	return cmd
}
