package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/homestock/internal/inventory"
)

// delete <id>: the upstream decides whether the item goes away or loses one unit.
func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item, or decrease its quantity by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The service reconciles against local state, so load it first.
			if _, err := service.Refresh(cmd.Context(), session()); err != nil {
				return err
			}

			resp, err := service.RequestDelete(cmd.Context(), session(), args[0])
			if err != nil {
				return err
			}

			switch resp.Outcome {
			case inventory.OutcomeDeleted:
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			case inventory.OutcomeDecremented:
				if resp.Item == nil {
					break
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s now has quantity %d\n", resp.Item.Name, resp.Item.Quantity)
			}
			return nil
		},
	}
	return cmd
}
