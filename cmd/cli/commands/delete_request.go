package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/services"
)

// DeleteRequestCmd creates the deleteRequest command
func DeleteRequestCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteRequest <request_id>",
		Short: "Delete a substitute request that has no active assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.RequireActor()
			if err != nil {
				return err
			}

			ctx, cancel := app.OpContext()
			defer cancel()

			if err := services.DeleteRequest(ctx, app.Store, app.Logger, actor, args[0]); err != nil {
				return err
			}
			fmt.Printf("Request %s deleted\n", args[0])
			return nil
		},
	}
}
