package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/services"
)

// DeleteAssignmentCmd creates the deleteAssignment command
func DeleteAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteAssignment <assignment_id>",
		Short: "Permanently delete an (archived) assignment, administrators only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.RequireActor()
			if err != nil {
				return err
			}

			ctx, cancel := app.OpContext()
			defer cancel()

			if err := services.DeleteArchivedAssignment(ctx, app.Store, app.Logger, actor, args[0]); err != nil {
				return err
			}
			fmt.Printf("Assignment %s permanently deleted\n", args[0])
			return nil
		},
	}
}
