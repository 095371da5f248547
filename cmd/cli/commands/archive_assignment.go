package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/services"
)

// ArchiveAssignmentCmd creates the archiveAssignment command
func ArchiveAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "archiveAssignment <assignment_id>",
		Short: "Archive a single substitute assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.RequireActor()
			if err != nil {
				return err
			}

			ctx, cancel := app.OpContext()
			defer cancel()

			if err := services.ArchiveAssignment(ctx, app.Store, app.Logger, actor, args[0]); err != nil {
				return err
			}
			fmt.Printf("Assignment %s archived\n", args[0])
			return nil
		},
	}
}
