package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/services"
)

// DecideAssignmentCmd creates the decide command
func DecideAssignmentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "decide <assignment_id> <approve|reject>",
		Short: "Approve or reject a pending assignment as the lending team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.RequireActor()
			if err != nil {
				return err
			}

			ctx, cancel := app.OpContext()
			defer cancel()

			a, err := services.Decide(ctx, app.Store, app.Logger, actor,
				args[0], services.Decision(strings.ToLower(args[1])))
			if err != nil {
				return err
			}
			fmt.Printf("Assignment %s is now %s (decided by %s)\n", a.ID, a.Status, a.ApprovedBy)
			return nil
		},
	}
}
