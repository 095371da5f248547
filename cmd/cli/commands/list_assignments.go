package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/services"
	"github.com/mhofmann-club/aufstellung/pkg/db"
)

// ListAssignmentsCmd creates the listAssignments command
func ListAssignmentsCmd(app *AppContext) *cobra.Command {
	var (
		teamID          string
		approvedOnly    bool
		archivedOnly    bool
		includeArchived bool
	)

	cmd := &cobra.Command{
		Use:   "listAssignments",
		Short: "List substitute assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.OpContext()
			defer cancel()

			var (
				assignments []db.SubstituteAssignment
				err         error
			)
			switch {
			case archivedOnly:
				assignments, err = services.ListArchived(ctx, app.Store)
			case approvedOnly:
				assignments, err = services.ListApproved(ctx, app.Store, includeArchived)
			default:
				// An empty team id lists club-wide.
				assignments, err = services.ListByTeam(ctx, app.Store, teamID, includeArchived)
			}
			if err != nil {
				return err
			}

			if len(assignments) == 0 {
				fmt.Println("No substitute assignments found.")
				return nil
			}
			for _, a := range assignments {
				flags := ""
				if a.Archived {
					flags = " [archived]"
				}
				fmt.Printf("%s  %-12s borrows %-12s from %-12s %-9s%s\n",
					a.ID, a.TeamName, a.SubstitutePlayerID, a.SubstituteTeamName, a.Status, flags)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "Only this team's assignments")
	cmd.Flags().BoolVar(&approvedOnly, "approved", false, "Only approved assignments")
	cmd.Flags().BoolVar(&archivedOnly, "archived", false, "Only archived assignments")
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived assignments")
	return cmd
}
