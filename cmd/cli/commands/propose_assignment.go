package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/services"
)

// ProposeAssignmentCmd creates the propose command
func ProposeAssignmentCmd(app *AppContext) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "propose <team_id> <substitute_team_id> <substitute_player_id>",
		Short: "Propose borrowing a player from another team",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.RequireActor()
			if err != nil {
				return err
			}

			ctx, cancel := app.OpContext()
			defer cancel()

			a, err := services.ProposeAssignment(ctx, app.Store, app.Rosters, app.Logger, actor,
				args[0], args[1], args[2], notes)
			if err != nil {
				return err
			}
			fmt.Printf("Assignment %s proposed: %s borrows player %s from %s (pending)\n",
				a.ID, a.TeamName, a.SubstitutePlayerID, a.SubstituteTeamName)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	return cmd
}
