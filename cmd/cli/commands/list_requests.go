package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/services"
	"github.com/mhofmann-club/aufstellung/pkg/db"
)

// ListRequestsCmd creates the listRequests command
func ListRequestsCmd(app *AppContext) *cobra.Command {
	var (
		teamID          string
		includeArchived bool
	)

	cmd := &cobra.Command{
		Use:   "listRequests",
		Short: "List open substitute requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.OpContext()
			defer cancel()

			requests, err := services.ListOpenRequests(ctx, app.Store, db.RequestFilter{
				TeamID:          teamID,
				IncludeArchived: includeArchived,
			})
			if err != nil {
				return err
			}
			if len(requests) == 0 {
				fmt.Println("No substitute requests found.")
				return nil
			}
			for _, req := range requests {
				flags := ""
				if req.Archived {
					flags = " [archived]"
				}
				fmt.Printf("%s  %-12s player %-12s until %s%s\n",
					req.ID, req.TeamName, req.PlayerID, req.ValidUntil.Format(dateLayout), flags)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "Only this team's requests")
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived requests")
	return cmd
}
