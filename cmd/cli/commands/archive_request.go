package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/services"
)

// ArchiveRequestCmd creates the archiveRequest command
func ArchiveRequestCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "archiveRequest <request_id>",
		Short: "Archive a substitute request and its team's assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.RequireActor()
			if err != nil {
				return err
			}

			ctx, cancel := app.OpContext()
			defer cancel()

			req, err := services.ArchiveRequest(ctx, app.Store, app.Logger, actor, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Request %s (%s / player %s) archived\n", req.ID, req.TeamName, req.PlayerID)
			return nil
		},
	}
}
