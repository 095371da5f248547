package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/services"
)

// UpsertRequestCmd creates the upsertRequest command
func UpsertRequestCmd(app *AppContext) *cobra.Command {
	var (
		fixtureID  string
		notes      string
		validUntil string
		resolved   bool
	)

	cmd := &cobra.Command{
		Use:   "upsertRequest <team_id> <player_id>",
		Short: "Create or update a substitute request for a roster member",
		Long: `Create or update the open substitute request for (team, player, fixture).
Without --fixture the request needs --valid-until; with --fixture the
fixture date becomes the deadline.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.RequireActor()
			if err != nil {
				return err
			}

			var deadline time.Time
			if validUntil != "" {
				deadline, err = time.Parse(dateLayout, validUntil)
				if err != nil {
					return fmt.Errorf("invalid --valid-until date %q: %w", validUntil, err)
				}
			} else if fixtureID == "" {
				return fmt.Errorf("either --fixture or --valid-until is required")
			}

			ctx, cancel := app.OpContext()
			defer cancel()

			req, err := services.UpsertRequest(ctx, app.Store, app.Rosters, app.Logger, actor,
				args[0], args[1], fixtureID, !resolved, notes, deadline)
			if err != nil {
				return err
			}
			fmt.Printf("Request %s saved for %s / player %s (valid until %s)\n",
				req.ID, req.TeamName, req.PlayerID, req.ValidUntil.Format(dateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&fixtureID, "fixture", "", "Fixture the request refers to")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	cmd.Flags().StringVar(&validUntil, "valid-until", "", "Deadline (YYYY-MM-DD), ignored when --fixture is set")
	cmd.Flags().BoolVar(&resolved, "resolved", false, "Mark the need as no longer open")
	return cmd
}
