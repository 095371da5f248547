package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/services"
	"github.com/mhofmann-club/aufstellung/pkg/db"
)

// SetAvailabilityCmd creates the setAvailability command
func SetAvailabilityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setAvailability <fixture_id> <player_id> <available|unavailable|substitute_needed> [notes]",
		Short: "Record a player's availability for a fixture",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.RequireActor()
			if err != nil {
				return err
			}
			notes := ""
			if len(args) > 3 {
				notes = args[3]
			}

			ctx, cancel := app.OpContext()
			defer cancel()

			rec, err := services.SetAvailability(ctx, app.Store, app.Rosters, app.Logger, actor,
				args[0], args[1], db.AvailabilityStatus(strings.ToLower(args[2])), notes)
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s for player %s in fixture %s\n", rec.Status, rec.PlayerID, rec.FixtureID)
			return nil
		},
	}
}
