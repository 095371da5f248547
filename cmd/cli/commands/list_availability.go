package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/services"
)

// ListAvailabilityCmd creates the listAvailability command
func ListAvailabilityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listAvailability <fixture_id>",
		Short: "List availability records for a fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.OpContext()
			defer cancel()

			records, err := services.GetAvailability(ctx, app.Store, args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No availability recorded for this fixture.")
				return nil
			}
			for _, rec := range records {
				line := fmt.Sprintf("%-20s %-18s", rec.PlayerID, rec.Status)
				if rec.Notes != "" {
					line += "  " + rec.Notes
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
