package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhofmann-club/aufstellung/pkg/core/model"
	"github.com/mhofmann-club/aufstellung/pkg/identity"
)

// MakeTokenCmd creates the makeToken command. Handy for test environments;
// production tokens come from the club's identity provider.
func MakeTokenCmd(app *AppContext) *cobra.Command {
	var (
		roles     []string
		captainOf []string
		ttlHours  int
	)

	cmd := &cobra.Command{
		Use:   "makeToken <user_id>",
		Short: "Mint an actor token with the given roles and captaincies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor := model.Actor{UserID: args[0], CaptainOf: captainOf}
			for _, r := range roles {
				actor.Roles = append(actor.Roles, model.Role(r))
			}

			token, err := identity.NewActorToken(actor, []byte(app.Cfg.TokenSigningKey), time.Duration(ttlHours)*time.Hour)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&roles, "role", nil, "Club-wide roles (administrator, board_member, member)")
	cmd.Flags().StringSliceVar(&captainOf, "captain-of", nil, "Team ids the user captains")
	cmd.Flags().IntVar(&ttlHours, "ttl-hours", 24, "Token lifetime in hours")
	return cmd
}
