package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/mhofmann-club/aufstellung/pkg/core/model"
	"github.com/mhofmann-club/aufstellung/pkg/roster"
)

var (
	testLogger = zap.NewNop()

	admin    = model.Actor{UserID: "u-admin", Roles: []model.Role{model.RoleAdministrator}}
	board    = model.Actor{UserID: "u-board", Roles: []model.Role{model.RoleBoardMember}}
	captain1 = model.Actor{UserID: "u-cap1", Roles: []model.Role{model.RoleMember}, CaptainOf: []string{"team-1"}}
	captain2 = model.Actor{UserID: "u-cap2", Roles: []model.Role{model.RoleMember}, CaptainOf: []string{"team-2"}}
	plain    = model.Actor{UserID: "u-plain", Roles: []model.Role{model.RoleMember}}
)

// newTestRosters builds a small club: Herren I vs Herren II with an
// upcoming fixture in three days, plus an unrelated Damen I roster.
func newTestRosters() *fakeRosters {
	upcoming := time.Now().AddDate(0, 0, 3)
	return &fakeRosters{
		teams: map[string]*roster.Team{
			"team-1": {ID: "team-1", Name: "Herren I"},
			"team-2": {ID: "team-2", Name: "Herren II"},
			"team-3": {ID: "team-3", Name: "Damen I"},
		},
		members: map[string][]string{
			"team-1": {"p1", "p1b"},
			"team-2": {"p2", "p2b"},
			"team-3": {"p3"},
		},
		fixtures: map[string]*roster.Fixture{
			"fx1": {
				ID:           "fx1",
				HomeTeamID:   "team-1",
				HomeTeamName: "Herren I",
				AwayTeamID:   "team-2",
				AwayTeamName: "Herren II",
				Date:         upcoming,
				Kickoff:      "14:00",
			},
			"fx-past": {
				ID:           "fx-past",
				HomeTeamID:   "team-1",
				HomeTeamName: "Herren I",
				AwayTeamID:   "team-2",
				AwayTeamName: "Herren II",
				Date:         time.Now().AddDate(0, 0, -2),
				Kickoff:      "14:00",
			},
		},
	}
}
