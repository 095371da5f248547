// Package roster supplies team, player, and fixture lookups for the
// substitute workflow. The club's membership administration owns these
// tables; this package only reads them.
package roster

import (
	"context"
	"time"
)

// Team is a club team.
type Team struct {
	ID   string
	Name string
}

// Player is a club member appearing on at least one roster.
type Player struct {
	ID   string
	Name string
}

// Fixture is a scheduled match between two club teams.
type Fixture struct {
	ID           string
	HomeTeamID   string
	HomeTeamName string
	AwayTeamID   string
	AwayTeamName string
	Date         time.Time
	Kickoff      string
}

// Directory defines the lookups the coordination services need. The
// production implementation is pgx-backed (NewStore); tests use a fake.
type Directory interface {
	// TeamByID returns db.ErrNotFound if the team does not exist.
	TeamByID(ctx context.Context, id string) (*Team, error)
	// TeamByName resolves a display name to a team, db.ErrNotFound if unknown.
	TeamByName(ctx context.Context, name string) (*Team, error)
	Members(ctx context.Context, teamID string) ([]Player, error)
	IsMember(ctx context.Context, teamID, playerID string) (bool, error)
	// TeamsOfPlayer returns every team the player is rostered on.
	TeamsOfPlayer(ctx context.Context, playerID string) ([]Team, error)
	// Fixture returns db.ErrNotFound if the fixture does not exist.
	Fixture(ctx context.Context, id string) (*Fixture, error)
}
