package services

import (
	"context"

	"github.com/mhofmann-club/aufstellung/pkg/roster"
)

// Rosters defines the club-directory lookups the coordination services
// need. roster.Store satisfies it; tests use a fake.
type Rosters interface {
	TeamByID(ctx context.Context, id string) (*roster.Team, error)
	TeamsOfPlayer(ctx context.Context, playerID string) ([]roster.Team, error)
	IsMember(ctx context.Context, teamID, playerID string) (bool, error)
	Fixture(ctx context.Context, id string) (*roster.Fixture, error)
}
