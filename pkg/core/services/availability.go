package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mhofmann-club/aufstellung/pkg/core/authz"
	"github.com/mhofmann-club/aufstellung/pkg/core/model"
	"github.com/mhofmann-club/aufstellung/pkg/db"
)

// SetAvailability records a player's availability for a fixture and keeps
// the substitute request register in sync: flagging substitute_needed
// creates or refreshes the team's open request for the player, moving away
// from it deletes the request (or archives it when approved assignments
// already exist). The availability write and the request sync commit
// atomically.
func SetAvailability(
	ctx context.Context,
	store db.Store,
	rosters Rosters,
	logger *zap.Logger,
	actor model.Actor,
	fixtureID string,
	playerID string,
	status db.AvailabilityStatus,
	notes string,
) (*db.AvailabilityRecord, error) {
	logger.Debug("Starting setAvailability",
		zap.String("fixture_id", fixtureID),
		zap.String("player_id", playerID),
		zap.String("status", string(status)))

	if !status.Valid() {
		return nil, fmt.Errorf("unknown availability status %q", status)
	}

	fixture, err := rosters.Fixture(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}

	// The player's team must be one of the fixture's two sides.
	teams, err := rosters.TeamsOfPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load player teams: %w", err)
	}
	var teamID, teamName string
	for _, t := range teams {
		if t.ID == fixture.HomeTeamID || t.ID == fixture.AwayTeamID {
			teamID, teamName = t.ID, t.Name
			break
		}
	}
	if teamID == "" {
		return nil, fmt.Errorf("player %s in fixture %s: %w", playerID, fixtureID, db.ErrNotAFixtureParticipant)
	}

	now := time.Now()
	if !authz.CanEditAvailabilityOrRequest(actor, teamID, fixture.Date, now) {
		return nil, fmt.Errorf("user %s may not edit availability for team %s: %w", actor.UserID, teamID, db.ErrForbidden)
	}

	rec := &db.AvailabilityRecord{
		FixtureID: fixtureID,
		PlayerID:  playerID,
		Status:    status,
		Notes:     notes,
		UpdatedAt: now,
	}

	err = store.Transact(ctx, func(tx db.Store) error {
		if err := tx.UpsertAvailability(ctx, rec); err != nil {
			return fmt.Errorf("failed to save availability: %w", err)
		}
		return syncRequestWithAvailability(ctx, tx, logger, actor, teamID, teamName, playerID, fixture.ID, fixture.Date, status, notes, now)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Availability recorded",
		zap.String("fixture_id", fixtureID),
		zap.String("player_id", playerID),
		zap.String("status", string(status)))
	return rec, nil
}

// syncRequestWithAvailability is the single place the availability ledger
// mutates the request register. Must run inside a transaction.
func syncRequestWithAvailability(
	ctx context.Context,
	tx db.Store,
	logger *zap.Logger,
	actor model.Actor,
	teamID, teamName, playerID, fixtureID string,
	fixtureDate time.Time,
	status db.AvailabilityStatus,
	notes string,
	now time.Time,
) error {
	existing, err := tx.FindOpenRequest(ctx, teamID, playerID, fixtureID)
	if err != nil {
		return fmt.Errorf("failed to look up open request: %w", err)
	}

	if status == db.StatusSubstituteNeeded {
		if existing != nil {
			existing.NeedsSubstitute = true
			existing.Notes = notes
			existing.ValidUntil = fixtureDate
			existing.MarkedBy = actor.UserID
			existing.UpdatedAt = now
			if err := tx.UpdateRequest(ctx, existing); err != nil {
				return fmt.Errorf("failed to refresh request: %w", err)
			}
			return nil
		}
		req := &db.SubstituteRequest{
			ID:              uuid.NewString(),
			TeamID:          teamID,
			TeamName:        teamName,
			PlayerID:        playerID,
			FixtureID:       fixtureID,
			NeedsSubstitute: true,
			Notes:           notes,
			ValidUntil:      fixtureDate,
			MarkedBy:        actor.UserID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.InsertRequest(ctx, req); err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		logger.Debug("Created substitute request from availability",
			zap.String("request_id", req.ID),
			zap.String("team_id", teamID))
		return nil
	}

	// Status moved away from substitute_needed: the open request goes away.
	// With approved assignments on record it is archived for audit instead
	// of deleted.
	if existing == nil {
		return nil
	}
	approved, err := tx.CountApprovedAssignments(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to count approved assignments: %w", err)
	}
	if approved > 0 {
		return archiveRequestWithCascade(ctx, tx, logger, existing.ID, teamID)
	}
	if err := tx.DeleteRequest(ctx, existing.ID); err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}
	logger.Debug("Deleted substitute request after availability change",
		zap.String("request_id", existing.ID))
	return nil
}

// GetAvailability lists the availability records for a fixture. Read-only;
// no authorization beyond general read access.
func GetAvailability(ctx context.Context, store db.Store, fixtureID string) ([]db.AvailabilityRecord, error) {
	records, err := store.GetAvailability(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	return records, nil
}
