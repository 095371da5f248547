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

// UpsertRequest creates or overwrites the open substitute request for
// (team, player, fixture). When a fixture is given its date becomes the
// request deadline; captains cannot set deadlines in the past.
func UpsertRequest(
	ctx context.Context,
	store db.Store,
	rosters Rosters,
	logger *zap.Logger,
	actor model.Actor,
	teamID string,
	playerID string,
	fixtureID string,
	needsSubstitute bool,
	notes string,
	validUntil time.Time,
) (*db.SubstituteRequest, error) {
	logger.Debug("Starting upsertRequest",
		zap.String("team_id", teamID),
		zap.String("player_id", playerID),
		zap.String("fixture_id", fixtureID))

	team, err := rosters.TeamByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	onRoster, err := rosters.IsMember(ctx, teamID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check roster membership: %w", err)
	}
	if !onRoster {
		return nil, fmt.Errorf("player %s on team %s: %w", playerID, teamID, db.ErrNotRosterMember)
	}

	// A fixture-bound request always carries the fixture date as deadline.
	if fixtureID != "" {
		fixture, err := rosters.Fixture(ctx, fixtureID)
		if err != nil {
			return nil, fmt.Errorf("failed to load fixture: %w", err)
		}
		validUntil = fixture.Date
	}

	now := time.Now()
	if !authz.CanEditAvailabilityOrRequest(actor, teamID, time.Time{}, now) {
		return nil, fmt.Errorf("user %s may not edit requests for team %s: %w", actor.UserID, teamID, db.ErrForbidden)
	}
	if !actor.IsClubOfficial() && dateOnly(validUntil).Before(dateOnly(now)) {
		return nil, fmt.Errorf("valid until %s: %w", validUntil.Format("2006-01-02"), db.ErrInvalidDeadline)
	}

	var result *db.SubstituteRequest
	err = store.Transact(ctx, func(tx db.Store) error {
		existing, err := tx.FindOpenRequest(ctx, teamID, playerID, fixtureID)
		if err != nil {
			return fmt.Errorf("failed to look up open request: %w", err)
		}
		if existing != nil {
			existing.NeedsSubstitute = needsSubstitute
			existing.Notes = notes
			existing.ValidUntil = validUntil
			existing.MarkedBy = actor.UserID
			existing.UpdatedAt = now
			if err := tx.UpdateRequest(ctx, existing); err != nil {
				return fmt.Errorf("failed to update request: %w", err)
			}
			result = existing
			return nil
		}
		result = &db.SubstituteRequest{
			ID:              uuid.NewString(),
			TeamID:          teamID,
			TeamName:        team.Name,
			PlayerID:        playerID,
			FixtureID:       fixtureID,
			NeedsSubstitute: needsSubstitute,
			Notes:           notes,
			ValidUntil:      validUntil,
			MarkedBy:        actor.UserID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.InsertRequest(ctx, result); err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Substitute request saved",
		zap.String("request_id", result.ID),
		zap.String("team", team.Name),
		zap.String("player_id", playerID))
	return result, nil
}

// DeleteRequest removes a request permanently. Only allowed while the
// request's team has no non-archived assignments; otherwise the caller must
// archive instead.
func DeleteRequest(ctx context.Context, store db.Store, logger *zap.Logger, actor model.Actor, requestID string) error {
	logger.Debug("Starting deleteRequest", zap.String("request_id", requestID))

	return store.Transact(ctx, func(tx db.Store) error {
		req, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return fmt.Errorf("failed to load request: %w", err)
		}
		if !authz.CanEditAvailabilityOrRequest(actor, req.TeamID, req.ValidUntil, time.Now()) {
			return fmt.Errorf("user %s may not delete request %s: %w", actor.UserID, requestID, db.ErrForbidden)
		}
		active, err := tx.CountActiveAssignments(ctx, req.TeamID)
		if err != nil {
			return fmt.Errorf("failed to count active assignments: %w", err)
		}
		if active > 0 {
			return fmt.Errorf("request %s has %d active assignments: %w", requestID, active, db.ErrHasActiveAssignments)
		}
		if err := tx.DeleteRequest(ctx, requestID); err != nil {
			return fmt.Errorf("failed to delete request: %w", err)
		}
		logger.Info("Substitute request deleted", zap.String("request_id", requestID))
		return nil
	})
}

// ArchiveRequest closes a request and cascades archival to every assignment
// of its team. Requires administrator or board-member role.
func ArchiveRequest(ctx context.Context, store db.Store, logger *zap.Logger, actor model.Actor, requestID string) (*db.SubstituteRequest, error) {
	logger.Debug("Starting archiveRequest", zap.String("request_id", requestID))

	if !authz.CanArchive(actor) {
		return nil, fmt.Errorf("user %s may not archive requests: %w", actor.UserID, db.ErrForbidden)
	}

	var req *db.SubstituteRequest
	err := store.Transact(ctx, func(tx db.Store) error {
		var err error
		req, err = tx.GetRequest(ctx, requestID)
		if err != nil {
			return fmt.Errorf("failed to load request: %w", err)
		}
		if err := archiveRequestWithCascade(ctx, tx, logger, req.ID, req.TeamID); err != nil {
			return err
		}
		req.Archived = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Substitute request archived",
		zap.String("request_id", requestID),
		zap.String("team", req.TeamName))
	return req, nil
}

// ListOpenRequests lists substitute requests, optionally scoped to a team
// and optionally including archived ones.
func ListOpenRequests(ctx context.Context, store db.Store, filter db.RequestFilter) ([]db.SubstituteRequest, error) {
	requests, err := store.ListRequests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requests: %w", err)
	}
	return requests, nil
}
