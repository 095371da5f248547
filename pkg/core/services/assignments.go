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

// Decision is the verdict passed to Decide.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// ProposeAssignment creates a pending assignment borrowing a named player
// from another team for the requesting team. Proposing is open to club
// officials and the requesting team's captain; the source team's consent
// comes later, at Decide.
func ProposeAssignment(
	ctx context.Context,
	store db.Store,
	rosters Rosters,
	logger *zap.Logger,
	actor model.Actor,
	teamID string,
	substituteTeamID string,
	substitutePlayerID string,
	notes string,
) (*db.SubstituteAssignment, error) {
	logger.Debug("Starting proposeAssignment",
		zap.String("team_id", teamID),
		zap.String("substitute_team_id", substituteTeamID),
		zap.String("substitute_player_id", substitutePlayerID))

	if teamID == substituteTeamID {
		return nil, fmt.Errorf("team %s: %w", teamID, db.ErrSameTeam)
	}

	team, err := rosters.TeamByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesting team: %w", err)
	}
	sourceTeam, err := rosters.TeamByID(ctx, substituteTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load substitute team: %w", err)
	}
	onRoster, err := rosters.IsMember(ctx, substituteTeamID, substitutePlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check roster membership: %w", err)
	}
	if !onRoster {
		return nil, fmt.Errorf("player %s on team %s: %w", substitutePlayerID, substituteTeamID, db.ErrNotRosterMember)
	}

	if !authz.CanProposeAssignment(actor, teamID) {
		return nil, fmt.Errorf("user %s may not propose for team %s: %w", actor.UserID, teamID, db.ErrForbidden)
	}
	now := time.Now()
	passed, err := captainDeadlinePassed(ctx, store, actor, teamID, now)
	if err != nil {
		return nil, err
	}
	if passed {
		return nil, fmt.Errorf("deadline for team %s has passed: %w", teamID, db.ErrForbidden)
	}

	a := &db.SubstituteAssignment{
		ID:                 uuid.NewString(),
		TeamID:             teamID,
		TeamName:           team.Name,
		SubstituteTeamID:   substituteTeamID,
		SubstituteTeamName: sourceTeam.Name,
		SubstitutePlayerID: substitutePlayerID,
		RequestedBy:        actor.UserID,
		Status:             db.AssignmentPending,
		Notes:              notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := store.InsertAssignment(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	logger.Info("Substitute assignment proposed",
		zap.String("assignment_id", a.ID),
		zap.String("team", team.Name),
		zap.String("substitute_team", sourceTeam.Name),
		zap.String("substitute_player_id", substitutePlayerID))
	return a, nil
}

// Decide approves or rejects a pending assignment. Authorized for club
// officials and the captain of the lending team only: it is that team's
// player being committed, so captaincy of the requesting team is not
// enough. A second decision on the same assignment fails with
// ErrAlreadyDecided, also under concurrent callers.
func Decide(
	ctx context.Context,
	store db.Store,
	logger *zap.Logger,
	actor model.Actor,
	assignmentID string,
	decision Decision,
) (*db.SubstituteAssignment, error) {
	logger.Debug("Starting decide",
		zap.String("assignment_id", assignmentID),
		zap.String("decision", string(decision)))

	var status db.AssignmentStatus
	switch decision {
	case DecisionApprove:
		status = db.AssignmentApproved
	case DecisionReject:
		status = db.AssignmentRejected
	default:
		return nil, fmt.Errorf("unknown decision %q", decision)
	}

	a, err := store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if !authz.CanDecideAssignment(actor, a.SubstituteTeamID) {
		return nil, fmt.Errorf("user %s may not decide for team %s: %w", actor.UserID, a.SubstituteTeamID, db.ErrForbidden)
	}
	now := time.Now()
	passed, err := captainDeadlinePassed(ctx, store, actor, a.TeamID, now)
	if err != nil {
		return nil, err
	}
	if passed {
		return nil, fmt.Errorf("deadline for team %s has passed: %w", a.TeamID, db.ErrForbidden)
	}

	decided, err := store.DecideAssignment(ctx, assignmentID, status, actor.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to decide assignment: %w", err)
	}
	if !decided {
		return nil, fmt.Errorf("assignment %s: %w", assignmentID, db.ErrAlreadyDecided)
	}

	a, err = store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload assignment: %w", err)
	}

	logger.Info("Substitute assignment decided",
		zap.String("assignment_id", assignmentID),
		zap.String("status", string(a.Status)),
		zap.String("decided_by", actor.UserID))
	return a, nil
}

// ArchiveAssignment archives a single assignment. Administrator or board
// member only.
func ArchiveAssignment(ctx context.Context, store db.Store, logger *zap.Logger, actor model.Actor, assignmentID string) error {
	if !authz.CanArchive(actor) {
		return fmt.Errorf("user %s may not archive assignments: %w", actor.UserID, db.ErrForbidden)
	}
	if err := store.SetAssignmentArchived(ctx, assignmentID); err != nil {
		return fmt.Errorf("failed to archive assignment: %w", err)
	}
	logger.Info("Substitute assignment archived", zap.String("assignment_id", assignmentID))
	return nil
}

// DeleteArchivedAssignment permanently deletes an assignment. Administrator
// only; intended for already-archived rows. The deletion is logged for
// audit since there is no soft-delete fallback.
func DeleteArchivedAssignment(ctx context.Context, store db.Store, logger *zap.Logger, actor model.Actor, assignmentID string) error {
	if !authz.CanHardDelete(actor) {
		return fmt.Errorf("user %s may not hard-delete assignments: %w", actor.UserID, db.ErrForbidden)
	}

	a, err := store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to load assignment: %w", err)
	}
	if err := store.DeleteAssignment(ctx, assignmentID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	logger.Info("Substitute assignment permanently deleted",
		zap.String("assignment_id", a.ID),
		zap.String("team", a.TeamName),
		zap.String("status", string(a.Status)),
		zap.Bool("was_archived", a.Archived),
		zap.String("deleted_by", actor.UserID))
	return nil
}

// ListByTeam lists a team's assignments.
func ListByTeam(ctx context.Context, store db.Store, teamID string, includeArchived bool) ([]db.SubstituteAssignment, error) {
	assignments, err := store.ListAssignments(ctx, db.AssignmentFilter{TeamID: teamID, IncludeArchived: includeArchived})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	return assignments, nil
}

// ListApproved lists approved assignments club-wide.
func ListApproved(ctx context.Context, store db.Store, includeArchived bool) ([]db.SubstituteAssignment, error) {
	assignments, err := store.ListAssignments(ctx, db.AssignmentFilter{Status: db.AssignmentApproved, IncludeArchived: includeArchived})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch approved assignments: %w", err)
	}
	return assignments, nil
}

// ListArchived lists archived assignments club-wide.
func ListArchived(ctx context.Context, store db.Store) ([]db.SubstituteAssignment, error) {
	assignments, err := store.ListAssignments(ctx, db.AssignmentFilter{ArchivedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch archived assignments: %w", err)
	}
	return assignments, nil
}
