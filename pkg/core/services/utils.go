package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mhofmann-club/aufstellung/pkg/core/model"
	"github.com/mhofmann-club/aufstellung/pkg/db"
)

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// captainDeadlinePassed reports whether a captain (not a club official) is
// blocked because the requesting team's earliest open request deadline lies
// in the past. The deadline gate applies uniformly to proposing and
// deciding, mirroring the edit gate on availability and requests.
func captainDeadlinePassed(ctx context.Context, store db.Store, actor model.Actor, teamID string, now time.Time) (bool, error) {
	if actor.IsClubOfficial() {
		return false, nil
	}
	deadline, ok, err := store.EarliestOpenDeadline(ctx, teamID)
	if err != nil {
		return false, fmt.Errorf("failed to look up team deadline: %w", err)
	}
	if !ok {
		return false, nil
	}
	return dateOnly(deadline).Before(dateOnly(now)), nil
}

// archiveRequestWithCascade archives a request and every assignment of its
// team. Must run inside a transaction; both the explicit ArchiveRequest
// operation and the availability-sync path use it so the cascade has exactly
// one implementation.
func archiveRequestWithCascade(ctx context.Context, store db.Store, logger *zap.Logger, requestID, teamID string) error {
	if err := store.SetRequestArchived(ctx, requestID); err != nil {
		return fmt.Errorf("failed to archive request: %w", err)
	}
	archived, err := store.ArchiveAssignmentsByTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to cascade archival to assignments: %w", err)
	}
	logger.Debug("Archived request with cascade",
		zap.String("request_id", requestID),
		zap.String("team_id", teamID),
		zap.Int("assignments_archived", archived))
	return nil
}
