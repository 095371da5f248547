package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhofmann-club/aufstellung/pkg/db"
)

// TestFullSubstituteWorkflow walks the whole coordination path: a captain
// flags a player, a board member proposes a borrowed replacement, the
// lending team's captain consents, and the club office closes the case.
func TestFullSubstituteWorkflow(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	rosters := newTestRosters()

	// Herren I's captain flags p1 for the upcoming fixture.
	_, err := SetAvailability(ctx, store, rosters, testLogger, captain1, "fx1", "p1", db.StatusSubstituteNeeded, "flu")
	require.NoError(t, err)

	requests, err := ListOpenRequests(ctx, store, db.RequestFilter{TeamID: "team-1"})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	request := requests[0]
	assert.Equal(t, "fx1", request.FixtureID)

	// A board member proposes borrowing p2 from Herren II.
	a, err := ProposeAssignment(ctx, store, rosters, testLogger, board, "team-1", "team-2", "p2", "")
	require.NoError(t, err)
	assert.Equal(t, db.AssignmentPending, a.Status)

	// Herren I's captain asked for the player and cannot also consent;
	// only the lending side (or the club office) may.
	_, err = Decide(ctx, store, testLogger, captain1, a.ID, DecisionApprove)
	require.ErrorIs(t, err, db.ErrForbidden)

	decided, err := Decide(ctx, store, testLogger, captain2, a.ID, DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, db.AssignmentApproved, decided.Status)
	assert.Equal(t, captain2.UserID, decided.ApprovedBy)

	// The board member closes the case; the assignment archives with it.
	archivedReq, err := ArchiveRequest(ctx, store, testLogger, board, request.ID)
	require.NoError(t, err)
	assert.True(t, archivedReq.Archived)

	finalAssignment, err := store.GetAssignment(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, finalAssignment.Archived)
	assert.Equal(t, db.AssignmentApproved, finalAssignment.Status)

	open, err := ListOpenRequests(ctx, store, db.RequestFilter{TeamID: "team-1"})
	require.NoError(t, err)
	assert.Empty(t, open)
}

// TestTransactRollsBackOnFailure asserts no partial state survives a failed
// multi-entity operation.
func TestTransactRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	err := store.Transact(ctx, func(tx db.Store) error {
		if err := tx.InsertRequest(ctx, &db.SubstituteRequest{ID: "r1", TeamID: "team-1", PlayerID: "p1"}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	requests, err := store.ListRequests(ctx, db.RequestFilter{})
	require.NoError(t, err)
	assert.Empty(t, requests)
}
