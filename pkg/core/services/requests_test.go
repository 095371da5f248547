package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhofmann-club/aufstellung/pkg/db"
)

func TestUpsertRequestCreatesAndOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	rosters := newTestRosters()
	deadline := time.Now().AddDate(0, 0, 7)

	created, err := UpsertRequest(ctx, store, rosters, testLogger, captain1, "team-1", "p1", "", true, "knee", deadline)
	require.NoError(t, err)
	assert.Equal(t, "Herren I", created.TeamName)
	assert.False(t, created.Archived)

	// Same natural key: the existing request is overwritten, not duplicated.
	updated, err := UpsertRequest(ctx, store, rosters, testLogger, captain1, "team-1", "p1", "", true, "knee, week 2", deadline)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	requests, err := ListOpenRequests(ctx, store, db.RequestFilter{TeamID: "team-1"})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "knee, week 2", requests[0].Notes)
}

func TestUpsertRequestTakesDeadlineFromFixture(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	rosters := newTestRosters()

	// Caller-supplied deadline is ignored when a fixture is referenced.
	req, err := UpsertRequest(ctx, store, rosters, testLogger, captain1, "team-1", "p1", "fx1", true, "", time.Now().AddDate(1, 0, 0))
	require.NoError(t, err)
	fixture := rosters.fixtures["fx1"]
	assert.Equal(t, fixture.Date, req.ValidUntil)
}

func TestUpsertRequestDeadlineGating(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	rosters := newTestRosters()
	yesterday := time.Now().AddDate(0, 0, -1)

	// Captains cannot backdate.
	_, err := UpsertRequest(ctx, store, rosters, testLogger, captain1, "team-1", "p1", "", true, "", yesterday)
	assert.ErrorIs(t, err, db.ErrInvalidDeadline)

	// Administrators and board members may.
	_, err = UpsertRequest(ctx, store, rosters, testLogger, admin, "team-1", "p1", "", true, "", yesterday)
	assert.NoError(t, err)
	_, err = UpsertRequest(ctx, store, rosters, testLogger, board, "team-1", "p1b", "", true, "", yesterday)
	assert.NoError(t, err)
}

func TestUpsertRequestAuthorization(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	rosters := newTestRosters()
	deadline := time.Now().AddDate(0, 0, 7)

	_, err := UpsertRequest(ctx, store, rosters, testLogger, captain2, "team-1", "p1", "", true, "", deadline)
	assert.ErrorIs(t, err, db.ErrForbidden)

	_, err = UpsertRequest(ctx, store, rosters, testLogger, plain, "team-1", "p1", "", true, "", deadline)
	assert.ErrorIs(t, err, db.ErrForbidden)
}

func TestUpsertRequestRejectsNonRosterPlayer(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	rosters := newTestRosters()

	_, err := UpsertRequest(ctx, store, rosters, testLogger, admin, "team-1", "p3", "", true, "", time.Now().AddDate(0, 0, 7))
	assert.ErrorIs(t, err, db.ErrNotRosterMember)
}

func TestDeleteRequestBlockedByActiveAssignments(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	rosters := newTestRosters()

	req, err := UpsertRequest(ctx, store, rosters, testLogger, captain1, "team-1", "p1", "", true, "", time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	_, err = ProposeAssignment(ctx, store, rosters, testLogger, captain1, "team-1", "team-2", "p2", "")
	require.NoError(t, err)

	err = DeleteRequest(ctx, store, testLogger, captain1, req.ID)
	assert.ErrorIs(t, err, db.ErrHasActiveAssignments)

	// Still present.
	requests, err := ListOpenRequests(ctx, store, db.RequestFilter{TeamID: "team-1"})
	require.NoError(t, err)
	assert.Len(t, requests, 1)
}

func TestDeleteRequestWithoutAssignments(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	rosters := newTestRosters()

	req, err := UpsertRequest(ctx, store, rosters, testLogger, captain1, "team-1", "p1", "", true, "", time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)

	err = DeleteRequest(ctx, store, testLogger, captain1, req.ID)
	require.NoError(t, err)

	requests, err := ListOpenRequests(ctx, store, db.RequestFilter{TeamID: "team-1", IncludeArchived: true})
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestArchiveRequestCascadesToAssignments(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	rosters := newTestRosters()

	req, err := UpsertRequest(ctx, store, rosters, testLogger, captain1, "team-1", "p1", "", true, "", time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	a1, err := ProposeAssignment(ctx, store, rosters, testLogger, captain1, "team-1", "team-2", "p2", "")
	require.NoError(t, err)
	a2, err := ProposeAssignment(ctx, store, rosters, testLogger, captain1, "team-1", "team-3", "p3", "")
	require.NoError(t, err)

	archived, err := ArchiveRequest(ctx, store, testLogger, board, req.ID)
	require.NoError(t, err)
	assert.True(t, archived.Archived)

	for _, id := range []string{a1.ID, a2.ID} {
		a, err := store.GetAssignment(ctx, id)
		require.NoError(t, err)
		assert.True(t, a.Archived, "assignment %s must be archived by the cascade", id)
	}
}

func TestArchiveRequestRequiresClubOfficial(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	rosters := newTestRosters()

	req, err := UpsertRequest(ctx, store, rosters, testLogger, captain1, "team-1", "p1", "", true, "", time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)

	_, err = ArchiveRequest(ctx, store, testLogger, captain1, req.ID)
	assert.ErrorIs(t, err, db.ErrForbidden)
}
