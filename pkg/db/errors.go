package db

import "errors"

// Error taxonomy shared by the store and the coordination services.
// Callers classify with errors.Is; every layer wraps with fmt.Errorf("...: %w").
var (
	// ErrForbidden means the acting user lacks the role or captaincy the
	// operation requires. Never retried automatically.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidDeadline means a captain tried to set a valid-until date in
	// the past. Administrators and board members may backdate.
	ErrInvalidDeadline = errors.New("valid-until date is in the past")

	// ErrSameTeam means a team tried to borrow a substitute from itself.
	ErrSameTeam = errors.New("substitute team must differ from requesting team")

	// ErrNotRosterMember means the proposed substitute does not belong to
	// the source team's current roster.
	ErrNotRosterMember = errors.New("player is not a roster member of the team")

	// ErrNotAFixtureParticipant means the player's team is not one of the
	// fixture's two teams.
	ErrNotAFixtureParticipant = errors.New("player's team is not playing this fixture")

	// ErrAlreadyDecided means the assignment left the pending state before
	// this decision committed. The caller holds a stale view and should
	// refresh rather than retry.
	ErrAlreadyDecided = errors.New("assignment has already been decided")

	// ErrHasActiveAssignments means the request cannot be hard-deleted
	// while non-archived assignments exist for its team; archive instead.
	ErrHasActiveAssignments = errors.New("request has active assignments")

	// ErrNotFound means no record exists for the given id.
	ErrNotFound = errors.New("record not found")

	// ErrStoreUnavailable wraps infrastructure failures (connection loss,
	// timeouts). Safe to retry with backoff.
	ErrStoreUnavailable = errors.New("store unavailable")
)
