// Package authz is the single source of truth for workflow permissions.
// Every predicate is pure: it consumes the actor's role set and captaincy
// relation and never touches storage. The coordination services call these
// before any write and return ErrForbidden uniformly on failure.
package authz

import (
	"time"

	"github.com/mhofmann-club/aufstellung/pkg/core/model"
)

// CanEditAvailabilityOrRequest reports whether the actor may record
// availability or edit a substitute request for the given team.
// Administrators and board members may always edit. A captain of the team
// may edit only while the deadline has not passed (date-only comparison);
// once the matchday is over, only the club office can still correct records.
// A zero deadline means no deadline applies.
func CanEditAvailabilityOrRequest(actor model.Actor, teamID string, deadline time.Time, now time.Time) bool {
	if actor.IsClubOfficial() {
		return true
	}
	if !actor.IsCaptainOf(teamID) {
		return false
	}
	if deadline.IsZero() {
		return true
	}
	return !dateOnly(deadline).Before(dateOnly(now))
}

// CanProposeAssignment reports whether the actor may propose a borrowed
// substitute for the requesting team.
func CanProposeAssignment(actor model.Actor, requestingTeamID string) bool {
	return actor.IsClubOfficial() || actor.IsCaptainOf(requestingTeamID)
}

// CanDecideAssignment reports whether the actor may approve or reject an
// assignment. Captaincy of the source team is required, not of the
// requesting team: it is the source team's player being committed, so the
// lending side must consent. Club officials may always decide.
func CanDecideAssignment(actor model.Actor, sourceTeamID string) bool {
	return actor.IsClubOfficial() || actor.IsCaptainOf(sourceTeamID)
}

// CanArchive reports whether the actor may archive requests or assignments.
func CanArchive(actor model.Actor) bool {
	return actor.IsClubOfficial()
}

// CanHardDelete reports whether the actor may permanently delete an
// assignment. Stricter than archival: administrators only.
func CanHardDelete(actor model.Actor) bool {
	return actor.HasRole(model.RoleAdministrator)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
