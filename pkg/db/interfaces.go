package db

import (
	"context"
	"time"
)

// Store defines the persistence operations for the three workflow entities.
// The postgres package provides the production implementation; service tests
// use an in-memory fake. All writes go through the coordination services,
// which group multi-entity effects inside Transact.
type Store interface {
	// Transact runs fn against a transactional view of the store. Every
	// write fn performs is committed atomically, or rolled back if fn
	// returns an error.
	Transact(ctx context.Context, fn func(Store) error) error

	UpsertAvailability(ctx context.Context, rec *AvailabilityRecord) error
	GetAvailability(ctx context.Context, fixtureID string) ([]AvailabilityRecord, error)

	InsertRequest(ctx context.Context, req *SubstituteRequest) error
	UpdateRequest(ctx context.Context, req *SubstituteRequest) error
	// GetRequest returns ErrNotFound if no request has the given id.
	GetRequest(ctx context.Context, id string) (*SubstituteRequest, error)
	// FindOpenRequest returns the non-archived request matching the natural
	// key, or nil if none exists.
	FindOpenRequest(ctx context.Context, teamID, playerID, fixtureID string) (*SubstituteRequest, error)
	DeleteRequest(ctx context.Context, id string) error
	SetRequestArchived(ctx context.Context, id string) error
	ListRequests(ctx context.Context, filter RequestFilter) ([]SubstituteRequest, error)
	// EarliestOpenDeadline returns the earliest valid-until date among the
	// team's non-archived requests; ok is false when the team has none.
	EarliestOpenDeadline(ctx context.Context, teamID string) (deadline time.Time, ok bool, err error)

	InsertAssignment(ctx context.Context, a *SubstituteAssignment) error
	// GetAssignment returns ErrNotFound if no assignment has the given id.
	GetAssignment(ctx context.Context, id string) (*SubstituteAssignment, error)
	// DecideAssignment moves a pending assignment to the given terminal
	// status. It reports false, without error, when the assignment was no
	// longer pending; concurrent deciders are serialized on this check.
	DecideAssignment(ctx context.Context, id string, status AssignmentStatus, approvedBy string, at time.Time) (bool, error)
	SetAssignmentArchived(ctx context.Context, id string) error
	// ArchiveAssignmentsByTeam archives every assignment of the team and
	// returns how many rows changed.
	ArchiveAssignmentsByTeam(ctx context.Context, teamID string) (int, error)
	DeleteAssignment(ctx context.Context, id string) error
	ListAssignments(ctx context.Context, filter AssignmentFilter) ([]SubstituteAssignment, error)
	// CountActiveAssignments counts the team's non-archived assignments.
	CountActiveAssignments(ctx context.Context, teamID string) (int, error)
	// CountApprovedAssignments counts the team's non-archived approved
	// assignments.
	CountApprovedAssignments(ctx context.Context, teamID string) (int, error)
}
