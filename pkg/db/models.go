package db

import "time"

// AvailabilityStatus is a player's recorded availability for a fixture.
type AvailabilityStatus string

const (
	StatusAvailable        AvailabilityStatus = "available"
	StatusUnavailable      AvailabilityStatus = "unavailable"
	StatusSubstituteNeeded AvailabilityStatus = "substitute_needed"
)

// Valid reports whether s is one of the three known statuses.
func (s AvailabilityStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusSubstituteNeeded:
		return true
	}
	return false
}

// AssignmentStatus is the workflow state of a substitute assignment.
type AssignmentStatus string

const (
	AssignmentPending  AssignmentStatus = "pending"
	AssignmentApproved AssignmentStatus = "approved"
	AssignmentRejected AssignmentStatus = "rejected"
)

// AvailabilityRecord represents a database availability record,
// keyed by (fixture_id, player_id).
type AvailabilityRecord struct {
	FixtureID string
	PlayerID  string
	Status    AvailabilityStatus
	Notes     string
	UpdatedAt time.Time
}

// SubstituteRequest represents a database substitute request record.
// TeamID is the stable key; TeamName is denormalized for display only.
// FixtureID is empty for requests not tied to a specific fixture.
type SubstituteRequest struct {
	ID              string
	TeamID          string
	TeamName        string
	PlayerID        string
	FixtureID       string
	NeedsSubstitute bool
	Notes           string
	ValidUntil      time.Time
	Archived        bool
	MarkedBy        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SubstituteAssignment represents a database substitute assignment record.
// Assignments are linked to requests by TeamID, not a direct foreign key:
// one request may accumulate several candidate assignments while the club
// searches for the right replacement.
type SubstituteAssignment struct {
	ID                 string
	TeamID             string
	TeamName           string
	SubstituteTeamID   string
	SubstituteTeamName string
	SubstitutePlayerID string
	RequestedBy        string
	ApprovedBy         string
	Status             AssignmentStatus
	Notes              string
	Archived           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RequestFilter narrows ListRequests results.
type RequestFilter struct {
	TeamID          string
	IncludeArchived bool
}

// AssignmentFilter narrows ListAssignments results.
type AssignmentFilter struct {
	TeamID          string
	Status          AssignmentStatus
	IncludeArchived bool
	ArchivedOnly    bool
}
