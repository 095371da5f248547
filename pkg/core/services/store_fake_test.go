package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mhofmann-club/aufstellung/pkg/db"
	"github.com/mhofmann-club/aufstellung/pkg/roster"
)

// fakeStore is an in-memory db.Store. A single mutex serializes top-level
// operations, matching the row-guard semantics the postgres store gets from
// its transactions; Transact clones state and restores it when fn fails so
// rollback behavior is observable in tests.
type fakeStore struct {
	mu   sync.Mutex
	inTx bool

	availability map[string]*db.AvailabilityRecord // fixtureID|playerID
	requests     map[string]*db.SubstituteRequest
	assignments  map[string]*db.SubstituteAssignment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		availability: make(map[string]*db.AvailabilityRecord),
		requests:     make(map[string]*db.SubstituteRequest),
		assignments:  make(map[string]*db.SubstituteAssignment),
	}
}

func availKey(fixtureID, playerID string) string {
	return fixtureID + "|" + playerID
}

func (s *fakeStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.inTx = true
	for k, v := range s.availability {
		rec := *v
		c.availability[k] = &rec
	}
	for k, v := range s.requests {
		req := *v
		c.requests[k] = &req
	}
	for k, v := range s.assignments {
		a := *v
		c.assignments[k] = &a
	}
	return c
}

func (s *fakeStore) Transact(ctx context.Context, fn func(db.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.clone()
	if err := fn(tx); err != nil {
		return err
	}
	s.availability = tx.availability
	s.requests = tx.requests
	s.assignments = tx.assignments
	return nil
}

func (s *fakeStore) UpsertAvailability(ctx context.Context, rec *db.AvailabilityRecord) error {
	defer s.lock()()
	r := *rec
	s.availability[availKey(rec.FixtureID, rec.PlayerID)] = &r
	return nil
}

func (s *fakeStore) GetAvailability(ctx context.Context, fixtureID string) ([]db.AvailabilityRecord, error) {
	defer s.lock()()
	var records []db.AvailabilityRecord
	for _, rec := range s.availability {
		if rec.FixtureID == fixtureID {
			records = append(records, *rec)
		}
	}
	return records, nil
}

func (s *fakeStore) InsertRequest(ctx context.Context, req *db.SubstituteRequest) error {
	defer s.lock()()
	r := *req
	s.requests[req.ID] = &r
	return nil
}

func (s *fakeStore) UpdateRequest(ctx context.Context, req *db.SubstituteRequest) error {
	defer s.lock()()
	if _, ok := s.requests[req.ID]; !ok {
		return fmt.Errorf("request %s: %w", req.ID, db.ErrNotFound)
	}
	r := *req
	s.requests[req.ID] = &r
	return nil
}

func (s *fakeStore) GetRequest(ctx context.Context, id string) (*db.SubstituteRequest, error) {
	defer s.lock()()
	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", id, db.ErrNotFound)
	}
	r := *req
	return &r, nil
}

func (s *fakeStore) FindOpenRequest(ctx context.Context, teamID, playerID, fixtureID string) (*db.SubstituteRequest, error) {
	defer s.lock()()
	for _, req := range s.requests {
		if req.TeamID == teamID && req.PlayerID == playerID && req.FixtureID == fixtureID && !req.Archived {
			r := *req
			return &r, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) DeleteRequest(ctx context.Context, id string) error {
	defer s.lock()()
	delete(s.requests, id)
	return nil
}

func (s *fakeStore) SetRequestArchived(ctx context.Context, id string) error {
	defer s.lock()()
	req, ok := s.requests[id]
	if !ok {
		return fmt.Errorf("request %s: %w", id, db.ErrNotFound)
	}
	req.Archived = true
	return nil
}

func (s *fakeStore) ListRequests(ctx context.Context, filter db.RequestFilter) ([]db.SubstituteRequest, error) {
	defer s.lock()()
	var requests []db.SubstituteRequest
	for _, req := range s.requests {
		if filter.TeamID != "" && req.TeamID != filter.TeamID {
			continue
		}
		if !filter.IncludeArchived && req.Archived {
			continue
		}
		requests = append(requests, *req)
	}
	return requests, nil
}

func (s *fakeStore) EarliestOpenDeadline(ctx context.Context, teamID string) (time.Time, bool, error) {
	defer s.lock()()
	var earliest time.Time
	found := false
	for _, req := range s.requests {
		if req.TeamID != teamID || req.Archived {
			continue
		}
		if !found || req.ValidUntil.Before(earliest) {
			earliest = req.ValidUntil
			found = true
		}
	}
	return earliest, found, nil
}

func (s *fakeStore) InsertAssignment(ctx context.Context, a *db.SubstituteAssignment) error {
	defer s.lock()()
	c := *a
	s.assignments[a.ID] = &c
	return nil
}

func (s *fakeStore) GetAssignment(ctx context.Context, id string) (*db.SubstituteAssignment, error) {
	defer s.lock()()
	a, ok := s.assignments[id]
	if !ok {
		return nil, fmt.Errorf("assignment %s: %w", id, db.ErrNotFound)
	}
	c := *a
	return &c, nil
}

func (s *fakeStore) DecideAssignment(ctx context.Context, id string, status db.AssignmentStatus, approvedBy string, at time.Time) (bool, error) {
	defer s.lock()()
	a, ok := s.assignments[id]
	if !ok || a.Status != db.AssignmentPending {
		return false, nil
	}
	a.Status = status
	a.ApprovedBy = approvedBy
	a.UpdatedAt = at
	return true, nil
}

func (s *fakeStore) SetAssignmentArchived(ctx context.Context, id string) error {
	defer s.lock()()
	a, ok := s.assignments[id]
	if !ok {
		return fmt.Errorf("assignment %s: %w", id, db.ErrNotFound)
	}
	a.Archived = true
	return nil
}

func (s *fakeStore) ArchiveAssignmentsByTeam(ctx context.Context, teamID string) (int, error) {
	defer s.lock()()
	count := 0
	for _, a := range s.assignments {
		if a.TeamID == teamID && !a.Archived {
			a.Archived = true
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) DeleteAssignment(ctx context.Context, id string) error {
	defer s.lock()()
	if _, ok := s.assignments[id]; !ok {
		return fmt.Errorf("assignment %s: %w", id, db.ErrNotFound)
	}
	delete(s.assignments, id)
	return nil
}

func (s *fakeStore) ListAssignments(ctx context.Context, filter db.AssignmentFilter) ([]db.SubstituteAssignment, error) {
	defer s.lock()()
	var assignments []db.SubstituteAssignment
	for _, a := range s.assignments {
		if filter.TeamID != "" && a.TeamID != filter.TeamID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.ArchivedOnly && !a.Archived {
			continue
		}
		if !filter.ArchivedOnly && !filter.IncludeArchived && a.Archived {
			continue
		}
		assignments = append(assignments, *a)
	}
	return assignments, nil
}

func (s *fakeStore) CountActiveAssignments(ctx context.Context, teamID string) (int, error) {
	defer s.lock()()
	count := 0
	for _, a := range s.assignments {
		if a.TeamID == teamID && !a.Archived {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) CountApprovedAssignments(ctx context.Context, teamID string) (int, error) {
	defer s.lock()()
	count := 0
	for _, a := range s.assignments {
		if a.TeamID == teamID && a.Status == db.AssignmentApproved && !a.Archived {
			count++
		}
	}
	return count, nil
}

// fakeRosters is an in-memory Rosters.
type fakeRosters struct {
	teams    map[string]*roster.Team
	members  map[string][]string // teamID -> playerIDs
	fixtures map[string]*roster.Fixture
}

func (f *fakeRosters) TeamByID(ctx context.Context, id string) (*roster.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, fmt.Errorf("team %s: %w", id, db.ErrNotFound)
	}
	return t, nil
}

func (f *fakeRosters) TeamsOfPlayer(ctx context.Context, playerID string) ([]roster.Team, error) {
	var teams []roster.Team
	for teamID, players := range f.members {
		for _, p := range players {
			if p == playerID {
				teams = append(teams, *f.teams[teamID])
			}
		}
	}
	return teams, nil
}

func (f *fakeRosters) IsMember(ctx context.Context, teamID, playerID string) (bool, error) {
	for _, p := range f.members[teamID] {
		if p == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRosters) Fixture(ctx context.Context, id string) (*roster.Fixture, error) {
	fx, ok := f.fixtures[id]
	if !ok {
		return nil, fmt.Errorf("fixture %s: %w", id, db.ErrNotFound)
	}
	return fx, nil
}
