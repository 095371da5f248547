package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mhofmann-club/aufstellung/pkg/db"
)

// Store is the PostgreSQL-backed Directory.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an existing connection pool. The pool is shared with the
// workflow store so the CLI opens a single connection set.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// TeamByID returns the team with the given id.
func (s *Store) TeamByID(ctx context.Context, id string) (*Team, error) {
	var t Team
	err := s.pool.QueryRow(ctx, `
		SELECT id, name FROM teams WHERE id = $1
	`, id).Scan(&t.ID, &t.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("team %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query team: %w", db.ErrStoreUnavailable)
	}
	return &t, nil
}

// TeamByName resolves a team display name.
func (s *Store) TeamByName(ctx context.Context, name string) (*Team, error) {
	var t Team
	err := s.pool.QueryRow(ctx, `
		SELECT id, name FROM teams WHERE name = $1
	`, name).Scan(&t.ID, &t.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("team %q: %w", name, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query team by name: %w", db.ErrStoreUnavailable)
	}
	return &t, nil
}

// Members returns the team's current roster, ordered by name.
func (s *Store) Members(ctx context.Context, teamID string) ([]Player, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.name
		FROM players p
		JOIN team_members tm ON tm.player_id = p.id
		WHERE tm.team_id = $1
		ORDER BY p.name
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", db.ErrStoreUnavailable)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan roster member: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster: %w", db.ErrStoreUnavailable)
	}
	return players, nil
}

// IsMember reports whether the player is on the team's current roster.
func (s *Store) IsMember(ctx context.Context, teamID, playerID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM team_members WHERE team_id = $1 AND player_id = $2
		)
	`, teamID, playerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check roster membership: %w", db.ErrStoreUnavailable)
	}
	return exists, nil
}

// TeamsOfPlayer returns every team the player belongs to.
func (s *Store) TeamsOfPlayer(ctx context.Context, playerID string) ([]Team, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.id, t.name
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.player_id = $1
		ORDER BY t.name
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query player teams: %w", db.ErrStoreUnavailable)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", db.ErrStoreUnavailable)
	}
	return teams, nil
}

// Fixture returns the fixture with the given id.
func (s *Store) Fixture(ctx context.Context, id string) (*Fixture, error) {
	var f Fixture
	err := s.pool.QueryRow(ctx, `
		SELECT f.id, f.home_team_id, ht.name, f.away_team_id, at.name, f.match_date, f.kickoff
		FROM fixtures f
		JOIN teams ht ON ht.id = f.home_team_id
		JOIN teams at ON at.id = f.away_team_id
		WHERE f.id = $1
	`, id).Scan(&f.ID, &f.HomeTeamID, &f.HomeTeamName, &f.AwayTeamID, &f.AwayTeamName, &f.Date, &f.Kickoff)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("fixture %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query fixture: %w", db.ErrStoreUnavailable)
	}
	return &f, nil
}

// CaptainedTeams returns the team ids the player captains. Used by the
// identity layer when minting tokens, not by the services (the actor's
// captaincies arrive in the token claims).
func (s *Store) CaptainedTeams(ctx context.Context, playerID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT team_id FROM team_members WHERE player_id = $1 AND is_captain
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query captaincies: %w", db.ErrStoreUnavailable)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan captaincy: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating captaincies: %w", db.ErrStoreUnavailable)
	}
	return ids, nil
}
