package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mhofmann-club/aufstellung/pkg/db"
)

const requestColumns = `id, team_id, team_name, player_id, fixture_id,
	needs_substitute, notes, valid_until, archived, marked_by, created_at, updated_at`

// InsertRequest inserts a new substitute request record.
func (d *DB) InsertRequest(ctx context.Context, req *db.SubstituteRequest) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO substitute_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, req.ID, req.TeamID, req.TeamName, req.PlayerID, req.FixtureID,
		req.NeedsSubstitute, req.Notes, req.ValidUntil, req.Archived,
		req.MarkedBy, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return wrapQueryErr("failed to insert substitute request", err)
	}
	return nil
}

// UpdateRequest overwrites the mutable fields of an existing request.
func (d *DB) UpdateRequest(ctx context.Context, req *db.SubstituteRequest) error {
	tag, err := d.q.Exec(ctx, `
		UPDATE substitute_requests
		SET needs_substitute = $2, notes = $3, valid_until = $4, marked_by = $5, updated_at = $6
		WHERE id = $1
	`, req.ID, req.NeedsSubstitute, req.Notes, req.ValidUntil, req.MarkedBy, req.UpdatedAt)
	if err != nil {
		return wrapQueryErr("failed to update substitute request", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("substitute request %s: %w", req.ID, db.ErrNotFound)
	}
	return nil
}

// GetRequest retrieves a substitute request by id.
func (d *DB) GetRequest(ctx context.Context, id string) (*db.SubstituteRequest, error) {
	row := d.q.QueryRow(ctx, `
		SELECT `+requestColumns+`
		FROM substitute_requests
		WHERE id = $1
	`, id)
	req, err := scanRequest(row)
	if err != nil {
		return nil, wrapQueryErr("failed to get substitute request", err)
	}
	return req, nil
}

// FindOpenRequest returns the non-archived request for the natural key, or
// nil if none exists.
func (d *DB) FindOpenRequest(ctx context.Context, teamID, playerID, fixtureID string) (*db.SubstituteRequest, error) {
	rows, err := d.q.Query(ctx, `
		SELECT `+requestColumns+`
		FROM substitute_requests
		WHERE team_id = $1 AND player_id = $2 AND fixture_id = $3 AND NOT archived
		LIMIT 1
	`, teamID, playerID, fixtureID)
	if err != nil {
		return nil, wrapQueryErr("failed to find open request", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	req, err := scanRequest(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan substitute request: %w", err)
	}
	return req, nil
}

// DeleteRequest removes a request permanently.
func (d *DB) DeleteRequest(ctx context.Context, id string) error {
	_, err := d.q.Exec(ctx, `DELETE FROM substitute_requests WHERE id = $1`, id)
	if err != nil {
		return wrapQueryErr("failed to delete substitute request", err)
	}
	return nil
}

// SetRequestArchived flags a request as archived.
func (d *DB) SetRequestArchived(ctx context.Context, id string) error {
	tag, err := d.q.Exec(ctx, `
		UPDATE substitute_requests SET archived = TRUE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return wrapQueryErr("failed to archive substitute request", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("substitute request %s: %w", id, db.ErrNotFound)
	}
	return nil
}

// ListRequests retrieves requests matching the filter, newest first.
func (d *DB) ListRequests(ctx context.Context, filter db.RequestFilter) ([]db.SubstituteRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM substitute_requests WHERE 1=1`
	var args []any
	if filter.TeamID != "" {
		args = append(args, filter.TeamID)
		query += fmt.Sprintf(" AND team_id = $%d", len(args))
	}
	if !filter.IncludeArchived {
		query += " AND NOT archived"
	}
	query += " ORDER BY created_at DESC"

	rows, err := d.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryErr("failed to query substitute requests", err)
	}
	defer rows.Close()

	var requests []db.SubstituteRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan substitute request: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("error iterating substitute requests", err)
	}
	return requests, nil
}

// EarliestOpenDeadline returns the earliest valid-until date among the
// team's non-archived requests.
func (d *DB) EarliestOpenDeadline(ctx context.Context, teamID string) (time.Time, bool, error) {
	var deadline *time.Time
	err := d.q.QueryRow(ctx, `
		SELECT MIN(valid_until)
		FROM substitute_requests
		WHERE team_id = $1 AND NOT archived
	`, teamID).Scan(&deadline)
	if err != nil {
		return time.Time{}, false, wrapQueryErr("failed to query earliest deadline", err)
	}
	if deadline == nil {
		return time.Time{}, false, nil
	}
	return *deadline, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*db.SubstituteRequest, error) {
	var req db.SubstituteRequest
	err := row.Scan(&req.ID, &req.TeamID, &req.TeamName, &req.PlayerID, &req.FixtureID,
		&req.NeedsSubstitute, &req.Notes, &req.ValidUntil, &req.Archived,
		&req.MarkedBy, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
