package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mhofmann-club/aufstellung/pkg/db"
)

const assignmentColumns = `id, team_id, team_name, substitute_team_id, substitute_team_name,
	substitute_player_id, requested_by, approved_by, status, notes, archived, created_at, updated_at`

// InsertAssignment inserts a new substitute assignment record.
func (d *DB) InsertAssignment(ctx context.Context, a *db.SubstituteAssignment) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO substitute_assignments (`+assignmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, a.ID, a.TeamID, a.TeamName, a.SubstituteTeamID, a.SubstituteTeamName,
		a.SubstitutePlayerID, a.RequestedBy, a.ApprovedBy, a.Status, a.Notes,
		a.Archived, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return wrapQueryErr("failed to insert substitute assignment", err)
	}
	return nil
}

// GetAssignment retrieves a substitute assignment by id.
func (d *DB) GetAssignment(ctx context.Context, id string) (*db.SubstituteAssignment, error) {
	row := d.q.QueryRow(ctx, `
		SELECT `+assignmentColumns+`
		FROM substitute_assignments
		WHERE id = $1
	`, id)
	a, err := scanAssignment(row)
	if err != nil {
		return nil, wrapQueryErr("failed to get substitute assignment", err)
	}
	return a, nil
}

// DecideAssignment moves a pending assignment to a terminal status. The
// WHERE status = 'pending' guard serializes concurrent deciders: the second
// caller changes zero rows and is reported via ok = false.
func (d *DB) DecideAssignment(ctx context.Context, id string, status db.AssignmentStatus, approvedBy string, at time.Time) (bool, error) {
	tag, err := d.q.Exec(ctx, `
		UPDATE substitute_assignments
		SET status = $2, approved_by = $3, updated_at = $4
		WHERE id = $1 AND status = 'pending'
	`, id, status, approvedBy, at)
	if err != nil {
		return false, wrapQueryErr("failed to decide substitute assignment", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetAssignmentArchived flags an assignment as archived.
func (d *DB) SetAssignmentArchived(ctx context.Context, id string) error {
	tag, err := d.q.Exec(ctx, `
		UPDATE substitute_assignments SET archived = TRUE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return wrapQueryErr("failed to archive substitute assignment", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("substitute assignment %s: %w", id, db.ErrNotFound)
	}
	return nil
}

// ArchiveAssignmentsByTeam archives all of a team's assignments, returning
// the number of rows changed. Used by the request-archival cascade.
func (d *DB) ArchiveAssignmentsByTeam(ctx context.Context, teamID string) (int, error) {
	tag, err := d.q.Exec(ctx, `
		UPDATE substitute_assignments
		SET archived = TRUE, updated_at = NOW()
		WHERE team_id = $1 AND NOT archived
	`, teamID)
	if err != nil {
		return 0, wrapQueryErr("failed to archive team assignments", err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteAssignment removes an assignment permanently.
func (d *DB) DeleteAssignment(ctx context.Context, id string) error {
	tag, err := d.q.Exec(ctx, `DELETE FROM substitute_assignments WHERE id = $1`, id)
	if err != nil {
		return wrapQueryErr("failed to delete substitute assignment", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("substitute assignment %s: %w", id, db.ErrNotFound)
	}
	return nil
}

// ListAssignments retrieves assignments matching the filter, newest first.
func (d *DB) ListAssignments(ctx context.Context, filter db.AssignmentFilter) ([]db.SubstituteAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM substitute_assignments WHERE 1=1`
	var args []any
	if filter.TeamID != "" {
		args = append(args, filter.TeamID)
		query += fmt.Sprintf(" AND team_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ArchivedOnly {
		query += " AND archived"
	} else if !filter.IncludeArchived {
		query += " AND NOT archived"
	}
	query += " ORDER BY created_at DESC"

	rows, err := d.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryErr("failed to query substitute assignments", err)
	}
	defer rows.Close()

	var assignments []db.SubstituteAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan substitute assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("error iterating substitute assignments", err)
	}
	return assignments, nil
}

// CountActiveAssignments counts the team's non-archived assignments.
func (d *DB) CountActiveAssignments(ctx context.Context, teamID string) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM substitute_assignments WHERE team_id = $1 AND NOT archived
	`, teamID).Scan(&count)
	if err != nil {
		return 0, wrapQueryErr("failed to count active assignments", err)
	}
	return count, nil
}

// CountApprovedAssignments counts the team's non-archived approved assignments.
func (d *DB) CountApprovedAssignments(ctx context.Context, teamID string) (int, error) {
	var count int
	err := d.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM substitute_assignments
		WHERE team_id = $1 AND status = 'approved' AND NOT archived
	`, teamID).Scan(&count)
	if err != nil {
		return 0, wrapQueryErr("failed to count approved assignments", err)
	}
	return count, nil
}

func scanAssignment(row rowScanner) (*db.SubstituteAssignment, error) {
	var a db.SubstituteAssignment
	err := row.Scan(&a.ID, &a.TeamID, &a.TeamName, &a.SubstituteTeamID, &a.SubstituteTeamName,
		&a.SubstitutePlayerID, &a.RequestedBy, &a.ApprovedBy, &a.Status, &a.Notes,
		&a.Archived, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
