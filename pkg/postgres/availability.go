package postgres

import (
	"context"
	"fmt"

	"github.com/mhofmann-club/aufstellung/pkg/db"
)

// UpsertAvailability inserts or overwrites the availability record for the
// record's (fixture_id, player_id) key.
func (d *DB) UpsertAvailability(ctx context.Context, rec *db.AvailabilityRecord) error {
	_, err := d.q.Exec(ctx, `
		INSERT INTO availability (fixture_id, player_id, status, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (fixture_id, player_id)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
	`, rec.FixtureID, rec.PlayerID, rec.Status, rec.Notes, rec.UpdatedAt)
	if err != nil {
		return wrapQueryErr("failed to upsert availability", err)
	}
	return nil
}

// GetAvailability retrieves all availability records for a fixture.
func (d *DB) GetAvailability(ctx context.Context, fixtureID string) ([]db.AvailabilityRecord, error) {
	rows, err := d.q.Query(ctx, `
		SELECT fixture_id, player_id, status, notes, updated_at
		FROM availability
		WHERE fixture_id = $1
		ORDER BY player_id
	`, fixtureID)
	if err != nil {
		return nil, wrapQueryErr("failed to query availability", err)
	}
	defer rows.Close()

	var records []db.AvailabilityRecord
	for rows.Next() {
		var rec db.AvailabilityRecord
		if err := rows.Scan(&rec.FixtureID, &rec.PlayerID, &rec.Status, &rec.Notes, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan availability record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("error iterating availability", err)
	}
	return records, nil
}
