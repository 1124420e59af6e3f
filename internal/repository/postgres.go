package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/iso6709/internal/models"
)

// EnsureSchema creates the point_locations table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS point_locations (
			id SERIAL PRIMARY KEY,
			raw TEXT NOT NULL,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			altitude DOUBLE PRECISION,
			crs TEXT,
			canonical TEXT,
			normalization_error TEXT,
			normalization_attempts INTEGER NOT NULL DEFAULT 0,
			normalized_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create point_locations table: %w", err)
	}

	return nil
}

// FetchPending retrieves records whose raw text has not been normalized yet.
// Records with a blank raw value or with too many failed attempts are skipped.
// The results are ordered by creation date and limited to the specified count.
func (r *Repository) FetchPending(ctx context.Context, limit int) ([]models.Record, error) {
	var records []models.Record
	query := `
		SELECT id, raw
		FROM point_locations
		WHERE
			canonical IS NULL
			AND normalization_attempts < $1
			AND btrim(raw) <> ''
		ORDER BY created_at ASC, id ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, MaxNormalizationAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending point locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record models.Record
		if errScan := rows.Scan(&record.ID, &record.Raw); errScan != nil {
			return nil, fmt.Errorf("failed to scan pending point location: %w", errScan)
		}
		r.log.DebugContext(ctx, "A pending point location has been received.", "ID", record.ID, "raw", record.Raw)
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return records, nil
}

// SaveNormalized stores the parsed values and the canonical text of a record
// and clears its normalization error.
func (r *Repository) SaveNormalized(ctx context.Context, recordID int, normalized models.Normalized) error {
	query := `
		UPDATE point_locations
		SET
			latitude = $1,
			longitude = $2,
			altitude = $3,
			crs = NULLIF($4, ''),
			canonical = $5,
			normalization_error = NULL,
			normalized_at = now()
		WHERE
			id = $6;
	`

	_, err := r.db.Exec(ctx, query,
		normalized.Latitude, normalized.Longitude, normalized.Altitude, normalized.CRS, normalized.Canonical, recordID)
	if err != nil {
		return fmt.Errorf("failed to save normalized point location: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the normalization attempt count of a record
// and stores the error message of the last attempt.
func (r *Repository) IncrementFailureCount(ctx context.Context, recordID int, errMsg string) error {
	query := `
		UPDATE point_locations
		SET
			normalization_attempts = normalization_attempts + 1,
			normalization_error = $1
		WHERE id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, recordID)
	if err != nil {
		return fmt.Errorf("failed to update normalization error and number of attempts: %w", err)
	}

	return nil
}
