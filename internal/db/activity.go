package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/daniel/talent-ranker/internal/types"
)

// InsertActivity records an event in the company activity log. Details may
// be any JSON-marshalable value.
func (db *DB) InsertActivity(ctx context.Context, companyID, userID uuid.UUID, activityType string, details any) error {
	var detailsJSON []byte
	if details != nil {
		var err error
		detailsJSON, err = json.Marshal(details)
		if err != nil {
			return fmt.Errorf("failed to marshal activity details: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO activity_log (company_id, user_id, activity_type, details)
		 VALUES ($1, $2, $3, $4)`,
		companyID, userID, activityType, detailsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// ListRecentActivity returns a company's newest activity entries.
func (db *DB) ListRecentActivity(ctx context.Context, companyID uuid.UUID, limit int) ([]types.ActivityRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, company_id, user_id, activity_type, COALESCE(details, 'null'::jsonb), created_at
		 FROM activity_log WHERE company_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		companyID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var out []types.ActivityRecord
	for rows.Next() {
		var record types.ActivityRecord
		var details []byte
		if err := rows.Scan(&record.ID, &record.CompanyID, &record.UserID,
			&record.ActivityType, &details, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		record.Details = json.RawMessage(details)
		out = append(out, record)
	}
	return out, nil
}

// ListStatusLog returns a candidate's status history, newest first.
func (db *DB) ListStatusLog(ctx context.Context, candidateID uuid.UUID) ([]types.StatusChange, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, user_id, old_status, new_status, COALESCE(notes, ''), created_at
		 FROM status_log WHERE candidate_id = $1
		 ORDER BY created_at DESC`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list status log: %w", err)
	}
	defer rows.Close()

	var out []types.StatusChange
	for rows.Next() {
		var change types.StatusChange
		if err := rows.Scan(&change.ID, &change.CandidateID, &change.UserID,
			&change.OldStatus, &change.NewStatus, &change.Notes, &change.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status change: %w", err)
		}
		out = append(out, change)
	}
	return out, nil
}
