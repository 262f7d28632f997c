package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/daniel/talent-ranker/internal/types"
)

// GetAnalysis retrieves a cached analysis by its natural key. Returns nil
// when no analysis exists for the triple.
func (db *DB) GetAnalysis(ctx context.Context, candidateID, companyID uuid.UUID, jdHash string) (*types.AnalysisRecord, error) {
	var record types.AnalysisRecord
	var details []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, company_id, jd_hash, details, created_at
		 FROM analyses
		 WHERE candidate_id = $1 AND company_id = $2 AND jd_hash = $3`,
		candidateID, companyID, jdHash,
	).Scan(&record.ID, &record.CandidateID, &record.CompanyID, &record.JDHash, &details, &record.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if err := json.Unmarshal(details, &record.Analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis details: %w", err)
	}
	return &record, nil
}

// InsertAnalysis persists an analysis record. The unique constraint on
// (candidate_id, company_id, jd_hash) makes the insert idempotent: when a
// concurrent writer already inserted the same key, the existing record is
// fetched and returned instead.
func (db *DB) InsertAnalysis(ctx context.Context, record *types.AnalysisRecord) (*types.AnalysisRecord, error) {
	details, err := json.Marshal(record.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis details: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`INSERT INTO analyses (id, candidate_id, company_id, jd_hash, summary, score, details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (candidate_id, company_id, jd_hash) DO NOTHING`,
		record.ID, record.CandidateID, record.CompanyID, record.JDHash,
		record.Analysis.Summary, record.Analysis.FitScore, details,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert analysis: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Lost the insert race; the earlier record wins.
		existing, err := db.GetAnalysis(ctx, record.CandidateID, record.CompanyID, record.JDHash)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("analysis insert conflicted but existing record not found")
		}
		return existing, nil
	}

	stored, err := db.GetAnalysis(ctx, record.CandidateID, record.CompanyID, record.JDHash)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// ListAnalyses returns all cached analyses for a candidate, newest first.
func (db *DB) ListAnalyses(ctx context.Context, candidateID, companyID uuid.UUID) ([]types.AnalysisRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, company_id, jd_hash, details, created_at
		 FROM analyses
		 WHERE candidate_id = $1 AND company_id = $2
		 ORDER BY created_at DESC`,
		candidateID, companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var out []types.AnalysisRecord
	for rows.Next() {
		var record types.AnalysisRecord
		var details []byte
		if err := rows.Scan(&record.ID, &record.CandidateID, &record.CompanyID,
			&record.JDHash, &details, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if err := json.Unmarshal(details, &record.Analysis); err != nil {
			return nil, fmt.Errorf("failed to decode analysis details: %w", err)
		}
		out = append(out, record)
	}
	return out, nil
}
