package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/daniel/talent-ranker/internal/types"
)

// CreateCompany inserts a company and returns the stored row.
func (db *DB) CreateCompany(ctx context.Context, company *types.Company) (*types.Company, error) {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO companies (name, size, website, linkedin_url, location)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		company.Name, company.Size, company.Website, company.LinkedInURL, company.Location,
	).Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

// GetCompany retrieves a company by ID. Returns nil when not found.
func (db *DB) GetCompany(ctx context.Context, id uuid.UUID) (*types.Company, error) {
	var company types.Company
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, COALESCE(size, ''), COALESCE(website, ''),
		        COALESCE(linkedin_url, ''), COALESCE(location, ''), created_at
		 FROM companies WHERE id = $1`,
		id,
	).Scan(&company.ID, &company.Name, &company.Size, &company.Website,
		&company.LinkedInURL, &company.Location, &company.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company, nil
}
