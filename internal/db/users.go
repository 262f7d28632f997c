package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/daniel/talent-ranker/internal/types"
)

// CreateUser inserts an HR user and returns the stored row.
func (db *DB) CreateUser(ctx context.Context, user *types.User) (*types.User, error) {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (company_id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		user.CompanyID, user.Name, strings.ToLower(user.Email), user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns nil when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	var user types.User
	err := db.pool.QueryRow(ctx,
		`SELECT id, company_id, name, email, password_hash, created_at
		 FROM users WHERE email = $1`,
		strings.ToLower(email),
	).Scan(&user.ID, &user.CompanyID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID. Returns nil when not found.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	var user types.User
	err := db.pool.QueryRow(ctx,
		`SELECT id, company_id, name, email, password_hash, created_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.CompanyID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
