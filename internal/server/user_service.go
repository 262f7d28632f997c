package server

import (
	"context"
	"fmt"

	"github.com/daniel/talent-ranker/internal/config"
	"github.com/daniel/talent-ranker/internal/types"
)

// UserService handles registration and login. Registration is the tenant
// entry point: it creates the company first, then the HR user inside it.
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a UserService with the given dependencies.
func NewUserService(db DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// Register creates the company and its first HR user.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	existing, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	company, err := s.db.CreateCompany(ctx, &types.Company{
		Name:        req.CompanyName,
		Size:        req.CompanySize,
		Website:     req.CompanyWebsite,
		LinkedInURL: req.CompanyLinkedIn,
		Location:    req.CompanyLocation,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	user, err := s.db.CreateUser(ctx, &types.User{
		CompanyID:    company.ID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user by email and password. The error never reveals
// whether the email exists.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	user, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return user, nil
}
