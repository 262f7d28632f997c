package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegisterRequest is the payload for HR user registration. Registration
// creates the company first, then the user that belongs to it.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`

	CompanyName     string `json:"company_name" validate:"required,min=1,max=200"`
	CompanySize     string `json:"company_size,omitempty"`
	CompanyWebsite  string `json:"company_website,omitempty" validate:"omitempty,url"`
	CompanyLinkedIn string `json:"company_linkedin,omitempty" validate:"omitempty,url"`
	CompanyLocation string `json:"company_location,omitempty"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful register or login.
type AuthResponse struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	CompanyID uuid.UUID `json:"company_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// User is an HR user account. PasswordHash never serializes.
type User struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"company_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Company is the tenant boundary: candidates, analyses and activity are all
// scoped to a company.
type Company struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Size        string    `json:"size,omitempty"`
	Website     string    `json:"website,omitempty"`
	LinkedInURL string    `json:"linkedin_url,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
