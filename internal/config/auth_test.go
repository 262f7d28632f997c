package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		pepper   string
		wantCost int
		wantErr  string
	}{
		{name: "defaults", wantCost: 12},
		{name: "explicit cost", cost: "10", wantCost: 10},
		{name: "with pepper", cost: "11", pepper: "extra-secret", wantCost: 11},
		{name: "cost below range", cost: "9", wantErr: "out of range"},
		{name: "cost above range", cost: "15", wantErr: "out of range"},
		{name: "cost not a number", cost: "high", wantErr: "invalid BCRYPT_COST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("hunter22-but-longer")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22-but-longer", hash)

	assert.True(t, cfg.VerifyPassword("hunter22-but-longer", hash))
	assert.False(t, cfg.VerifyPassword("hunter22-but-wrong", hash))
}

func TestPasswordPepperBindsHash(t *testing.T) {
	seasoned := &PasswordConfig{BcryptCost: 10, Pepper: "global-secret"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := seasoned.HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, seasoned.VerifyPassword("correct horse battery", hash))
	// Without the pepper the same password must not verify.
	assert.False(t, plain.VerifyPassword("correct horse battery", hash))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	assert.False(t, cfg.VerifyPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, cfg.VerifyPassword("anything", ""))
}

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		hours     string
		wantHours int
		wantErr   string
	}{
		{name: "defaults", secret: "signing-secret", wantHours: 24},
		{name: "explicit hours", secret: "signing-secret", hours: "72", wantHours: 72},
		{name: "missing secret", wantErr: "JWT_SECRET is required"},
		{name: "zero hours", secret: "signing-secret", hours: "0", wantErr: "must be positive"},
		{name: "negative hours", secret: "signing-secret", hours: "-5", wantErr: "must be positive"},
		{name: "hours not a number", secret: "signing-secret", hours: "soon", wantErr: "invalid JWT_EXPIRATION_HOURS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.hours)

			cfg, err := NewJWTConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.secret, cfg.Secret)
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
		})
	}
}

func TestJWTConfig_TokenTTL(t *testing.T) {
	cfg := &JWTConfig{Secret: "s", ExpirationHours: 48}

	assert.Equal(t, 48*time.Hour, cfg.TokenTTL())
}
