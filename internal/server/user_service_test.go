package server

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/talent-ranker/internal/config"
	"github.com/daniel/talent-ranker/internal/types"
)

func newTestUserService(t *testing.T) (*UserService, *fakeDB) {
	t.Helper()
	t.Setenv("BCRYPT_COST", "10")
	passwordConfig, err := config.NewPasswordConfig()
	require.NoError(t, err)

	store := newFakeDB()
	return NewUserService(store, passwordConfig), store
}

func registerRequest() *types.RegisterRequest {
	return &types.RegisterRequest{
		Name:        "Dana HR",
		Email:       "dana@flowboard.io",
		Password:    "s3cret-password",
		CompanyName: "Flowboard",
	}
}

func TestUserService_Register(t *testing.T) {
	service, store := newTestUserService(t)

	user, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "dana@flowboard.io", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "s3cret-password", user.PasswordHash)

	company, err := store.GetCompany(context.Background(), user.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, company, "registration must create the company")
	assert.Equal(t, "Flowboard", company.Name)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	service, _ := newTestUserService(t)

	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = service.Register(context.Background(), registerRequest())
	var dup *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "dana@flowboard.io", dup.Email)
}

func TestUserService_Register_StoreFailure(t *testing.T) {
	service, store := newTestUserService(t)
	store.failWith("CreateCompany", fmt.Errorf("connection refused"))

	_, err := service.Register(context.Background(), registerRequest())
	assert.Error(t, err)
}

func TestUserService_Login(t *testing.T) {
	service, _ := newTestUserService(t)
	registered, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	user, err := service.Login(context.Background(), &types.LoginRequest{
		Email:    "dana@flowboard.io",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, registered.CompanyID, user.CompanyID)
}

func TestUserService_Login_Failures(t *testing.T) {
	service, _ := newTestUserService(t)
	_, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "dana@flowboard.io", password: "wrong"},
		{name: "unknown email", email: "nobody@flowboard.io", password: "s3cret-password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), &types.LoginRequest{
				Email: tt.email, Password: tt.password,
			})
			var invalid *ErrInvalidCredentials
			assert.ErrorAs(t, err, &invalid)
		})
	}
}
