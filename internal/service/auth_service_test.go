package service

import (
	"context"
	"testing"

	"github.com/meusuper/crm-backend/internal/config"
	"github.com/meusuper/crm-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, store.User) {
	t.Helper()
	st := store.NewStore()

	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := store.User{
		Email:    "ana@example.com",
		Password: string(password),
		Name:     "Ana Souza",
		Role:     "admin",
	}
	require.NoError(t, st.CreateUser(&user))

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     1,
		RefreshExpiry: 1,
	}
	return NewAuthService(cfg, st), user
}

func TestLogin(t *testing.T) {
	svc, user := newAuthFixture(t)

	got, accessToken, refreshToken, err := svc.Login(context.Background(), user.Email, "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// The access token round-trips to the user id.
	token, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	userID, err := svc.GetUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, user := newAuthFixture(t)

	_, _, _, err := svc.Login(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, user := newAuthFixture(t)

	_, _, refreshToken, err := svc.Login(context.Background(), user.Email, "password123")
	require.NoError(t, err)

	accessToken, newRefreshToken, err := svc.RefreshToken(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEqual(t, refreshToken, newRefreshToken)

	// The old refresh token is single-use.
	_, _, err = svc.RefreshToken(context.Background(), refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	svc, user := newAuthFixture(t)

	_, _, refreshToken, err := svc.Login(context.Background(), user.Email, "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), refreshToken))

	_, _, err = svc.RefreshToken(context.Background(), refreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
