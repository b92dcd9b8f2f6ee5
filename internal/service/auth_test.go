package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronin/shop_api/internal/models"
	"github.com/avoronin/shop_api/internal/repo"
	"github.com/avoronin/shop_api/pkg/tokens"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:          newTestRepo(t),
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestAuthService_CreateAccessToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	accessExp := time.Now().Add(15 * time.Minute).UTC()

	token, err := svc.CreateAccessToken("admin", "7", accessExp)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.AccessClaimsFromToken(token, svc.JWTSecret)
	require.NoError(t, err)

	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "7", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, accessExp, claims.ExpiresAt.Time, time.Second)
}

func TestAuthService_CreateRefreshToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	refreshExp := time.Now().Add(24 * time.Hour).UTC()

	token, jti, err := svc.CreateRefreshToken("7", refreshExp)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, jti)

	claims, err := tokens.RefreshClaimsFromToken(token, svc.RefreshSecret)
	require.NoError(t, err)

	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, jti, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, refreshExp, claims.ExpiresAt.Time, time.Second)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret"},
		{name: "empty password", username: "user", password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)

	_, err = svc.Register(ctx, "alice", "other")
	require.ErrorIs(t, err, repo.ErrUserAlreadyExist)

	res, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	assert.False(t, res.IsAdmin)

	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatUint(uint64(user.ID), 10), claims.Subject)

	_, err = svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, repo.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret")
	require.ErrorIs(t, err, repo.ErrInvalidCredentials)
}

func TestAuthService_RefreshRotatesTokens(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob", "secret")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "bob", "secret")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// the presented token is revoked on rotation
	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, repo.ErrInvalidCredentials)
}

func TestAuthService_RotationLeavesExactlyOneUsableToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "dave", "secret")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "dave", "secret")
	require.NoError(t, err)

	first, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)

	// the replacement is saved in the same transaction as the revocation,
	// so the rotated token immediately works for the next refresh
	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, second.RefreshToken)

	var usable int64
	require.NoError(t, svc.Repo.DB.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", user.ID, false).Count(&usable).Error)
	assert.Equal(t, int64(1), usable)
}

func TestAuthService_LogoutRevokesRefreshToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol", "secret")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "carol", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, repo.ErrInvalidCredentials)
}
