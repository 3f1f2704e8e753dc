package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/infrastructure/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
}

func newTestJWTService() *JWTService {
	return NewJWTService(testJWTConfig())
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID:      uuid.New(),
		Username:    "jan@example.com",
		RoleIDs:     []uuid.UUID{uuid.New(), uuid.New()},
		Permissions: []string{"client:read", "client:create", "employee:read"},
	}
}

func TestNewJWTService_UsesSecretForRefreshIfNotProvided(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret"})
	assert.Equal(t, []byte("test-secret"), svc.refreshSecret)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.UserID.String(), claims.Subject)
	assert.Equal(t, input.Username, claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, input.Permissions, claims.Permissions)
	assert.NotEmpty(t, claims.ID)

	roleIDs, err := claims.GetRoleUUIDs()
	require.NoError(t, err)
	assert.Equal(t, input.RoleIDs, roleIDs)

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
	assert.Empty(t, refresh.Permissions)
	assert.Equal(t, 0, refresh.RefreshCount)
}

func TestValidateAccessToken_Errors(t *testing.T) {
	input := newTestInput()

	t.Run("expired", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.AccessTokenExpiration = -time.Hour
		svc := NewJWTService(cfg)
		pair, err := svc.GenerateTokenPair(input)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := newTestJWTService().ValidateAccessToken("invalid-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("refresh token used as access token", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.RefreshSecret = cfg.Secret
		svc := NewJWTService(cfg)
		pair, err := svc.GenerateTokenPair(input)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
		_, err = svc.ValidateRefreshToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("different secret", func(t *testing.T) {
		pair, err := newTestJWTService().GenerateTokenPair(input)
		require.NoError(t, err)

		cfg := testJWTConfig()
		cfg.Secret = "different-secret-key-32-chars!!!"
		_, err = NewJWTService(cfg).ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("different issuer", func(t *testing.T) {
		pair, err := newTestJWTService().GenerateTokenPair(input)
		require.NoError(t, err)

		cfg := testJWTConfig()
		cfg.Issuer = "someone-else"
		_, err = NewJWTService(cfg).ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	updated := input
	updated.Permissions = []string{"project:read"}
	newPair, err := svc.RefreshTokenPair(pair.RefreshToken, updated)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

	claims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"project:read"}, claims.Permissions)

	refresh, err := svc.ValidateRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refresh.RefreshCount)

	t.Run("other user", func(t *testing.T) {
		other := input
		other.UserID = uuid.New()
		_, err := svc.RefreshTokenPair(pair.RefreshToken, other)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := svc.RefreshTokenPair("invalid-token", input)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshTokenPair_MaxRefreshExceeded(t *testing.T) {
	cfg := testJWTConfig()
	cfg.MaxRefreshCount = 2
	svc := NewJWTService(cfg)
	input := newTestInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		pair, err = svc.RefreshTokenPair(pair.RefreshToken, input)
		require.NoError(t, err)
	}

	_, err = svc.RefreshTokenPair(pair.RefreshToken, input)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestClaims_Permissions(t *testing.T) {
	claims := &Claims{Permissions: []string{"client:read", "client:create", "employee:read"}}

	assert.True(t, claims.HasPermission("client:read"))
	assert.False(t, claims.HasPermission("client:delete"))
	assert.True(t, claims.HasAnyPermission("client:delete", "client:create"))
	assert.False(t, claims.HasAnyPermission("client:delete", "budget:delete"))
	assert.True(t, claims.HasAllPermissions("client:read", "employee:read"))
	assert.False(t, claims.HasAllPermissions("client:read", "client:delete"))

	super := &Claims{Superuser: true}
	assert.True(t, super.HasPermission("audit:read"))
	assert.True(t, super.HasAllPermissions("client:delete", "role:update"))
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	pair, err := newTestJWTService().GenerateTokenPair(newTestInput())
	require.NoError(t, err)
	claims, err := newTestJWTService().ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.True(t, ttl > 14*time.Minute && ttl <= 15*time.Minute)
	assert.Equal(t, time.Duration(0), (&Claims{}).GetRemainingTTL())
}
