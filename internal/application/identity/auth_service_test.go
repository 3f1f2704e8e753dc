package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/auth"
)

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser(t, "admin@example.com")
	require.NoError(t, user.SetPassword("Password123"))
	role := createTestRole(t, "MANAGER", "client:read", "contract:read")
	user.RoleIDs = []uuid.UUID{role.ID}

	userRepo.On("FindByUsername", ctx, "admin@example.com").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)
	roleRepo.On("FindByIDs", ctx, user.RoleIDs).Return([]identity.Role{*role}, nil)

	authService := createAuthService(userRepo, roleRepo, nil)

	result, err := authService.Login(ctx, LoginInput{
		Username: "  Admin@Example.com ",
		Password: "Password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "admin@example.com", result.User.Username)
	assert.Equal(t, []string{"client:read", "contract:read"}, result.User.Permissions)
	assert.NotNil(t, user.LastLoginAt)

	claims, err := testJWTService().ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.HasPermission("client:read"))
	assert.False(t, claims.HasPermission("client:delete"))

	userRepo.AssertExpectations(t)
	roleRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser(t, "admin@example.com")
	require.NoError(t, user.SetPassword("Password123"))
	userRepo.On("FindByUsername", ctx, "admin@example.com").Return(user, nil)

	authService := createAuthService(userRepo, roleRepo, nil)

	result, err := authService.Login(ctx, LoginInput{Username: "admin@example.com", Password: "WrongPassword"})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_SSOAccountHasNoPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser(t, "jan@example.com")
	userRepo.On("FindByUsername", ctx, "jan@example.com").Return(user, nil)

	authService := createAuthService(userRepo, roleRepo, nil)

	_, err := authService.Login(ctx, LoginInput{Username: "jan@example.com", Password: ""})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	userRepo.On("FindByUsername", ctx, "nobody").Return(nil, shared.NotFound("User"))

	authService := createAuthService(userRepo, roleRepo, nil)

	_, err := authService.Login(ctx, LoginInput{Username: "nobody", Password: "Password123"})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser(t, "admin@example.com")
	require.NoError(t, user.SetPassword("Password123"))
	require.NoError(t, user.Deactivate())
	userRepo.On("FindByUsername", ctx, "admin@example.com").Return(user, nil)

	authService := createAuthService(userRepo, roleRepo, nil)

	_, err := authService.Login(ctx, LoginInput{Username: "admin@example.com", Password: "Password123"})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser(t, "jan@example.com")
	role := createTestRole(t, "MANAGER", "client:read")
	user.RoleIDs = []uuid.UUID{role.ID}

	pair, err := testJWTService().GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Username: user.Username})
	require.NoError(t, err)

	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	roleRepo.On("FindByIDs", ctx, user.RoleIDs).Return([]identity.Role{*role}, nil)

	authService := createAuthService(userRepo, roleRepo, auth.NewInMemoryTokenBlacklist())

	result, err := authService.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})

	require.NoError(t, err)
	claims, err := testJWTService().ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"client:read"}, claims.Permissions)
}

func TestAuthService_RefreshToken_InvalidToken(t *testing.T) {
	authService := createAuthService(new(MockUserRepository), new(MockRoleRepository), nil)

	_, err := authService.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: "not-a-token"})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	pair, err := testJWTService().GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New(), Username: "jan"})
	require.NoError(t, err)

	authService := createAuthService(new(MockUserRepository), new(MockRoleRepository), nil)

	_, err = authService.RefreshToken(context.Background(), RefreshTokenInput{RefreshToken: pair.AccessToken})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_RefreshToken_InactiveUser(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser(t, "jan@example.com")
	require.NoError(t, user.Deactivate())
	pair, err := testJWTService().GenerateTokenPair(auth.GenerateTokenInput{UserID: user.ID, Username: user.Username})
	require.NoError(t, err)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService := createAuthService(userRepo, new(MockRoleRepository), nil)

	_, err = authService.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
}

func TestAuthService_RefreshToken_RevokedAfterUserInvalidation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	blacklist := auth.NewInMemoryTokenBlacklist()

	pair, err := testJWTService().GenerateTokenPair(auth.GenerateTokenInput{UserID: userID, Username: "jan"})
	require.NoError(t, err)

	authService := createAuthService(new(MockUserRepository), new(MockRoleRepository), blacklist)
	require.NoError(t, authService.InvalidateUserTokens(ctx, userID))

	_, err = authService.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)

	user := createTestUser(t, "jan@example.com")
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService := createAuthService(userRepo, roleRepo, nil)

	info, err := authService.GetCurrentUser(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, "Jan Kowalski", info.DisplayName)
	assert.Empty(t, info.Permissions)
	roleRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	ctx := context.Background()
	blacklist := auth.NewInMemoryTokenBlacklist()
	authService := createAuthService(new(MockUserRepository), new(MockRoleRepository), blacklist)

	err := authService.Logout(ctx, LogoutInput{UserID: uuid.New(), TokenJTI: "jti-1", TokenTTL: time.Minute})

	require.NoError(t, err)
	revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}
