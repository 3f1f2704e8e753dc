package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

func TestUserDeactivatedHandler(t *testing.T) {
	ctx := context.Background()
	blacklist := auth.NewInMemoryTokenBlacklist()
	handler := NewUserDeactivatedHandler(createAuthService(new(MockUserRepository), new(MockRoleRepository), blacklist), zap.NewNop())
	assert.Equal(t, []string{identity.EventTypeUserStatusChanged}, handler.EventTypes())

	user := createTestUser(t, "jan@example.com")
	issuedAt := time.Now().Add(-time.Minute)

	require.NoError(t, user.Deactivate())
	require.NoError(t, handler.Handle(ctx, user.GetDomainEvents()[0]))

	revoked, err := blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), issuedAt)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestUserDeactivatedHandler_IgnoresActivation(t *testing.T) {
	ctx := context.Background()
	blacklist := auth.NewInMemoryTokenBlacklist()
	handler := NewUserDeactivatedHandler(createAuthService(new(MockUserRepository), new(MockRoleRepository), blacklist), zap.NewNop())

	user := createTestUser(t, "jan@example.com")
	require.NoError(t, user.Deactivate())
	user.ClearDomainEvents()
	require.NoError(t, user.Activate())
	require.NoError(t, handler.Handle(ctx, user.GetDomainEvents()[0]))

	revoked, err := blacklist.IsUserTokenInvalidated(ctx, user.ID.String(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, revoked)
}
