package identity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/auth"
	"github.com/workify/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindByRoleID(ctx context.Context, roleID uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRoleRepository is a mock implementation of identity.RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByCode(ctx context.Context, code string) (*identity.Role, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.Role, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindAll(ctx context.Context) ([]identity.Role, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *MockRoleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleRepository) CountUsersWithRole(ctx context.Context, roleID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProfileSyncer records employee profile syncs
type MockProfileSyncer struct {
	mock.Mock
}

func (m *MockProfileSyncer) SyncProfile(ctx context.Context, userID uuid.UUID, firstName, lastName string, photo []byte) error {
	args := m.Called(ctx, userID, firstName, lastName, photo)
	return args.Error(0)
}

// fakeProvider returns a fixed profile for the code "good-code"
type fakeProvider struct {
	profile *SSOProfile
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://login.example.com/authorize?state=" + state
}

func (p *fakeProvider) Exchange(_ context.Context, code string) (*SSOProfile, error) {
	if code != "good-code" {
		return nil, errors.New("invalid_grant")
	}
	return p.profile, nil
}

func (p *fakeProvider) LogoutURL() string {
	return "https://login.example.com/logout"
}

// memoryStates is a StateStore for tests
type memoryStates struct {
	mu     sync.Mutex
	states map[string]SSOState
}

func newMemoryStates() *memoryStates {
	return &memoryStates{states: make(map[string]SSOState)}
}

func (s *memoryStates) Put(_ context.Context, state string, data SSOState, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = data
	return nil
}

func (s *memoryStates) Take(_ context.Context, state string) (*SSOState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.states[state]
	if !ok {
		return nil, nil
	}
	delete(s.states, state)
	return &data, nil
}

// recordingPublisher collects published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
}

func createAuthService(userRepo *MockUserRepository, roleRepo *MockRoleRepository, blacklist auth.TokenBlacklist) *AuthService {
	return NewAuthService(userRepo, roleRepo, testJWTService(), blacklist, zap.NewNop())
}

func createTestUser(t *testing.T, username string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, username, "Jan", "Kowalski")
	require.NoError(t, err)
	user.ClearDomainEvents()
	return user
}

func createTestRole(t *testing.T, code string, permissions ...string) *identity.Role {
	t.Helper()
	role, err := identity.NewRole(code, code+" role")
	require.NoError(t, err)
	if len(permissions) > 0 {
		require.NoError(t, role.SetPermissions(permissions))
	}
	role.ClearDomainEvents()
	return role
}
