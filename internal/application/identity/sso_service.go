package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultStateTTL bounds the time between authorize and callback
const DefaultStateTTL = 10 * time.Minute

// SSO error messages shown to the user
const (
	msgStateMismatch = "Please, try again."
	msgUnknownUser   = "You do not have permission to access this app. Please, contact administrator."
	msgInactiveUser  = "Permission denied, please contact administrator."
)

// SSOService runs the single sign-on authorization code flow
type SSOService struct {
	users    identity.UserRepository
	auth     *AuthService
	provider SSOProvider
	states   StateStore
	profiles ProfileSyncer
	stateTTL time.Duration
	logger   *zap.Logger
}

// NewSSOService creates the SSO service. profiles may be nil.
func NewSSOService(
	users identity.UserRepository,
	authService *AuthService,
	provider SSOProvider,
	states StateStore,
	profiles ProfileSyncer,
	stateTTL time.Duration,
	logger *zap.Logger,
) *SSOService {
	if stateTTL <= 0 {
		stateTTL = DefaultStateTTL
	}
	return &SSOService{
		users:    users,
		auth:     authService,
		provider: provider,
		states:   states,
		profiles: profiles,
		stateTTL: stateTTL,
		logger:   logger,
	}
}

// Authorize starts a sign in and returns the provider URL
func (s *SSOService) Authorize(ctx context.Context, next string) (*AuthorizeResult, error) {
	state := uuid.NewString()
	data := SSOState{Next: SafeNext(next), CreatedAt: time.Now().UTC()}
	if err := s.states.Put(ctx, state, data, s.stateTTL); err != nil {
		s.logger.Error("Failed to store SSO state", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start sign in")
	}
	return &AuthorizeResult{AuthorizationURL: s.provider.AuthCodeURL(state), State: state}, nil
}

// Callback completes the sign in started by Authorize
func (s *SSOService) Callback(ctx context.Context, code, state string) (*SSOLoginResult, error) {
	if state == "" || code == "" {
		return nil, shared.NewDomainError("SSO_STATE_MISMATCH", msgStateMismatch)
	}
	data, err := s.states.Take(ctx, state)
	if err != nil {
		s.logger.Error("Failed to read SSO state", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to complete sign in")
	}
	if data == nil {
		s.logger.Warn("Unknown SSO state")
		return nil, shared.NewDomainError("SSO_STATE_MISMATCH", msgStateMismatch)
	}

	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("SSO code exchange failed", zap.Error(err))
		return nil, shared.NewDomainError("SSO_EXCHANGE_FAILED", msgStateMismatch)
	}

	username := identity.NormalizeUsername(profile.Username)
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("SSO sign in of unknown user", zap.String("username", username))
			return nil, shared.NewDomainError("FORBIDDEN", msgUnknownUser)
		}
		return nil, err
	}
	if !user.CanLogin() {
		s.logger.Warn("SSO sign in of inactive user", zap.String("username", username))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", msgInactiveUser)
	}

	user.SyncProfile(profile.FirstName, profile.LastName)
	if s.profiles != nil {
		err := s.profiles.SyncProfile(ctx, user.ID, profile.FirstName, profile.LastName, profile.Photo)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Failed to sync employee profile",
				zap.String("user_id", user.ID.String()),
				zap.Error(err))
		}
	}

	result, err := s.auth.IssueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &SSOLoginResult{LoginResult: *result, Next: data.Next}, nil
}

// LogoutURL returns the provider logout URL
func (s *SSOService) LogoutURL() string {
	return s.provider.LogoutURL()
}

// SafeNext keeps only local redirect targets
func SafeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}
