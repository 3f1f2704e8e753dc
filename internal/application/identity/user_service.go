package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService manages accounts that are not created through employees
type UserService struct {
	userRepo  identity.UserRepository
	roleRepo  identity.RoleRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateLocal creates a password account. Existing usernames are rejected.
func (s *UserService) CreateLocal(ctx context.Context, input CreateLocalUserInput) (*UserResponse, error) {
	username := identity.NormalizeUsername(input.Username)
	s.logger.Info("Creating local user", zap.String("username", username))

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("ALREADY_EXISTS", "User %s already exists.", username)
	}

	user, err := identity.NewUser(username, input.Email, input.FirstName, input.LastName)
	if err != nil {
		return nil, err
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}
	user.IsSuperuser = input.Superuser

	if len(input.RoleCodes) > 0 {
		roleIDs := make([]uuid.UUID, 0, len(input.RoleCodes))
		for _, code := range input.RoleCodes {
			role, err := s.roleRepo.FindByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			roleIDs = append(roleIDs, role.ID)
		}
		if err := user.SetRoles(roleIDs); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, err
	}
	if err := shared.PublishAndClear(ctx, s.publisher, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// GetByID returns a user
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ResetPassword sets a new password on a local account
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, password string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user password", zap.Error(err))
		return err
	}
	s.logger.Info("User password reset", zap.String("user_id", id.String()))
	return nil
}

// Count returns the number of users
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

func toUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
		RoleIDs:     user.RoleIDs,
		LastLoginAt: user.LastLoginAt,
	}
}
