package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RoleService handles role management operations
type RoleService struct {
	roleRepo  identity.RoleRepository
	userRepo  identity.UserRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(
	roleRepo identity.RoleRepository,
	userRepo identity.UserRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		roleRepo:  roleRepo,
		userRepo:  userRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns every role with the number of its users
func (s *RoleService) List(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list roles", zap.Error(err))
		return nil, err
	}
	out := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		resp, err := s.toResponse(ctx, &roles[i])
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// GetByID returns a role
func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.response(ctx, role)
}

// Create creates a new role
func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	s.logger.Info("Creating new role", zap.String("code", code))

	exists, err := s.roleRepo.ExistsByCode(ctx, code)
	if err != nil {
		s.logger.Error("Failed to check role code existence", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("ALREADY_EXISTS", "Role %s already exists.", code)
	}

	role, err := identity.NewRole(code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := role.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if len(req.Permissions) > 0 {
		if err := role.SetPermissions(req.Permissions); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("Role created",
		zap.String("role_id", role.ID.String()),
		zap.Strings("permissions", role.PermissionCodes()))
	return s.response(ctx, role)
}

// Update changes name and description of a role
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := role.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.save(ctx, role); err != nil {
		return nil, err
	}
	return s.response(ctx, role)
}

// SetPermissions replaces the permissions of a role
func (s *RoleService) SetPermissions(ctx context.Context, id uuid.UUID, codes []string) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := role.SetPermissions(codes); err != nil {
		return nil, err
	}
	if err := s.save(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("Role permissions updated",
		zap.String("role_id", role.ID.String()),
		zap.Strings("permissions", role.PermissionCodes()))
	return s.response(ctx, role)
}

// Delete removes a role that is neither a system role nor assigned to users
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !role.CanDelete() {
		return shared.NewDomainError("CANNOT_DELETE_SYSTEM_ROLE", "System roles cannot be deleted")
	}

	count, err := s.roleRepo.CountUsersWithRole(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainErrorf("ROLE_IN_USE", "Role is assigned to %d users", count)
	}

	if err := s.roleRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete role", zap.Error(err))
		return err
	}
	s.logger.Info("Role deleted", zap.String("role_id", id.String()), zap.String("code", role.Code))
	return nil
}

// AssignUserRoles replaces the roles of a user
func (s *RoleService) AssignUserRoles(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureRolesExist(ctx, roleIDs); err != nil {
		return nil, err
	}
	if err := user.SetRoles(roleIDs); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user roles", zap.Error(err))
		return nil, err
	}
	if err := shared.PublishAndClear(ctx, s.publisher, user); err != nil {
		return nil, err
	}

	s.logger.Info("User roles assigned",
		zap.String("user_id", user.ID.String()),
		zap.Int("role_count", len(user.RoleIDs)))
	resp := toUserResponse(user)
	return &resp, nil
}

// Permissions returns the permission catalogue
func (s *RoleService) Permissions() []string {
	return identity.AllPermissionCodes()
}

func (s *RoleService) ensureRolesExist(ctx context.Context, roleIDs []uuid.UUID) error {
	if len(roleIDs) == 0 {
		return nil
	}
	unique := make(map[uuid.UUID]bool, len(roleIDs))
	for _, id := range roleIDs {
		unique[id] = true
	}
	ids := make([]uuid.UUID, 0, len(unique))
	for id := range unique {
		ids = append(ids, id)
	}
	roles, err := s.roleRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(roles) != len(ids) {
		return shared.NotFound("Role")
	}
	return nil
}

func (s *RoleService) save(ctx context.Context, role *identity.Role) error {
	if err := s.roleRepo.Save(ctx, role); err != nil {
		if !errors.Is(err, shared.ErrAlreadyExists) {
			s.logger.Error("Failed to save role", zap.Error(err))
		}
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, role)
}

func (s *RoleService) response(ctx context.Context, role *identity.Role) (*RoleResponse, error) {
	resp, err := s.toResponse(ctx, role)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *RoleService) toResponse(ctx context.Context, role *identity.Role) (RoleResponse, error) {
	count, err := s.roleRepo.CountUsersWithRole(ctx, role.ID)
	if err != nil {
		return RoleResponse{}, err
	}
	return RoleResponse{
		ID:           role.ID,
		Code:         role.Code,
		Name:         role.Name,
		Description:  role.Description,
		IsSystemRole: role.IsSystemRole,
		Permissions:  role.PermissionCodes(),
		UserCount:    count,
		CreatedAt:    role.CreatedAt,
		UpdatedAt:    role.UpdatedAt,
	}, nil
}
