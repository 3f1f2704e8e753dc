package employee

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/application/common"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EmployeeService handles employee use cases
type EmployeeService struct {
	employees employee.EmployeeRepository
	users     identity.UserRepository
	txScope   TransactionScope
	slugs     *shared.SlugGenerator
	storage   common.ObjectStorage
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(
	employees employee.EmployeeRepository,
	users identity.UserRepository,
	txScope TransactionScope,
	slugs *shared.SlugGenerator,
	storage common.ObjectStorage,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		users:     users,
		txScope:   txScope,
		slugs:     slugs,
		storage:   storage,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns a page of employees ordered by name
func (s *EmployeeService) List(ctx context.Context, viewer Viewer, query common.ListQuery) (*common.ListResult[EmployeeResponse], error) {
	filter := query.Filter()
	items, total, err := s.employees.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeResponse, len(items))
	for i := range items {
		out[i] = s.toResponse(ctx, viewer, &items[i])
	}
	result := common.NewListResult(out, total, filter)
	return &result, nil
}

// Autocomplete suggests active employees by name
func (s *EmployeeService) Autocomplete(ctx context.Context, q string) ([]common.AutocompleteItem, error) {
	items, err := s.employees.Autocomplete(ctx, q, common.AutocompleteLimit)
	if err != nil {
		return nil, err
	}
	out := make([]common.AutocompleteItem, len(items))
	for i := range items {
		out[i] = common.AutocompleteItem{ID: items[i].ID.String(), Text: items[i].FullName()}
	}
	return out, nil
}

// GetBySlug returns one employee
func (s *EmployeeService) GetBySlug(ctx context.Context, viewer Viewer, slug string) (*EmployeeResponse, error) {
	e, err := s.employees.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, viewer, e)
	return &resp, nil
}

// GetByUserID returns the employee of a user
func (s *EmployeeService) GetByUserID(ctx context.Context, userID uuid.UUID) (*EmployeeResponse, error) {
	e, err := s.employees.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, Viewer{UserID: userID}, e)
	return &resp, nil
}

// Create creates an employee together with the user it signs in as.
// The e-mail is the username.
func (s *EmployeeService) Create(ctx context.Context, actorID uuid.UUID, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	email := identity.NormalizeUsername(req.Email)
	taken, err := s.employees.ExistsByEmail(ctx, email, nil)
	if err != nil {
		return nil, err
	}
	if !taken {
		taken, err = s.users.ExistsByUsername(ctx, email)
		if err != nil {
			return nil, err
		}
	}
	if taken {
		return nil, shared.NewDomainErrorf("ALREADY_EXISTS", "Employee %s already exists.", email)
	}

	slug, err := s.slugs.Generate(ctx, employee.SlugSource(req.FirstName, req.LastName), s.employees.ExistsBySlug, employee.RestrictedSlugs...)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(email, email, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	if len(req.RoleIDs) > 0 {
		if err := user.SetRoles(req.RoleIDs); err != nil {
			return nil, err
		}
	}
	e, err := employee.NewEmployee(user.ID, req.FirstName, req.LastName, email, slug, req.TaxID, &actorID)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return repos.EmployeeRepo().Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, user, e); err != nil {
		return nil, err
	}

	s.logger.Info("Employee created",
		zap.String("employee_id", e.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("slug", e.Slug))

	resp := s.toResponse(ctx, Viewer{CanReadDetails: true}, e)
	return &resp, nil
}

// Update changes e-mail, slug and tax id. The user's e-mail follows.
func (s *EmployeeService) Update(ctx context.Context, actorID uuid.UUID, slug string, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	e, err := s.employees.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := e.EnsureActive(); err != nil {
		return nil, err
	}

	newSlug := shared.Slugify(req.Slug)
	if newSlug == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Slug cannot be empty.")
	}
	if newSlug != e.Slug && shared.IsReservedSlug(newSlug, employee.RestrictedSlugs...) {
		return nil, shared.NewDomainErrorf("INVALID_INPUT", "slug: %q is reserved", newSlug)
	}
	if newSlug != e.Slug {
		taken, err := s.employees.ExistsBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainErrorf("ALREADY_EXISTS", "Employee with slug %s already exists.", newSlug)
		}
	}
	email := identity.NormalizeUsername(req.Email)
	if email != e.Email {
		taken, err := s.employees.ExistsByEmail(ctx, email, &e.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainErrorf("ALREADY_EXISTS", "Employee %s already exists.", email)
		}
	}

	emailChanged := email != e.Email
	if err := e.UpdateProfile(email, newSlug, req.TaxID, &actorID); err != nil {
		return nil, err
	}

	var user *identity.User
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if emailChanged {
			user, err = repos.UserRepo().FindByID(ctx, e.UserID)
			if err != nil {
				return err
			}
			if err := user.ChangeEmail(email); err != nil {
				return err
			}
			if err := repos.UserRepo().Save(ctx, user); err != nil {
				return err
			}
		}
		return repos.EmployeeRepo().Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, user, e); err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, Viewer{CanReadDetails: true}, e)
	return &resp, nil
}

// Activate reactivates an employee and its user
func (s *EmployeeService) Activate(ctx context.Context, actorID uuid.UUID, slug string) (*EmployeeResponse, error) {
	return s.changeStatus(ctx, slug, true, &actorID)
}

// Deactivate deactivates an employee and blocks its user from signing in
func (s *EmployeeService) Deactivate(ctx context.Context, actorID uuid.UUID, slug string) (*EmployeeResponse, error) {
	return s.changeStatus(ctx, slug, false, &actorID)
}

func (s *EmployeeService) changeStatus(ctx context.Context, slug string, active bool, actor *uuid.UUID) (*EmployeeResponse, error) {
	e, err := s.employees.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if active {
		err = e.Activate(actor)
	} else {
		err = e.Deactivate(actor)
	}
	if err != nil {
		return nil, err
	}

	var user *identity.User
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		user, err = repos.UserRepo().FindByID(ctx, e.UserID)
		if err != nil {
			return err
		}
		if user.IsActive != active {
			if active {
				err = user.Activate()
			} else {
				err = user.Deactivate()
			}
			if err != nil {
				return err
			}
			if err := repos.UserRepo().Save(ctx, user); err != nil {
				return err
			}
		}
		return repos.EmployeeRepo().Save(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	if err := s.publish(ctx, user, e); err != nil {
		return nil, err
	}

	s.logger.Info("Employee status changed", zap.String("slug", e.Slug), zap.Bool("active", e.IsActive))
	resp := s.toResponse(ctx, Viewer{CanReadDetails: true}, e)
	return &resp, nil
}

// SyncProfile takes over names and photo from the identity provider after
// an SSO sign in. The avatar is only re-processed when the photo checksum changed.
func (s *EmployeeService) SyncProfile(ctx context.Context, userID uuid.UUID, firstName, lastName string, photo []byte) error {
	e, err := s.employees.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	changed, err := e.SyncName(firstName, lastName)
	if err != nil {
		return err
	}

	var previousAvatar string
	if e.AvatarChanged(photo) {
		avatar, err := ResizeAvatar(photo)
		if err != nil {
			s.logger.Warn("Skipping avatar update", zap.String("employee_id", e.ID.String()), zap.Error(err))
		} else {
			checksum := employee.AvatarChecksum(photo)
			key := fmt.Sprintf("avatars/%s/%s.jpg", e.ID, checksum)
			if err := s.storage.Upload(ctx, key, avatar, "image/jpeg"); err != nil {
				return err
			}
			previousAvatar = e.AvatarKey
			e.SetAvatar(key, checksum)
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := s.employees.Save(ctx, e); err != nil {
		return err
	}
	if err := shared.PublishAndClear(ctx, s.publisher, e); err != nil {
		return err
	}
	if previousAvatar != "" && previousAvatar != e.AvatarKey {
		if err := s.storage.DeleteObject(ctx, previousAvatar); err != nil {
			s.logger.Warn("Failed to delete previous avatar", zap.String("key", previousAvatar), zap.Error(err))
		}
	}
	return nil
}

func (s *EmployeeService) publish(ctx context.Context, user *identity.User, e *employee.Employee) error {
	if user != nil {
		if err := shared.PublishAndClear(ctx, s.publisher, user); err != nil {
			return err
		}
	}
	return shared.PublishAndClear(ctx, s.publisher, e)
}

func (s *EmployeeService) toResponse(ctx context.Context, viewer Viewer, e *employee.Employee) EmployeeResponse {
	resp := toEmployeeResponse(e, viewer.canSee(e))
	if e.AvatarKey != "" && s.storage != nil {
		url, _, err := s.storage.GenerateDownloadURL(ctx, e.AvatarKey, common.DefaultDownloadURLExpiry)
		if err != nil {
			s.logger.Warn("Failed to presign avatar", zap.String("key", e.AvatarKey), zap.Error(err))
		} else {
			resp.AvatarURL = url
		}
	}
	return resp
}
