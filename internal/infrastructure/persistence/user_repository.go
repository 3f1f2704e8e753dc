package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Save creates or updates a user and replaces its role assignments
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.UserModelFromDomain(user)).Error; err != nil {
			return writeError(err, "User")
		}

		// Delete existing roles
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserRoleModel{}).Error; err != nil {
			return err
		}
		if len(user.RoleIDs) == 0 {
			return nil
		}

		now := time.Now()
		userRoles := make([]models.UserRoleModel, len(user.RoleIDs))
		for i, roleID := range user.RoleIDs {
			userRoles[i] = models.UserRoleModel{UserID: user.ID, RoleID: roleID, CreatedAt: now}
		}
		return tx.Create(&userRoles).Error
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "User")
	}
	return r.withRoles(ctx, &model)
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&model).Error; err != nil {
		return nil, findError(err, "User")
	}
	return r.withRoles(ctx, &model)
}

// ExistsByUsername checks if a username is taken
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByRoleID finds users having the role
func (r *GormUserRepository) FindByRoleID(ctx context.Context, roleID uuid.UUID) ([]identity.User, error) {
	var rows []models.UserModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role_id = ?", roleID).
		Order("users.username ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]identity.User, 0, len(rows))
	for i := range rows {
		user, err := r.withRoles(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

// Count returns the number of users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// withRoles converts the model and loads its role IDs
func (r *GormUserRepository) withRoles(ctx context.Context, model *models.UserModel) (*identity.User, error) {
	user := model.ToDomain()
	var roleIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.UserRoleModel{}).
		Where("user_id = ?", model.ID).
		Order("role_id ASC").
		Pluck("role_id", &roleIDs).Error; err != nil {
		return nil, err
	}
	user.RoleIDs = append(user.RoleIDs, roleIDs...)
	return user, nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
