package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRoleRepository implements RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// Save creates or updates a role and replaces its permissions
func (r *GormRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.RoleModelFromDomain(role)).Error; err != nil {
			return writeError(err, "Role")
		}

		// Delete existing permissions
		if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}
		if len(role.Permissions) == 0 {
			return nil
		}

		perms := make([]models.RolePermissionModel, len(role.Permissions))
		for i, p := range role.Permissions {
			perms[i].FromDomain(role.ID, p)
		}
		return tx.Create(&perms).Error
	})
}

// Delete deletes a role with its permissions
func (r *GormRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Delete role permissions
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}

		// Delete role
		result := tx.Delete(&models.RoleModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NotFound("Role")
		}
		return nil
	})
}

// FindByID finds a role by ID
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Role")
	}
	roles, err := r.withPermissions(ctx, []models.RoleModel{model})
	if err != nil {
		return nil, err
	}
	return &roles[0], nil
}

// FindByCode finds a role by code
func (r *GormRoleRepository) FindByCode(ctx context.Context, code string) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).
		Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&model).Error; err != nil {
		return nil, findError(err, "Role")
	}
	roles, err := r.withPermissions(ctx, []models.RoleModel{model})
	if err != nil {
		return nil, err
	}
	return &roles[0], nil
}

// FindByIDs finds multiple roles by IDs
func (r *GormRoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.Role, error) {
	if len(ids) == 0 {
		return []identity.Role{}, nil
	}
	var rows []models.RoleModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withPermissions(ctx, rows)
}

// FindAll returns every role ordered by code
func (r *GormRoleRepository) FindAll(ctx context.Context) ([]identity.Role, error) {
	var rows []models.RoleModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withPermissions(ctx, rows)
}

// ExistsByCode checks if a role code is taken
func (r *GormRoleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RoleModel{}).
		Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountUsersWithRole counts how many users have this role
func (r *GormRoleRepository) CountUsersWithRole(ctx context.Context, roleID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserRoleModel{}).
		Where("role_id = ?", roleID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// withPermissions converts the models and loads their permissions in one query
func (r *GormRoleRepository) withPermissions(ctx context.Context, rows []models.RoleModel) ([]identity.Role, error) {
	roles := make([]identity.Role, len(rows))
	if len(rows) == 0 {
		return roles, nil
	}
	ids := make([]uuid.UUID, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	for i := range rows {
		roles[i] = *rows[i].ToDomain()
		ids[i] = rows[i].ID
		index[rows[i].ID] = i
	}

	var perms []models.RolePermissionModel
	if err := r.db.WithContext(ctx).
		Where("role_id IN ?", ids).
		Order("code ASC").
		Find(&perms).Error; err != nil {
		return nil, err
	}
	for i := range perms {
		role := &roles[index[perms[i].RoleID]]
		role.Permissions = append(role.Permissions, perms[i].ToDomain())
	}
	return roles, nil
}

var _ identity.RoleRepository = (*GormRoleRepository)(nil)
