package identity

import (
	"context"

	"github.com/google/uuid"
)

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// Save creates or updates a role together with its permissions
	Save(ctx context.Context, role *Role) error

	// Delete deletes a role
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a role by ID with permissions loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByCode finds a role by code
	FindByCode(ctx context.Context, code string) (*Role, error)

	// FindByIDs finds multiple roles by IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Role, error)

	// FindAll returns every role ordered by code
	FindAll(ctx context.Context) ([]Role, error)

	// ExistsByCode checks if a role code is taken
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// CountUsersWithRole returns the number of users having the role
	CountUsersWithRole(ctx context.Context, roleID uuid.UUID) (int64, error)
}
