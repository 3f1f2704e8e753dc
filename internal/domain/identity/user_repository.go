package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Save creates or updates a user together with its role assignments
	Save(ctx context.Context, user *User) error

	// FindByID finds a user by ID with roles loaded
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by the normalized username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// ExistsByUsername checks if a username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// FindByRoleID finds users having the role
	FindByRoleID(ctx context.Context, roleID uuid.UUID) ([]User, error)

	// Count returns the number of users
	Count(ctx context.Context) (int64, error)
}
