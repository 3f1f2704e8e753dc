package identity

import (
	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserCreated       = "UserCreated"
	EventTypeUserRolesChanged  = "UserRolesChanged"
	EventTypeUserStatusChanged = "UserStatusChanged"
)

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID, nil),
		Username:        user.Username,
		Email:           user.Email,
	}
}

// UserRolesChangedEvent is published when the roles of a user are replaced
type UserRolesChangedEvent struct {
	shared.BaseDomainEvent
	Username string      `json:"username"`
	RoleIDs  []uuid.UUID `json:"role_ids"`
}

// NewUserRolesChangedEvent creates a new UserRolesChangedEvent
func NewUserRolesChangedEvent(user *User) *UserRolesChangedEvent {
	return &UserRolesChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRolesChanged, AggregateTypeUser, user.ID, nil),
		Username:        user.Username,
		RoleIDs:         user.RoleIDs,
	}
}

// UserStatusChangedEvent is published when a user is activated or deactivated
type UserStatusChangedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

// NewUserStatusChangedEvent creates a new UserStatusChangedEvent
func NewUserStatusChangedEvent(user *User) *UserStatusChangedEvent {
	return &UserStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserStatusChanged, AggregateTypeUser, user.ID, nil),
		Username:        user.Username,
		IsActive:        user.IsActive,
	}
}
