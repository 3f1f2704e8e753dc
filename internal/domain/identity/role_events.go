package identity

import "github.com/workify/backend/internal/domain/shared"

// Aggregate type constant for Role
const AggregateTypeRole = "Role"

// Role domain event types
const (
	EventTypeRoleCreated            = "RoleCreated"
	EventTypeRolePermissionsChanged = "RolePermissionsChanged"
)

// RoleCreatedEvent is published when a role is created
type RoleCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewRoleCreatedEvent creates a new RoleCreatedEvent
func NewRoleCreatedEvent(role *Role) *RoleCreatedEvent {
	return &RoleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleCreated, AggregateTypeRole, role.ID, nil),
		Code:            role.Code,
		Name:            role.Name,
	}
}

// RolePermissionsChangedEvent is published when the permissions of a role are replaced
type RolePermissionsChangedEvent struct {
	shared.BaseDomainEvent
	Code        string   `json:"code"`
	Permissions []string `json:"permissions"`
}

// NewRolePermissionsChangedEvent creates a new RolePermissionsChangedEvent
func NewRolePermissionsChangedEvent(role *Role) *RolePermissionsChangedEvent {
	return &RolePermissionsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRolePermissionsChanged, AggregateTypeRole, role.ID, nil),
		Code:            role.Code,
		Permissions:     role.PermissionCodes(),
	}
}
