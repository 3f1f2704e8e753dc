package identity

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/workify/backend/internal/domain/shared"
)

// Permission represents a functional permission (resource:action pattern)
// It is a value object
type Permission struct {
	Code     string // e.g., "client:create"
	Resource string // e.g., "client"
	Action   string // e.g., "create"
}

// NewPermission creates a new Permission value object
func NewPermission(resource, action string) (*Permission, error) {
	resource = strings.ToLower(strings.TrimSpace(resource))
	action = strings.ToLower(strings.TrimSpace(action))
	if !permissionPartPattern.MatchString(resource) {
		return nil, shared.NewDomainError("INVALID_PERMISSION_RESOURCE", "Permission resource must be lowercase letters and underscores")
	}
	if !permissionPartPattern.MatchString(action) {
		return nil, shared.NewDomainError("INVALID_PERMISSION_ACTION", "Permission action must be lowercase letters and underscores")
	}

	return &Permission{
		Code:     resource + ":" + action,
		Resource: resource,
		Action:   action,
	}, nil
}

// NewPermissionFromCode creates a Permission from a code string (e.g., "client:create")
func NewPermissionFromCode(code string) (*Permission, error) {
	parts := strings.SplitN(code, ":", 2)
	if len(parts) != 2 {
		return nil, shared.NewDomainError("INVALID_PERMISSION_CODE", "Permission code must be in format 'resource:action'")
	}
	return NewPermission(parts[0], parts[1])
}

var (
	permissionPartPattern = regexp.MustCompile(`^[a-z][a-z_]{0,49}$`)
	roleCodePattern       = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,49}$`)
)

// Role groups permissions assigned to users
type Role struct {
	shared.BaseAggregateRoot
	Code         string
	Name         string
	Description  string
	IsSystemRole bool         // System roles cannot be deleted
	Permissions  []Permission // Stored in separate table
}

// NewRole creates a new role with required fields
func NewRole(code, name string) (*Role, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	name = strings.TrimSpace(name)
	if !roleCodePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_ROLE_CODE", "Role code must start with a letter and contain only letters, digits and underscores (2-50 characters)")
	}
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_ROLE_NAME", "Role name must be 1-100 characters")
	}

	role := &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Permissions:       make([]Permission, 0),
	}
	role.AddDomainEvent(NewRoleCreatedEvent(role))
	return role, nil
}

// NewSystemRole creates a new system role (cannot be deleted)
func NewSystemRole(code, name string) (*Role, error) {
	role, err := NewRole(code, name)
	if err != nil {
		return nil, err
	}
	role.IsSystemRole = true
	return role, nil
}

// Update updates name and description
func (r *Role) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name must be 1-100 characters")
	}
	r.Name = name
	r.Description = strings.TrimSpace(description)
	r.touch()
	return nil
}

// SetPermissions replaces the permissions of the role. Codes outside the
// permission catalogue are rejected.
func (r *Role) SetPermissions(codes []string) error {
	seen := make(map[string]bool, len(codes))
	perms := make([]Permission, 0, len(codes))
	for _, code := range codes {
		perm, err := NewPermissionFromCode(code)
		if err != nil {
			return err
		}
		if !IsKnownPermission(perm.Code) {
			return shared.NewDomainErrorf("UNKNOWN_PERMISSION", "Unknown permission %s", perm.Code)
		}
		if seen[perm.Code] {
			continue
		}
		seen[perm.Code] = true
		perms = append(perms, *perm)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i].Code < perms[j].Code })

	r.Permissions = perms
	r.touch()
	r.AddDomainEvent(NewRolePermissionsChangedEvent(r))
	return nil
}

// HasPermission checks if the role grants code
func (r *Role) HasPermission(code string) bool {
	for _, p := range r.Permissions {
		if p.Code == code {
			return true
		}
	}
	return false
}

// PermissionCodes returns the codes of all granted permissions
func (r *Role) PermissionCodes() []string {
	codes := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		codes[i] = p.Code
	}
	return codes
}

// CanDelete returns whether the role can be deleted
func (r *Role) CanDelete() bool {
	return !r.IsSystemRole
}

func (r *Role) touch() {
	r.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	r.IncrementVersion()
}
