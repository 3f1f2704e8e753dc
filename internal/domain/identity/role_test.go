package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func createTestRole(t *testing.T) *Role {
	role, err := NewRole("TEST_ROLE", "Test Role")
	require.NoError(t, err)
	require.NotNil(t, role)
	return role
}

// Permission Value Object Tests

func TestNewPermission(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		action   string
		wantErr  bool
		wantCode string
	}{
		{name: "valid permission", resource: "client", action: "create", wantCode: "client:create"},
		{name: "valid permission with underscore", resource: "sales_invoice", action: "read", wantCode: "sales_invoice:read"},
		{name: "normalizes case", resource: " Client ", action: "READ", wantCode: "client:read"},
		{name: "empty resource", resource: "", action: "create", wantErr: true},
		{name: "empty action", resource: "client", action: "", wantErr: true},
		{name: "invalid characters", resource: "client-1", action: "read", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perm, err := NewPermission(tt.resource, tt.action)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, perm.Code)
		})
	}
}

func TestNewPermissionFromCode(t *testing.T) {
	perm, err := NewPermissionFromCode("employee:read_details")
	require.NoError(t, err)
	assert.Equal(t, "employee", perm.Resource)
	assert.Equal(t, "read_details", perm.Action)

	_, err = NewPermissionFromCode("employee")
	assert.Error(t, err)
}

// Role Tests

func TestNewRole(t *testing.T) {
	t.Run("creates role with upper-case code", func(t *testing.T) {
		role, err := NewRole("project_manager", "Project manager")
		require.NoError(t, err)
		assert.Equal(t, "PROJECT_MANAGER", role.Code)
		assert.True(t, role.CanDelete())
		assert.Equal(t, EventTypeRoleCreated, role.GetDomainEvents()[0].EventType())
	})

	t.Run("system role cannot be deleted", func(t *testing.T) {
		role, err := NewSystemRole("ADMIN", "Administrator")
		require.NoError(t, err)
		assert.False(t, role.CanDelete())
	})

	t.Run("rejects invalid code", func(t *testing.T) {
		_, err := NewRole("1X", "x")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewRole("VIEWER", "")
		assert.Error(t, err)
	})
}

func TestRole_SetPermissions(t *testing.T) {
	role := createTestRole(t)

	t.Run("sets sorted unique permissions", func(t *testing.T) {
		err := role.SetPermissions([]string{"project:read", "client:read", "client:read"})
		require.NoError(t, err)
		assert.Equal(t, []string{"client:read", "project:read"}, role.PermissionCodes())
		assert.True(t, role.HasPermission("client:read"))
		assert.False(t, role.HasPermission("client:delete"))
	})

	t.Run("rejects permission outside catalogue", func(t *testing.T) {
		err := role.SetPermissions([]string{"warehouse:read"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown permission")
		assert.Equal(t, []string{"client:read", "project:read"}, role.PermissionCodes())
	})
}

func TestPermissionCatalogue(t *testing.T) {
	codes := AllPermissionCodes()
	assert.Contains(t, codes, "client:read")
	assert.Contains(t, codes, "sales_invoice:update")
	assert.Contains(t, codes, PermissionEmployeeDetails)
	assert.Contains(t, codes, "audit:read")
	assert.NotContains(t, codes, "audit:delete")
	assert.True(t, IsKnownPermission(Code(ResourceDimension, ActionDelete)))
}
