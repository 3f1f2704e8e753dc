package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/workify/backend/internal/application/identity"
)

// RoleHandler handles role management HTTP requests
type RoleHandler struct {
	BaseHandler
	roleService *identity.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *identity.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// List godoc
//
//	@ID				listRoles
//	@Summary		List roles
//	@Description	List all roles with their permissions and number of users
//	@Tags			roles
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]identity.RoleResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roles)
}

// GetByID godoc
//
//	@ID				getRoleById
//	@Summary		Get role by ID
//	@Tags			roles
//	@Produce		json
//	@Param			id	path		string	true	"Role ID"	format(uuid)
//	@Success		200	{object}	APIResponse[identity.RoleResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/roles/{id} [get]
func (h *RoleHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Create godoc
//
//	@ID				createRole
//	@Summary		Create a new role
//	@Description	Create a role. The code is stored upper case and must be unique.
//	@Tags			roles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identity.CreateRoleRequest	true	"Role creation request"
//	@Success		201		{object}	APIResponse[identity.RoleResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req identity.CreateRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, role)
}

// Update godoc
//
//	@ID				updateRole
//	@Summary		Update a role
//	@Tags			roles
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Role ID"	format(uuid)
//	@Param			request	body		identity.UpdateRoleRequest	true	"Role update request"
//	@Success		200		{object}	APIResponse[identity.RoleResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req identity.UpdateRoleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// SetPermissions godoc
//
//	@ID				setRolePermissions
//	@Summary		Replace role permissions
//	@Description	Replace the permission codes of a role. Users holding the role get the new set with their next token.
//	@Tags			roles
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Role ID"	format(uuid)
//	@Param			request	body		identity.SetPermissionsRequest	true	"Permission codes"
//	@Success		200		{object}	APIResponse[identity.RoleResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/roles/{id}/permissions [put]
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req identity.SetPermissionsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	role, err := h.roleService.SetPermissions(c.Request.Context(), id, req.Permissions)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, role)
}

// Delete godoc
//
//	@ID				deleteRole
//	@Summary		Delete a role
//	@Description	Delete a role. System roles and roles still assigned to users cannot be deleted.
//	@Tags			roles
//	@Param			id	path	string	true	"Role ID"	format(uuid)
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/roles/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetPermissions godoc
//
//	@ID				listPermissions
//	@Summary		Permission catalogue
//	@Description	List every permission code that can be granted to a role
//	@Tags			roles
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]string]
//	@Security		BearerAuth
//	@Router			/roles/permissions [get]
func (h *RoleHandler) GetPermissions(c *gin.Context) {
	h.Success(c, h.roleService.Permissions())
}
