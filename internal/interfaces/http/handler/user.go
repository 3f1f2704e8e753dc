package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/workify/backend/internal/application/identity"
)

// UserHandler handles user account HTTP requests. Accounts are created
// together with employees or by SSO, so only reads and role changes live here.
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
	roleService *identity.RoleService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService, roleService *identity.RoleService) *UserHandler {
	return &UserHandler{
		userService: userService,
		roleService: roleService,
	}
}

// GetByID godoc
//
//	@ID				getUserById
//	@Summary		Get user by ID
//	@Tags			users
//	@Produce		json
//	@Param			id	path		string	true	"User ID"	format(uuid)
//	@Success		200	{object}	APIResponse[identity.UserResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// AssignRoles godoc
//
//	@ID				assignUserRoles
//	@Summary		Replace user roles
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User ID"	format(uuid)
//	@Param			request	body		identity.AssignRolesRequest	true	"Role IDs"
//	@Success		200		{object}	APIResponse[identity.UserResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/users/{id}/roles [put]
func (h *UserHandler) AssignRoles(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req identity.AssignRolesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.roleService.AssignUserRoles(c.Request.Context(), id, req.RoleIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
