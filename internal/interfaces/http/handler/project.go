package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/workify/backend/internal/application/common"
	appproject "github.com/workify/backend/internal/application/project"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	BaseHandler
	projectService *appproject.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *appproject.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List godoc
// @ID           listProjects
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Search in name"
// @Param        all       query bool   false "Include deactivated projects"
// @Success      200 {object} APIResponse[[]appproject.ProjectResponse]
// @Security     BearerAuth
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var q common.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.projectService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeList(&h.BaseHandler, c, page)
}

// Autocomplete godoc
// @ID           autocompleteProjects
// @Summary      Autocomplete projects
// @Tags         projects
// @Produce      json
// @Param        q query string false "Text to match"
// @Success      200 {object} APIResponse[[]common.AutocompleteItem]
// @Security     BearerAuth
// @Router       /projects/autocomplete [get]
func (h *ProjectHandler) Autocomplete(c *gin.Context) {
	var q autocompleteQuery
	if !h.bindQuery(c, &q) {
		return
	}

	items, err := h.projectService.Autocomplete(c.Request.Context(), q.Q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get godoc
// @ID           getProject
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        slug path string true "Project slug"
// @Success      200 {object} APIResponse[appproject.ProjectResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{slug} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// Create godoc
// @ID           createProject
// @Summary      Create project
// @Description  Create a project. Without slug one is derived from the name.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body appproject.ProjectRequest true "Project"
// @Success      201 {object} APIResponse[appproject.ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appproject.ProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, project)
}

// Update godoc
// @ID           updateProject
// @Summary      Update project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        slug    path string                   true "Project slug"
// @Param        request body appproject.ProjectRequest true "Project"
// @Success      200 {object} APIResponse[appproject.ProjectResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{slug} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appproject.ProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// SetManagers godoc
// @ID           setProjectManagers
// @Summary      Replace project managers
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        slug    path string                   true "Project slug"
// @Param        request body appproject.MembersRequest true "Employee IDs"
// @Success      200 {object} APIResponse[appproject.ProjectResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{slug}/managers [put]
func (h *ProjectHandler) SetManagers(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appproject.MembersRequest
	if !h.bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.SetManagers(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// SetTeamMembers godoc
// @ID           setProjectTeamMembers
// @Summary      Replace project team members
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        slug    path string                   true "Project slug"
// @Param        request body appproject.MembersRequest true "Employee IDs"
// @Success      200 {object} APIResponse[appproject.ProjectResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{slug}/team-members [put]
func (h *ProjectHandler) SetTeamMembers(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appproject.MembersRequest
	if !h.bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.SetTeamMembers(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// Activate godoc
// @ID           activateProject
// @Summary      Activate project
// @Tags         projects
// @Produce      json
// @Param        slug path string true "Project slug"
// @Success      200 {object} APIResponse[appproject.ProjectResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{slug}/activate [post]
func (h *ProjectHandler) Activate(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Activate(c.Request.Context(), actorID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// Deactivate godoc
// @ID           deactivateProject
// @Summary      Deactivate project
// @Tags         projects
// @Produce      json
// @Param        slug path string true "Project slug"
// @Success      200 {object} APIResponse[appproject.ProjectResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{slug}/deactivate [post]
func (h *ProjectHandler) Deactivate(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}

	project, err := h.projectService.Deactivate(c.Request.Context(), actorID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}
