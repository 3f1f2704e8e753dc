package handler

import (
	"github.com/gin-gonic/gin"
	appproject "github.com/workify/backend/internal/application/project"
)

// AssignmentHandler handles budget assignments of a project
type AssignmentHandler struct {
	BaseHandler
	assignmentService *appproject.AssignmentService
}

// NewAssignmentHandler creates a new budget assignment handler
func NewAssignmentHandler(assignmentService *appproject.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// List godoc
// @ID           listProjectBudgets
// @Summary      List budget assignments
// @Tags         projects
// @Produce      json
// @Param        slug path string true "Project slug"
// @Success      200 {object} APIResponse[[]appproject.AssignmentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{slug}/budgets [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	assignments, err := h.assignmentService.List(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, assignments)
}

// Create godoc
// @ID           createProjectBudget
// @Summary      Assign budget
// @Description  Assign a budget to the project for a period. Periods of one project may not overlap.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        slug    path string                      true "Project slug"
// @Param        request body appproject.AssignmentRequest true "Assignment"
// @Success      201 {object} APIResponse[appproject.AssignmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{slug}/budgets [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appproject.AssignmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, assignment)
}

// Update godoc
// @ID           updateProjectBudget
// @Summary      Update budget assignment
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        slug    path string                      true "Project slug"
// @Param        id      path string                      true "Assignment ID" format(uuid)
// @Param        request body appproject.AssignmentRequest true "Assignment"
// @Success      200 {object} APIResponse[appproject.AssignmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{slug}/budgets/{id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appproject.AssignmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	assignment, err := h.assignmentService.Update(c.Request.Context(), actorID, c.Param("slug"), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, assignment)
}

// Delete godoc
// @ID           deleteProjectBudget
// @Summary      Remove budget assignment
// @Tags         projects
// @Param        slug path string true "Project slug"
// @Param        id   path string true "Assignment ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /projects/{slug}/budgets/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), actorID, c.Param("slug"), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
