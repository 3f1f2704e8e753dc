package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/workify/backend/internal/application/common"
	appemployee "github.com/workify/backend/internal/application/employee"
)

// EmployeeHandler handles employee HTTP requests
type EmployeeHandler struct {
	BaseHandler
	employeeService *appemployee.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *appemployee.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List godoc
// @ID           listEmployees
// @Summary      List employees
// @Description  List active employees ordered by last and first name. Tax IDs are only shown to holders of employee:read_details.
// @Tags         employees
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Search in name and e-mail"
// @Param        all       query bool   false "Include deactivated employees"
// @Success      200 {object} APIResponse[[]appemployee.EmployeeResponse]
// @Security     BearerAuth
// @Router       /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	var q common.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.employeeService.List(c.Request.Context(), viewer, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeList(&h.BaseHandler, c, page)
}

// Autocomplete godoc
// @ID           autocompleteEmployees
// @Summary      Autocomplete employees
// @Tags         employees
// @Produce      json
// @Param        q query string false "Text to match"
// @Success      200 {object} APIResponse[[]common.AutocompleteItem]
// @Security     BearerAuth
// @Router       /employees/autocomplete [get]
func (h *EmployeeHandler) Autocomplete(c *gin.Context) {
	var q autocompleteQuery
	if !h.bindQuery(c, &q) {
		return
	}

	items, err := h.employeeService.Autocomplete(c.Request.Context(), q.Q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Me godoc
// @ID           getMyEmployee
// @Summary      My employee profile
// @Tags         employees
// @Produce      json
// @Success      200 {object} APIResponse[appemployee.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/me [get]
func (h *EmployeeHandler) Me(c *gin.Context) {
	userID, ok := h.actorID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Get godoc
// @ID           getEmployee
// @Summary      Get employee
// @Tags         employees
// @Produce      json
// @Param        slug path string true "Employee slug"
// @Success      200 {object} APIResponse[appemployee.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetBySlug(c.Request.Context(), viewer, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Create godoc
// @ID           createEmployee
// @Summary      Create employee
// @Description  Create an employee together with its user account. The e-mail becomes the username.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request body appemployee.CreateEmployeeRequest true "Employee"
// @Success      201 {object} APIResponse[appemployee.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appemployee.CreateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

// Update godoc
// @ID           updateEmployee
// @Summary      Update employee
// @Description  Update e-mail, slug and tax ID. Names come from the identity provider.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        slug    path string                            true "Employee slug"
// @Param        request body appemployee.UpdateEmployeeRequest true "Employee"
// @Success      200 {object} APIResponse[appemployee.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appemployee.UpdateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.Update(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Activate godoc
// @ID           activateEmployee
// @Summary      Activate employee
// @Description  Activate the employee and its user account
// @Tags         employees
// @Produce      json
// @Param        slug path string true "Employee slug"
// @Success      200 {object} APIResponse[appemployee.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/activate [post]
func (h *EmployeeHandler) Activate(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.Activate(c.Request.Context(), actorID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

// Deactivate godoc
// @ID           deactivateEmployee
// @Summary      Deactivate employee
// @Description  Deactivate the employee and its user account. Issued tokens are revoked.
// @Tags         employees
// @Produce      json
// @Param        slug path string true "Employee slug"
// @Success      200 {object} APIResponse[appemployee.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/deactivate [post]
func (h *EmployeeHandler) Deactivate(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.Deactivate(c.Request.Context(), actorID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}
