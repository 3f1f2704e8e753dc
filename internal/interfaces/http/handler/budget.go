package handler

import (
	"github.com/gin-gonic/gin"
	appbudget "github.com/workify/backend/internal/application/budget"
	"github.com/workify/backend/internal/application/common"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	BaseHandler
	budgetService *appbudget.Service
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService *appbudget.Service) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// List godoc
// @ID           listBudgets
// @Summary      List budgets
// @Tags         budgets
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Search in name"
// @Param        all       query bool   false "Include deactivated budgets"
// @Success      200 {object} APIResponse[[]appbudget.BudgetResponse]
// @Security     BearerAuth
// @Router       /budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	var q common.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.budgetService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeList(&h.BaseHandler, c, page)
}

// Autocomplete godoc
// @ID           autocompleteBudgets
// @Summary      Autocomplete budgets
// @Tags         budgets
// @Produce      json
// @Param        q query string false "Text to match"
// @Success      200 {object} APIResponse[[]common.AutocompleteItem]
// @Security     BearerAuth
// @Router       /budgets/autocomplete [get]
func (h *BudgetHandler) Autocomplete(c *gin.Context) {
	var q autocompleteQuery
	if !h.bindQuery(c, &q) {
		return
	}

	items, err := h.budgetService.Autocomplete(c.Request.Context(), q.Q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get godoc
// @ID           getBudget
// @Summary      Get budget
// @Tags         budgets
// @Produce      json
// @Param        id path string true "Budget ID" format(uuid)
// @Success      200 {object} APIResponse[appbudget.BudgetResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /budgets/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	budget, err := h.budgetService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budget)
}

// Create godoc
// @ID           createBudget
// @Summary      Create budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        request body appbudget.BudgetRequest true "Budget"
// @Success      201 {object} APIResponse[appbudget.BudgetResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appbudget.BudgetRequest
	if !h.bindJSON(c, &req) {
		return
	}

	budget, err := h.budgetService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, budget)
}

// Update godoc
// @ID           updateBudget
// @Summary      Update budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "Budget ID" format(uuid)
// @Param        request body appbudget.BudgetRequest true "Budget"
// @Success      200 {object} APIResponse[appbudget.BudgetResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appbudget.BudgetRequest
	if !h.bindJSON(c, &req) {
		return
	}

	budget, err := h.budgetService.Update(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budget)
}

// Activate godoc
// @ID           activateBudget
// @Summary      Activate budget
// @Tags         budgets
// @Produce      json
// @Param        id path string true "Budget ID" format(uuid)
// @Success      200 {object} APIResponse[appbudget.BudgetResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /budgets/{id}/activate [post]
func (h *BudgetHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate godoc
// @ID           deactivateBudget
// @Summary      Deactivate budget
// @Tags         budgets
// @Produce      json
// @Param        id path string true "Budget ID" format(uuid)
// @Success      200 {object} APIResponse[appbudget.BudgetResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /budgets/{id}/deactivate [post]
func (h *BudgetHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *BudgetHandler) setActive(c *gin.Context, active bool) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var (
		budget *appbudget.BudgetResponse
		err    error
	)
	if active {
		budget, err = h.budgetService.Activate(c.Request.Context(), actorID, id)
	} else {
		budget, err = h.budgetService.Deactivate(c.Request.Context(), actorID, id)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budget)
}
