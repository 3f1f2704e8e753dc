package handler

import (
	"github.com/gin-gonic/gin"
	appemployee "github.com/workify/backend/internal/application/employee"
)

// RateHandler handles employee rate HTTP requests
type RateHandler struct {
	BaseHandler
	rateService *appemployee.RateService
}

// NewRateHandler creates a new rate handler
func NewRateHandler(rateService *appemployee.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// rateAtQuery selects the day of RateAt
type rateAtQuery struct {
	Day string `form:"day" binding:"omitempty,datetime=2006-01-02"`
}

// List godoc
// @ID           listEmployeeRates
// @Summary      List employee rates
// @Tags         employees
// @Produce      json
// @Param        slug path string true "Employee slug"
// @Success      200 {object} APIResponse[[]appemployee.RateResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/rates [get]
func (h *RateHandler) List(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	rates, err := h.rateService.List(c.Request.Context(), viewer, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rates)
}

// At godoc
// @ID           getEmployeeRateAt
// @Summary      Rate on a day
// @Description  Return the rate valid on day (default today)
// @Tags         employees
// @Produce      json
// @Param        slug path  string true  "Employee slug"
// @Param        day  query string false "Day (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[appemployee.RateResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/rates/at [get]
func (h *RateHandler) At(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	var q rateAtQuery
	if !h.bindQuery(c, &q) {
		return
	}

	rate, err := h.rateService.RateAt(c.Request.Context(), viewer, c.Param("slug"), q.Day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rate)
}

// Get godoc
// @ID           getEmployeeRate
// @Summary      Get employee rate
// @Tags         employees
// @Produce      json
// @Param        slug path string true "Employee slug"
// @Param        id   path string true "Rate ID" format(uuid)
// @Success      200 {object} APIResponse[appemployee.RateResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/rates/{id} [get]
func (h *RateHandler) Get(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	rate, err := h.rateService.Get(c.Request.Context(), viewer, c.Param("slug"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rate)
}

// Create godoc
// @ID           createEmployeeRate
// @Summary      Create employee rate
// @Description  Add a rate. Validity periods of one employee may not overlap.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        slug    path string                  true "Employee slug"
// @Param        request body appemployee.RateRequest true "Rate"
// @Success      201 {object} APIResponse[appemployee.RateResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/rates [post]
func (h *RateHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appemployee.RateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	rate, err := h.rateService.Create(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rate)
}

// Update godoc
// @ID           updateEmployeeRate
// @Summary      Update employee rate
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        slug    path string                  true "Employee slug"
// @Param        id      path string                  true "Rate ID" format(uuid)
// @Param        request body appemployee.RateRequest true "Rate"
// @Success      200 {object} APIResponse[appemployee.RateResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/rates/{id} [put]
func (h *RateHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appemployee.RateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	rate, err := h.rateService.Update(c.Request.Context(), actorID, c.Param("slug"), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rate)
}

// Delete godoc
// @ID           deleteEmployeeRate
// @Summary      Delete employee rate
// @Tags         employees
// @Param        slug path string true "Employee slug"
// @Param        id   path string true "Rate ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/rates/{id} [delete]
func (h *RateHandler) Delete(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.rateService.Delete(c.Request.Context(), actorID, c.Param("slug"), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
