package handler

import (
	"github.com/gin-gonic/gin"
	appaudit "github.com/workify/backend/internal/application/audit"
	appclient "github.com/workify/backend/internal/application/client"
	"github.com/workify/backend/internal/application/common"
)

// ContractHandler handles contract HTTP requests
type ContractHandler struct {
	BaseHandler
	contractService *appclient.ContractService
	auditService    *appaudit.Service
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contractService *appclient.ContractService, auditService *appaudit.Service) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		auditService:    auditService,
	}
}

// List godoc
// @ID           listContracts
// @Summary      List contracts
// @Description  List active contracts of all clients, newest start date first
// @Tags         contracts
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Search in number and name"
// @Param        all       query bool   false "Include deactivated contracts"
// @Success      200 {object} APIResponse[[]appclient.ContractResponse]
// @Security     BearerAuth
// @Router       /contracts [get]
func (h *ContractHandler) List(c *gin.Context) {
	var q common.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.contractService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeList(&h.BaseHandler, c, page)
}

// ListByClient godoc
// @ID           listClientContracts
// @Summary      List contracts of a client
// @Tags         contracts
// @Produce      json
// @Param        slug      path  string true  "Client slug"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        all       query bool   false "Include deactivated contracts"
// @Success      200 {object} APIResponse[[]appclient.ContractResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clients/{slug}/contracts [get]
func (h *ContractHandler) ListByClient(c *gin.Context) {
	var q common.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.contractService.ListByClient(c.Request.Context(), c.Param("slug"), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeList(&h.BaseHandler, c, page)
}

// Autocomplete godoc
// @ID           autocompleteContracts
// @Summary      Autocomplete contracts
// @Tags         contracts
// @Produce      json
// @Param        q query string false "Text to match"
// @Success      200 {object} APIResponse[[]common.AutocompleteItem]
// @Security     BearerAuth
// @Router       /contracts/autocomplete [get]
func (h *ContractHandler) Autocomplete(c *gin.Context) {
	var q autocompleteQuery
	if !h.bindQuery(c, &q) {
		return
	}

	items, err := h.contractService.Autocomplete(c.Request.Context(), q.Q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get godoc
// @ID           getContract
// @Summary      Get contract
// @Tags         contracts
// @Produce      json
// @Param        slug path string true "Contract slug"
// @Success      200 {object} APIResponse[appclient.ContractResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{slug} [get]
func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.contractService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// Create godoc
// @ID           createContract
// @Summary      Create contract
// @Description  Create a contract for a client. The slug is derived from number and name.
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        slug    path string                    true "Client slug"
// @Param        request body appclient.ContractRequest true "Contract"
// @Success      201 {object} APIResponse[appclient.ContractResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clients/{slug}/contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appclient.ContractRequest
	if !h.bindJSON(c, &req) {
		return
	}

	contract, err := h.contractService.Create(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contract)
}

// Update godoc
// @ID           updateContract
// @Summary      Update contract
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        slug    path string                    true "Contract slug"
// @Param        request body appclient.ContractRequest true "Contract"
// @Success      200 {object} APIResponse[appclient.ContractResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{slug} [put]
func (h *ContractHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appclient.ContractRequest
	if !h.bindJSON(c, &req) {
		return
	}

	contract, err := h.contractService.Update(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// Activate godoc
// @ID           activateContract
// @Summary      Activate contract
// @Tags         contracts
// @Produce      json
// @Param        slug path string true "Contract slug"
// @Success      200 {object} APIResponse[appclient.ContractResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{slug}/activate [post]
func (h *ContractHandler) Activate(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}

	contract, err := h.contractService.Activate(c.Request.Context(), actorID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// Deactivate godoc
// @ID           deactivateContract
// @Summary      Deactivate contract
// @Tags         contracts
// @Produce      json
// @Param        slug path string true "Contract slug"
// @Success      200 {object} APIResponse[appclient.ContractResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{slug}/deactivate [post]
func (h *ContractHandler) Deactivate(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}

	contract, err := h.contractService.Deactivate(c.Request.Context(), actorID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// Totals godoc
// @ID           getContractTotals
// @Summary      Contract totals
// @Description  Sum item values and invoiced and paid amounts per currency
// @Tags         contracts
// @Produce      json
// @Param        slug path string true "Contract slug"
// @Success      200 {object} APIResponse[appclient.ContractTotalsResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{slug}/totals [get]
func (h *ContractHandler) Totals(c *gin.Context) {
	totals, err := h.contractService.Totals(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, totals)
}

// History godoc
// @ID           getContractHistory
// @Summary      Contract history
// @Description  Audit entries of the contract, its items and invoices, newest first
// @Tags         contracts
// @Produce      json
// @Param        slug      path  string true  "Contract slug"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appaudit.EntryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{slug}/audit [get]
func (h *ContractHandler) History(c *gin.Context) {
	var q common.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.auditService.ContractHistory(c.Request.Context(), c.Param("slug"), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeList(&h.BaseHandler, c, page)
}
