package handler

import (
	"github.com/gin-gonic/gin"
	appaudit "github.com/workify/backend/internal/application/audit"
	appclient "github.com/workify/backend/internal/application/client"
	"github.com/workify/backend/internal/application/common"
)

// ContractItemHandler handles contract item HTTP requests
type ContractItemHandler struct {
	BaseHandler
	itemService  *appclient.ContractItemService
	auditService *appaudit.Service
}

// NewContractItemHandler creates a new contract item handler
func NewContractItemHandler(itemService *appclient.ContractItemService, auditService *appaudit.Service) *ContractItemHandler {
	return &ContractItemHandler{
		itemService:  itemService,
		auditService: auditService,
	}
}

// ListByContract godoc
// @ID           listContractItems
// @Summary      List contract items
// @Tags         contract-items
// @Produce      json
// @Param        slug path string true "Contract slug"
// @Success      200 {object} APIResponse[[]appclient.ContractItemResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{slug}/items [get]
func (h *ContractItemHandler) ListByContract(c *gin.Context) {
	items, err := h.itemService.ListByContract(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get godoc
// @ID           getContractItem
// @Summary      Get contract item
// @Tags         contract-items
// @Produce      json
// @Param        id path string true "Contract item ID" format(uuid)
// @Success      200 {object} APIResponse[appclient.ContractItemResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contract-items/{id} [get]
func (h *ContractItemHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.itemService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create godoc
// @ID           createContractItem
// @Summary      Create contract item
// @Description  Add an item to a contract. Without currency_id the default currency is used.
// @Tags         contract-items
// @Accept       json
// @Produce      json
// @Param        slug    path string                        true "Contract slug"
// @Param        request body appclient.ContractItemRequest true "Contract item"
// @Success      201 {object} APIResponse[appclient.ContractItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{slug}/items [post]
func (h *ContractItemHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appclient.ContractItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update godoc
// @ID           updateContractItem
// @Summary      Update contract item
// @Tags         contract-items
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Contract item ID" format(uuid)
// @Param        request body appclient.ContractItemRequest true "Contract item"
// @Success      200 {object} APIResponse[appclient.ContractItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contract-items/{id} [put]
func (h *ContractItemHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appclient.ContractItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @ID           deleteContractItem
// @Summary      Delete contract item
// @Description  Delete an item that has no invoices
// @Tags         contract-items
// @Param        id path string true "Contract item ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contract-items/{id} [delete]
func (h *ContractItemHandler) Delete(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), actorID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// History godoc
// @ID           getContractItemHistory
// @Summary      Contract item history
// @Tags         contract-items
// @Produce      json
// @Param        id        path  string true  "Contract item ID" format(uuid)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appaudit.EntryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contract-items/{id}/audit [get]
func (h *ContractItemHandler) History(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var q common.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.auditService.ContractItemHistory(c.Request.Context(), id, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeList(&h.BaseHandler, c, page)
}
