package handler

import (
	"github.com/gin-gonic/gin"
	appdict "github.com/workify/backend/internal/application/dict"
)

// DictHandler handles the dictionaries: currencies, document types and dimensions
type DictHandler struct {
	BaseHandler
	dictService *appdict.Service
}

// NewDictHandler creates a new dictionary handler
func NewDictHandler(dictService *appdict.Service) *DictHandler {
	return &DictHandler{dictService: dictService}
}

// =============================================================================
// Currencies
// =============================================================================

// ListCurrencies godoc
// @ID           listCurrencies
// @Summary      List currencies
// @Tags         dicts
// @Produce      json
// @Success      200 {object} APIResponse[[]appdict.EntryResponse]
// @Security     BearerAuth
// @Router       /dicts/currencies [get]
func (h *DictHandler) ListCurrencies(c *gin.Context) {
	entries, err := h.dictService.ListCurrencies(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// DefaultCurrency godoc
// @ID           getDefaultCurrency
// @Summary      Default currency
// @Tags         dicts
// @Produce      json
// @Success      200 {object} APIResponse[appdict.EntryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/currencies/default [get]
func (h *DictHandler) DefaultCurrency(c *gin.Context) {
	entry, err := h.dictService.DefaultCurrency(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// GetCurrency godoc
// @ID           getCurrency
// @Summary      Get currency
// @Tags         dicts
// @Produce      json
// @Param        id path string true "Currency ID" format(uuid)
// @Success      200 {object} APIResponse[appdict.EntryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/currencies/{id} [get]
func (h *DictHandler) GetCurrency(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.dictService.GetCurrency(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// CreateCurrency godoc
// @ID           createCurrency
// @Summary      Create currency
// @Description  Create a currency. Marking it default clears the previous default.
// @Tags         dicts
// @Accept       json
// @Produce      json
// @Param        request body appdict.EntryRequest true "Currency"
// @Success      201 {object} APIResponse[appdict.EntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/currencies [post]
func (h *DictHandler) CreateCurrency(c *gin.Context) {
	var req appdict.EntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.dictService.CreateCurrency(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// UpdateCurrency godoc
// @ID           updateCurrency
// @Summary      Update currency
// @Tags         dicts
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Currency ID" format(uuid)
// @Param        request body appdict.EntryRequest true "Currency"
// @Success      200 {object} APIResponse[appdict.EntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/currencies/{id} [put]
func (h *DictHandler) UpdateCurrency(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appdict.EntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.dictService.UpdateCurrency(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// DeleteCurrency godoc
// @ID           deleteCurrency
// @Summary      Delete currency
// @Description  Delete a currency that is not the default and not in use
// @Tags         dicts
// @Param        id path string true "Currency ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/currencies/{id} [delete]
func (h *DictHandler) DeleteCurrency(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.dictService.DeleteCurrency(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// =============================================================================
// Document types
// =============================================================================

// ListDocumentTypes godoc
// @ID           listDocumentTypes
// @Summary      List document types
// @Tags         dicts
// @Produce      json
// @Success      200 {object} APIResponse[[]appdict.EntryResponse]
// @Security     BearerAuth
// @Router       /dicts/document-types [get]
func (h *DictHandler) ListDocumentTypes(c *gin.Context) {
	entries, err := h.dictService.ListDocumentTypes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// GetDocumentType godoc
// @ID           getDocumentType
// @Summary      Get document type
// @Tags         dicts
// @Produce      json
// @Param        id path string true "Document type ID" format(uuid)
// @Success      200 {object} APIResponse[appdict.EntryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/document-types/{id} [get]
func (h *DictHandler) GetDocumentType(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.dictService.GetDocumentType(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// CreateDocumentType godoc
// @ID           createDocumentType
// @Summary      Create document type
// @Tags         dicts
// @Accept       json
// @Produce      json
// @Param        request body appdict.EntryRequest true "Document type"
// @Success      201 {object} APIResponse[appdict.EntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/document-types [post]
func (h *DictHandler) CreateDocumentType(c *gin.Context) {
	var req appdict.EntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.dictService.CreateDocumentType(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// UpdateDocumentType godoc
// @ID           updateDocumentType
// @Summary      Update document type
// @Tags         dicts
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Document type ID" format(uuid)
// @Param        request body appdict.EntryRequest true "Document type"
// @Success      200 {object} APIResponse[appdict.EntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/document-types/{id} [put]
func (h *DictHandler) UpdateDocumentType(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appdict.EntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.dictService.UpdateDocumentType(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// DeleteDocumentType godoc
// @ID           deleteDocumentType
// @Summary      Delete document type
// @Tags         dicts
// @Param        id path string true "Document type ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/document-types/{id} [delete]
func (h *DictHandler) DeleteDocumentType(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.dictService.DeleteDocumentType(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// =============================================================================
// Dimensions
// =============================================================================

// ListDimensions godoc
// @ID           listDimensions
// @Summary      List dimensions
// @Description  Flat list of dimensions, each with its top-level ancestor
// @Tags         dicts
// @Produce      json
// @Success      200 {object} APIResponse[[]appdict.DimensionResponse]
// @Security     BearerAuth
// @Router       /dicts/dimensions [get]
func (h *DictHandler) ListDimensions(c *gin.Context) {
	dims, err := h.dictService.ListDimensions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dims)
}

// DimensionTree godoc
// @ID           getDimensionTree
// @Summary      Dimension tree
// @Tags         dicts
// @Produce      json
// @Success      200 {object} APIResponse[[]appdict.DimensionNode]
// @Security     BearerAuth
// @Router       /dicts/dimensions/tree [get]
func (h *DictHandler) DimensionTree(c *gin.Context) {
	tree, err := h.dictService.DimensionTree(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}

// GetDimension godoc
// @ID           getDimension
// @Summary      Get dimension
// @Tags         dicts
// @Produce      json
// @Param        id path string true "Dimension ID" format(uuid)
// @Success      200 {object} APIResponse[appdict.DimensionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/dimensions/{id} [get]
func (h *DictHandler) GetDimension(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	dim, err := h.dictService.GetDimension(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dim)
}

// CreateDimension godoc
// @ID           createDimension
// @Summary      Create dimension
// @Tags         dicts
// @Accept       json
// @Produce      json
// @Param        request body appdict.DimensionRequest true "Dimension"
// @Success      201 {object} APIResponse[appdict.DimensionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/dimensions [post]
func (h *DictHandler) CreateDimension(c *gin.Context) {
	var req appdict.DimensionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	dim, err := h.dictService.CreateDimension(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dim)
}

// UpdateDimension godoc
// @ID           updateDimension
// @Summary      Update dimension
// @Description  Rename or move a dimension. A dimension cannot be moved below its own subtree.
// @Tags         dicts
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Dimension ID" format(uuid)
// @Param        request body appdict.DimensionRequest true "Dimension"
// @Success      200 {object} APIResponse[appdict.DimensionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/dimensions/{id} [put]
func (h *DictHandler) UpdateDimension(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appdict.DimensionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	dim, err := h.dictService.UpdateDimension(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dim)
}

// DeleteDimension godoc
// @ID           deleteDimension
// @Summary      Delete dimension
// @Description  Delete a dimension with its subtree. Links to contract items are removed.
// @Tags         dicts
// @Param        id path string true "Dimension ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dicts/dimensions/{id} [delete]
func (h *DictHandler) DeleteDimension(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.dictService.DeleteDimension(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
