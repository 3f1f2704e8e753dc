package handler

import (
	"github.com/gin-gonic/gin"
	appclient "github.com/workify/backend/internal/application/client"
)

// InvoiceHandler handles sales invoice HTTP requests
type InvoiceHandler struct {
	BaseHandler
	invoiceService *appclient.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *appclient.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// ListByContract godoc
// @ID           listContractInvoices
// @Summary      List invoices of a contract
// @Tags         invoices
// @Produce      json
// @Param        slug path string true "Contract slug"
// @Success      200 {object} APIResponse[[]appclient.InvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{slug}/invoices [get]
func (h *InvoiceHandler) ListByContract(c *gin.Context) {
	invoices, err := h.invoiceService.ListByContract(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// ListByContractItem godoc
// @ID           listContractItemInvoices
// @Summary      List invoices of a contract item
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Contract item ID" format(uuid)
// @Success      200 {object} APIResponse[[]appclient.InvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contract-items/{id}/invoices [get]
func (h *InvoiceHandler) ListByContractItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListByContractItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// Get godoc
// @ID           getInvoice
// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[appclient.InvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Create godoc
// @ID           createInvoice
// @Summary      Create invoice
// @Description  Issue an invoice against an item of the contract. The number must be unique per item.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        slug    path string                   true "Contract slug"
// @Param        request body appclient.InvoiceRequest true "Invoice"
// @Success      201 {object} APIResponse[appclient.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{slug}/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appclient.InvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// Update godoc
// @ID           updateInvoice
// @Summary      Update invoice
// @Description  Update an unpaid invoice. The contract item cannot be changed.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Invoice ID" format(uuid)
// @Param        request body appclient.InvoiceRequest true "Invoice"
// @Success      200 {object} APIResponse[appclient.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appclient.InvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Settle godoc
// @ID           settleInvoice
// @Summary      Settle invoice
// @Description  Record the payment date of an unpaid invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "Invoice ID" format(uuid)
// @Param        request body appclient.SettleRequest true "Payment"
// @Success      200 {object} APIResponse[appclient.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/settle [post]
func (h *InvoiceHandler) Settle(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req appclient.SettleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Settle(c.Request.Context(), actorID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Delete godoc
// @ID           deleteInvoice
// @Summary      Delete invoice
// @Tags         invoices
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), actorID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadFile godoc
// @ID           uploadInvoiceFile
// @Summary      Upload invoice file
// @Description  Attach the scanned invoice, replacing the previous file
// @Tags         invoices
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path     string true "Invoice ID" format(uuid)
// @Param        file formData file   true "Invoice document (pdf, doc, docx, jpeg, png)"
// @Success      200 {object} APIResponse[appclient.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/file [put]
func (h *InvoiceHandler) UploadFile(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	file, ok := h.readUpload(c, "file", true)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.UploadFile(c.Request.Context(), actorID, id, *file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// FileURL godoc
// @ID           getInvoiceFile
// @Summary      Invoice file link
// @Description  Return a short-lived download URL of the invoice file
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[appclient.FileLink]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/file [get]
func (h *InvoiceHandler) FileURL(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	link, err := h.invoiceService.FileURL(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}
