package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	appemployee "github.com/workify/backend/internal/application/employee"
	"github.com/workify/backend/internal/interfaces/http/dto"
	"github.com/workify/backend/internal/interfaces/http/middleware"
)

// DocumentHandler handles employee document HTTP requests
type DocumentHandler struct {
	BaseHandler
	documentService *appemployee.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *appemployee.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// bindDocumentForm reads the multipart fields of a document. Optional UUID
// fields are parsed by hand since form binding does not decode uuid.UUID.
func (h *DocumentHandler) bindDocumentForm(c *gin.Context) (appemployee.DocumentRequest, bool) {
	req := appemployee.DocumentRequest{
		Name:     strings.TrimSpace(c.PostForm("name")),
		SignDate: strings.TrimSpace(c.PostForm("sign_date")),
		Comment:  c.PostForm("comment"),
	}
	var ok bool
	if req.DocumentTypeID, ok = h.formUUID(c, "document_type_id"); !ok {
		return req, false
	}
	if req.ReferenceDocumentID, ok = h.formUUID(c, "reference_document_id"); !ok {
		return req, false
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return req, false
	}
	return req, true
}

func (h *DocumentHandler) formUUID(c *gin.Context, field string) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, field+" must be a valid UUID")
		return nil, false
	}
	return &id, true
}

// List godoc
// @ID           listEmployeeDocuments
// @Summary      List employee documents
// @Tags         employees
// @Produce      json
// @Param        slug path string true "Employee slug"
// @Success      200 {object} APIResponse[[]appemployee.DocumentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	docs, err := h.documentService.List(c.Request.Context(), viewer, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, docs)
}

// Get godoc
// @ID           getEmployeeDocument
// @Summary      Get employee document
// @Tags         employees
// @Produce      json
// @Param        slug path string true "Employee slug"
// @Param        id   path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[appemployee.DocumentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), viewer, c.Param("slug"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Create godoc
// @ID           createEmployeeDocument
// @Summary      Upload employee document
// @Tags         employees
// @Accept       multipart/form-data
// @Produce      json
// @Param        slug                  path     string true  "Employee slug"
// @Param        file                  formData file   true  "Document (pdf, doc, docx, jpeg, png)"
// @Param        name                  formData string true  "Name"
// @Param        sign_date             formData string true  "Sign date (YYYY-MM-DD)"
// @Param        document_type_id      formData string false "Document type, default type when empty"
// @Param        reference_document_id formData string false "Document this one amends"
// @Param        comment               formData string false "Comment"
// @Success      201 {object} APIResponse[appemployee.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	req, ok := h.bindDocumentForm(c)
	if !ok {
		return
	}
	file, ok := h.readUpload(c, "file", true)
	if !ok {
		return
	}

	doc, err := h.documentService.Create(c.Request.Context(), actorID, c.Param("slug"), req, *file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, doc)
}

// Update godoc
// @ID           updateEmployeeDocument
// @Summary      Update employee document
// @Description  Update document fields. A file part replaces the stored file.
// @Tags         employees
// @Accept       multipart/form-data
// @Produce      json
// @Param        slug                  path     string true  "Employee slug"
// @Param        id                    path     string true  "Document ID" format(uuid)
// @Param        file                  formData file   false "Replacement file"
// @Param        name                  formData string true  "Name"
// @Param        sign_date             formData string true  "Sign date (YYYY-MM-DD)"
// @Param        document_type_id      formData string false "Document type"
// @Param        reference_document_id formData string false "Document this one amends"
// @Param        comment               formData string false "Comment"
// @Success      200 {object} APIResponse[appemployee.DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	req, ok := h.bindDocumentForm(c)
	if !ok {
		return
	}
	file, ok := h.readUpload(c, "file", false)
	if !ok {
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), actorID, c.Param("slug"), id, req, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Delete godoc
// @ID           deleteEmployeeDocument
// @Summary      Delete employee document
// @Description  Delete a document, its file and the documents referring to it
// @Tags         employees
// @Param        slug path string true "Employee slug"
// @Param        id   path string true "Document ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), actorID, c.Param("slug"), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Download godoc
// @ID           downloadEmployeeDocument
// @Summary      Document file link
// @Description  Return a short-lived download URL of the document file
// @Tags         employees
// @Produce      json
// @Param        slug path string true "Employee slug"
// @Param        id   path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[appemployee.FileLink]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{slug}/documents/{id}/file [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	link, err := h.documentService.DownloadURL(c.Request.Context(), viewer, c.Param("slug"), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}
