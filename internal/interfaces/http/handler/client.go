package handler

import (
	"github.com/gin-gonic/gin"
	appclient "github.com/workify/backend/internal/application/client"
	"github.com/workify/backend/internal/application/common"
)

// ClientHandler handles client HTTP requests
type ClientHandler struct {
	BaseHandler
	clientService *appclient.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *appclient.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// autocompleteQuery is the query of autocomplete endpoints
type autocompleteQuery struct {
	Q string `form:"q" binding:"max=100"`
}

// List godoc
// @ID           listClients
// @Summary      List clients
// @Description  List active clients ordered by name. all=true includes deactivated clients.
// @Tags         clients
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Search in name"
// @Param        all       query bool   false "Include deactivated clients"
// @Success      200 {object} APIResponse[[]appclient.ClientResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	var q common.ListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.clientService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeList(&h.BaseHandler, c, page)
}

// Autocomplete godoc
// @ID           autocompleteClients
// @Summary      Autocomplete clients
// @Tags         clients
// @Produce      json
// @Param        q query string false "Text to match"
// @Success      200 {object} APIResponse[[]common.AutocompleteItem]
// @Security     BearerAuth
// @Router       /clients/autocomplete [get]
func (h *ClientHandler) Autocomplete(c *gin.Context) {
	var q autocompleteQuery
	if !h.bindQuery(c, &q) {
		return
	}

	items, err := h.clientService.Autocomplete(c.Request.Context(), q.Q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get godoc
// @ID           getClient
// @Summary      Get client
// @Tags         clients
// @Produce      json
// @Param        slug path string true "Client slug"
// @Success      200 {object} APIResponse[appclient.ClientResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clients/{slug} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.clientService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Create godoc
// @ID           createClient
// @Summary      Create client
// @Description  Create a client. The slug is derived from the name.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request body appclient.ClientRequest true "Client"
// @Success      201 {object} APIResponse[appclient.ClientResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appclient.ClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// Update godoc
// @ID           updateClient
// @Summary      Update client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        slug    path string                  true "Client slug"
// @Param        request body appclient.ClientRequest true "Client"
// @Success      200 {object} APIResponse[appclient.ClientResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clients/{slug} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req appclient.ClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), actorID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Activate godoc
// @ID           activateClient
// @Summary      Activate client
// @Tags         clients
// @Produce      json
// @Param        slug path string true "Client slug"
// @Success      200 {object} APIResponse[appclient.ClientResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clients/{slug}/activate [post]
func (h *ClientHandler) Activate(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}

	client, err := h.clientService.Activate(c.Request.Context(), actorID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Deactivate godoc
// @ID           deactivateClient
// @Summary      Deactivate client
// @Description  Hide a client from default lists. Its contracts are kept.
// @Tags         clients
// @Produce      json
// @Param        slug path string true "Client slug"
// @Success      200 {object} APIResponse[appclient.ClientResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clients/{slug}/deactivate [post]
func (h *ClientHandler) Deactivate(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}

	client, err := h.clientService.Deactivate(c.Request.Context(), actorID, c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// UploadLogo godoc
// @ID           uploadClientLogo
// @Summary      Upload client logo
// @Tags         clients
// @Accept       multipart/form-data
// @Produce      json
// @Param        slug path     string true "Client slug"
// @Param        file formData file   true "Logo image (jpeg, png, gif, webp)"
// @Success      200 {object} APIResponse[appclient.ClientResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clients/{slug}/logo [put]
func (h *ClientHandler) UploadLogo(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	file, ok := h.readUpload(c, "file", true)
	if !ok {
		return
	}

	client, err := h.clientService.UploadLogo(c.Request.Context(), actorID, c.Param("slug"), *file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}
