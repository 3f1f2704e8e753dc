package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appaudit "github.com/workify/backend/internal/application/audit"
	"github.com/workify/backend/internal/application/common"
)

// AuditHandler exposes the audit log
type AuditHandler struct {
	BaseHandler
	auditService *appaudit.Service
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *appaudit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

type historyQuery struct {
	common.ListQuery
	AggregateType string `form:"aggregate_type" binding:"required,max=50"`
	AggregateID   string `form:"aggregate_id" binding:"required,uuid"`
}

// History godoc
// @ID           getAuditHistory
// @Summary      Audit history
// @Description  Audit entries of one aggregate, newest first
// @Tags         audit
// @Produce      json
// @Param        aggregate_type query string true  "Aggregate type, e.g. Client or Employee"
// @Param        aggregate_id   query string true  "Aggregate ID" format(uuid)
// @Param        page           query int    false "Page number" default(1)
// @Param        page_size      query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]appaudit.EntryResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /audit [get]
func (h *AuditHandler) History(c *gin.Context) {
	var q historyQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.auditService.History(c.Request.Context(), appaudit.HistoryQuery{
		AggregateType: q.AggregateType,
		AggregateID:   uuid.MustParse(q.AggregateID),
	}, q.ListQuery)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeList(&h.BaseHandler, c, page)
}
