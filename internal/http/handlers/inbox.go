package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studora/studora-backend/internal/http/response"
	"github.com/studora/studora-backend/internal/requestdata"
	"github.com/studora/studora-backend/internal/services"
)

type InboxHandler struct {
	inboxService services.InboxService
}

func NewInboxHandler(inboxService services.InboxService) *InboxHandler {
	return &InboxHandler{inboxService: inboxService}
}

// GET /api/notifications?limit=50
func (h *InboxHandler) ListNotifications(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.inboxService.List(c.Request.Context(), rd.UserID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"notifications": notifications})
}

// POST /api/notifications/read
// body: { "ids": ["..."] }
func (h *InboxHandler) MarkRead(c *gin.Context) {
	var req struct {
		IDs []uuid.UUID `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.inboxService.MarkRead(c.Request.Context(), req.IDs); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
