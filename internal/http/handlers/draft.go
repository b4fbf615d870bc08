package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studora/studora-backend/internal/http/response"
	"github.com/studora/studora-backend/internal/requestdata"
	"github.com/studora/studora-backend/internal/services"
)

type DraftHandler struct {
	draftService   services.CourseDraftService
	publishService services.CoursePublishService
}

func NewDraftHandler(draftService services.CourseDraftService, publishService services.CoursePublishService) *DraftHandler {
	return &DraftHandler{
		draftService:   draftService,
		publishService: publishService,
	}
}

// POST /api/courses/:id/draft
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	draft, err := h.draftService.CreateFromCourse(c.Request.Context(), courseID, rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"draft": draft})
}

// GET /api/drafts/:id
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	draft, err := h.draftService.GetWithCurriculum(c.Request.Context(), draftID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"draft": draft})
}

// POST /api/drafts/:id/submit
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.draftService.Submit(c.Request.Context(), draftID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/drafts/:id/reject
// body: { "note": "..." }
func (h *DraftHandler) RejectDraft(c *gin.Context) {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.draftService.Reject(c.Request.Context(), draftID, req.Note); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/drafts/:id/publish
func (h *DraftHandler) PublishDraft(c *gin.Context) {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	result, err := h.publishService.Publish(c.Request.Context(), draftID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"course":            result.Course,
		"summary":           result.Summary,
		"notified_learners": result.NotifiedLearners,
	})
}
