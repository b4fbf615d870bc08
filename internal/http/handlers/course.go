package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studora/studora-backend/internal/http/response"
	"github.com/studora/studora-backend/internal/requestdata"
	"github.com/studora/studora-backend/internal/services"
)

type CourseHandler struct {
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// GET /api/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	course, err := h.courseService.GetWithCurriculum(c.Request.Context(), courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"course": course})
}

// GET /api/courses/mine
func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	courses, err := h.courseService.GetByTutor(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"courses": courses})
}

// GET /api/sections/:id/progress
func (h *CourseHandler) GetSectionProgress(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	fraction, err := h.courseService.GetSectionProgress(c.Request.Context(), rd.UserID, sectionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": fraction})
}
