package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studora/studora-backend/internal/domain/catalog"
	"github.com/studora/studora-backend/internal/http/response"
	"github.com/studora/studora-backend/internal/services"
)

// respondServiceError maps domain errors onto HTTP statuses: missing
// resources 404, state conflicts 409, structural draft corruption 422,
// everything else 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrCourseNotFound), errors.Is(err, catalog.ErrDraftNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, catalog.ErrDraftNotPending),
		errors.Is(err, catalog.ErrDraftNotEditing),
		errors.Is(err, catalog.ErrDraftAlreadyOpen),
		errors.Is(err, catalog.ErrCourseNotApproved):
		response.RespondError(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, services.ErrEmailTaken):
		response.RespondError(c, http.StatusConflict, "email_taken", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
	default:
		var structural *catalog.StructuralError
		if errors.As(err, &structural) {
			response.RespondError(c, http.StatusUnprocessableEntity, "structural_error", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
