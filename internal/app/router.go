package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/studora/studora-backend/internal/http"
	httpMW "github.com/studora/studora-backend/internal/http/middleware"
	"github.com/studora/studora-backend/internal/platform/logger"
)

func wireMiddleware(log *logger.Logger, s Services) *httpMW.AuthMiddleware {
	log.Info("Wiring middleware...")
	return httpMW.NewAuthMiddleware(s.Auth, log)
}

func wireRouter(h Handlers, authMW *httpMW.AuthMiddleware) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		AuthHandler:     h.Auth,
		AuthMiddleware:  authMW,
		CourseHandler:   h.Course,
		DraftHandler:    h.Draft,
		InboxHandler:    h.Inbox,
		RealtimeHandler: h.Realtime,
		HealthHandler:   h.Health,
	})
}
