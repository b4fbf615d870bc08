package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	types "github.com/studora/studora-backend/internal/domain"
	httpH "github.com/studora/studora-backend/internal/http/handlers"
	httpMW "github.com/studora/studora-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	CourseHandler   *httpH.CourseHandler
	DraftHandler    *httpH.DraftHandler
	InboxHandler    *httpH.InboxHandler
	RealtimeHandler *httpH.RealtimeHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware("studora-backend"))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
		}

		// Catalog
		if cfg.CourseHandler != nil {
			protected.GET("/courses/mine", cfg.CourseHandler.ListMyCourses)
			protected.GET("/courses/:id", cfg.CourseHandler.GetCourse)
			protected.GET("/sections/:id/progress", cfg.CourseHandler.GetSectionProgress)
		}

		// Drafts
		if cfg.DraftHandler != nil && cfg.AuthMiddleware != nil {
			tutor := cfg.AuthMiddleware.RequireRole(types.RoleTutor, types.RoleAdmin)
			admin := cfg.AuthMiddleware.RequireRole(types.RoleAdmin)

			protected.POST("/courses/:id/draft", tutor, cfg.DraftHandler.CreateDraft)
			protected.GET("/drafts/:id", tutor, cfg.DraftHandler.GetDraft)
			protected.POST("/drafts/:id/submit", tutor, cfg.DraftHandler.SubmitDraft)
			protected.POST("/drafts/:id/reject", admin, cfg.DraftHandler.RejectDraft)
			protected.POST("/drafts/:id/publish", admin, cfg.DraftHandler.PublishDraft)
		}

		// Notifications
		if cfg.InboxHandler != nil {
			protected.GET("/notifications", cfg.InboxHandler.ListNotifications)
			protected.POST("/notifications/read", cfg.InboxHandler.MarkRead)
		}
	}

	return r
}
