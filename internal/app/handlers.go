package app

import (
	httpH "github.com/studora/studora-backend/internal/http/handlers"
	"github.com/studora/studora-backend/internal/platform/logger"
	"github.com/studora/studora-backend/internal/realtime"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	Course   *httpH.CourseHandler
	Draft    *httpH.DraftHandler
	Inbox    *httpH.InboxHandler
	Realtime *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, s Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Auth:     httpH.NewAuthHandler(s.Auth),
		Course:   httpH.NewCourseHandler(s.Course),
		Draft:    httpH.NewDraftHandler(s.Draft, s.Publish),
		Inbox:    httpH.NewInboxHandler(s.Inbox),
		Realtime: httpH.NewRealtimeHandler(hub, log),
	}
}
