package app

import (
	"gorm.io/gorm"

	"github.com/studora/studora-backend/internal/platform/logger"
	"github.com/studora/studora-backend/internal/realtime"
	"github.com/studora/studora-backend/internal/realtime/bus"
	"github.com/studora/studora-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Course   services.CourseService
	Draft    services.CourseDraftService
	Publish  services.CoursePublishService
	Inbox    services.InboxService
	Notifier services.CourseNotifier
	Mailer   services.Mailer
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, hub *realtime.SSEHub, sseBus bus.Bus) Services {
	log.Info("Wiring services...")

	var emitter services.SSEEmitter
	if sseBus != nil {
		emitter = &services.RedisEmitter{Bus: sseBus}
	} else {
		emitter = &services.HubEmitter{Hub: hub}
	}

	mailer := services.NewMailer(log)
	notifier := services.NewCourseNotifier(r.Notification, emitter, mailer, log)

	differ := services.NewCourseDiffer(log)
	applier := services.NewMergeApplier(r.Course, r.Section, r.Lesson, r.LessonResource, r.QuizQuestion, r.Progress, log)
	invalidator := services.NewProgressInvalidator(r.Lesson, r.Enrollment, r.Progress, log)

	return Services{
		Auth:     services.NewAuthService(db, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL, log),
		Course:   services.NewCourseService(r.Course, r.Progress, log),
		Draft:    services.NewCourseDraftService(db, r.Course, r.CourseDraft, r.User, notifier, log),
		Publish:  services.NewCoursePublishService(db, r.Course, r.CourseDraft, r.Enrollment, r.User, differ, applier, invalidator, notifier, log),
		Inbox:    services.NewInboxService(r.Notification, log),
		Notifier: notifier,
		Mailer:   mailer,
	}
}
