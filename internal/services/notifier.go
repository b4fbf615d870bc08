package services

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	notifrepo "github.com/studora/studora-backend/internal/data/repos/notification"
	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/platform/logger"
	"github.com/studora/studora-backend/internal/realtime"
)

// CourseNotifier delivers publish-related notifications over every
// configured channel: a persisted inbox row, an SSE event, and email.
// Delivery is best effort; failures are logged and never surface to
// the caller, so a publish that already committed stays committed.
type CourseNotifier interface {
	CourseUpdated(ctx context.Context, learners []*types.User, course *types.Course, summary string)
	DraftApproved(ctx context.Context, tutor *types.User, course *types.Course)
	DraftRejected(ctx context.Context, tutor *types.User, course *types.Course, note string)
}

type courseNotifier struct {
	log              *logger.Logger
	notificationRepo notifrepo.NotificationRepo
	emit             SSEEmitter
	mailer           Mailer
}

// NewCourseNotifier accepts nil collaborators; whichever channel is
// missing is simply skipped.
func NewCourseNotifier(
	notificationRepo notifrepo.NotificationRepo,
	emit SSEEmitter,
	mailer Mailer,
	baseLog *logger.Logger,
) CourseNotifier {
	return &courseNotifier{
		log:              baseLog.With("service", "CourseNotifier"),
		notificationRepo: notificationRepo,
		emit:             emit,
		mailer:           mailer,
	}
}

func (n *courseNotifier) CourseUpdated(ctx context.Context, learners []*types.User, course *types.Course, summary string) {
	if len(learners) == 0 {
		return
	}

	title := fmt.Sprintf("%q was updated", course.Title)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, learner := range learners {
		learner := learner
		g.Go(func() error {
			n.deliver(gctx, learner, &types.Notification{
				UserID:   learner.ID,
				Type:     types.NotificationCourseUpdated,
				Title:    title,
				Body:     summary,
				LinkPath: "/courses/" + course.ID.String(),
				Payload:  notificationPayload(course, summary),
			}, realtime.SSEEventCourseUpdated)
			return nil
		})
	}
	_ = g.Wait()
	n.log.Info("course update fan-out finished", "course_id", course.ID, "learners", len(learners))
}

func (n *courseNotifier) DraftApproved(ctx context.Context, tutor *types.User, course *types.Course) {
	if tutor == nil {
		return
	}
	n.deliver(ctx, tutor, &types.Notification{
		UserID:   tutor.ID,
		Type:     types.NotificationDraftApproved,
		Title:    fmt.Sprintf("Your draft for %q was approved and published", course.Title),
		Body:     "The changes from your draft are now live.\n",
		LinkPath: "/courses/" + course.ID.String(),
		Payload:  notificationPayload(course, ""),
	}, realtime.SSEEventDraftApproved)
}

func (n *courseNotifier) DraftRejected(ctx context.Context, tutor *types.User, course *types.Course, note string) {
	if tutor == nil {
		return
	}
	body := "Your draft was sent back for changes.\n"
	if note != "" {
		body += note + "\n"
	}
	n.deliver(ctx, tutor, &types.Notification{
		UserID:   tutor.ID,
		Type:     types.NotificationDraftRejected,
		Title:    fmt.Sprintf("Your draft for %q was rejected", course.Title),
		Body:     body,
		LinkPath: "/courses/" + course.ID.String() + "/draft",
		Payload:  notificationPayload(course, note),
	}, realtime.SSEEventDraftRejected)
}

// deliver writes the inbox row, then emits SSE, then mails. Each step
// is independent; one failing channel never blocks the others.
func (n *courseNotifier) deliver(ctx context.Context, user *types.User, notification *types.Notification, event realtime.SSEEvent) {
	if n.notificationRepo != nil {
		if _, err := n.notificationRepo.Create(ctx, nil, []*types.Notification{notification}); err != nil {
			n.log.Warn("failed to persist notification", "user_id", user.ID, "type", notification.Type, "error", err)
		}
	}
	if n.emit != nil {
		n.emit.Emit(ctx, realtime.SSEMessage{
			Channel: realtime.UserChannel(user.ID),
			Event:   event,
			Data:    notification,
		})
	}
	if n.mailer != nil {
		name := user.FirstName + " " + user.LastName
		if err := n.mailer.Send(ctx, name, user.Email, notification.Title, notification.Body); err != nil {
			n.log.Warn("failed to send notification email", "user_id", user.ID, "error", err)
		}
	}
}

func notificationPayload(course *types.Course, summary string) datatypes.JSON {
	raw, err := json.Marshal(map[string]any{
		"course_id":    course.ID,
		"course_title": course.Title,
		"summary":      summary,
	})
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
