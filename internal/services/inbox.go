package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	notifrepo "github.com/studora/studora-backend/internal/data/repos/notification"
	types "github.com/studora/studora-backend/internal/domain"
	"github.com/studora/studora-backend/internal/platform/logger"
)

// InboxService reads the persisted notification feed.
type InboxService interface {
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Notification, error)
	MarkRead(ctx context.Context, notificationIDs []uuid.UUID) error
}

type inboxService struct {
	log              *logger.Logger
	notificationRepo notifrepo.NotificationRepo
}

func NewInboxService(notificationRepo notifrepo.NotificationRepo, baseLog *logger.Logger) InboxService {
	return &inboxService{
		log:              baseLog.With("service", "InboxService"),
		notificationRepo: notificationRepo,
	}
}

func (s *inboxService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	notifications, err := s.notificationRepo.GetByUserID(ctx, nil, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	return notifications, nil
}

func (s *inboxService) MarkRead(ctx context.Context, notificationIDs []uuid.UUID) error {
	if len(notificationIDs) == 0 {
		return nil
	}
	if err := s.notificationRepo.MarkRead(ctx, nil, notificationIDs); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}
