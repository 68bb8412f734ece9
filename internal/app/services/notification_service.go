package services

import (
	"context"
	"fmt"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/realtime"
	"github.com/rs/zerolog"
)

// NotificationService reads and acknowledges the session user's notifications
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	broadcaster      Broadcaster
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository, broadcaster Broadcaster, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		broadcaster:      broadcaster,
		logger:           logger,
	}
}

// List returns the user's notifications, newest first, with the unread count
func (s *NotificationService) List(ctx context.Context, userID string) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListNotificationsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	if notifications == nil {
		notifications = []*models.Notification{}
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}
	return &dto.NotificationListResponse{Notifications: notifications, UnreadCount: unread}, nil
}

// MarkAllRead flags every notification of the user as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkNotificationsAsRead(ctx, userID); err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	s.broadcaster.Invalidate(realtime.DashboardView(userID))
	return nil
}
