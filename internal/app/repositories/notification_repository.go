package repositories

import (
	"context"

	"github.com/campuscope/campuscope/internal/app/models"
)

// NotificationRepository stores user notifications
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	// ListNotificationsByUserID returns notifications newest first
	ListNotificationsByUserID(ctx context.Context, userID string) ([]*models.Notification, error)
	// MarkNotificationsAsRead flips every notification of the user to read
	MarkNotificationsAsRead(ctx context.Context, userID string) error
}
