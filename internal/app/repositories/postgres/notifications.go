package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/dberrors"
	"github.com/campuscope/campuscope/internal/pkg/helpers"
	"github.com/jackc/pgx/v5"
)

var notificationColumns = []string{"id", "user_id", "type", "message", "read", "created_at", "related_id"}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var (
		n         models.Notification
		relatedID sql.NullString
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.Read, &n.CreatedAt, &relatedID); err != nil {
		return nil, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.RelatedID = helpers.StringFromNull(relatedID)
	return &n, nil
}

func (s *Store) CreateNotification(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	n := *notification
	n.ID = s.idOr(n.ID)
	n.CreatedAt = s.timeOr(n.CreatedAt)

	query, args, err := build("create notification", s.sb.Insert("notifications").Columns(notificationColumns...).Values(
		n.ID, n.UserID, n.Type, n.Message, n.Read, n.CreatedAt, helpers.GetContentNullString(n.RelatedID),
	))
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Pool.Exec(ctx, query, args...); err != nil {
		if dberrors.IsForeignKeyError(err, "") {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error creating notification: %w", err)
	}
	return &n, nil
}

func (s *Store) ListNotificationsByUserID(ctx context.Context, userID string) ([]*models.Notification, error) {
	query, args, err := build("list notifications", s.sb.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id ASC"))
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	return collect(rows, scanNotification)
}

func (s *Store) MarkNotificationsAsRead(ctx context.Context, userID string) error {
	query, args, err := build("mark notifications read", s.sb.Update("notifications").
		Set("read", true).
		Where(squirrel.Eq{"user_id": userID, "read": false}))
	if err != nil {
		return err
	}
	if _, err := s.db.Pool.Exec(ctx, query, args...); err != nil {
		s.logger.Error().Err(err).Str("userID", userID).Msg("Error marking notifications as read")
		return fmt.Errorf("error marking notifications as read: %w", err)
	}
	return nil
}
