package memory

import (
	"context"
	"time"

	"github.com/campuscope/campuscope/internal/app/models"
)

func (s *Store) CreateNotification(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := *notification
	n.ID = s.idOr(n.ID)
	n.CreatedAt = s.timeOr(n.CreatedAt)

	s.notifs[n.ID] = &n
	s.notifsByUser[n.UserID] = append(s.notifsByUser[n.UserID], n.ID)
	out := n
	return &out, nil
}

func (s *Store) ListNotificationsByUserID(ctx context.Context, userID string) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.notifsByUser[userID]
	out := make([]*models.Notification, 0, len(ids))
	for _, id := range ids {
		n := *s.notifs[id]
		out = append(out, &n)
	}
	newestFirst(out,
		func(n *models.Notification) time.Time { return n.CreatedAt },
		func(n *models.Notification) string { return n.ID })
	return out, nil
}

func (s *Store) MarkNotificationsAsRead(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.notifsByUser[userID] {
		s.notifs[id].Read = true
	}
	return nil
}
