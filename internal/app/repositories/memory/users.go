package memory

import (
	"context"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
)

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userByEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return s.users[id].Clone(), nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (s *Store) FindUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u.Clone()
		}
	}
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.userByEmail[user.Email]; taken {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	u := user.Clone()
	u.ID = s.idOr(u.ID)
	if _, exists := s.users[u.ID]; exists {
		return nil, apperrors.NewConflictError("user id already exists")
	}
	u.CreatedAt = s.timeOr(u.CreatedAt)
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	s.users[u.ID] = u
	s.userByEmail[u.Email] = u.ID
	return u.Clone(), nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	update.Apply(u)
	return u.Clone(), nil
}
