package repositories

import (
	"context"

	"github.com/campuscope/campuscope/internal/app/models"
)

// UserRepository stores accounts.
// Lookups of a missing user return apperrors.ErrUserNotFound.
type UserRepository interface {
	// FindUserByEmail matches the stored email exactly, without normalization
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	// FindUsersByIDs returns the users that exist among ids, keyed by id
	FindUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	// CreateUser assigns id and createdAt when unset, defaults the role to USER
	// and fails with apperrors.ErrEmailAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// UpdateUser merges the set fields of update onto the stored user
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)
}
