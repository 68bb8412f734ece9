package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/dberrors"
	"github.com/campuscope/campuscope/internal/pkg/helpers"
	"github.com/jackc/pgx/v5"
)

var userColumns = []string{
	"id", "name", "email", "password_hash", "created_at", "role", "is_anonymous",
	"username", "avatar_style", "avatar_color", "bio", "location", "website",
	"social_links", "skills", "education",
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u                      models.User
		username, style, color sql.NullString
		bio, location, website sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.Role, &u.IsAnonymous,
		&username, &style, &color, &bio, &location, &website,
		&u.SocialLinks, &u.Skills, &u.Education,
	)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.Username = helpers.StringFromNull(username)
	u.AvatarStyle = models.AvatarStyle(helpers.StringFromNull(style))
	u.AvatarColor = models.AvatarColor(helpers.StringFromNull(color))
	u.Bio = helpers.StringFromNull(bio)
	u.Location = helpers.StringFromNull(location)
	u.Website = helpers.StringFromNull(website)
	return &u, nil
}

func (s *Store) findUser(ctx context.Context, q querier, where squirrel.Sqlizer, forUpdate bool) (*models.User, error) {
	b := s.sb.Select(userColumns...).From("users").Where(where).Limit(1)
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := build("find user", b)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		s.logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return u, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, s.db.Pool, squirrel.Eq{"email": email}, false)
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, s.db.Pool, squirrel.Eq{"id": id}, false)
}

func (s *Store) FindUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := build("find users", s.sb.Select(userColumns...).From("users").Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	users, err := collect(rows, scanUser)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func userValues(u *models.User) map[string]any {
	return map[string]any{
		"name":          u.Name,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"role":          u.Role,
		"is_anonymous":  u.IsAnonymous,
		"username":      helpers.GetContentNullString(u.Username),
		"avatar_style":  helpers.GetContentNullString(string(u.AvatarStyle)),
		"avatar_color":  helpers.GetContentNullString(string(u.AvatarColor)),
		"bio":           helpers.GetContentNullString(u.Bio),
		"location":      helpers.GetContentNullString(u.Location),
		"website":       helpers.GetContentNullString(u.Website),
		"social_links":  nonNil(u.SocialLinks),
		"skills":        nonNil(u.Skills),
		"education":     nonNil(u.Education),
	}
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	u := user.Clone()
	u.ID = s.idOr(u.ID)
	u.CreatedAt = s.timeOr(u.CreatedAt)
	if u.Role == "" {
		u.Role = models.RoleUser
	}

	values := userValues(u)
	values["id"] = u.ID
	values["created_at"] = u.CreatedAt

	query, args, err := build("create user", s.sb.Insert("users").SetMap(values))
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Pool.Exec(ctx, query, args...); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintUsersEmail):
			return nil, apperrors.ErrEmailAlreadyExists
		case dberrors.IsUniqueViolation(err):
			return nil, apperrors.NewConflictError("user id already exists")
		}
		s.logger.Error().Err(err).Msg("Error executing create user query")
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	var updated *models.User
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		u, err := s.findUser(ctx, tx, squirrel.Eq{"id": id}, true)
		if err != nil {
			return err
		}
		update.Apply(u)

		query, args, err := build("update user", s.sb.Update("users").SetMap(userValues(u)).Where(squirrel.Eq{"id": id}))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
