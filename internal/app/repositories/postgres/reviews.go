package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/dberrors"
	"github.com/campuscope/campuscope/internal/pkg/helpers"
	"github.com/jackc/pgx/v5"
)

var reviewColumns = []string{
	"id", "user_id", "college_id", "department_id", "content", "rating",
	"created_at", "updated_at", "is_anonymous", "tags", "reactions",
}

func scanReview(row pgx.Row) (*models.Review, error) {
	var (
		r            models.Review
		departmentID sql.NullString
	)
	err := row.Scan(
		&r.ID, &r.UserID, &r.CollegeID, &departmentID, &r.Content, &r.Rating,
		&r.CreatedAt, &r.UpdatedAt, &r.IsAnonymous, &r.Tags, &r.Reactions,
	)
	if err != nil {
		return nil, err
	}
	r.DepartmentID = helpers.StringFromNull(departmentID)
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	if r.Reactions == nil {
		r.Reactions = make(map[string]int)
	}
	return &r, nil
}

func (s *Store) findReview(ctx context.Context, q querier, id string, forUpdate bool) (*models.Review, error) {
	b := s.sb.Select(reviewColumns...).From("reviews").Where(squirrel.Eq{"id": id}).Limit(1)
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := build("get review", b)
	if err != nil {
		return nil, err
	}
	r, err := scanReview(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		s.logger.Error().Err(err).Str("reviewID", id).Msg("Error scanning review row")
		return nil, fmt.Errorf("error getting review by ID: %w", err)
	}
	return r, nil
}

func (s *Store) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	r := review.Clone()
	r.ID = s.idOr(r.ID)
	r.CreatedAt = s.timeOr(r.CreatedAt)
	r.UpdatedAt = r.CreatedAt
	r.Reactions = make(map[string]int)
	r.Tags = nonNil(r.Tags)

	query, args, err := build("create review", s.sb.Insert("reviews").Columns(reviewColumns...).Values(
		r.ID, r.UserID, r.CollegeID, helpers.GetContentNullString(r.DepartmentID), r.Content, r.Rating,
		r.CreatedAt, r.UpdatedAt, r.IsAnonymous, r.Tags, r.Reactions,
	))
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Pool.Exec(ctx, query, args...); err != nil {
		switch {
		case dberrors.IsForeignKeyError(err, dberrors.ConstraintReviewsCollegeFK):
			return nil, apperrors.ErrCollegeNotFound
		case dberrors.IsForeignKeyError(err, dberrors.ConstraintReviewsDeptFK):
			return nil, apperrors.ErrDepartmentNotFound
		case dberrors.IsForeignKeyError(err, dberrors.ConstraintReviewsUserFK):
			return nil, apperrors.ErrUserNotFound
		case dberrors.IsUniqueViolation(err):
			return nil, apperrors.NewConflictError("review already exists")
		}
		s.logger.Error().Err(err).Msg("Error executing create review query")
		return nil, fmt.Errorf("error creating review: %w", err)
	}
	return r, nil
}

func (s *Store) FindReviewByID(ctx context.Context, id string) (*models.Review, error) {
	return s.findReview(ctx, s.db.Pool, id, false)
}

func (s *Store) ListReviews(ctx context.Context, filter repositories.ReviewFilter) ([]*models.Review, error) {
	where := squirrel.And{}
	if len(filter.IDs) > 0 {
		where = append(where, squirrel.Eq{"id": filter.IDs})
	}
	if filter.CollegeID != "" {
		where = append(where, squirrel.Eq{"college_id": filter.CollegeID})
	}
	if filter.DepartmentID != "" {
		where = append(where, squirrel.Eq{"department_id": filter.DepartmentID})
	}
	if filter.UserID != "" {
		where = append(where, squirrel.Eq{"user_id": filter.UserID})
	}

	b := s.sb.Select(reviewColumns...).From("reviews").OrderBy("created_at DESC", "id ASC")
	if len(where) > 0 {
		b = b.Where(where)
	}
	query, args, err := build("list reviews", b)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error executing list reviews query")
		return nil, fmt.Errorf("error querying reviews: %w", err)
	}
	return collect(rows, scanReview)
}

func (s *Store) UpdateReview(ctx context.Context, id string, update models.ReviewUpdate) (*models.Review, error) {
	var updated *models.Review
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		r, err := s.findReview(ctx, tx, id, true)
		if err != nil {
			return err
		}
		update.Apply(r)
		r.Tags = nonNil(r.Tags)
		r.UpdatedAt = s.now()

		query, args, err := build("update review", s.sb.Update("reviews").SetMap(map[string]any{
			"content":      r.Content,
			"rating":       r.Rating,
			"is_anonymous": r.IsAnonymous,
			"tags":         r.Tags,
			"updated_at":   r.UpdatedAt,
		}).Where(squirrel.Eq{"id": id}))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("error updating review: %w", err)
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteReview relies on ON DELETE CASCADE for comments, reactions and bookmarks
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	query, args, err := build("delete review", s.sb.Delete("reviews").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return err
	}
	tag, err := s.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		s.logger.Error().Err(err).Str("reviewID", id).Msg("Error executing delete review query")
		return fmt.Errorf("error deleting review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReviewNotFound
	}
	return nil
}

func (s *Store) RatingStats(ctx context.Context, group repositories.RatingGroup) (map[string]models.RatingStats, error) {
	key := "college_id"
	if group == repositories.GroupByDepartment {
		key = "department_id"
	}

	query, args, err := build("rating stats", s.sb.Select(key, "COUNT(*)", "AVG(rating)").
		From("reviews").
		Where(squirrel.NotEq{key: nil}).
		GroupBy(key))
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying rating stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.RatingStats)
	for rows.Next() {
		var (
			id    string
			stats models.RatingStats
		)
		if err := rows.Scan(&id, &stats.Count, &stats.Average); err != nil {
			return nil, fmt.Errorf("error scanning rating stats: %w", err)
		}
		out[id] = stats
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating stats: %w", err)
	}
	return out, nil
}
