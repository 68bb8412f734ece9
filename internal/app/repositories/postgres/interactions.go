package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
)

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(&c.ID, &c.UserID, &c.ReviewID, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func scanReaction(row pgx.Row) (*models.Reaction, error) {
	var r models.Reaction
	if err := row.Scan(&r.ID, &r.UserID, &r.ReviewID, &r.Emoji, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func scanBookmark(row pgx.Row) (*models.Bookmark, error) {
	var b models.Bookmark
	if err := row.Scan(&b.ID, &b.UserID, &b.ReviewID, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}

// lockReview takes a row lock on the review, serialising toggles on it
func (s *Store) lockReview(ctx context.Context, tx pgx.Tx, id string) (map[string]int, error) {
	query, args, err := build("lock review", s.sb.Select("reactions").From("reviews").Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
	if err != nil {
		return nil, err
	}
	var counts map[string]int
	if err := tx.QueryRow(ctx, query, args...).Scan(&counts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("error locking review: %w", err)
	}
	if counts == nil {
		counts = make(map[string]int)
	}
	return counts, nil
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	c := *comment
	c.ID = s.idOr(c.ID)
	c.CreatedAt = s.timeOr(c.CreatedAt)

	query, args, err := build("create comment", s.sb.Insert("comments").
		Columns("id", "user_id", "review_id", "content", "created_at").
		Values(c.ID, c.UserID, c.ReviewID, c.Content, c.CreatedAt))
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Pool.Exec(ctx, query, args...); err != nil {
		switch {
		case dberrors.IsForeignKeyError(err, dberrors.ConstraintCommentsReviewFK):
			return nil, apperrors.ErrReviewNotFound
		case dberrors.IsForeignKeyError(err, dberrors.ConstraintCommentsUserFK):
			return nil, apperrors.ErrUserNotFound
		}
		s.logger.Error().Err(err).Msg("Error executing create comment query")
		return nil, fmt.Errorf("error creating comment: %w", err)
	}
	return &c, nil
}

func (s *Store) ListCommentsByReviewID(ctx context.Context, reviewID string) ([]*models.Comment, error) {
	query, args, err := build("list comments", s.sb.Select("id", "user_id", "review_id", "content", "created_at").
		From("comments").
		Where(squirrel.Eq{"review_id": reviewID}).
		OrderBy("created_at ASC", "id ASC"))
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	return collect(rows, scanComment)
}

func (s *Store) CountCommentsByReviewIDs(ctx context.Context, reviewIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return out, nil
	}
	for _, id := range reviewIDs {
		out[id] = 0
	}

	query, args, err := build("count comments", s.sb.Select("review_id", "COUNT(*)").
		From("comments").
		Where(squirrel.Eq{"review_id": reviewIDs}).
		GroupBy("review_id"))
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error counting comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    string
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("error scanning comment count: %w", err)
		}
		out[id] = count
	}
	return out, rows.Err()
}

func (s *Store) ToggleReaction(ctx context.Context, userID, reviewID, emoji string) (*models.Reaction, bool, error) {
	var (
		reaction *models.Reaction
		active   bool
	)
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		counts, err := s.lockReview(ctx, tx, reviewID)
		if err != nil {
			return err
		}

		query, args, err := build("remove reaction", s.sb.Delete("reactions").
			Where(squirrel.Eq{"user_id": userID, "review_id": reviewID, "emoji": emoji}).
			Suffix("RETURNING id, user_id, review_id, emoji, created_at"))
		if err != nil {
			return err
		}
		removed, err := scanReaction(tx.QueryRow(ctx, query, args...))
		switch {
		case err == nil:
			reaction, active = removed, false
			counts[emoji]--
			if counts[emoji] <= 0 {
				delete(counts, emoji)
			}
		case errors.Is(err, pgx.ErrNoRows):
			reaction = &models.Reaction{
				ID:        s.newID(),
				UserID:    userID,
				ReviewID:  reviewID,
				Emoji:     emoji,
				CreatedAt: s.now(),
			}
			query, args, err := build("add reaction", s.sb.Insert("reactions").
				Columns("id", "user_id", "review_id", "emoji", "created_at").
				Values(reaction.ID, reaction.UserID, reaction.ReviewID, reaction.Emoji, reaction.CreatedAt))
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("error adding reaction: %w", err)
			}
			active = true
			counts[emoji]++
		default:
			return fmt.Errorf("error removing reaction: %w", err)
		}

		query, args, err = build("update reaction counts", s.sb.Update("reviews").
			Set("reactions", counts).
			Where(squirrel.Eq{"id": reviewID}))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("error updating reaction counts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return reaction, active, nil
}

func (s *Store) ListReactionsByReviewID(ctx context.Context, reviewID string) ([]*models.Reaction, error) {
	query, args, err := build("list reactions", s.sb.Select("id", "user_id", "review_id", "emoji", "created_at").
		From("reactions").
		Where(squirrel.Eq{"review_id": reviewID}).
		OrderBy("created_at DESC", "id ASC"))
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reactions: %w", err)
	}
	return collect(rows, scanReaction)
}

func (s *Store) ToggleBookmark(ctx context.Context, userID, reviewID string) (bool, error) {
	var bookmarked bool
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.lockReview(ctx, tx, reviewID); err != nil {
			return err
		}

		query, args, err := build("remove bookmark", s.sb.Delete("bookmarks").
			Where(squirrel.Eq{"user_id": userID, "review_id": reviewID}))
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("error removing bookmark: %w", err)
		}
		if tag.RowsAffected() > 0 {
			bookmarked = false
			return nil
		}

		query, args, err = build("add bookmark", s.sb.Insert("bookmarks").
			Columns("id", "user_id", "review_id", "created_at").
			Values(s.newID(), userID, reviewID, s.now()))
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("error adding bookmark: %w", err)
		}
		bookmarked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return bookmarked, nil
}

func (s *Store) ListBookmarksByUserID(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	query, args, err := build("list bookmarks", s.sb.Select("id", "user_id", "review_id", "created_at").
		From("bookmarks").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id ASC"))
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookmarks: %w", err)
	}
	return collect(rows, scanBookmark)
}

func (s *Store) IsBookmarked(ctx context.Context, userID, reviewID string) (bool, error) {
	query, args, err := build("is bookmarked", s.sb.Select("1").
		Prefix("SELECT EXISTS (").
		From("bookmarks").
		Where(squirrel.Eq{"user_id": userID, "review_id": reviewID}).
		Suffix(")"))
	if err != nil {
		return false, err
	}
	var exists bool
	if err := s.db.Pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking bookmark: %w", err)
	}
	return exists, nil
}
