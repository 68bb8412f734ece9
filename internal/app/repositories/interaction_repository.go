package repositories

import (
	"context"

	"github.com/campuscope/campuscope/internal/app/models"
)

// InteractionRepository stores comments, reactions and bookmarks on reviews.
// Operations on a missing review return apperrors.ErrReviewNotFound.
type InteractionRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	// ListCommentsByReviewID returns comments oldest first
	ListCommentsByReviewID(ctx context.Context, reviewID string) ([]*models.Comment, error)
	CountCommentsByReviewIDs(ctx context.Context, reviewIDs []string) (map[string]int, error)

	// ToggleReaction adds the (user, review, emoji) reaction when absent and removes it when present,
	// keeping the review's counter in step. It returns the affected reaction and whether it now exists.
	ToggleReaction(ctx context.Context, userID, reviewID, emoji string) (*models.Reaction, bool, error)
	ListReactionsByReviewID(ctx context.Context, reviewID string) ([]*models.Reaction, error)

	// ToggleBookmark returns true when a bookmark now exists and false when it was removed
	ToggleBookmark(ctx context.Context, userID, reviewID string) (bool, error)
	// ListBookmarksByUserID returns bookmarks newest first
	ListBookmarksByUserID(ctx context.Context, userID string) ([]*models.Bookmark, error)
	IsBookmarked(ctx context.Context, userID, reviewID string) (bool, error)
}
