package repositories

import (
	"context"

	"github.com/campuscope/campuscope/internal/app/models"
)

// ReviewFilter narrows ListReviews. Empty fields do not filter.
type ReviewFilter struct {
	CollegeID    string
	DepartmentID string
	UserID       string
	IDs          []string
}

// RatingGroup selects the key RatingStats aggregates by
type RatingGroup int

const (
	GroupByCollege RatingGroup = iota
	GroupByDepartment
)

// ReviewRepository stores reviews. It does not check ownership; callers authorize first.
type ReviewRepository interface {
	// CreateReview assigns id and timestamps when unset and starts with no reactions
	CreateReview(ctx context.Context, review *models.Review) (*models.Review, error)
	FindReviewByID(ctx context.Context, id string) (*models.Review, error)
	// ListReviews returns matching reviews, newest first
	ListReviews(ctx context.Context, filter ReviewFilter) ([]*models.Review, error)
	UpdateReview(ctx context.Context, id string, update models.ReviewUpdate) (*models.Review, error)
	// DeleteReview removes the review together with its comments, reactions and bookmarks
	DeleteReview(ctx context.Context, id string) error
	// RatingStats aggregates count and average rating of live reviews per college or department
	RatingStats(ctx context.Context, group RatingGroup) (map[string]models.RatingStats, error)
}
