package auth

import (
	"context"
	"fmt"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// AuthorizationService decides who may change which review
type AuthorizationService struct {
	userRepo   repositories.UserRepository
	reviewRepo repositories.ReviewRepository
	logger     zerolog.Logger
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.UserRepository, reviewRepo repositories.ReviewRepository, logger zerolog.Logger) *AuthorizationService {
	return &AuthorizationService{
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		logger:     logger,
	}
}

// IsAdmin checks the stored role of the user
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// CanModifyReview loads the review and returns it when userID owns it
func (s *AuthorizationService) CanModifyReview(ctx context.Context, reviewID, userID string) (*models.Review, error) {
	review, err := s.reviewRepo.FindReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		s.logger.Warn().Str("reviewID", reviewID).Str("userID", userID).Msg("Review update by non-owner rejected")
		return nil, apperrors.NewForbiddenError("You can only edit your own reviews")
	}
	return review, nil
}

// CanDeleteReview loads the review and returns it when userID owns it or is an admin
func (s *AuthorizationService) CanDeleteReview(ctx context.Context, reviewID, userID string) (*models.Review, error) {
	review, err := s.reviewRepo.FindReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID == userID {
		return review, nil
	}

	admin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checking admin role: %w", err)
	}
	if !admin {
		s.logger.Warn().Str("reviewID", reviewID).Str("userID", userID).Msg("Review deletion by non-owner rejected")
		return nil, apperrors.NewForbiddenError("You can only delete your own reviews")
	}
	return review, nil
}
