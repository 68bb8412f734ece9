package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/campuscope/campuscope/internal/app/auth"
	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/helpers"
	"github.com/campuscope/campuscope/internal/pkg/realtime"
	"github.com/campuscope/campuscope/internal/pkg/tags"
	"github.com/campuscope/campuscope/internal/pkg/validation"
	"github.com/rs/zerolog"
)

const (
	// TrendingReviewsLimit is the size of the trending reviews strip
	TrendingReviewsLimit = 5

	maxEmojiRunes = 8
)

// Reactions counted by the "spicy" sort
var spicyEmojis = []string{"🔥", "💀"}

// ReviewService handles reviews and the interactions on them
type ReviewService struct {
	reviewRepo       repositories.ReviewRepository
	collegeRepo      repositories.CollegeRepository
	interactionRepo  repositories.InteractionRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	authz            *auth.AuthorizationService
	presenter        *presenter
	broadcaster      Broadcaster
	logger           zerolog.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	repos *repositories.Repositories,
	authz *auth.AuthorizationService,
	broadcaster Broadcaster,
	logger zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:       repos.Review,
		collegeRepo:      repos.College,
		interactionRepo:  repos.Interaction,
		userRepo:         repos.User,
		notificationRepo: repos.Notification,
		authz:            authz,
		presenter:        newPresenter(repos.User, repos.Interaction),
		broadcaster:      broadcaster,
		logger:           logger,
	}
}

func parseRating(raw string) (float64, error) {
	rating, err := validation.ParseRating(raw)
	if err != nil {
		return 0, apperrors.NewValidationError("rating", err.Error())
	}
	return rating, nil
}

// checkLength bounds free text in characters
func checkLength(field, label, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return apperrors.NewValidationError(field, fmt.Sprintf("%s must be at most %d characters", label, max))
	}
	return nil
}

func normalizeTags(raw []string) ([]string, error) {
	normalized := tags.Normalize(raw)
	if len(normalized) > tags.MaxTags {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("At most %d tags are allowed", tags.MaxTags)).
			WithField("tags").
			WithDetails(map[string]interface{}{"max": tags.MaxTags, "given": len(normalized)})
	}
	return normalized, nil
}

// Submit publishes a new review of a college
func (s *ReviewService) Submit(ctx context.Context, userID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	collegeID := strings.TrimSpace(req.CollegeID)
	content := strings.TrimSpace(req.Content)
	departmentID := strings.TrimSpace(req.DepartmentID)

	if collegeID == "" {
		return nil, apperrors.NewValidationError("collegeId", "College is required")
	}
	if content == "" {
		return nil, apperrors.NewValidationError("content", "Review content is required")
	}
	if err := checkLength("content", "Review content", content, validation.ReviewMaxLength); err != nil {
		return nil, err
	}
	rating, err := parseRating(req.Rating.String())
	if err != nil {
		return nil, err
	}
	reviewTags, err := normalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	if _, err := s.collegeRepo.FindCollegeByID(ctx, collegeID); err != nil {
		return nil, err
	}
	if departmentID != "" {
		department, err := s.collegeRepo.FindDepartmentByID(ctx, departmentID)
		if err != nil {
			return nil, err
		}
		if department.CollegeID != collegeID {
			return nil, apperrors.NewValidationError("departmentId", "Department does not belong to this college")
		}
	}

	review, err := s.reviewRepo.CreateReview(ctx, &models.Review{
		UserID:       userID,
		CollegeID:    collegeID,
		DepartmentID: departmentID,
		Content:      content,
		Rating:       rating,
		IsAnonymous:  req.IsAnonymous,
		Tags:         reviewTags,
	})
	if err != nil {
		return nil, fmt.Errorf("creating review: %w", err)
	}

	resp, err := s.presenter.Review(ctx, review)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("reviewID", review.ID).Str("collegeID", collegeID).Msg("Review submitted")
	s.broadcaster.Invalidate(CollegeView(collegeID))
	s.broadcaster.Publish(realtime.FeedView, realtime.EventReviewCreated, resp)
	return resp, nil
}

// Get returns one review. A non-empty viewerID adds the viewer's bookmark and reactions.
func (s *ReviewService) Get(ctx context.Context, reviewID, viewerID string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	resp, err := s.presenter.Review(ctx, review)
	if err != nil || viewerID == "" {
		return resp, err
	}

	bookmarked, err := s.interactionRepo.IsBookmarked(ctx, viewerID, reviewID)
	if err != nil {
		return nil, fmt.Errorf("checking bookmark: %w", err)
	}
	reactions, err := s.interactionRepo.ListReactionsByReviewID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("listing reactions: %w", err)
	}

	resp.Bookmarked = &bookmarked
	resp.MyReactions = []string{}
	for _, r := range reactions {
		if r.UserID == viewerID {
			resp.MyReactions = append(resp.MyReactions, r.Emoji)
		}
	}
	return resp, nil
}

// Update edits a review owned by userID. Omitted fields are left unchanged.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	if _, err := s.authz.CanModifyReview(ctx, reviewID, userID); err != nil {
		return nil, err
	}

	var update models.ReviewUpdate
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, apperrors.NewValidationError("content", "Review content cannot be empty")
		}
		if err := checkLength("content", "Review content", content, validation.ReviewMaxLength); err != nil {
			return nil, err
		}
		update.Content = &content
	}
	if req.Rating != "" {
		rating, err := parseRating(req.Rating.String())
		if err != nil {
			return nil, err
		}
		update.Rating = &rating
	}
	update.IsAnonymous = req.IsAnonymous
	if req.Tags != nil {
		reviewTags, err := normalizeTags(req.Tags)
		if err != nil {
			return nil, err
		}
		update.Tags = &reviewTags
	}

	review, err := s.reviewRepo.UpdateReview(ctx, reviewID, update)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Invalidate(CollegeView(review.CollegeID), realtime.DashboardView(review.UserID))
	return s.presenter.Review(ctx, review)
}

// Delete removes a review along with its comments, reactions and bookmarks
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	review, err := s.authz.CanDeleteReview(ctx, reviewID, userID)
	if err != nil {
		return err
	}
	if err := s.reviewRepo.DeleteReview(ctx, reviewID); err != nil {
		return err
	}

	s.logger.Info().Str("reviewID", reviewID).Str("userID", userID).Msg("Review deleted")
	s.broadcaster.Invalidate(CollegeView(review.CollegeID), realtime.DashboardView(review.UserID))
	return nil
}

// displayName is how the actor of a notification is named to the recipient
func (s *ReviewService) displayName(ctx context.Context, userID string) string {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "Someone"
	}
	return userAuthor(user).DisplayName
}

// notify records a notification for the review owner unless they acted on their own review.
// Failures are logged; the triggering action has already happened.
func (s *ReviewService) notify(ctx context.Context, review *models.Review, actorID string, kind models.NotificationType, message, relatedID string) {
	if review.UserID == actorID {
		return
	}
	_, err := s.notificationRepo.CreateNotification(ctx, &models.Notification{
		UserID:    review.UserID,
		Type:      kind,
		Message:   message,
		RelatedID: relatedID,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("reviewID", review.ID).Msg("Failed to create notification")
		return
	}
	s.broadcaster.Invalidate(realtime.DashboardView(review.UserID))
}

// React toggles the user's emoji reaction on a review
func (s *ReviewService) React(ctx context.Context, userID, reviewID, emoji string) (*dto.ReactionResponse, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, apperrors.NewValidationError("emoji", "Emoji is required")
	}
	if utf8.RuneCountInString(emoji) > maxEmojiRunes {
		return nil, apperrors.NewValidationError("emoji", "Emoji is too long")
	}

	reaction, added, err := s.interactionRepo.ToggleReaction(ctx, userID, reviewID, emoji)
	if err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.FindReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if added {
		message := fmt.Sprintf("%s reacted %s to your review", s.displayName(ctx, userID), emoji)
		s.notify(ctx, review, userID, models.NotificationReaction, message, reaction.ID)
	}

	s.broadcaster.Invalidate(CollegeView(review.CollegeID))
	return &dto.ReactionResponse{
		Reaction: reaction,
		Active:   added,
		Counts:   review.Reactions,
	}, nil
}

// AddComment appends a comment to a review
func (s *ReviewService) AddComment(ctx context.Context, userID, reviewID, content string) (*dto.CommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content", "Comment cannot be empty")
	}
	if err := checkLength("content", "Comment", content, validation.CommentMaxLength); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	comment, err := s.interactionRepo.CreateComment(ctx, &models.Comment{
		UserID:   userID,
		ReviewID: reviewID,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("%s commented on your review", s.displayName(ctx, userID))
	s.notify(ctx, review, userID, models.NotificationComment, message, comment.ID)
	s.broadcaster.Invalidate(CollegeView(review.CollegeID))

	out, err := s.presenter.Comments(ctx, []*models.Comment{comment})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Comments lists the comments of a review, oldest first
func (s *ReviewService) Comments(ctx context.Context, reviewID string) ([]*dto.CommentResponse, error) {
	if _, err := s.reviewRepo.FindReviewByID(ctx, reviewID); err != nil {
		return nil, err
	}
	comments, err := s.interactionRepo.ListCommentsByReviewID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return s.presenter.Comments(ctx, comments)
}

// ToggleBookmark saves or unsaves a review for userID
func (s *ReviewService) ToggleBookmark(ctx context.Context, userID, reviewID string) (*dto.BookmarkResponse, error) {
	bookmarked, err := s.interactionRepo.ToggleBookmark(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}
	s.broadcaster.Invalidate(realtime.DashboardView(userID))
	return &dto.BookmarkResponse{Bookmarked: bookmarked}, nil
}

// ListForCollege filters, sorts and pages the reviews of a college.
// A review matches the tag filter when it carries any of the requested tags.
func (s *ReviewService) ListForCollege(ctx context.Context, collegeID string, query *dto.ReviewListQuery, page, size int) (*dto.ReviewListResponse, error) {
	if _, err := s.collegeRepo.FindCollegeByID(ctx, collegeID); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListReviews(ctx, repositories.ReviewFilter{CollegeID: collegeID})
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}

	emoji := strings.TrimSpace(query.Emoji)
	wanted := tags.Split(query.Tags)

	filtered := reviews[:0]
	for _, r := range reviews {
		if emoji != "" && r.Reactions[emoji] <= 0 {
			continue
		}
		if len(wanted) > 0 && !hasAnyTag(r, wanted) {
			continue
		}
		filtered = append(filtered, r)
	}
	sortReviews(filtered, query.Sort)

	items, pagination := helpers.Paginate(filtered, page, size)
	presented, err := s.presenter.Reviews(ctx, items)
	if err != nil {
		return nil, err
	}
	return &dto.ReviewListResponse{Reviews: presented, Pagination: pagination}, nil
}

func hasAnyTag(r *models.Review, wanted []string) bool {
	for _, tag := range wanted {
		if r.HasTag(tag) {
			return true
		}
	}
	return false
}

func spice(r *models.Review) int {
	total := 0
	for _, emoji := range spicyEmojis {
		total += r.Reactions[emoji]
	}
	return total
}

// sortReviews orders reviews that arrive newest first. Ties keep that order.
func sortReviews(reviews []*models.Review, by string) {
	var less func(a, b *models.Review) bool
	switch by {
	case "highest":
		less = func(a, b *models.Review) bool { return a.Rating > b.Rating }
	case "lowest":
		less = func(a, b *models.Review) bool { return a.Rating < b.Rating }
	case "spicy":
		less = func(a, b *models.Review) bool { return spice(a) > spice(b) }
	case "trending":
		less = func(a, b *models.Review) bool { return a.TotalReactions() > b.TotalReactions() }
	default:
		return
	}
	sort.SliceStable(reviews, func(i, j int) bool { return less(reviews[i], reviews[j]) })
}

// Trending returns the most recent reviews across all colleges
func (s *ReviewService) Trending(ctx context.Context) ([]*dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.ListReviews(ctx, repositories.ReviewFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	if len(reviews) > TrendingReviewsLimit {
		reviews = reviews[:TrendingReviewsLimit]
	}
	return s.presenter.Reviews(ctx, reviews)
}

// ListByUser returns the reviews written by userID, newest first
func (s *ReviewService) ListByUser(ctx context.Context, userID string, page, size int) (*dto.ReviewListResponse, error) {
	reviews, err := s.reviewRepo.ListReviews(ctx, repositories.ReviewFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("listing user reviews: %w", err)
	}
	items, pagination := helpers.Paginate(reviews, page, size)
	presented, err := s.presenter.Reviews(ctx, items)
	if err != nil {
		return nil, err
	}
	return &dto.ReviewListResponse{Reviews: presented, Pagination: pagination}, nil
}

// Bookmarked returns the reviews userID bookmarked, most recently bookmarked first
func (s *ReviewService) Bookmarked(ctx context.Context, userID string, page, size int) (*dto.ReviewListResponse, error) {
	bookmarks, err := s.interactionRepo.ListBookmarksByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	if len(bookmarks) == 0 {
		items, pagination := helpers.Paginate([]*dto.ReviewResponse{}, page, size)
		return &dto.ReviewListResponse{Reviews: items, Pagination: pagination}, nil
	}

	ids := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		ids = append(ids, b.ReviewID)
	}
	reviews, err := s.reviewRepo.ListReviews(ctx, repositories.ReviewFilter{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("loading bookmarked reviews: %w", err)
	}

	byID := make(map[string]*models.Review, len(reviews))
	for _, r := range reviews {
		byID[r.ID] = r
	}
	ordered := make([]*models.Review, 0, len(reviews))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}

	items, pagination := helpers.Paginate(ordered, page, size)
	presented, err := s.presenter.Reviews(ctx, items)
	if err != nil {
		return nil, err
	}
	return &dto.ReviewListResponse{Reviews: presented, Pagination: pagination}, nil
}
