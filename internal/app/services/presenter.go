package services

import (
	"context"
	"fmt"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/avatar"
)

// AnonymousName is shown in place of the author of an anonymous review
const AnonymousName = "Anonymous"

// presenter turns stored reviews and comments into what readers see
type presenter struct {
	userRepo        repositories.UserRepository
	interactionRepo repositories.InteractionRepository
}

func newPresenter(userRepo repositories.UserRepository, interactionRepo repositories.InteractionRepository) *presenter {
	return &presenter{userRepo: userRepo, interactionRepo: interactionRepo}
}

func avatarResponse(a avatar.Avatar) *dto.AvatarResponse {
	return &dto.AvatarResponse{
		Seed:       a.Seed,
		Style:      a.Style,
		Color:      a.Color,
		Text:       a.Text,
		Background: a.Background,
	}
}

// userAuthor presents u following the user's global anonymity preference.
// A pseudonym is never shown together with the account id.
func userAuthor(u *models.User) dto.AuthorResponse {
	if u == nil {
		return dto.AuthorResponse{DisplayName: "Deleted user"}
	}
	if u.IsAnonymous && u.Username != "" {
		return dto.AuthorResponse{
			DisplayName: u.Username,
			IsAnonymous: true,
			Avatar:      avatarResponse(avatar.Render(u.Username, u.AvatarStyle, u.AvatarColor)),
		}
	}
	return dto.AuthorResponse{
		UserID:      u.ID,
		DisplayName: u.Name,
		Avatar:      avatarResponse(avatar.Render(u.Name, models.AvatarStyleInitials, u.AvatarColor)),
	}
}

// reviewAuthor hides the author entirely when the review itself is anonymous
func reviewAuthor(r *models.Review, u *models.User) dto.AuthorResponse {
	if r.IsAnonymous {
		return dto.AuthorResponse{
			DisplayName: AnonymousName,
			IsAnonymous: true,
			Avatar:      avatarResponse(avatar.Render(r.ID, models.DefaultAvatarStyle, models.DefaultAvatarColor)),
		}
	}
	return userAuthor(u)
}

func reviewResponse(r *models.Review, author *models.User, commentCount int) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:           r.ID,
		CollegeID:    r.CollegeID,
		DepartmentID: r.DepartmentID,
		Content:      r.Content,
		Rating:       r.Rating,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		IsAnonymous:  r.IsAnonymous,
		Tags:         r.Tags,
		Reactions:    r.Reactions,
		Author:       reviewAuthor(r, author),
		CommentCount: commentCount,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if resp.Reactions == nil {
		resp.Reactions = map[string]int{}
	}
	return resp
}

// Reviews presents a batch of reviews with two lookups: authors and comment counts
func (p *presenter) Reviews(ctx context.Context, reviews []*models.Review) ([]*dto.ReviewResponse, error) {
	out := make([]*dto.ReviewResponse, 0, len(reviews))
	if len(reviews) == 0 {
		return out, nil
	}

	userIDs := make([]string, 0, len(reviews))
	reviewIDs := make([]string, 0, len(reviews))
	for _, r := range reviews {
		userIDs = append(userIDs, r.UserID)
		reviewIDs = append(reviewIDs, r.ID)
	}

	authors, err := p.userRepo.FindUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("loading review authors: %w", err)
	}
	counts, err := p.interactionRepo.CountCommentsByReviewIDs(ctx, reviewIDs)
	if err != nil {
		return nil, fmt.Errorf("counting comments: %w", err)
	}

	for _, r := range reviews {
		out = append(out, reviewResponse(r, authors[r.UserID], counts[r.ID]))
	}
	return out, nil
}

// Review presents a single review
func (p *presenter) Review(ctx context.Context, review *models.Review) (*dto.ReviewResponse, error) {
	out, err := p.Reviews(ctx, []*models.Review{review})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Comments presents comments with their authors
func (p *presenter) Comments(ctx context.Context, comments []*models.Comment) ([]*dto.CommentResponse, error) {
	userIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	authors, err := p.userRepo.FindUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("loading comment authors: %w", err)
	}

	out := make([]*dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, &dto.CommentResponse{
			ID:        c.ID,
			ReviewID:  c.ReviewID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Author:    userAuthor(authors[c.UserID]),
		})
	}
	return out, nil
}
