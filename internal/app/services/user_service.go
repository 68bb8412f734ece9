package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/avatar"
	"github.com/campuscope/campuscope/internal/pkg/realtime"
	"github.com/campuscope/campuscope/internal/pkg/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserService manages the session user's own account
type UserService struct {
	userRepo    repositories.UserRepository
	broadcaster Broadcaster
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, broadcaster Broadcaster, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo:    userRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// GetMe returns the session user
func (s *UserService) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// SetAnonymity switches the global anonymity preference.
// Enabling requires a username and fills in the default avatar when none is stored;
// disabling clears the username.
func (s *UserService) SetAnonymity(ctx context.Context, userID string, isAnonymous bool, username string) (*dto.UserResponse, error) {
	username = strings.TrimSpace(username)
	if isAnonymous && username == "" {
		return nil, apperrors.NewValidationError("username", "Username is required for anonymous users")
	}
	if err := checkLength("username", "Username", username, validation.UsernameMaxLength); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	update := models.UserUpdate{IsAnonymous: &isAnonymous}
	if isAnonymous {
		update.Username = &username
		if user.AvatarStyle == "" {
			style := models.DefaultAvatarStyle
			update.AvatarStyle = &style
		}
		if user.AvatarColor == "" {
			color := models.DefaultAvatarColor
			update.AvatarColor = &color
		}
	} else {
		cleared := ""
		update.Username = &cleared
	}

	updated, err := s.userRepo.UpdateUser(ctx, userID, update)
	if err != nil {
		return nil, fmt.Errorf("updating anonymity: %w", err)
	}

	s.logger.Info().Str("userID", userID).Bool("isAnonymous", isAnonymous).Msg("Anonymity preference changed")
	return dto.NewUserResponse(updated), nil
}

// UpdateProfile merges the provided profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	update, err := profileUpdate(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.UpdateUser(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Invalidate(realtime.DashboardView(userID))
	return dto.NewUserResponse(updated), nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func profileUpdate(req *dto.UpdateProfileRequest) (models.UserUpdate, error) {
	update := models.UserUpdate{
		Name:     trimmed(req.Name),
		Bio:      trimmed(req.Bio),
		Location: trimmed(req.Location),
		Website:  trimmed(req.Website),
	}

	if update.Name != nil && *update.Name == "" {
		return update, apperrors.NewValidationError("name", "Name cannot be empty")
	}
	if req.AvatarStyle != nil {
		if !req.AvatarStyle.Valid() {
			return update, apperrors.NewValidationError("avatarStyle", "Unknown avatar style")
		}
		update.AvatarStyle = req.AvatarStyle
	}
	if req.AvatarColor != nil {
		if !req.AvatarColor.Valid() {
			return update, apperrors.NewValidationError("avatarColor", "Unknown avatar color")
		}
		update.AvatarColor = req.AvatarColor
	}

	if req.Skills != nil {
		skills := make([]string, 0, len(req.Skills))
		seen := make(map[string]struct{}, len(req.Skills))
		for _, skill := range req.Skills {
			skill = strings.TrimSpace(skill)
			key := strings.ToLower(skill)
			if _, dup := seen[key]; skill == "" || dup {
				continue
			}
			seen[key] = struct{}{}
			skills = append(skills, skill)
		}
		update.Skills = &skills
	}

	if req.SocialLinks != nil {
		links := make([]models.SocialLink, 0, len(req.SocialLinks))
		for _, l := range req.SocialLinks {
			links = append(links, models.SocialLink{
				Platform: strings.TrimSpace(l.Platform),
				URL:      strings.TrimSpace(l.URL),
			})
		}
		update.SocialLinks = &links
	}

	if req.Education != nil {
		education := make([]models.Education, 0, len(req.Education))
		for _, e := range req.Education {
			entry := models.Education{
				ID:          e.ID,
				Institution: strings.TrimSpace(e.Institution),
				Degree:      strings.TrimSpace(e.Degree),
				Field:       strings.TrimSpace(e.Field),
				StartYear:   e.StartYear,
				EndYear:     e.EndYear,
				Current:     e.Current,
			}
			if entry.ID == "" {
				entry.ID = uuid.NewString()
			}
			if entry.Current {
				entry.EndYear = nil
			}
			if entry.EndYear != nil && entry.StartYear != 0 && *entry.EndYear < entry.StartYear {
				return update, apperrors.NewValidationError("education", "End year cannot be before start year")
			}
			education = append(education, entry)
		}
		update.Education = &education
	}

	return update, nil
}

// Completeness scores the session user's profile against the nine checklist items
func (s *UserService) Completeness(ctx context.Context, userID string) (*dto.CompletenessResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ProfileCompleteness(user), nil
}

// ProfileCompleteness builds the checklist for u
func ProfileCompleteness(u *models.User) *dto.CompletenessResponse {
	hasLinkURL := false
	for _, l := range u.SocialLinks {
		if l.URL != "" {
			hasLinkURL = true
			break
		}
	}

	items := []dto.CompletenessItem{
		{Key: "avatar", Label: "Profile picture", Completed: u.AvatarStyle != "" || !u.IsAnonymous},
		{Key: "name", Label: "Name", Completed: u.Name != ""},
		{Key: "email", Label: "Email", Completed: u.Email != ""},
		{Key: "bio", Label: "Bio", Completed: u.Bio != ""},
		{Key: "location", Label: "Location", Completed: u.Location != ""},
		{Key: "education", Label: "Education history", Completed: len(u.Education) > 0},
		{Key: "skills", Label: "Skills & interests", Completed: len(u.Skills) > 0},
		{Key: "website", Label: "Website", Completed: u.Website != ""},
		{Key: "socialLinks", Label: "Social links", Completed: hasLinkURL},
	}

	completed := 0
	for _, item := range items {
		if item.Completed {
			completed++
		}
	}

	return &dto.CompletenessResponse{
		Percentage: int(math.Round(float64(completed) / float64(len(items)) * 100)),
		Completed:  completed,
		Total:      len(items),
		Items:      items,
	}
}

// AvatarPreview renders an avatar without storing anything
func (s *UserService) AvatarPreview(seed string, style models.AvatarStyle, color models.AvatarColor) (*dto.AvatarResponse, error) {
	if style != "" && !style.Valid() {
		return nil, apperrors.NewValidationError("style", "Unknown avatar style")
	}
	if color != "" && !color.Valid() {
		return nil, apperrors.NewValidationError("color", "Unknown avatar color")
	}
	return avatarResponse(avatar.Render(strings.TrimSpace(seed), style, color)), nil
}
