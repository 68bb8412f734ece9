package dto

import (
	"time"

	"github.com/campuscope/campuscope/internal/app/models"
)

// AvatarResponse is a rendered avatar ready for display
type AvatarResponse struct {
	Seed       string             `json:"seed" example:"quietfox"`
	Style      models.AvatarStyle `json:"style" example:"gradient"`
	Color      models.AvatarColor `json:"color" example:"blue"`
	Text       string             `json:"text" example:"QU"`
	Background string             `json:"background" example:"from-blue-500 to-cyan-500"`
}

// UserResponse represents the authenticated user's own account
type UserResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Role        models.RoleType     `json:"role"`
	CreatedAt   time.Time           `json:"createdAt"`
	IsAnonymous bool                `json:"isAnonymous"`
	Username    string              `json:"username,omitempty"`
	AvatarStyle models.AvatarStyle  `json:"avatarStyle,omitempty"`
	AvatarColor models.AvatarColor  `json:"avatarColor,omitempty"`
	Bio         string              `json:"bio,omitempty"`
	Location    string              `json:"location,omitempty"`
	Website     string              `json:"website,omitempty"`
	SocialLinks []models.SocialLink `json:"socialLinks"`
	Skills      []string            `json:"skills"`
	Education   []models.Education  `json:"education"`
}

// NewUserResponse maps a user onto its response shape. The password hash never leaves the store.
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		IsAnonymous: u.IsAnonymous,
		Username:    u.Username,
		AvatarStyle: u.AvatarStyle,
		AvatarColor: u.AvatarColor,
		Bio:         u.Bio,
		Location:    u.Location,
		Website:     u.Website,
		SocialLinks: u.SocialLinks,
		Skills:      u.Skills,
		Education:   u.Education,
	}
	if resp.SocialLinks == nil {
		resp.SocialLinks = []models.SocialLink{}
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	if resp.Education == nil {
		resp.Education = []models.Education{}
	}
	return resp
}

// SetAnonymityRequest toggles the global anonymity preference
type SetAnonymityRequest struct {
	IsAnonymous *bool  `json:"isAnonymous" binding:"required"`
	Username    string `json:"username" binding:"omitempty,max=32"`
}

// SocialLinkRequest is one social link in a profile update
type SocialLinkRequest struct {
	Platform string `json:"platform" binding:"required"`
	URL      string `json:"url" binding:"omitempty,url"`
}

// EducationRequest is one education entry in a profile update
type EducationRequest struct {
	ID          string `json:"id"`
	Institution string `json:"institution" binding:"required"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartYear   int    `json:"startYear" binding:"omitempty,min=1900,max=2100"`
	EndYear     *int   `json:"endYear" binding:"omitempty,min=1900,max=2100"`
	Current     bool   `json:"current"`
}

// UpdateProfileRequest represents profile update data. Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Name        *string             `json:"name" binding:"omitempty,min=1"`
	Bio         *string             `json:"bio" binding:"omitempty,max=500"`
	Location    *string             `json:"location"`
	Website     *string             `json:"website" binding:"omitempty,url"`
	AvatarStyle *models.AvatarStyle `json:"avatarStyle" binding:"omitempty,avatarstyle"`
	AvatarColor *models.AvatarColor `json:"avatarColor" binding:"omitempty,avatarcolor"`
	Skills      []string            `json:"skills" binding:"omitempty,dive,required"`
	SocialLinks []SocialLinkRequest `json:"socialLinks" binding:"omitempty,dive"`
	Education   []EducationRequest  `json:"education" binding:"omitempty,dive"`
}

// CompletenessItem is one checklist entry of the profile completeness meter
type CompletenessItem struct {
	Key       string `json:"key" example:"bio"`
	Label     string `json:"label" example:"Bio"`
	Completed bool   `json:"completed"`
}

// CompletenessResponse summarises how complete a profile is
type CompletenessResponse struct {
	Percentage int                `json:"percentage" example:"67"`
	Completed  int                `json:"completed" example:"6"`
	Total      int                `json:"total" example:"9"`
	Items      []CompletenessItem `json:"items"`
}

// NotificationListResponse lists a user's notifications
type NotificationListResponse struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}
