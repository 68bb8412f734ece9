package dto

import (
	"encoding/json"
	"time"

	"github.com/campuscope/campuscope/internal/app/models"
)

// CreateReviewRequest represents a new review submission.
// Rating accepts either a JSON number or a numeric string.
type CreateReviewRequest struct {
	CollegeID    string      `json:"collegeId" binding:"required"`
	DepartmentID string      `json:"departmentId"`
	Content      string      `json:"content" binding:"required"`
	Rating       json.Number `json:"rating" binding:"required" swaggertype:"number" example:"4.5"`
	IsAnonymous  bool        `json:"isAnonymous"`
	Tags         []string    `json:"tags"`
}

// UpdateReviewRequest represents an edit of an existing review. Omitted fields are left unchanged.
type UpdateReviewRequest struct {
	Content     *string     `json:"content"`
	Rating      json.Number `json:"rating" swaggertype:"number" example:"4"`
	IsAnonymous *bool       `json:"isAnonymous"`
	Tags        []string    `json:"tags"`
}

// ReviewListQuery holds the filters of a review listing
type ReviewListQuery struct {
	Emoji string `form:"emoji"`
	Tags  string `form:"tags"` // comma separated
	Sort  string `form:"sort" binding:"omitempty,oneof=recent highest lowest spicy trending"`
}

// ReactRequest represents an emoji reaction toggle
type ReactRequest struct {
	Emoji string `json:"emoji" binding:"required" example:"🔥"`
}

// CommentRequest represents a new comment
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// AuthorResponse is how a review or comment author is presented to readers
type AuthorResponse struct {
	UserID      string          `json:"userId,omitempty"`
	DisplayName string          `json:"displayName" example:"Anonymous"`
	IsAnonymous bool            `json:"isAnonymous"`
	Avatar      *AvatarResponse `json:"avatar,omitempty"`
}

// ReviewResponse is a review as shown to readers
type ReviewResponse struct {
	ID           string         `json:"id"`
	CollegeID    string         `json:"collegeId"`
	DepartmentID string         `json:"departmentId,omitempty"`
	Content      string         `json:"content"`
	Rating       float64        `json:"rating"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	IsAnonymous  bool           `json:"isAnonymous"`
	Tags         []string       `json:"tags"`
	Reactions    map[string]int `json:"reactions"`
	Author       AuthorResponse `json:"author"`
	CommentCount int            `json:"commentCount"`

	// Set only when the review is read with a session
	Bookmarked  *bool    `json:"bookmarked,omitempty"`
	MyReactions []string `json:"myReactions,omitempty"`
}

// ReactionResponse reports the state of a reaction after a toggle
type ReactionResponse struct {
	Reaction *models.Reaction `json:"reaction"`
	Active   bool             `json:"active"`
	Counts   map[string]int   `json:"counts"`
}

// CommentResponse is a comment with its presented author
type CommentResponse struct {
	ID        string         `json:"id"`
	ReviewID  string         `json:"reviewId"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	Author    AuthorResponse `json:"author"`
}

// BookmarkResponse reports whether the review is bookmarked after a toggle
type BookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}
