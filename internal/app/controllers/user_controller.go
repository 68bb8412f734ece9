package controllers

import (
	"net/http"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/services"
	"github.com/campuscope/campuscope/internal/middleware"
	"github.com/campuscope/campuscope/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserController serves the session user's own account under /me
type UserController struct {
	userService         *services.UserService
	reviewService       *services.ReviewService
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(
	userService *services.UserService,
	reviewService *services.ReviewService,
	notificationService *services.NotificationService,
	logger zerolog.Logger,
) *UserController {
	return &UserController{
		userService:         userService,
		reviewService:       reviewService,
		notificationService: notificationService,
		logger:              logger,
	}
}

// GetMe returns the authenticated user
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.GetMe(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(user, ""))
}

// SetAnonymity switches the anonymity preference
// @Summary Set anonymity
// @Description Enabling anonymity requires a username
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SetAnonymityRequest true "Anonymity preference"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Anonymous without username"
// @Failure 401 {object} dto.ErrorResponse
// @Router /me/anonymity [put]
func (c *UserController) SetAnonymity(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SetAnonymityRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.SetAnonymity(ctx.Request.Context(), userID, *req.IsAnonymous, req.Username)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(user, "Anonymity preference updated"))
}

// UpdateProfile updates profile fields
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /me/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(user, "Profile updated"))
}

// Completeness reports the profile completeness meter
// @Summary Profile completeness
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.CompletenessResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /me/completeness [get]
func (c *UserController) Completeness(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.userService.Completeness(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, ""))
}

// MyReviews lists the reviews written by the session user
// @Summary My reviews
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.StructuredResponse{data=dto.ReviewListResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /me/reviews [get]
func (c *UserController) MyReviews(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.reviewService.ListByUser(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, ""))
}

// MyBookmarks lists the reviews bookmarked by the session user
// @Summary My bookmarks
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.StructuredResponse{data=dto.ReviewListResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /me/bookmarks [get]
func (c *UserController) MyBookmarks(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.reviewService.Bookmarked(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, ""))
}

// Notifications lists the session user's notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.NotificationListResponse}
// @Router /me/notifications [get]
func (c *UserController) Notifications(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.notificationService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, ""))
}

// MarkNotificationsRead flags every notification as read
// @Summary Mark notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /me/notifications/read [post]
func (c *UserController) MarkNotificationsRead(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.notificationService.MarkAllRead(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Notifications marked as read"))
}

// AvatarPreview renders an avatar for the given seed, style and color
// @Summary Preview an avatar
// @Tags users
// @Produce json
// @Param seed query string false "Seed, usually the username"
// @Param style query string false "gradient, emoji, initials, pattern or abstract"
// @Param color query string false "Palette color"
// @Success 200 {object} dto.StructuredResponse{data=dto.AvatarResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /avatars/preview [get]
func (c *UserController) AvatarPreview(ctx *gin.Context) {
	avatar, err := c.userService.AvatarPreview(
		ctx.Query("seed"),
		models.AvatarStyle(ctx.Query("style")),
		models.AvatarColor(ctx.Query("color")),
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(avatar, ""))
}
