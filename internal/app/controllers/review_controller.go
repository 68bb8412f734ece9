package controllers

import (
	"net/http"

	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/services"
	"github.com/campuscope/campuscope/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ReviewController handles reviews and their interactions
type ReviewController struct {
	reviewService *services.ReviewService
	logger        zerolog.Logger
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService *services.ReviewService, logger zerolog.Logger) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
		logger:        logger,
	}
}

// Submit creates a review
// @Summary Submit a review
// @Description Rating accepts a number or a numeric string between 1 and 5
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Review"
// @Success 201 {object} dto.StructuredResponse{data=dto.ReviewResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /reviews [post]
func (c *ReviewController) Submit(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateReviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	review, err := c.reviewService.Submit(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(review, "Review submitted"))
}

// Trending returns the latest reviews
// @Summary Trending reviews
// @Tags reviews
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ReviewResponse}
// @Router /reviews/trending [get]
func (c *ReviewController) Trending(ctx *gin.Context) {
	reviews, err := c.reviewService.Trending(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(reviews, ""))
}

// Get returns one review
// @Summary Get review
// @Description With a session the response also carries the caller's bookmark and reactions
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.ReviewResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /reviews/{id} [get]
func (c *ReviewController) Get(ctx *gin.Context) {
	review, err := c.reviewService.Get(ctx.Request.Context(), ctx.Param("id"), ctx.GetString(middleware.ContextKeyUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(review, ""))
}

// Update edits a review
// @Summary Update a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body dto.UpdateReviewRequest true "Fields to change"
// @Success 200 {object} dto.StructuredResponse{data=dto.ReviewResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse
// @Router /reviews/{id} [put]
func (c *ReviewController) Update(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateReviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	review, err := c.reviewService.Update(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(review, "Review updated"))
}

// Delete removes a review
// @Summary Delete a review
// @Description Owners and admins may delete. Comments, reactions and bookmarks go with it.
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} dto.StructuredResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /reviews/{id} [delete]
func (c *ReviewController) Delete(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.reviewService.Delete(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Review deleted"))
}

// React toggles an emoji reaction
// @Summary React to a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body dto.ReactRequest true "Emoji"
// @Success 200 {object} dto.StructuredResponse{data=dto.ReactionResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /reviews/{id}/reactions [post]
func (c *ReviewController) React(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ReactRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.reviewService.React(ctx.Request.Context(), userID, ctx.Param("id"), req.Emoji)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, ""))
}

// AddComment comments on a review
// @Summary Comment on a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body dto.CommentRequest true "Comment"
// @Success 201 {object} dto.StructuredResponse{data=dto.CommentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /reviews/{id}/comments [post]
func (c *ReviewController) AddComment(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CommentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	comment, err := c.reviewService.AddComment(ctx.Request.Context(), userID, ctx.Param("id"), req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(comment, "Comment added"))
}

// Comments lists the comments of a review
// @Summary List comments
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.CommentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /reviews/{id}/comments [get]
func (c *ReviewController) Comments(ctx *gin.Context) {
	comments, err := c.reviewService.Comments(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(comments, ""))
}

// ToggleBookmark saves or unsaves a review
// @Summary Toggle bookmark
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.BookmarkResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /reviews/{id}/bookmark [post]
func (c *ReviewController) ToggleBookmark(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.reviewService.ToggleBookmark(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, ""))
}
