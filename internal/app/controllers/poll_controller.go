package controllers

import (
	"net/http"

	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/services"
	"github.com/campuscope/campuscope/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PollController handles polls
type PollController struct {
	pollService *services.PollService
	logger      zerolog.Logger
}

// NewPollController creates a new PollController
func NewPollController(pollService *services.PollService, logger zerolog.Logger) *PollController {
	return &PollController{
		pollService: pollService,
		logger:      logger,
	}
}

// Get returns a poll with the caller's vote when authenticated
// @Summary Get poll
// @Tags polls
// @Produce json
// @Param id path string true "Poll ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.PollResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /polls/{id} [get]
func (c *PollController) Get(ctx *gin.Context) {
	poll, err := c.pollService.Get(ctx.Request.Context(), ctx.Param("id"), ctx.GetString(middleware.ContextKeyUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(poll, ""))
}

// Vote casts the caller's single vote
// @Summary Vote in a poll
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Param request body dto.VoteRequest true "Option"
// @Success 200 {object} dto.StructuredResponse{data=dto.VoteResponse}
// @Failure 404 {object} dto.ErrorResponse "Poll or option not found"
// @Failure 409 {object} dto.ErrorResponse "Already voted or poll closed"
// @Router /polls/{id}/votes [post]
func (c *PollController) Vote(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.VoteRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.pollService.Vote(ctx.Request.Context(), userID, ctx.Param("id"), req.OptionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Vote recorded"))
}
