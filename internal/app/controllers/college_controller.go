package controllers

import (
	"net/http"

	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/services"
	"github.com/campuscope/campuscope/internal/middleware"
	"github.com/campuscope/campuscope/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CollegeController serves the college catalogue and the per-college listings
type CollegeController struct {
	collegeService *services.CollegeService
	reviewService  *services.ReviewService
	pollService    *services.PollService
	logger         zerolog.Logger
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(
	collegeService *services.CollegeService,
	reviewService *services.ReviewService,
	pollService *services.PollService,
	logger zerolog.Logger,
) *CollegeController {
	return &CollegeController{
		collegeService: collegeService,
		reviewService:  reviewService,
		pollService:    pollService,
		logger:         logger,
	}
}

// List searches and filters colleges
// @Summary List colleges
// @Tags colleges
// @Produce json
// @Param q query string false "Search over name, short name and location"
// @Param country query string false "Country"
// @Param type query string false "Public or Private"
// @Param minRanking query int false "Lowest ranking"
// @Param maxRanking query int false "Highest ranking"
// @Param sort query string false "ranking, rating, reviews or name"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.StructuredResponse{data=dto.CollegeListResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /colleges [get]
func (c *CollegeController) List(ctx *gin.Context) {
	var query dto.CollegeListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.collegeService.List(ctx.Request.Context(), &query, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, ""))
}

// Trending returns the most reviewed colleges
// @Summary Trending colleges
// @Description Top colleges by live review count
// @Tags colleges
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=[]models.College}
// @Router /colleges/trending [get]
func (c *CollegeController) Trending(ctx *gin.Context) {
	colleges, err := c.collegeService.Trending(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(colleges, ""))
}

// Get returns one college
// @Summary Get college
// @Tags colleges
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} dto.StructuredResponse{data=models.College}
// @Failure 404 {object} dto.ErrorResponse
// @Router /colleges/{id} [get]
func (c *CollegeController) Get(ctx *gin.Context) {
	college, err := c.collegeService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(college, ""))
}

// Departments lists the departments of a college
// @Summary List departments
// @Tags colleges
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} dto.StructuredResponse{data=[]models.Department}
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{id}/departments [get]
func (c *CollegeController) Departments(ctx *gin.Context) {
	departments, err := c.collegeService.Departments(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(departments, ""))
}

// Reviews lists the reviews of a college
// @Summary List college reviews
// @Tags reviews
// @Produce json
// @Param id path string true "College ID"
// @Param emoji query string false "Only reviews with this reaction"
// @Param tags query string false "Comma separated tags, any match"
// @Param sort query string false "recent, highest, lowest, spicy or trending"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.StructuredResponse{data=dto.ReviewListResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /colleges/{id}/reviews [get]
func (c *CollegeController) Reviews(ctx *gin.Context) {
	var query dto.ReviewListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.reviewService.ListForCollege(ctx.Request.Context(), ctx.Param("id"), &query, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, ""))
}

// Polls lists the polls of a college with the caller's votes when authenticated
// @Summary List college polls
// @Tags polls
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.PollResponse}
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{id}/polls [get]
func (c *CollegeController) Polls(ctx *gin.Context) {
	polls, err := c.pollService.ListByCollege(ctx.Request.Context(), ctx.Param("id"), ctx.GetString(middleware.ContextKeyUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(polls, ""))
}
