package controllers

import (
	"net/http"

	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HealthController reports liveness and storage reachability
type HealthController struct {
	repos  *repositories.Repositories
	logger zerolog.Logger
}

// NewHealthController creates a new HealthController
func NewHealthController(repos *repositories.Repositories, logger zerolog.Logger) *HealthController {
	return &HealthController{repos: repos, logger: logger}
}

// Health pings the store
// @Summary Health check
// @Description Mounted at the server root, outside the API base path
// @Tags health
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.HealthResponse}
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if err := c.repos.Ping(ctx.Request.Context()); err != nil {
		c.logger.Error().Err(err).Msg("Health check failed")
		detail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Storage unavailable").
			WithSeverity(dto.ErrorSeverityCritical)
		ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(detail))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.HealthResponse{Status: "ok", Storage: c.repos.Backend}, ""))
}

// Ping answers pong
// @Summary Liveness check
// @Description Mounted at the server root, outside the API base path
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}
