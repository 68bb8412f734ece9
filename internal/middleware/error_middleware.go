package middleware

import (
	"errors"
	"net/http"

	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Messages shown for well-known failures
var knownMessages = []struct {
	err     error
	message string
}{
	{apperrors.ErrUserNotFound, "User not found"},
	{apperrors.ErrCollegeNotFound, "College not found"},
	{apperrors.ErrDepartmentNotFound, "Department not found"},
	{apperrors.ErrReviewNotFound, "Review not found"},
	{apperrors.ErrPollNotFound, "Poll not found"},
	{apperrors.ErrPollOptionNotFound, "Poll option not found"},
	{apperrors.ErrEmailAlreadyExists, "Email already in use"},
	{apperrors.ErrAlreadyVoted, "You have already voted in this poll"},
	{apperrors.ErrPollClosed, "This poll is closed"},
}

func messageFor(err error, fallback string) string {
	if ce, ok := apperrors.AsCustomError(err); ok && ce.Message != "" {
		return ce.Message
	}
	for _, known := range knownMessages {
		if errors.Is(err, known.err) {
			return known.message
		}
	}
	return fallback
}

// errorStatus maps err onto an HTTP status and error detail
func errorStatus(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageFor(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, messageFor(err, "Invalid credentials"))
	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrNotAuthenticated):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, messageFor(err, "Not authenticated"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, messageFor(err, "Permission denied"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageFor(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, messageFor(err, "Resource already exists"))
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, messageFor(err, "Conflict"))
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleAPIError writes the error envelope for err and aborts the request
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorStatus(err)

	if ce, ok := apperrors.AsCustomError(err); ok {
		if ce.Field != "" {
			detail.WithField(ce.Field)
		}
		if ce.Details != nil {
			detail.WithDetails(ce.Details)
		}
	}

	if status >= http.StatusInternalServerError {
		detail.WithSeverity(dto.ErrorSeverityCritical)
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		if gin.Mode() == gin.DebugMode {
			detail.WithDebugInfo("%v", err)
		}
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// ErrorHandler renders the last error attached with c.Error when the handler wrote nothing
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		HandleAPIError(c, c.Errors.Last().Err)
	}
}

// Recovery turns panics into a 500 envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	})
}
