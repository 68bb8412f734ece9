package middleware

import (
	"errors"
	"net/http"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "role"
)

// AuthMiddleware resolves the bearer token into the session user
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   repositories.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	detail := dto.NewErrorDetail(code, "Not authenticated").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
}

// session validates the token and loads its user. Tokens of users that no longer exist are rejected.
func (m *AuthMiddleware) session(c *gin.Context, header string) (*models.User, error) {
	tokenString, err := auth.ExtractBearerToken(header)
	if err != nil {
		return nil, err
	}
	claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
	if err != nil {
		return nil, err
	}
	return m.userRepo.FindUserByID(c.Request.Context(), claims.UserID)
}

// JWTAuth requires a valid session and sets userID and role on the context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		user, err := m.session(c, header)
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrExpiredToken):
			abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
			return
		case errors.Is(err, auth.ErrInvalidFormat):
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
			return
		case errors.Is(err, auth.ErrInvalidToken):
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		case errors.Is(err, apperrors.ErrUserNotFound):
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Session user no longer exists")
			return
		default:
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyRole, string(user.Role))
		c.Next()
	}
}

// OptionalAuth sets the session when a valid token is present and otherwise continues anonymously
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			if user, err := m.session(c, header); err == nil {
				c.Set(ContextKeyUserID, user.ID)
				c.Set(ContextKeyRole, string(user.Role))
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the session user id, or an authentication error when there is none
func CurrentUserID(c *gin.Context) (string, error) {
	userID := c.GetString(ContextKeyUserID)
	if userID == "" {
		return "", apperrors.ErrNotAuthenticated
	}
	return userID, nil
}
