package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscope/campuscope/internal/app/models"
	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/repositories/memory"
	"github.com/campuscope/campuscope/internal/pkg/apperrors"
	"github.com/campuscope/campuscope/internal/pkg/auth"
	"github.com/campuscope/campuscope/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
	}{
		{"validation", apperrors.NewValidationError("rating", "Rating must be between 1 and 5"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Rating must be between 1 and 5"},
		{"bad request", apperrors.NewBadRequestError("Department does not belong to the college"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Department does not belong to the college"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{"expired", auth.ErrExpiredToken, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
		{"not authenticated", apperrors.ErrNotAuthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Not authenticated"},
		{"forbidden", apperrors.NewForbiddenError("Only the author can edit this review"), http.StatusForbidden, dto.ErrorCodeForbidden, "Only the author can edit this review"},
		{"wrapped not found", fmt.Errorf("load: %w", apperrors.ErrReviewNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Review not found"},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already in use"},
		{"already voted", apperrors.ErrAlreadyVoted, http.StatusConflict, dto.ErrorCodeConflict, "You have already voted in this poll"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestHandleAPIErrorCarriesField(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	HandleAPIError(c, apperrors.NewValidationError("username", "Username is required for anonymous users"))

	resp := decodeError(t, w)
	assert.Equal(t, "username", resp.Error.Field)
}

func TestErrorHandlerRendersAttachedError(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(apperrors.ErrCollegeNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "College not found", decodeError(t, w).Error.Message)
}

func TestRecoveryAnswersWithEnvelope(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeInternalServer, resp.Error.Code)
	assert.Equal(t, dto.ErrorSeverityCritical, resp.Error.Severity)
}

type bindPayload struct {
	CollegeID string `json:"collegeId" binding:"required"`
	Style     string `json:"avatarStyle" binding:"omitempty,avatarstyle"`
}

func TestBindJSONNamesFirstBadField(t *testing.T) {
	require.NoError(t, validation.RegisterGinValidators())

	router := gin.New()
	router.POST("/bind", func(c *gin.Context) {
		var payload bindPayload
		if !BindJSON(c, &payload) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"valid", `{"collegeId":"1","avatarStyle":"emoji"}`, http.StatusNoContent, ""},
		{"missing required", `{}`, http.StatusBadRequest, "collegeId"},
		{"custom tag", `{"collegeId":"1","avatarStyle":"sparkles"}`, http.StatusBadRequest, "avatarStyle"},
		{"malformed", `{"collegeId":`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusBadRequest {
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
				assert.Equal(t, tt.field, resp.Error.Field)
			}
		})
	}
}

type authFixture struct {
	router *gin.Engine
	jwt    *auth.JWTService
	user   *models.User
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := memory.New()
	user, err := store.CreateUser(context.Background(), &models.User{
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "x",
		Role:         models.RoleAdmin,
	})
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "middleware-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "campuscope-test",
	})
	m := NewAuthMiddleware(jwtService, store)

	router := gin.New()
	whoami := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetString(ContextKeyUserID),
			"role":   c.GetString(ContextKeyRole),
		})
	}
	router.GET("/private", m.JWTAuth(), whoami)
	router.GET("/public", m.OptionalAuth(), whoami)

	return &authFixture{router: router, jwt: jwtService, user: user}
}

func (f *authFixture) get(path, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	f.router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	f := newAuthFixture(t)
	token, _, err := f.jwt.GenerateAccessToken(f.user)
	require.NoError(t, err)

	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "middleware-secret",
		AccessTokenExp: -time.Minute,
		TokenIssuer:    "campuscope-test",
	})
	expiredToken, _, err := expired.GenerateAccessToken(f.user)
	require.NoError(t, err)

	ghostToken, _, err := f.jwt.GenerateAccessToken(&models.User{ID: "ghost", Email: "ghost@example.com", Role: models.RoleUser})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   dto.ErrorCode
	}{
		{"valid", "Bearer " + token, http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"expired", "Bearer " + expiredToken, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"deleted user", "Bearer " + ghostToken, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.get("/private", tt.header)
			assert.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.code, decodeError(t, w).Error.Code)
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, f.user.ID, body["userId"])
			assert.Equal(t, string(models.RoleAdmin), body["role"])
		})
	}
}

func TestOptionalAuthIgnoresBadTokens(t *testing.T) {
	f := newAuthFixture(t)
	token, _, err := f.jwt.GenerateAccessToken(f.user)
	require.NoError(t, err)

	var body map[string]string

	w := f.get("/public", "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body["userId"])

	w = f.get("/public", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, f.user.ID, body["userId"])
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := CurrentUserID(c)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	c.Set(ContextKeyUserID, "42")
	id, err := CurrentUserID(c)
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}
