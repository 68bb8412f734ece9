package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/app/repositories/memory"
	"github.com/campuscope/campuscope/internal/bootstrap"
	"github.com/campuscope/campuscope/internal/config"
	"github.com/campuscope/campuscope/internal/pkg/logger"
	"github.com/campuscope/campuscope/internal/pkg/validation"
)

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

type api struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	return newAPIWith(t, func(*config.Config) {})
}

func newAPIWith(t *testing.T, configure func(*config.Config)) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.JWT = config.JWTConfig{
		Secret:                "api-test-secret",
		AccessTokenExpiration: "1h",
		Issuer:                "campuscope-test",
	}
	configure(cfg)

	repos := repositories.NewRepositories(repositories.BackendMemory, memory.New())
	require.NoError(t, bootstrap.SeedData(context.Background(), cfg, repos, logger.Nop()))

	deps := bootstrap.BuildDependencies(cfg, repos, logger.Nop())
	router, err := bootstrap.SetupRouter(cfg, deps, logger.Nop())
	require.NoError(t, err)
	return &api{t: t, router: router}
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a *api) login(email, password string) string {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(a.t, http.StatusOK, status, env.Error)

	var resp dto.AuthResponse
	require.NoError(a.t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(a.t, resp.Token.AccessToken)
	return resp.Token.AccessToken
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestHealth(t *testing.T) {
	a := newAPI(t)

	status, env := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	health := decode[dto.HealthResponse](t, env)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, repositories.BackendMemory, health.Storage)
}

func TestSignupAndLogin(t *testing.T) {
	a := newAPI(t)
	signup := dto.SignupRequest{Name: "Asha Rao", Email: "asha@example.com", Password: "s3cret-pass"}

	status, env := a.do(http.MethodPost, "/api/v1/auth/signup", "", signup)
	require.Equal(t, http.StatusCreated, status)
	user := decode[dto.UserResponse](t, env)
	assert.Equal(t, "Asha Rao", user.Name)
	assert.NotEmpty(t, user.ID)

	status, env = a.do(http.MethodPost, "/api/v1/auth/signup", "", signup)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, env.Error.Code)

	status, env = a.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, env.Error.Code)

	token := a.login("asha@example.com", "s3cret-pass")
	status, env = a.do(http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.ID, decode[dto.UserResponse](t, env).ID)
}

func TestSignupRejectsInvalidEmail(t *testing.T) {
	a := newAPI(t)

	status, env := a.do(http.MethodPost, "/api/v1/auth/signup", "", dto.SignupRequest{Name: "X", Email: "not-an-email", Password: "pw"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
	assert.Equal(t, "email", env.Error.Field)
}

func TestMeRequiresSession(t *testing.T) {
	a := newAPI(t)

	status, env := a.do(http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, dto.ErrorCodeUnauthorized, env.Error.Code)
}

func TestSubmitReviewFlow(t *testing.T) {
	a := newAPI(t)
	token := a.login("john@example.com", "password123")

	body := map[string]any{
		"collegeId":    "1",
		"departmentId": "1",
		"content":      "Great labs and a demanding curriculum.",
		"rating":       "4.5",
		"tags":         []string{" labs ", "Labs", "Hostel"},
	}
	status, env := a.do(http.MethodPost, "/api/v1/reviews", token, body)
	require.Equal(t, http.StatusCreated, status, env.Error)
	review := decode[dto.ReviewResponse](t, env)
	assert.Equal(t, 4.5, review.Rating)
	assert.Equal(t, "John Doe", review.Author.DisplayName)
	assert.Len(t, review.Tags, 2)

	status, env = a.do(http.MethodGet, "/api/v1/colleges/1/reviews", "", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[dto.ReviewListResponse](t, env)
	assert.EqualValues(t, 3, list.Pagination.TotalItems)

	status, env = a.do(http.MethodGet, "/api/v1/colleges/1", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"reviewCount":3`)
}

func TestSubmitReviewValidation(t *testing.T) {
	a := newAPI(t)
	token := a.login("jane@example.com", "password456")

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"missing college", map[string]any{"content": "x", "rating": 4}, "collegeId"},
		{"rating out of range", map[string]any{"collegeId": "1", "content": "x", "rating": 7}, "rating"},
		{"foreign department", map[string]any{"collegeId": "1", "departmentId": "3", "content": "x", "rating": 3}, "departmentId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := a.do(http.MethodPost, "/api/v1/reviews", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
			assert.Equal(t, tt.field, env.Error.Field)
		})
	}

	status, env := a.do(http.MethodPost, "/api/v1/reviews", token, map[string]any{"collegeId": "99", "content": "x", "rating": 3})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)
}

func TestReviewOwnership(t *testing.T) {
	a := newAPI(t)
	jane := a.login("jane@example.com", "password456")
	admin := a.login("admin@example.com", "adminpass")

	status, env := a.do(http.MethodPut, "/api/v1/reviews/1", jane, map[string]any{"content": "hijacked"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, dto.ErrorCodeForbidden, env.Error.Code)

	status, _ = a.do(http.MethodDelete, "/api/v1/reviews/1", admin, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = a.do(http.MethodGet, "/api/v1/reviews/1", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)
}

func TestAnonymousReviewHidesAuthor(t *testing.T) {
	a := newAPI(t)

	status, env := a.do(http.MethodGet, "/api/v1/reviews/2", "", nil)
	require.Equal(t, http.StatusOK, status)
	review := decode[dto.ReviewResponse](t, env)
	assert.Equal(t, "Anonymous", review.Author.DisplayName)
	assert.Empty(t, review.Author.UserID)
	assert.NotContains(t, string(env.Data), "Jane Smith")
}

func TestReactionNotifiesOwner(t *testing.T) {
	a := newAPI(t)
	jane := a.login("jane@example.com", "password456")
	john := a.login("john@example.com", "password123")

	status, env := a.do(http.MethodPost, "/api/v1/reviews/1/reactions", jane, dto.ReactRequest{Emoji: "🔥"})
	require.Equal(t, http.StatusOK, status, env.Error)
	reaction := decode[dto.ReactionResponse](t, env)
	assert.True(t, reaction.Active)
	assert.Equal(t, 1, reaction.Counts["🔥"])

	status, env = a.do(http.MethodGet, "/api/v1/me/notifications", john, nil)
	require.Equal(t, http.StatusOK, status)
	notifications := decode[dto.NotificationListResponse](t, env)
	assert.Len(t, notifications.Notifications, 3)
	assert.Equal(t, 2, notifications.UnreadCount)

	status, _ = a.do(http.MethodPost, "/api/v1/me/notifications/read", john, nil)
	require.Equal(t, http.StatusOK, status)
	_, env = a.do(http.MethodGet, "/api/v1/me/notifications", john, nil)
	assert.Equal(t, 0, decode[dto.NotificationListResponse](t, env).UnreadCount)
}

func TestPollVoting(t *testing.T) {
	a := newAPI(t)
	jane := a.login("jane@example.com", "password456")

	status, env := a.do(http.MethodPost, "/api/v1/polls/1/votes", jane, dto.VoteRequest{OptionID: "2"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, dto.ErrorCodeConflict, env.Error.Code)

	_, _ = a.do(http.MethodPost, "/api/v1/auth/signup", "", dto.SignupRequest{Name: "Voter", Email: "voter@example.com", Password: "pw"})
	voter := a.login("voter@example.com", "pw")

	status, env = a.do(http.MethodPost, "/api/v1/polls/1/votes", voter, dto.VoteRequest{OptionID: "2"})
	require.Equal(t, http.StatusOK, status, env.Error)
	vote := decode[dto.VoteResponse](t, env)
	assert.True(t, vote.Voted)
	assert.Equal(t, 99, vote.Poll.Option("2").Votes)

	status, env = a.do(http.MethodGet, "/api/v1/polls/1", voter, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2", decode[dto.PollResponse](t, env).VotedOptionID)

	status, env = a.do(http.MethodPost, "/api/v1/polls/1/votes", voter, dto.VoteRequest{OptionID: "nope"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)
}

func TestCollegeListing(t *testing.T) {
	a := newAPI(t)

	status, env := a.do(http.MethodGet, "/api/v1/colleges?q=delhi&sort=name", "", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[dto.CollegeListResponse](t, env)
	require.Len(t, list.Colleges, 2)
	assert.Equal(t, "AIIMS Delhi", list.Colleges[0].ShortName)

	status, env = a.do(http.MethodGet, "/api/v1/colleges?sort=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "sort", env.Error.Field)

	status, env = a.do(http.MethodGet, "/api/v1/colleges/1/departments", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "Computer Science and Engineering")
}

func TestBookmarkToggle(t *testing.T) {
	a := newAPI(t)
	john := a.login("john@example.com", "password123")

	status, env := a.do(http.MethodPost, "/api/v1/reviews/3/bookmark", john, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[dto.BookmarkResponse](t, env).Bookmarked)

	status, env = a.do(http.MethodGet, "/api/v1/me/bookmarks", john, nil)
	require.Equal(t, http.StatusOK, status)
	bookmarks := decode[dto.ReviewListResponse](t, env)
	assert.Len(t, bookmarks.Reviews, 2)

	status, env = a.do(http.MethodPost, "/api/v1/reviews/3/bookmark", john, nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[dto.BookmarkResponse](t, env).Bookmarked)
}

func TestSignupRejectsOverlongPassword(t *testing.T) {
	a := newAPI(t)

	password := strings.Repeat("p", validation.PasswordMaxBytes+8)
	status, env := a.do(http.MethodPost, "/api/v1/auth/signup", "", dto.SignupRequest{Name: "Long", Email: "long@example.com", Password: password})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
	assert.Equal(t, "password", env.Error.Field)
}

func TestTextLimits(t *testing.T) {
	a := newAPI(t)
	token := a.login("john@example.com", "password123")

	status, env := a.do(http.MethodPost, "/api/v1/reviews", token, map[string]any{
		"collegeId": "1",
		"content":   strings.Repeat("a", validation.ReviewMaxLength+1),
		"rating":    4,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "content", env.Error.Field)

	status, env = a.do(http.MethodPost, "/api/v1/reviews/1/comments", token, dto.CommentRequest{Content: strings.Repeat("a", validation.CommentMaxLength+1)})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "content", env.Error.Field)
}

func TestReviewCarriesViewerState(t *testing.T) {
	a := newAPI(t)
	jane := a.login("jane@example.com", "password456")

	status, _ := a.do(http.MethodPost, "/api/v1/reviews/1/bookmark", jane, nil)
	require.Equal(t, http.StatusOK, status)

	status, env := a.do(http.MethodGet, "/api/v1/reviews/1", jane, nil)
	require.Equal(t, http.StatusOK, status)
	review := decode[dto.ReviewResponse](t, env)
	require.NotNil(t, review.Bookmarked)
	assert.True(t, *review.Bookmarked)

	status, env = a.do(http.MethodGet, "/api/v1/reviews/1", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, decode[dto.ReviewResponse](t, env).Bookmarked)
}

func TestDashboardSubscriptionNeedsMatchingSession(t *testing.T) {
	a := newAPIWith(t, func(cfg *config.Config) { cfg.Realtime.Enabled = true })
	john := a.login("john@example.com", "password123")

	status, env := a.do(http.MethodGet, "/ws?view=/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, dto.ErrorCodeUnauthorized, env.Error.Code)

	status, env = a.do(http.MethodGet, "/ws?view=/dashboard/2", john, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, dto.ErrorCodeForbidden, env.Error.Code)
}
