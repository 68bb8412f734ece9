// Package services holds the session-authenticated operations of the review platform.
// Every mutation validates its input, checks authorization, performs one repository
// call and then tells the realtime layer which views went stale.
package services

import (
	"time"

	"github.com/campuscope/campuscope/internal/app/auth"
	"github.com/campuscope/campuscope/internal/app/repositories"
	pkgauth "github.com/campuscope/campuscope/internal/pkg/auth"
	"github.com/campuscope/campuscope/internal/pkg/logger"
)

// CollegeView returns the detail view of a college
func CollegeView(collegeID string) string {
	return "/college/" + collegeID
}

// Broadcaster receives view invalidations and live events after a mutation.
// Implementations must not block the caller.
type Broadcaster interface {
	Invalidate(views ...string)
	Publish(view, eventType string, payload any)
}

// NopBroadcaster drops everything
type NopBroadcaster struct{}

func (NopBroadcaster) Invalidate(...string)        {}
func (NopBroadcaster) Publish(string, string, any) {}

// Services groups every service used by the controllers
type Services struct {
	Auth         *AuthService
	User         *UserService
	College      *CollegeService
	Review       *ReviewService
	Poll         *PollService
	Notification *NotificationService
}

// NewServices wires all services onto the given repositories
func NewServices(repos *repositories.Repositories, jwtService *pkgauth.JWTService, broadcaster Broadcaster) *Services {
	if broadcaster == nil {
		broadcaster = NopBroadcaster{}
	}
	authz := auth.NewAuthorizationService(repos.User, repos.Review, logger.Component("authorization"))

	return &Services{
		Auth:         NewAuthService(repos.User, jwtService, logger.Component("auth-service")),
		User:         NewUserService(repos.User, broadcaster, logger.Component("user-service")),
		College:      NewCollegeService(repos.College, repos.Review, logger.Component("college-service")),
		Review:       NewReviewService(repos, authz, broadcaster, logger.Component("review-service")),
		Poll:         NewPollService(repos.Poll, repos.College, broadcaster, time.Now, logger.Component("poll-service")),
		Notification: NewNotificationService(repos.Notification, broadcaster, logger.Component("notification-service")),
	}
}
