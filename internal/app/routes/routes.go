package routes

import (
	"github.com/campuscope/campuscope/internal/app/controllers"
	"github.com/campuscope/campuscope/internal/middleware"
	"github.com/campuscope/campuscope/internal/pkg/realtime"
	"github.com/gin-gonic/gin"
)

// Controllers groups every HTTP handler the router mounts
type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	College *controllers.CollegeController
	Review  *controllers.ReviewController
	Poll    *controllers.PollController
	Health  *controllers.HealthController
}

// SetupRouter configures all application routes. realtimeHandler may be nil when realtime is disabled.
func SetupRouter(
	router *gin.Engine,
	c *Controllers,
	authMiddleware *middleware.AuthMiddleware,
	realtimeHandler *realtime.Handler,
) {
	router.GET("/health", c.Health.Health)
	router.GET("/ping", c.Health.Ping)

	if realtimeHandler != nil {
		router.GET("/ws", authMiddleware.OptionalAuth(), realtimeHandler.Subscribe)
	}

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.Auth.Signup)
		auth.POST("/login", c.Auth.Login)
	}

	public := v1.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		colleges := public.Group("/colleges")
		{
			colleges.GET("", c.College.List)
			colleges.GET("/trending", c.College.Trending)
			colleges.GET("/:id", c.College.Get)
			colleges.GET("/:id/departments", c.College.Departments)
			colleges.GET("/:id/reviews", c.College.Reviews)
			colleges.GET("/:id/polls", c.College.Polls)
		}

		public.GET("/reviews/trending", c.Review.Trending)
		public.GET("/reviews/:id", c.Review.Get)
		public.GET("/reviews/:id/comments", c.Review.Comments)
		public.GET("/polls/:id", c.Poll.Get)
		public.GET("/avatars/preview", c.User.AvatarPreview)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		me := authenticated.Group("/me")
		{
			me.GET("", c.User.GetMe)
			me.PUT("/anonymity", c.User.SetAnonymity)
			me.PUT("/profile", c.User.UpdateProfile)
			me.GET("/completeness", c.User.Completeness)
			me.GET("/reviews", c.User.MyReviews)
			me.GET("/bookmarks", c.User.MyBookmarks)
			me.GET("/notifications", c.User.Notifications)
			me.POST("/notifications/read", c.User.MarkNotificationsRead)
		}

		reviews := authenticated.Group("/reviews")
		{
			reviews.POST("", c.Review.Submit)
			reviews.PUT("/:id", c.Review.Update)
			reviews.DELETE("/:id", c.Review.Delete)
			reviews.POST("/:id/reactions", c.Review.React)
			reviews.POST("/:id/comments", c.Review.AddComment)
			reviews.POST("/:id/bookmark", c.Review.ToggleBookmark)
		}

		authenticated.POST("/polls/:id/votes", c.Poll.Vote)
	}
}
