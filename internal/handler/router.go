package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"forum/backend/internal/auth"
	"forum/backend/internal/logger"
	"forum/backend/internal/metrics"
	"forum/backend/internal/middleware"
)

// RouterConfig carries what NewRouter needs besides the handler.
type RouterConfig struct {
	Tokens        auth.TokenParser
	Metrics       *metrics.Metrics
	AuthRateLimit float64
	AuthRateBurst int
	// AuthLimiter overrides the limiter built from AuthRateLimit and AuthRateBurst,
	// letting the caller run its cleanup loop.
	AuthLimiter *middleware.RateLimiter
	// TrustedProxies lists the proxies whose forwarding headers ClientIP honours.
	// Empty means none: the socket peer is the client.
	TrustedProxies []string
}

// NewRouter builds the gin engine with every API route.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn().Err(err).Msg("Invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery(), middleware.RequestLogger())
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", h.Ping)

	requireAuth := auth.AuthMiddleware(cfg.Tokens)
	optionalAuth := auth.OptionalAuthMiddleware(cfg.Tokens)

	var observer middleware.LimitObserver
	if cfg.Metrics != nil {
		observer = cfg.Metrics
	}
	limiter := cfg.AuthLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, observer)
	}

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		authRoutes.Use(limiter.Handler())
		{
			authRoutes.POST("/register", h.RegisterUser)
			authRoutes.POST("/login", h.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(requireAuth)
		{
			userRoutes.GET("", h.SearchUsers)
			userRoutes.GET("/me", h.GetMe) // Must be before /:id
			userRoutes.GET("/:id", h.GetUserByID)
			userRoutes.GET("/:id/posts", h.GetUserPosts)
			userRoutes.GET("/:id/comments", h.GetUserComments)
			userRoutes.GET("/:id/likes", h.GetUserLikes)
			userRoutes.DELETE("/:id", h.DeleteUser)
			userRoutes.PUT("/:id/role", auth.RequireCapability(auth.ManageUsers), h.SetUserRole)
		}

		// Post routes: reads are public, writes need a token
		postRoutes := apiV1.Group("/posts")
		{
			postRoutes.GET("", optionalAuth, h.GetPosts)
			postRoutes.GET("/:id", optionalAuth, h.GetPostByID)
			postRoutes.GET("/:id/comments", h.GetPostComments)
			postRoutes.GET("/:id/likes", h.GetPostLikes)

			postRoutes.POST("", requireAuth, h.CreatePost)
			postRoutes.DELETE("/:id", requireAuth, h.DeletePost)
			postRoutes.POST("/:id/comments", requireAuth, h.CreateComment)
			postRoutes.POST("/:id/like", requireAuth, h.LikePost)
			postRoutes.DELETE("/:id/like", requireAuth, h.UnlikePost)
		}

		categoryRoutes := apiV1.Group("/categories")
		categoryRoutes.Use(requireAuth)
		{
			categoryRoutes.GET("", h.GetCategories)
			categoryRoutes.GET("/:id", h.GetCategoryByID)
			categoryRoutes.POST("", auth.RequireCapability(auth.ManageCategories), h.CreateCategory)
			categoryRoutes.DELETE("/:id", auth.RequireCapability(auth.ManageCategories), h.DeleteCategory)
		}

		commentRoutes := apiV1.Group("/comments")
		commentRoutes.Use(requireAuth)
		{
			commentRoutes.GET("", auth.RequireCapability(auth.ModerateContent), h.GetComments)
			commentRoutes.GET("/:id", auth.RequireCapability(auth.ModerateContent), h.GetCommentByID)
			commentRoutes.DELETE("/:id", h.DeleteComment)
		}

		likeRoutes := apiV1.Group("/likes")
		likeRoutes.Use(requireAuth)
		{
			likeRoutes.GET("", h.GetLikes)
			likeRoutes.GET("/:id", h.GetLikeByID)
		}

		// Friendship routes
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(requireAuth)
		{
			friendRoutes.GET("", h.GetFriends)
			friendRoutes.DELETE("/:id", h.Unfriend)
			friendRoutes.GET("/requests/received", h.GetReceivedRequests)
			friendRoutes.GET("/requests/sent", h.GetSentRequests)
			friendRoutes.POST("/requests/:id", h.SendRequest)
			friendRoutes.POST("/requests/:id/answer", h.AnswerRequest)
			friendRoutes.DELETE("/requests/:id", h.CancelRequest)
		}

		apiV1.GET("/events", requireAuth, h.StreamEvents)
	}

	return router
}
