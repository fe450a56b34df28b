package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"forum/backend/internal/config"
	"forum/backend/internal/database"
	"forum/backend/internal/handler"
	"forum/backend/internal/hub"
	"forum/backend/internal/logger"
	"forum/backend/internal/metrics"
	"forum/backend/internal/middleware"
	"forum/backend/internal/seed"
	"forum/backend/internal/service"
	"forum/backend/pkg/jwt"

	// Swagger imports
	_ "forum/backend/docs" // This is important for swag to find the generated docs
)

// @title           Forum API
// @version         1.0
// @description     REST API for the forum: users, posts, categories, comments, likes and friendships.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
	})
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.SeedOnStart {
		seedFile, err := seed.Load(cfg.SeedFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to load seed file")
		}
		created, err := seed.Run(context.Background(), db, seedFile, logger.WithField("component", "seed"))
		if err != nil {
			logger.Error().Err(err).Msg("Seeding finished with errors")
		}
		logger.Info().Int("created", created).Msg("Seeding complete")
	}

	m := metrics.New()
	events := hub.NewHub(m)
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	h := handler.New(
		service.New(db, events),
		tokens,
		events,
		func(ctx context.Context) error { return database.Ping(ctx, db) },
		cfg.RegisterIssuesToken,
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, m)
	authLimiter.StartCleanup(ctx, time.Minute, 10*time.Minute)

	router := handler.NewRouter(h, handler.RouterConfig{
		Tokens:         tokens,
		Metrics:        m,
		AuthLimiter:    authLimiter,
		TrustedProxies: cfg.TrustedProxies,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to run server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server")

	// Event streams are long-lived; give them a bounded window to close.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server exited")
}
