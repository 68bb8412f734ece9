// Package bootstrap wires configuration, storage, services and the HTTP router together.
package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campuscope/campuscope/internal/app/controllers"
	appMigrations "github.com/campuscope/campuscope/internal/app/migrations"
	appRepos "github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/app/repositories/memory"
	"github.com/campuscope/campuscope/internal/app/repositories/postgres"
	appRoutes "github.com/campuscope/campuscope/internal/app/routes"
	appServices "github.com/campuscope/campuscope/internal/app/services"
	"github.com/campuscope/campuscope/internal/config"
	"github.com/campuscope/campuscope/internal/db"
	appMiddleware "github.com/campuscope/campuscope/internal/middleware"
	pkgAuth "github.com/campuscope/campuscope/internal/pkg/auth"
	"github.com/campuscope/campuscope/internal/pkg/helpers"
	"github.com/campuscope/campuscope/internal/pkg/logger"
	"github.com/campuscope/campuscope/internal/pkg/realtime"
	"github.com/campuscope/campuscope/internal/pkg/validation"
	"github.com/campuscope/campuscope/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos           *appRepos.Repositories
	JWTService      *pkgAuth.JWTService
	Services        *appServices.Services
	Controllers     *appRoutes.Controllers
	AuthMiddleware  *appMiddleware.AuthMiddleware
	Hub             *realtime.Hub // nil when realtime is disabled
	RealtimeHandler *realtime.Handler
	Logger          zerolog.Logger
}

// Storage is an opened repository backend together with its release function
type Storage struct {
	Repos *appRepos.Repositories
	Close func()
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "pretty",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// OpenDatabase connects to PostgreSQL
func OpenDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg.Database, logger.Component("db"))
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	return database, nil
}

// RunMigrations applies every pending schema migration
func RunMigrations(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, appMigrations.Files(), logger.Component("migrations"))
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupStorage opens the configured repository backend
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	switch cfg.Storage.Backend {
	case appRepos.BackendPostgres:
		database, err := OpenDatabase(ctx, cfg, lgr)
		if err != nil {
			return nil, err
		}
		if cfg.Database.MigrateOnStart {
			if err := RunMigrations(ctx, database, lgr); err != nil {
				database.Close()
				return nil, err
			}
		}
		store := postgres.New(database, logger.Component("postgres"))
		return &Storage{
			Repos: appRepos.NewRepositories(appRepos.BackendPostgres, store),
			Close: database.Close,
		}, nil

	case appRepos.BackendMemory:
		lgr.Info().Msg("Using in-memory storage, data is lost on restart")
		return &Storage{
			Repos: appRepos.NewRepositories(appRepos.BackendMemory, memory.New()),
			Close: func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// SeedData loads reference data and, when configured, generated demo data
func SeedData(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	seeder := seed.NewSeeder(repos, time.Now, logger.Component("seed"))
	if err := seeder.Run(ctx); err != nil {
		return err
	}
	return seeder.Fake(ctx, cfg.Seed.FakeUsers, cfg.Seed.FakeReviews)
}

// BuildDependencies initializes services, controllers and the realtime hub over the given repositories.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	var broadcaster appServices.Broadcaster = appServices.NopBroadcaster{}
	if cfg.Realtime.Enabled {
		deps.Hub = realtime.NewHub(logger.Component("realtime"))
		deps.RealtimeHandler = realtime.NewHandler(deps.Hub, cfg.Realtime.AllowedOrigins, logger.Component("realtime"))
		broadcaster = deps.Hub
	}

	deps.Services = appServices.NewServices(repos, deps.JWTService, broadcaster)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, repos.User)

	svc := deps.Services
	deps.Controllers = &appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(svc.Auth, logger.Component("auth")),
		User:    appControllers.NewUserController(svc.User, svc.Review, svc.Notification, logger.Component("users")),
		College: appControllers.NewCollegeController(svc.College, svc.Review, svc.Poll, logger.Component("colleges")),
		Review:  appControllers.NewReviewController(svc.Review, logger.Component("reviews")),
		Poll:    appControllers.NewPollController(svc.Poll, logger.Component("polls")),
		Health:  appControllers.NewHealthController(repos, logger.Component("health")),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterGinValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.ErrorHandler(),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.RealtimeHandler)
	return router, nil
}
