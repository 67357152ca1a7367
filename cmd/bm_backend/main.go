package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/biblioteca-multimedia/bm_backend/internal/core/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/dto"
	"github.com/biblioteca-multimedia/bm_backend/internal/handlers"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/config"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/mail"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/revocation"
	"github.com/biblioteca-multimedia/bm_backend/internal/repositories/database/pgsql"
	"github.com/biblioteca-multimedia/bm_backend/internal/utils"
	"github.com/biblioteca-multimedia/bm_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Biblioteca Multimedia API
// @version 1.0
// @description Backend for the personal media catalog: books, movies, series and the pending list.

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Refresh-token revocation denylist is optional; without Redis the
	// tokens simply expire on their own schedule.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		logger.Info("Redis denylist enabled.")
	} else {
		logger.Warn("REDIS_ADDR not set, refresh token revocation disabled.")
	}

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer analytics.Close()

	if err := dto.RegisterCustomValidators(); err != nil {
		logger.Error("Failed to register request validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.PosthogMiddleware(analytics))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	mailer := mail.NewMailer(cfg)
	denylist := revocation.NewStore(redisClient)
	serviceContainer := services.NewServiceContainer(cfg, repos, mailer, denylist, analytics)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// corsConfig allows the configured frontend origin; with none configured it
// falls back to permissive defaults for local development.
func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowCredentials = true
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if cfg.FrontendBaseURL != "" {
		c.AllowOrigins = []string{cfg.FrontendBaseURL}
	} else {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	}
	return c
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	switch upErr {
	case nil:
		logger.Info("Database migrations applied successfully.")
	case migrate.ErrNoChange:
		logger.Info("No new migrations to apply.")
	default:
		return upErr
	}
	return nil
}
