package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bookease/bookease/internal/core/services"
	"github.com/bookease/bookease/internal/handlers"
	"github.com/bookease/bookease/internal/middleware"
	"github.com/bookease/bookease/internal/platform/config"
	"github.com/bookease/bookease/internal/repositories/database/sqlite"
	"github.com/bookease/bookease/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.CloseDB(db)

	logger.Info("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := sqlite.NewRepositoryProvider(db)
	svcs := services.NewServiceContainer(repos.AccountRepo, repos.JournalRepo, repos.AuditRepo)

	if cfg.SeedDefaultAccounts {
		created, err := svcs.Seed.SeedDefaultAccounts(context.Background())
		if err != nil {
			logger.Error("Failed to seed default accounts", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if created > 0 {
			logger.Info("Seeded default chart of accounts", slog.Int("count", created))
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers.RegisterCustomValidators()

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	// The API serves a local frontend shell, so CORS stays permissive.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svcs)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
