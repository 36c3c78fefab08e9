package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sqlDB, err := db.DB.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrationsIfEnabled(sqlDB); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(); err != nil {
		logger.Error("failed to auto-migrate schema", "error", err)
		os.Exit(1)
	}

	if err := db.CreateIndexes(); err != nil {
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	if err := db.SeedDefaultCategories(); err != nil {
		logger.Error("failed to seed default categories", "error", err)
		os.Exit(1)
	}

	metrics := services.NewPrometheusMetrics()

	maintCtx, stopMaintenance := context.WithCancel(context.Background())
	defer stopMaintenance()
	go runMaintenance(maintCtx, db, metrics, logger)

	e := buildServer(cfg, db, metrics, logger)

	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("starting server", "addr", addr, "env", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

// runMaintenance periodically purges expired tokens and refreshes the
// registered-users gauge until the context is cancelled
func runMaintenance(ctx context.Context, db *database.DB, metrics services.MetricsRecorderInterface, logger *slog.Logger) {
	userRepo := repositories.NewUserRepository(db.DB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db.DB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db.DB)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		if deleted, err := refreshTokenRepo.DeleteExpired(); err != nil {
			logger.Error("failed to purge expired refresh tokens", "error", err)
		} else if deleted > 0 {
			logger.Info("purged expired refresh tokens", "count", deleted)
		}

		if deleted, err := blacklistedTokenRepo.DeleteExpired(); err != nil {
			logger.Error("failed to purge expired blacklist entries", "error", err)
		} else if deleted > 0 {
			logger.Info("purged expired blacklist entries", "count", deleted)
		}

		if count, err := userRepo.Count(); err != nil {
			logger.Error("failed to count users", "error", err)
		} else {
			metrics.SetActiveUsers(float64(count))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func buildServer(cfg *config.Config, db *database.DB, metrics services.MetricsRecorderInterface, logger *slog.Logger) *echo.Echo {
	// Repositories
	userRepo := repositories.NewUserRepository(db.DB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db.DB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db.DB)
	accountRepo := repositories.NewAccountRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	budgetRepo := repositories.NewBudgetRepository(db.DB)

	// Services
	passwordService := services.NewPasswordService()
	tokenService := services.NewTokenService(&cfg.JWT)
	categoryService := services.NewCategoryService(categoryRepo, logger)
	authService := services.NewAuthService(
		userRepo, refreshTokenRepo, blacklistedTokenRepo,
		passwordService, tokenService, categoryService, metrics, logger)
	accountService := services.NewAccountService(accountRepo, logger)
	transactionService := services.NewTransactionService(
		transactionRepo, accountRepo, categoryRepo, metrics, logger)
	budgetService := services.NewBudgetService(budgetRepo, categoryRepo, logger)
	analyticsService := services.NewAnalyticsService(transactionRepo, budgetRepo, metrics)
	dashboardService := services.NewDashboardService(
		transactionRepo, accountRepo, budgetRepo, metrics)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2))
	e.Use(echomiddleware.CORS())

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	requireAuth := middleware.RequireAuth(tokenService, blacklistedTokenRepo)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.GET("/me", authHandler.Me, requireAuth)

	accounts := api.Group("/accounts", requireAuth)
	accounts.POST("", accountHandler.Create)
	accounts.GET("", accountHandler.List)
	accounts.GET("/:id", accountHandler.Get)
	accounts.PUT("/:id", accountHandler.Update)
	accounts.DELETE("/:id", accountHandler.Delete)

	categories := api.Group("/categories", requireAuth)
	categories.POST("", categoryHandler.Create)
	categories.GET("", categoryHandler.List)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	transactions := api.Group("/transactions", requireAuth)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	budgets := api.Group("/budgets", requireAuth)
	budgets.POST("", budgetHandler.Create)
	budgets.GET("", budgetHandler.List)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	api.GET("/analytics", analyticsHandler.Get, requireAuth)
	api.GET("/dashboard", dashboardHandler.Get, requireAuth)

	return e
}
