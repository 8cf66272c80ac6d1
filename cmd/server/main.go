package main

import (
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ketotrack/docs"

	"ketotrack/internal/auth"
	"ketotrack/internal/cache"
	"ketotrack/internal/config"
	"ketotrack/internal/db"
	"ketotrack/internal/handler"
	"ketotrack/internal/logging"
	"ketotrack/internal/model"
	"ketotrack/internal/nutrition"
	"ketotrack/internal/repository"
	"ketotrack/internal/router"
	"ketotrack/internal/service"
)

// @title KetoTrack API
// @version 1.0
// @description Calorie-tracking API with nutrition lookup, daily summaries, and emailed PDF reports.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
// @securityDefinitions.apikey APIToken
// @in header
// @name Authorization
// @description Type "Token" followed by a space and your API token.
func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Env)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.ProductEntry{},
		&model.APIToken{},
	); err != nil {
		logger.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	tokenRepo := repository.NewTokenRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Nutrition lookup falls back to the deterministic stub when no API
	// credentials are configured, so local development needs no account.
	var nutritionClient nutrition.Client
	if cfg.FoodAPIID != "" && cfg.FoodAPIKey != "" {
		nutritionClient = nutrition.NewCachedClient(
			nutrition.NewHTTPClient(cfg.FoodAPIURL, cfg.FoodAPIID, cfg.FoodAPIKey),
			cacheClient,
		)
	} else {
		logger.Warn("FOOD_API_ID/FOOD_API_KEY not set, using stub nutrition client")
		nutritionClient = nutrition.StubClient{}
	}

	// Task queue client
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	defer queueClient.Close()

	// Services
	authService := service.NewAuthService(userRepo, profileRepo, tokenRepo, jwtService, tokenStore)
	profileService := service.NewProfileService(profileRepo)
	productService := service.NewProductService(productRepo, nutritionClient)
	summaryService := service.NewSummaryService(profileRepo, productRepo)
	reportService := service.NewReportService(profileRepo, productRepo, queueClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	productHandler := handler.NewProductHandler(productService)
	summaryHandler := handler.NewSummaryHandler(summaryService)
	reportHandler := handler.NewReportHandler(reportService)

	router.Register(
		e,
		cfg,
		tokenStore,
		tokenRepo,
		profileRepo,
		authHandler,
		profileHandler,
		productHandler,
		summaryHandler,
		reportHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server start: %v", err)
	}
}
