package main

import (
	"context"
	"go-griefcare-backend/config"
	_ "go-griefcare-backend/docs" // Important for Swagger
	v1 "go-griefcare-backend/internal/delivery/http/v1"
	"go-griefcare-backend/internal/repository/postgres"
	"go-griefcare-backend/internal/repository/rediscache"
	"go-griefcare-backend/internal/usecase"
	"go-griefcare-backend/pkg/database"
	"go-griefcare-backend/pkg/logger"
	redispkg "go-griefcare-backend/pkg/redis"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
)

// @title           GriefCare Matching API
// @version         1.0
// @description     Backend for counselor and family support group matching using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting griefcare backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Run Migrations
	if err := database.RunMigrations(cfg.DBUrl, cfg.MigrationsPath); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 5. Setup Repositories
	profileRepo := postgres.NewProfileRepository(dbPool)
	counselorRepo := postgres.NewCounselorRepository(dbPool)
	groupRepo := postgres.NewFamilyGroupRepository(dbPool)
	matchingRepo := postgres.NewMatchingRepository(dbPool)

	// 6. Setup Recommendation Cache (optional)
	var recCache usecase.RecommendationCache
	if err := redispkg.Initialize(redispkg.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable - recommendations will be computed per request", "error", err)
	} else {
		ttl := time.Duration(cfg.RecommendationCacheTTLSeconds) * time.Second
		recCache = rediscache.NewRecommendationCache(redispkg.Client(), ttl)
		defer redispkg.Close()
	}

	// 7. Setup UseCases
	validate := validator.New()
	matchingUC := usecase.NewMatchingUsecase(profileRepo, counselorRepo, groupRepo, matchingRepo, recCache)
	surveyUC := usecase.NewSurveyUsecase(profileRepo, recCache, validate)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		MatchingUC: matchingUC,
		SurveyUC:   surveyUC,
		Config:     cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
