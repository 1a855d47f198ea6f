package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	_ "github.com/zein-dev/kelasku-api/api/swagger"
	"github.com/zein-dev/kelasku-api/internal/repository"
	"github.com/zein-dev/kelasku-api/internal/router"
	"github.com/zein-dev/kelasku-api/internal/service"
	"github.com/zein-dev/kelasku-api/pkg/cache"
	"github.com/zein-dev/kelasku-api/pkg/config"
	"github.com/zein-dev/kelasku-api/pkg/database"
	"github.com/zein-dev/kelasku-api/pkg/logger"
)

// @title Kelasku API
// @version 1.0.0
// @description Class/cohort management portal backend
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, list caching disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	userRepo := repository.NewUserRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	externalInfoRepo := repository.NewExternalInfoRepository(db)
	forumRepo := repository.NewForumRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled && redisClient != nil)

	validate := service.NewValidator()

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.Auth.JWTSecret,
		TokenExpiry: cfg.Auth.TokenExpiry,
		AdminCode:   cfg.Auth.AdminCode,
		Issuer:      cfg.Auth.Issuer,
		BCryptCost:  cfg.Auth.BCryptCost,
	})
	scheduleSvc := service.NewScheduleService(scheduleRepo, cacheSvc, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, cacheSvc, validate, logr)
	activitySvc := service.NewActivityService(activityRepo, cacheSvc, validate, logr)
	externalInfoSvc := service.NewExternalInfoService(externalInfoRepo, cacheSvc, validate, logr)
	forumSvc := service.NewForumService(forumRepo, cacheSvc, validate, logr)
	affirmationSvc := service.NewAffirmationService()

	engine := router.New(router.Deps{
		Config:       cfg,
		Logger:       logr,
		Auth:         authSvc,
		Schedule:     scheduleSvc,
		Assignment:   assignmentSvc,
		Activity:     activitySvc,
		ExternalInfo: externalInfoSvc,
		Forum:        forumSvc,
		Affirmation:  affirmationSvc,
		Metrics:      metricsSvc,
		AuditWriter:  userRepo,
		Tokens:       authSvc,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := engine.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
