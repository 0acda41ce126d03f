package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/training-scheduler-api/api/swagger"
	"github.com/noah-isme/training-scheduler-api/internal/handler"
	internalmiddleware "github.com/noah-isme/training-scheduler-api/internal/middleware"
	"github.com/noah-isme/training-scheduler-api/internal/repository"
	"github.com/noah-isme/training-scheduler-api/internal/scheduler"
	"github.com/noah-isme/training-scheduler-api/internal/service"
	"github.com/noah-isme/training-scheduler-api/pkg/cache"
	"github.com/noah-isme/training-scheduler-api/pkg/config"
	"github.com/noah-isme/training-scheduler-api/pkg/database"
	"github.com/noah-isme/training-scheduler-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/training-scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/training-scheduler-api/pkg/middleware/requestid"
)

// @title Training Scheduler API
// @version 1.0.0
// @description Curriculum generation and conflict checking for training course rounds
// @BasePath /api/v1
// @schemes http

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, proposals fall back to process memory", zap.Error(err))
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Scheduler.ProposalTTL, logr, cacheRepo.Enabled())

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	checks := map[string]handler.ReadinessCheck{"database": db.PingContext}
	if cacheRepo.Enabled() {
		checks["cache"] = cacheRepo.Ping
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.GET("/metrics/snapshot", metricsHandler.Snapshot)

	if cfg.Scheduler.Enabled {
		curriculumSvc := service.NewCurriculumService(
			repository.NewTemplateSessionRepository(db),
			repository.NewInstructorRepository(db),
			repository.NewClassroomRepository(db),
			repository.NewBookingRepository(db),
			repository.NewHolidayRepository(db),
			repository.NewCurriculumSessionRepository(db),
			cacheSvc,
			metricsSvc,
			validator.New(),
			logr,
			service.CurriculumConfig{
				ProposalTTL: cfg.Scheduler.ProposalTTL,
				Defaults: scheduler.Options{
					SkipWeekends:       cfg.Scheduler.SkipWeekends,
					SkipHolidays:       cfg.Scheduler.SkipHolidays,
					PreferredStartHour: cfg.Scheduler.StartHour,
					PreferredEndHour:   cfg.Scheduler.EndHour,
					MaxSessionsPerDay:  cfg.Scheduler.MaxSessionsPerDay,
					MinBreakMinutes:    cfg.Scheduler.MinBreakMinutes,
					MaxContinuousHours: cfg.Scheduler.MaxContinuousHours,
				},
				Holidays: scheduler.HolidaySet(cfg.Scheduler.Holidays),
			},
		)
		handler.NewCurriculumHandler(curriculumSvc).Register(api)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "scheduler", cfg.Scheduler.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
