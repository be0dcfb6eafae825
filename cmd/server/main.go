package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/taskhive/taskhive-backend/internal/cache"
	"github.com/taskhive/taskhive-backend/internal/config"
	"github.com/taskhive/taskhive-backend/internal/handler"
	"github.com/taskhive/taskhive-backend/internal/logger"
	"github.com/taskhive/taskhive-backend/internal/middleware"
	pg "github.com/taskhive/taskhive-backend/internal/repository"
	"github.com/taskhive/taskhive-backend/internal/repository/postgres"
	"github.com/taskhive/taskhive-backend/internal/scheduler"
	"github.com/taskhive/taskhive-backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A local .env is optional; real deployments rely on the environment.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx := context.Background()

	repo, err := pg.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer repo.Close()
	pool := repo.Pool()

	// Redis backs the entity cache; a down Redis only costs cache hits.
	var rdb *redis.Client
	if cfg.Cache.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			appLogger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, cache disabled")
			rdb = nil
		}
		cancel()
		if rdb != nil {
			defer rdb.Close()
		}
	}
	store := cache.New(rdb, appLogger,
		cache.WithPrefix(cfg.App.Name),
		cache.WithTTL(time.Duration(cfg.Cache.TTLSeconds)*time.Second),
	)

	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	pinger := postgres.NewPinger(pool)

	projectSvc := service.NewProjectService(projectRepo, store, appLogger)
	taskSvc := service.NewTaskService(taskRepo, projectRepo, store, appLogger)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(taskSvc, cfg.Scheduler.OverdueSpec, appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("scheduler setup failed")
		}
		sched.Start()
		defer sched.Stop()
	}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID(appLogger))
	if cfg.RateLimit.Enabled {
		engine.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	handler.Register(engine, pinger, projectSvc, taskSvc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: engine,
	}

	go func() {
		appLogger.Info().Int("port", cfg.App.Port).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
