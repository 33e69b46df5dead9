package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/tripmarket/config"
	"github.com/d60-Lab/tripmarket/internal/api/handler"
	"github.com/d60-Lab/tripmarket/internal/api/router"
	"github.com/d60-Lab/tripmarket/internal/cache"
	"github.com/d60-Lab/tripmarket/internal/repository"
	"github.com/d60-Lab/tripmarket/internal/service"
	"github.com/d60-Lab/tripmarket/pkg/database"
	"github.com/d60-Lab/tripmarket/pkg/logger"
	"github.com/d60-Lab/tripmarket/pkg/tracing"
)

// @title tripmarket API
// @version 1.0
// @description 会话与通知同步子系统
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if cfg.Trace.Enabled {
		shutdown, err := tracing.Init(context.Background(), "tripmarket", cfg.Trace.Endpoint)
		if err != nil {
			logger.Warn("tracing init failed", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("init database", zap.Error(err))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("migrate", zap.Error(err))
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	badges := cache.NewBadgeCache(rdb, cfg.Redis.BadgeTTL)

	invalidator := service.NewBadgeInvalidator(badges, 0)
	stopInvalidator := invalidator.Start(2)

	convRepo := repository.NewConversationRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	listingRepo := repository.NewListingRepository(db)
	userRepo := repository.NewUserRepository(db)
	reqRepo := repository.NewEventRequestRepository(db)

	convService := service.NewConversationService(convRepo)
	unreadService := service.NewUnreadService(notifRepo, convRepo, invalidator)

	h := handler.New(convService, unreadService, listingRepo, userRepo, reqRepo, badges)
	engine := router.New(cfg, h)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: engine}
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	_ = stopInvalidator(ctx)
	_ = rdb.Close()
}
