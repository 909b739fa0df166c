package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/landingpages/internal/cache"
	"github.com/landingpages/internal/config"
	"github.com/landingpages/internal/db"
	"github.com/landingpages/internal/handler"
	"github.com/landingpages/internal/logger"
	"github.com/landingpages/internal/router"
	"github.com/landingpages/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	if err := db.EnsureUser(cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		zlog.Fatal("failed to ensure admin user", zap.Error(err))
	}

	store, closeStore := cache.Open(context.Background(), cfg.Cache(), zlog)
	defer func() { _ = closeStore() }()

	landing := service.NewLandingService(db.DB, store, zlog, cfg.RelatedCommunityLimit)
	if _, err := landing.Engine(context.Background()); err != nil {
		zlog.Fatal("failed to build landing engine", zap.Error(err))
	}

	api := handler.NewAPI(db.DB, landing, zlog, cfg.SiteBaseURL)
	r := router.SetupRouter(api, cfg.SessionSecret, zlog)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
