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

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"station-board-backend/config"
	"station-board-backend/internal/api"
	"station-board-backend/internal/assignment"
	"station-board-backend/internal/db"
	"station-board-backend/internal/logger"
	"station-board-backend/internal/notification"
	"station-board-backend/internal/reset"
	"station-board-backend/internal/roster"
	"station-board-backend/internal/store"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	zlog, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "station-board")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zlog.Info("configuration loaded",
		zap.String("path", configPath), zap.String("timezone", cfg.OperatingDay.Timezone))

	gormDB, err := db.Init(&cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			zlog.Warn("failed to close database", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB, zlog.Named("store"))

	var notifier assignment.Notifier = assignment.NopNotifier{}
	var webpushOptions *webpush.Options
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions, zlog.Named("push"))
		pool.Start(ctx)
		notifier = pool
	} else {
		zlog.Warn("VAPID keys are not configured, board push notifications are disabled")
	}

	engine := assignment.NewEngine(appStore, assignment.Config{
		MaxStaffPerRoom: cfg.Assignment.MaxStaffPerRoom,
		Location:        cfg.OperatingDay.Location,
	}, notifier, zlog.Named("assignment"))

	resetSvc := reset.NewService(appStore, cfg.OperatingDay.Location, zlog.Named("reset"))
	if cfg.Reset.Enabled {
		go resetSvc.Run(ctx)
	}

	rosterSvc := roster.NewService(&cfg.Roster, cfg.OperatingDay.Location, appStore, notifier, zlog.Named("roster"))
	go rosterSvc.Run(ctx)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	handler := api.NewHandler(engine, appStore, resetSvc, webpushOptions, zlog.Named("api"))
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
	}, zlog.Named("http"))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zlog.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	zlog.Info("shutdown signal received, stopping services")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("HTTP server Shutdown", zap.Error(err))
	}

	zlog.Info("server gracefully stopped")
}
