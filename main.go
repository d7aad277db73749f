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

	"hotel/app"
	"hotel/config"
	"hotel/services/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appLog := logger.New(cfg.LogLevel, os.Stdout, !cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := config.OpenStore(ctx, cfg.Store, cfg.IsProduction(), appLog)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	rdb, err := config.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	opts := app.Options{Config: cfg, Store: store, Logger: appLog}
	if rdb != nil {
		opts.Redis = rdb
		defer rdb.Close()
		appLog.Info("Redis connected", map[string]interface{}{"addr": cfg.Redis.Addr})
	}

	a, err := app.New(opts)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	if err := a.Seed(ctx, cfg.Seed); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}
	if err := a.StartJobs(); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLog.Info("Server starting", map[string]interface{}{"port": cfg.Server.Port, "store": cfg.Store.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := a.Close(); err != nil {
		appLog.Error("close failed", map[string]interface{}{"error": err.Error()})
	}
}
