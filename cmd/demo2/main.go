package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	ginhandler "demo-user-service/internal/adapter/gin/handler"
	"demo-user-service/internal/adapter/gin/middleware"
	ginrouter "demo-user-service/internal/adapter/gin/router"
	"demo-user-service/internal/adapter/peer"
	"demo-user-service/internal/config"
	"demo-user-service/internal/infrastructure"
	"demo-user-service/pkg/logger"
	redisclient "demo-user-service/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("demo2 exited with error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "."
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(logger.Config{
		Level:            cfg.Logger.Level,
		Format:           cfg.Logger.Format,
		OutputPath:       cfg.Logger.OutputPath,
		SlowQuerySeconds: cfg.Logger.SlowQuerySeconds,
		EnableSampling:   cfg.Logger.EnableSampling,
		ServiceName:      "demo2",
		ServiceVersion:   cfg.Logger.ServiceVersion,
		Environment:      environment(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	// demo2 mirrors demo1's datasource surface: both pools are opened and
	// closed with the process even though no endpoint queries them.
	ds, err := infrastructure.NewDatasources(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize datasources: %w", err)
	}
	defer func() {
		if err := ds.Close(); err != nil {
			l.Error("failed to close datasources", zap.Error(err))
		}
	}()

	var rdb *redisclient.Client
	if cfg.RateLimit.Enabled {
		rdb, err = redisclient.NewClient(redisclient.Config{
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			MaxRetries:  cfg.Redis.MaxRetries,
			PoolSize:    cfg.Redis.PoolSize,
			MinIdleConn: cfg.Redis.MinIdleConn,
		}, l)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer func() { _ = rdb.Close() }()
	}

	peerClient := peer.NewClient(cfg.App.PeerURL, l)
	peerHandler := ginhandler.NewPeerHandler(peerClient, l)

	opts := ginrouter.Options{
		Logger:      l,
		ServiceName: "demo2",
		RateLimit: middleware.RateLimiterConfig{
			Enabled:           cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
		},
	}
	if rdb != nil {
		opts.RedisClient = rdb.Client
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.HTTPPort,
		Handler:           ginrouter.NewDemo2Router(peerHandler, opts),
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		l.Info("HTTP server running", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigCh:
		l.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.App.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	l.Info("shutdown complete")
	return nil
}

func environment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}
