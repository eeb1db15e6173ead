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

	"demo-user-service/internal/adapter/db/gormdb"
	ginhandler "demo-user-service/internal/adapter/gin/handler"
	"demo-user-service/internal/adapter/gin/middleware"
	ginrouter "demo-user-service/internal/adapter/gin/router"
	"demo-user-service/internal/config"
	"demo-user-service/internal/infrastructure"
	"demo-user-service/internal/usecase/user"
	"demo-user-service/pkg/logger"
	redisclient "demo-user-service/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("demo1 exited with error: %v", err)
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
		ServiceName:      "demo1",
		ServiceVersion:   cfg.Logger.ServiceVersion,
		Environment:      environment(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	// Both pools are provisioned; business transactions touch Primary only.
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

	repo := gormdb.NewUserRepo(ds.Primary, l)
	uc := user.New(repo, l)
	userHandler := ginhandler.NewUserHandler(uc, l)
	helloHandler := ginhandler.NewHelloHandler(l)

	opts := ginrouter.Options{
		Logger:      l,
		ServiceName: "demo1",
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
		Handler:           ginrouter.NewDemo1Router(userHandler, helloHandler, opts),
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return serve(srv, cfg, l)
}

// serve runs the HTTP server until a signal arrives, then shuts it down
// within the configured timeout.
func serve(srv *http.Server, cfg *config.Config, l *zap.Logger) error {
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
