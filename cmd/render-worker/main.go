package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aescanero/dago-node-view/internal/config"
	"github.com/aescanero/dago-node-view/internal/eval/template"
	"github.com/aescanero/dago-node-view/internal/i18n"
	"github.com/aescanero/dago-node-view/internal/logging"
	"github.com/aescanero/dago-node-view/internal/view"
	"github.com/aescanero/dago-node-view/internal/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting render worker",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("worker_id", cfg.WorkerID),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	// Load translation catalogs
	catalog, err := i18n.LoadDir(cfg.LocalesDir, cfg.DefaultLocale)
	if err != nil {
		logger.Fatal("failed to load locales", zap.Error(err))
	}
	logger.Info("translations loaded",
		zap.String("dir", cfg.LocalesDir),
		zap.Strings("locales", catalog.Locales()),
	)

	// Initialize view factory
	views := view.NewFactory(cfg.TemplateRoot,
		view.WithExtension(template.NewI18nExtension(catalog, cfg.DefaultLocale)),
		view.WithLogger(logger),
	)
	logger.Info("view factory initialized", zap.String("template_root", cfg.TemplateRoot))

	// Initialize worker
	store := worker.NewRedisDataStore(redisClient, cfg.DataKeyPrefix)
	renderer := worker.NewRequestRenderer(views, store, logger)
	w := worker.NewWorker(cfg, redisClient, renderer, logger)

	// Start worker
	if err := w.Start(); err != nil {
		logger.Fatal("failed to start worker", zap.Error(err))
	}

	// Start health server
	healthServer := worker.NewHealthServer(cfg.HealthPort, redisClient, cfg.TemplateRoot, logger)
	if err := healthServer.Start(); err != nil {
		logger.Fatal("failed to start health server", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("render worker running, press Ctrl+C to stop")
	<-sigChan

	logger.Info("shutdown signal received, stopping worker")

	// Stop health server
	if err := healthServer.Stop(); err != nil {
		logger.Error("failed to stop health server", zap.Error(err))
	}

	// Stop worker
	if err := w.Stop(); err != nil {
		logger.Error("failed to stop worker", zap.Error(err))
	}

	// Close Redis connection
	if err := redisClient.Close(); err != nil {
		logger.Error("failed to close redis connection", zap.Error(err))
	}

	logger.Info("worker stopped gracefully")
}
