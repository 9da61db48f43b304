// Package main is the entry point for the site-content-service API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"site-content-service/internal/app/service"
	"site-content-service/internal/config"
	"site-content-service/internal/domain"
	memcache "site-content-service/internal/infra/cache"
	rediscache "site-content-service/internal/infra/redis"
	"site-content-service/internal/infra/source"
	"site-content-service/internal/job"
	"site-content-service/internal/logger"
	"site-content-service/internal/transport/httpserver"
	"site-content-service/internal/validator"
	"site-content-service/internal/watch"
	"site-content-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting site-content-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
		zap.String("source_mode", cfg.Source.Mode),
	)

	// Create content source
	var contentSource domain.Source
	switch cfg.Source.Mode {
	case "remote":
		contentSource = source.NewRemoteSource(
			source.ClientConfig{
				BaseURL:  cfg.Source.BaseURL,
				Endpoint: cfg.Source.Endpoint,
				Timeout:  cfg.Source.Timeout,
				Retry: source.RetryConfig{
					MaxAttempts: cfg.Source.Retry.MaxAttempts,
					WaitTime:    cfg.Source.Retry.WaitTime,
					MaxWaitTime: cfg.Source.Retry.MaxWaitTime,
				},
				CB: source.CBConfig{
					MaxRequests:  cfg.Source.CB.MaxRequests,
					Interval:     cfg.Source.CB.Interval,
					Timeout:      cfg.Source.CB.Timeout,
					FailureRatio: cfg.Source.CB.FailureRatio,
				},
			},
			log.Logger,
		)
	default:
		contentSource = source.NewFileSource(cfg.Source.Path, log.Logger)
	}

	// Connect to Redis when anything needs it
	var redisClient *redis.Client
	needsRedis := cfg.Cache.Backend == "redis" || cfg.Refresh.Interval > 0
	if needsRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("connected to Redis",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	}

	// Create cache backend
	var contentCache domain.Cache
	switch cfg.Cache.Backend {
	case "redis":
		contentCache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("using redis cache", zap.String("key_prefix", cfg.Cache.KeyPrefix))
	default:
		contentCache = memcache.NewMemory(log.Logger)
		log.Info("using in-memory cache")
	}

	// Create services
	contentSvc := service.NewContentService(
		contentSource,
		contentCache,
		service.ContentConfig{
			CacheKey:       cfg.Content.CacheKey,
			TTL:            cfg.Content.TTL,
			MaxRetries:     cfg.Content.MaxRetries,
			RetryBaseDelay: cfg.Content.RetryBaseDelay,
		},
		log.Logger,
	)
	defer contentSvc.Close()

	querySvc := service.NewQueryService(contentSvc, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		contentSvc,
		querySvc,
		v,
		log.Logger,
	)

	// Initial load; failures schedule their own retries
	if err := contentSvc.Load(context.Background(), false); err != nil {
		log.Warn("initial content load failed, retrying in background", zap.Error(err))
	}

	// Start refresh scheduler with distributed locking
	var scheduler *job.RefreshScheduler
	if cfg.Refresh.Interval > 0 && redisClient != nil {
		distLocker := locker.NewRedisLocker(redisClient, log.Logger)
		scheduler = job.NewRefreshScheduler(
			contentSvc,
			job.RefreshConfig{
				Interval:  cfg.Refresh.Interval,
				Timeout:   cfg.Refresh.Timeout,
				OnStartup: cfg.Refresh.OnStartup,
			},
			log.Logger,
			distLocker,
		)
		scheduler.Start(cfg.Refresh.OnStartup)
	}

	// Watch the bundle file in development setups
	var watcher *watch.BundleWatcher
	if cfg.Watch.Enabled && cfg.Source.Mode == "file" {
		watcher, err = watch.NewBundleWatcher(contentSvc, cfg.Source.Path, cfg.Watch.Debounce, log.Logger)
		if err != nil {
			log.Fatal("failed to create bundle watcher", zap.Error(err))
		}
		if err := watcher.Start(); err != nil {
			log.Fatal("failed to start bundle watcher", zap.Error(err))
		}
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		if watcher != nil {
			_ = watcher.Stop()
		}
		if scheduler != nil {
			scheduler.Stop()
		}

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
