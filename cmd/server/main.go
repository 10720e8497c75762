package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	post_service "devlog-post-service/internal/application/service/post"
	ports "devlog-post-service/internal/domain/ports/output"
	"devlog-post-service/internal/domain/ports/output/cache"
	post_repository "devlog-post-service/internal/domain/ports/output/post"
	"devlog-post-service/internal/infrastructure/config"
	delivery_http "devlog-post-service/internal/infrastructure/inbound/http"
	"devlog-post-service/internal/infrastructure/inbound/http/middleware"
	metrics_server "devlog-post-service/internal/infrastructure/inbound/metrics"
	"devlog-post-service/internal/infrastructure/logger"
	memory_cache "devlog-post-service/internal/infrastructure/outbound/cache/memory"
	redis_cache "devlog-post-service/internal/infrastructure/outbound/cache/redis"
	user_client "devlog-post-service/internal/infrastructure/outbound/client/user"
	prometheus_metrics "devlog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	comment_memory "devlog-post-service/internal/infrastructure/outbound/repository/comment/memory"
	memory_uow "devlog-post-service/internal/infrastructure/outbound/repository/memory"
	post_memory "devlog-post-service/internal/infrastructure/outbound/repository/post/memory"
	post_postgres "devlog-post-service/internal/infrastructure/outbound/repository/post/postgres"
	"devlog-post-service/internal/infrastructure/outbound/repository/postgres"
)

func main() {
	cfg := config.MustLoad()
	ctx := context.Background()
	log := logger.New(cfg.Env)

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	var (
		postRepo     post_repository.Repository
		unitOfWork   ports.UnitOfWork
		healthChecks []delivery_http.HealthCheck
	)
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Warn("Using in-memory storage, data is lost on restart")
		posts := post_memory.NewPostRepository(log)
		postRepo = posts
		unitOfWork = memory_uow.NewUnitOfWork(posts, comment_memory.NewCommentRepository(posts, log))
	case config.StorageDriverPostgres:
		dsn := cfg.Database.DSN()
		if err := postgres.RunMigrations(dsn, cfg.Database.MigrationsPath, log); err != nil {
			log.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		poolConfig, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if cfg.Database.MaxConns > 0 {
			poolConfig.MaxConns = cfg.Database.MaxConns
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		postRepo = post_postgres.NewPostRepository(pool, log, metrics)
		unitOfWork = postgres.NewPostgresUOW(pool, log, metrics)
		healthChecks = append(healthChecks, delivery_http.HealthCheck{Name: "postgres", Check: pool.Ping})
	default:
		log.Error("Unknown storage driver", slog.String("driver", cfg.Storage.Driver))
		os.Exit(1)
	}

	var (
		postCache cache.PostCache
		userCache cache.UserCache
	)
	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		postCache = memory_cache.NewPostCache(cfg.Cache.MaxItems, cfg.Cache.PostTTL, log, metrics)
		userCache = memory_cache.NewUserCache(cfg.Cache.MaxItems, cfg.Cache.UserTTL, log)
	case config.CacheDriverRedis:
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port),
			slog.Int("db", cfg.Redis.DB))
		redisClient, err := redis_cache.NewClient(cfg.Redis, log, metrics)
		if err != nil {
			log.Error("Failed to create Redis client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()
		healthChecks = append(healthChecks, delivery_http.HealthCheck{Name: "redis", Check: redisClient.Ping})
		postCache = redis_cache.NewPostCache(redisClient, log, cfg.Cache.PostTTL)
		userCache = redis_cache.NewUserCache(redisClient, log, cfg.Cache.UserTTL)
	default:
		log.Error("Unknown cache driver", slog.String("driver", cfg.Cache.Driver))
		os.Exit(1)
	}

	userClient := user_client.NewCachedClient(
		user_client.NewHTTPClient(cfg.UserService, log, metrics),
		userCache,
		log,
		metrics,
	)

	originalPostService := post_service.NewPostService(postRepo, unitOfWork, userClient, log, metrics, post_service.Options{
		DefaultDraft:     cfg.Posts.DefaultDraft,
		PopularLimit:     cfg.Posts.PopularLimit,
		MaxPopularLimit:  cfg.Posts.MaxPopularLimit,
		DefaultListLimit: cfg.Posts.DefaultListLimit,
		MaxListLimit:     cfg.Posts.MaxListLimit,
	})
	postService := post_service.NewPostServiceCacheDecorator(originalPostService, postCache, log, metrics)

	router := delivery_http.NewRouter(postService, middleware.NewJWTAuth(cfg.Auth.JWTSecret, log), log, metrics, healthChecks...)
	httpServer := delivery_http.NewServer(router, cfg.HTTPServer, log)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	metrics.SetServiceHealth(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 2)

	go func() {
		if err := httpServer.Run(); err != nil {
			serverErr <- fmt.Errorf("http: %w", err)
		}
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			serverErr <- fmt.Errorf("metrics: %w", err)
		}
	}()

	select {
	case <-quit:
		log.Info("Shutting down servers...")
	case err := <-serverErr:
		log.Error("Server stopped unexpectedly", slog.String("error", err.Error()))
	}

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	log.Info("Server exited")
}
