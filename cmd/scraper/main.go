package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/pickledex/paddle-scraper/internal/api"
	"github.com/pickledex/paddle-scraper/internal/config"
	"github.com/pickledex/paddle-scraper/internal/extract"
	"github.com/pickledex/paddle-scraper/internal/fetcher"
	"github.com/pickledex/paddle-scraper/internal/images"
	"github.com/pickledex/paddle-scraper/internal/jobs"
	"github.com/pickledex/paddle-scraper/internal/queue"
	"github.com/pickledex/paddle-scraper/internal/ratelimit"
	"github.com/pickledex/paddle-scraper/internal/scrape"
	"github.com/pickledex/paddle-scraper/internal/sites"
	"github.com/pickledex/paddle-scraper/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(ctx, storage.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.DBName,
		MaxConns: 10,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	var taskQueue queue.Queue
	if cfg.Queue.Type == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		taskQueue = queue.NewRedisQueue(redisClient, cfg.Queue.Key)
	} else {
		taskQueue = queue.NewInMemoryQueue()
	}
	defer taskQueue.Close()

	limiter := ratelimit.NewAdaptiveLimiter(cfg.Scraper.RateLimitMin, cfg.Scraper.RateLimitMax)
	pageFetcher := fetcher.New(limiter, logger, fetcher.Options{
		MaxRetries: cfg.Scraper.MaxRetries,
		RetryDelay: cfg.Scraper.RetryDelay,
		Timeout:    cfg.Scraper.FetchTimeout,
		UserAgents: cfg.Scraper.UserAgents,
	})

	var downloader *images.Downloader
	if cfg.Images.Enabled {
		downloader = images.NewDownloader(cfg.Images.Dir, logger)
	}

	registry := sites.NewRegistry()
	assembler := extract.NewAssembler(logger)
	scrapeService := scrape.New(pageFetcher, registry, assembler, downloader, store, logger)

	jobManager := jobs.NewManager(store, taskQueue, scrapeService, logger)
	workers := jobManager.StartWorkers(ctx, cfg.Scraper.ConcurrentLimit)

	handlers := api.NewHandlers(jobManager, store, registry, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		queued, err := taskQueue.Size(r.Context())
		health := map[string]interface{}{
			"status": "ok",
			"queued": queued,
		}
		if err != nil {
			health["status"] = "degraded"
			health["message"] = "queue unavailable"
		}
		json.NewEncoder(w).Encode(health)
	})

	r.Route("/api/v1", func(r chi.Router) {
		handlers.Routes(r)
	})

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "addr", server.Addr, "queue", cfg.Queue.Type)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	workers.Wait()
	logger.Info("server stopped")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
