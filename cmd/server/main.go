// Agentic honeypot server: engages scammers with a scripted victim
// persona while extracting payment and contact intelligence.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/agent"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/api"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/config"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/detect"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/llm"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/middleware"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/report"
	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "session_backend", cfg.SessionBackend)

	// Initialize session repository.
	repo, err := newRepository(cfg)
	if err != nil {
		slog.Error("Failed to initialize session backend", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close session backend", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Session backend health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Session backend connected")

	// Initialize text-generation gateway.
	if !cfg.HasGroqKeys() {
		slog.Warn("No GROQ_API_KEY configured; every reply will use the fallback line")
	}
	generator := llm.NewGroqClient(llm.GroqConfig{
		Model:   cfg.GroqModel,
		APIKeys: cfg.GroqAPIKeys,
		Timeout: cfg.LLMTimeout,
	}, logger)

	// Initialize reporting.
	var reporter *report.Reporter
	if cfg.CallbackURL != "" {
		reporter = report.New(cfg.CallbackURL, cfg.CallbackTimeout, logger)
		slog.Info("External reporting enabled", "endpoint", cfg.CallbackURL)
	} else {
		slog.Info("External reporting disabled (CALLBACK_URL not set)")
	}

	// Initialize engagement logging.
	elog, err := agent.NewEngagementLogger(agent.EngagementLogConfig{
		Enabled:       cfg.EngagementLog.Enabled,
		Dir:           cfg.EngagementLog.Dir,
		GlobalEnabled: cfg.EngagementLog.GlobalEnabled,
		GlobalPath:    cfg.EngagementLog.GlobalPath,
		QueueSize:     cfg.EngagementLog.QueueSize,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize engagement logger", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := elog.Close(); closeErr != nil {
			slog.Error("Failed to close engagement logger", "error", closeErr)
		}
	}()

	// Initialize services and handlers.
	classifier := detect.New(generator, logger)
	svc := agent.NewService(repo, classifier, generator, reporter, agent.Options{
		EngagementLogger: elog,
		Logger:           logger,
	})
	honeypotHandler := api.NewHoneypotHandler(svc, reporter, cfg.MinReplyLatency, logger)
	healthHandler := api.NewHealthHandler(repo)

	// Setup router.
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	// Public routes.
	healthHandler.RegisterRoutes(r)

	// Authenticated routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(cfg.APIKey))
		honeypotHandler.RegisterRoutes(r)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start idle-session eviction.
	store.StartEvictionWorker(ctx, repo, cfg.SessionTTL, cfg.EvictInterval, func(count int) {
		slog.Info("Evicted idle sessions", "count", count)
	})
	slog.Info("Eviction worker started", "session_ttl", cfg.SessionTTL)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server stopped")
}

// newRepository selects the session backend from configuration.
func newRepository(cfg *config.Config) (store.Repository, error) {
	switch cfg.SessionBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return store.NewRedisStore(client, cfg.SessionTTL), nil
	case config.BackendSQLite:
		return store.NewSQLite(cfg.DBPath)
	default:
		return store.NewMemoryStore(), nil
	}
}
