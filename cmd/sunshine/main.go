package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	sunshineroot "github.com/glowhire/sunshine"
	"github.com/glowhire/sunshine/internal/config"
	"github.com/glowhire/sunshine/internal/handler"
	"github.com/glowhire/sunshine/internal/middleware"
	"github.com/glowhire/sunshine/internal/repository"
	"github.com/glowhire/sunshine/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect storage. No database, or a dead one, means in-memory only.
	var store repository.Store
	var degraded func() bool

	if cfg.HasDatabase() {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Warn("database unavailable, running in-memory", "error", err)
			store = repository.NewMemory()
		} else {
			defer pool.Close()

			migrationsFS, err := fs.Sub(sunshineroot.MigrationsFS, "migrations")
			if err != nil {
				slog.Error("failed to load embedded migrations", "error", err)
				os.Exit(1)
			}
			if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
				slog.Error("failed to run migrations", "error", err)
				os.Exit(1)
			}

			resilient := repository.NewResilient(repository.NewPostgres(pool))
			degraded = resilient.Degraded
			store = resilient
		}
	} else {
		slog.Info("no DATABASE_URL configured, running in-memory")
		store = repository.NewMemory()
	}

	// Initialize services
	sessionService := service.NewSessionService(store)
	assistant := service.NewHTTPAssistant(cfg.AssistantURL, cfg.AssistantAPIKey, cfg.AssistantTimeout)
	conversationService := service.NewConversationService(sessionService, assistant, service.LogNavigator{})
	defer conversationService.Shutdown()
	triggerService := service.NewTriggerService(store, time.Now().UnixNano())

	// Initialize handler
	h := handler.New(handler.Deps{
		Conversations: conversationService,
		Sessions:      sessionService,
		Trigger:       triggerService,
		Degraded:      degraded,
	})

	r := chi.NewRouter()
	r.Use(middleware.Recover())
	r.Use(middleware.Logging())
	r.Use(middleware.CORS(cfg.FrontendURL))
	h.Routes(r)

	// Start stale session cleanup goroutine
	go func() {
		ticker := time.NewTicker(config.SessionPruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := sessionService.Prune(context.Background(), cfg.SessionTTL)
				if err != nil {
					slog.Error("prune sessions", "error", err)
					continue
				}
				if n > 0 {
					slog.Info("pruned stale sessions", "count", n)
				}
			}
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	go func() {
		slog.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}

	slog.Info("server stopped gracefully")
}
