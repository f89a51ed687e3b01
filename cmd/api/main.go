package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reupyog-ai/internal/config"
	"reupyog-ai/internal/handlers"
	"reupyog-ai/internal/http"
	"reupyog-ai/internal/llm"
	"reupyog-ai/internal/logging"
	"reupyog-ai/internal/service"
	"reupyog-ai/internal/storage"
	"reupyog-ai/internal/web"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	}); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat, "file", cfg.LogFile)

	// Relay log is optional
	var relayLog service.RelayLog
	var relayStats handlers.RelayStats
	if cfg.RelayLogEnabled() {
		db, err := storage.New(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer func() {
			_ = db.Close()
		}()

		if err := storage.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		repo := storage.NewRelayLogRepo(db)
		relayLog = repo
		relayStats = repo
		slog.Info("Relay log initialized", "path", cfg.DBPath)
	} else {
		slog.Info("Relay log disabled")
	}

	// Create completion client (external service layer)
	llmClient := llm.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, service.Model)
	chatService := service.NewChatService(llmClient, relayLog)

	pages, err := web.NewPages()
	if err != nil {
		log.Fatalf("Failed to load pages: %v", err)
	}

	router := http.NewRouter(&http.Deps{
		ChatService: chatService,
		Pages:       pages,
		Static:      web.Static(),
		RelayStats:  relayStats,
	})

	// Provider calls have no deadline, so there is no WriteTimeout.
	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", server.Addr)
	slog.Debug("Completion provider configuration", "base_url", cfg.OpenAIBaseURL, "model", service.Model)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed: %v", err)
	}
	<-shutdownDone
	slog.Info("API server stopped")
}
