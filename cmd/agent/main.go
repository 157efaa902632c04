package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/clintrovert/actionagent/internal/api/rest"
	"github.com/clintrovert/actionagent/internal/config"
	"github.com/clintrovert/actionagent/internal/github"
	"github.com/clintrovert/actionagent/internal/jira"
	"github.com/clintrovert/actionagent/internal/orchestrator"
	slacklistener "github.com/clintrovert/actionagent/internal/slack"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting action agent",
		zap.String("environment", cfg.Environment),
		zap.String("jira_project", cfg.JiraProjectKey),
	)

	// Create Jira client
	jiraClient, err := jira.NewClient(cfg.JiraBaseURL, cfg.JiraUsername, cfg.JiraAPIToken, cfg.JiraProjectKey, logger)
	if err != nil {
		logger.Fatal("failed to create jira client", zap.Error(err))
	}

	// Create GitHub client
	githubClient := github.NewClient(cfg.GitHubToken, cfg.GitHubUsername, cfg.WorkspaceDir, logger)

	// Create orchestrator
	orch := orchestrator.NewOrchestrator(jiraClient, githubClient, logger)

	// Create Slack listener
	listener := slacklistener.NewListener(cfg.SlackBotToken, cfg.SlackAppToken, cfg.SlackBotUserID, orch, logger)

	// Create REST API handler
	restHandler := rest.NewHandler(orch, jiraClient, logger)

	// Setup REST API
	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		restHandler.RegisterRoutes(r)
	})
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	httpAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:    httpAddr,
		Handler: router,
	}

	go func() {
		logger.Info("starting HTTP server", zap.String("address", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("slack listener failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	httpServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(parsed)
	return logCfg.Build()
}
