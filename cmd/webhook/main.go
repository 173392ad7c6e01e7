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
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ShopLab-Team/jira-github-webhook/internal/api/rest"
	"github.com/ShopLab-Team/jira-github-webhook/internal/config"
	"github.com/ShopLab-Team/jira-github-webhook/internal/github"
	"github.com/ShopLab-Team/jira-github-webhook/internal/jira"
	"github.com/ShopLab-Team/jira-github-webhook/internal/release"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer logger.Sync()

	githubClient, err := github.NewClient(github.Options{
		Token:      cfg.GitHub.Token,
		APIURL:     cfg.GitHub.APIURL,
		BaseBranch: cfg.GitHub.BaseBranch,
		PageSize:   cfg.GitHub.PageSize,
		MaxPages:   cfg.GitHub.MaxPages,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create github client", zap.Error(err))
	}

	releaseService := release.NewService(githubClient, release.Options{
		LegacyApprovalCheck: cfg.LegacyApprovalCheck,
	}, logger)
	decoder := jira.NewDecoder(cfg.Jira.RepositoryField, logger)
	restHandler := rest.NewHandler(releaseService, decoder, logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	restHandler.RegisterRoutes(router)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	restAddr := fmt.Sprintf(":%s", cfg.RESTPort)
	restServer := &http.Server{
		Addr:         restAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("starting webhook server",
			zap.String("address", restAddr),
			zap.String("base_branch", cfg.GitHub.BaseBranch),
			zap.Bool("legacy_approval_check", cfg.LegacyApprovalCheck),
		)
		if err := restServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start webhook server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down webhook server", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = lvl
	return zapCfg.Build()
}
