package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlphaNewsNetwork/alphanews/app/api"
	"github.com/AlphaNewsNetwork/alphanews/app/cfg"
	"github.com/AlphaNewsNetwork/alphanews/app/contentstore"
	"github.com/AlphaNewsNetwork/alphanews/app/database"
	"github.com/AlphaNewsNetwork/alphanews/app/feedreader"
	"github.com/AlphaNewsNetwork/alphanews/app/openai"
	"github.com/AlphaNewsNetwork/alphanews/app/pipeline"
	"github.com/AlphaNewsNetwork/alphanews/app/sources"
	"github.com/AlphaNewsNetwork/alphanews/app/styles"
	"github.com/AlphaNewsNetwork/alphanews/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was requested
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting AlphaNews server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	submissionRepo := database.NewSubmissionRepo(db)

	styleCache := styles.NewConfigCache(appCfg.StylesDir)
	if err := styleCache.Run(); err != nil {
		slog.Error("Failed to load style configurations", "error", err)
		os.Exit(1)
	}
	slog.Info("Style configurations loaded", "count", styleCache.GetConfigCount())

	sourceCache := sources.NewConfigCache(appCfg.SourcesDir)
	if err := sourceCache.Run(); err != nil {
		slog.Error("Failed to load source configurations", "error", err)
		os.Exit(1)
	}
	slog.Info("Source configurations loaded", "count", sourceCache.GetConfigCount())

	modelClient := openai.NewClient(appCfg.OpenAIBaseURL, appCfg.OpenAIAPIKey, appCfg.OpenAIModel)
	deliveryClient := contentstore.NewDeliveryClient(appCfg.DeliveryURL, appCfg.SpaceID, appCfg.Environment, appCfg.AccessToken)
	managementClient := contentstore.NewManagementClient(appCfg.ManagementURL, appCfg.SpaceID, appCfg.Environment, appCfg.ManagementToken)

	storyPipeline := pipeline.New(
		pipeline.NewFetcher(appCfg.UserAgent),
		pipeline.NewExtractor(),
		pipeline.NewRewriter(modelClient),
		pipeline.NewIllustrator(modelClient, modelClient),
		pipeline.NewScriptWriter(modelClient),
		pipeline.NewPublisher(managementClient),
		styleCache,
		submissionRepo,
	)

	reader := feedreader.NewReader(deliveryClient, time.Duration(appCfg.FeedCacheTTL)*time.Second)

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)
	scheduler := tasks.NewScheduler(sourceCache, submissionRepo, storyPipeline, &http.Client{Timeout: 30 * time.Second})
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(storyPipeline, reader, submissionRepo, styleCache)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
