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

	"advision/internal/delivery"
	"advision/internal/domain"
	"advision/internal/infrastructure"
	"advision/internal/usecase"
	"advision/pkg/config"
	"advision/pkg/logger"
	"advision/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info("Starting AdVision server")

	m := metrics.New()

	store, err := infrastructure.NewSnapshotStore(cfg.Storage.DataDir, log, m)
	if err != nil {
		log.WithError(err).Fatal("Failed to open snapshot store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Error("Failed to close snapshot store")
		}
	}()

	catalog := infrastructure.NewAdCatalog(log)

	// Stage collaborators. Without a Gemini credential the pipeline runs
	// on the deterministic offline generators.
	var (
		analyzer    domain.AdAnalyzer
		synthesizer domain.InsightSynthesizer
		generator   domain.BlueprintGenerator
		responder   domain.ChatResponder
	)
	if cfg.GeminiConfigured() {
		gemini := infrastructure.NewGeminiClient(
			cfg.Providers.GeminiBaseURL,
			cfg.Providers.GeminiAPIKey,
			cfg.Providers.GeminiModel,
			cfg.Pipeline.StageTimeout,
			cfg.Pipeline.RateLimitPerSecond,
			log,
			m,
		)
		analyzer = gemini
		synthesizer = gemini
		generator = gemini
		responder = gemini
		log.WithField("model", cfg.Providers.GeminiModel).Info("Using Gemini for analysis, insights, blueprints and chat")
	} else {
		analyzer = infrastructure.NewOfflineAnalyzer(log)
		synthesizer = infrastructure.NewOfflineInsightSynthesizer(log)
		generator = infrastructure.NewOfflineBlueprintGenerator(log)
		responder = infrastructure.NewOfflineChatResponder()
		log.Warn("GEMINI_API_KEY not set, using offline generators")
	}

	// An OpenAI-compatible chat endpoint takes precedence for the
	// assistant when its credential is present.
	if cfg.OpenAIConfigured() {
		responder = infrastructure.NewOpenAIChatClient(
			cfg.Providers.OpenAIBaseURL,
			cfg.Providers.OpenAIAPIKey,
			cfg.Providers.ChatModel,
			cfg.Pipeline.StageTimeout,
			cfg.Pipeline.RateLimitPerSecond,
			log,
			m,
		)
		log.WithField("model", cfg.Providers.ChatModel).Info("Using OpenAI-compatible chat completions for the assistant")
	}

	imageGen := infrastructure.NewOpenAIImageClient(
		cfg.Providers.OpenAIBaseURL,
		cfg.Providers.OpenAIAPIKey,
		cfg.Providers.ImageModel,
		cfg.Pipeline.StageTimeout,
		cfg.Pipeline.RateLimitPerSecond,
		log,
		m,
	)

	selectionService := usecase.NewSelectionService(store, catalog, cfg.Pipeline.MaxSelectedAds, log, m)
	analysisService := usecase.NewAnalysisService(store, analyzer, cfg.Pipeline.StageTimeout, log, m)
	insightService := usecase.NewInsightService(store, synthesizer, cfg.Pipeline.StageTimeout, log, m)
	campaignService := usecase.NewCampaignService(store, generator, imageGen, cfg.Pipeline.StageTimeout, cfg.Pipeline.PlaceholderImageURL, log, m)
	chatService := usecase.NewChatService(responder, cfg.Pipeline.StageTimeout, log, m)

	handlers := delivery.NewHTTPHandlers(selectionService, analysisService, insightService, campaignService, chatService, catalog, log, m)
	router := delivery.NewHTTPRouter(handlers, cfg.Pipeline.RequestTimeout, log, m)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Pipeline.StageTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}

	log.Info("Server stopped")
}
