package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/adapters/dhruva"
	"github.com/samvaad-ai/samvaad/adapters/llm"
	"github.com/samvaad-ai/samvaad/adapters/stt"
	"github.com/samvaad-ai/samvaad/adapters/transcode"
	"github.com/samvaad-ai/samvaad/adapters/tts"
	"github.com/samvaad-ai/samvaad/domain/repositories"
	"github.com/samvaad-ai/samvaad/internal/api"
	"github.com/samvaad-ai/samvaad/internal/auth"
	"github.com/samvaad-ai/samvaad/internal/config"
	"github.com/samvaad-ai/samvaad/internal/metrics"
	"github.com/samvaad-ai/samvaad/internal/websocket"
	"github.com/samvaad-ai/samvaad/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Inference gateway client
	gateway, err := dhruva.NewClient(dhruva.Config{
		BaseURL:              cfg.DhruvaBaseURL,
		APIKey:               cfg.DhruvaAPIKey,
		ASRServiceID:         cfg.ASRServiceID,
		TranslationServiceID: cfg.TranslationServiceID,
		TTSServiceID:         cfg.TTSServiceID,
		Timeout:              cfg.StageTimeout,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create gateway client", zap.Error(err))
	}

	transcoder := transcode.NewFFmpeg(logger)

	// asrGateway is the passthrough target of /api/asr; it is unset when an
	// alternate transcription backend is selected.
	asrGateway := gateway
	var transcriber repositories.Transcriber = gateway
	if cfg.ASRBackend == config.ASRBackendGoogle {
		transcriber = stt.NewGoogleTranscriber(logger)
		asrGateway = nil
		logger.Info("Using Google Cloud Speech-to-Text backend")
	}

	var synthesizer repositories.Synthesizer = gateway
	if cfg.TTSBackend == config.TTSBackendElevenLabs {
		synthesizer, err = tts.NewElevenLabs(cfg.ElevenLabsAPIKey, logger)
		if err != nil {
			logger.Fatal("Failed to create ElevenLabs synthesizer", zap.Error(err))
		}
		logger.Info("Using ElevenLabs synthesis backend")
	}

	// LLM providers; only configured ones are registered, so unconfigured
	// providers fail fast without a network call.
	registry := llm.NewRegistry()
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, logger)
		if err != nil {
			logger.Fatal("Failed to create Gemini client", zap.Error(err))
		}
		registry.Register(llm.ProviderGemini, gemini)
	}
	if cfg.OpenAIAPIKey != "" {
		openAI, err := llm.NewOpenAI(cfg.OpenAIAPIKey, logger)
		if err != nil {
			logger.Fatal("Failed to create OpenAI client", zap.Error(err))
		}
		registry.Register(llm.ProviderOpenAI, openAI)
	}
	if cfg.CustomLLMEndpoint != "" {
		custom, err := llm.NewCustom(cfg.CustomLLMEndpoint, cfg.CustomLLMAPIKey, logger)
		if err != nil {
			logger.Fatal("Failed to create custom LLM client", zap.Error(err))
		}
		registry.Register(llm.ProviderCustom, custom)
	}
	logger.Info("Configured chat providers", zap.Strings("providers", registry.Providers()))

	// Usecase services
	pipelineService := usecase.NewPipelineService(
		transcoder, transcriber, gateway, synthesizer, registry, cfg.StageTimeout, logger)
	chatService := usecase.NewChatService(gateway, registry, logger)

	// Metrics and stage-event hub
	m := metrics.NewMetrics()
	hub := websocket.NewHub(logger)
	hub.SetCountListener(func(count int) {
		m.ActiveWebsockets.Set(float64(count))
	})
	go hub.Run()

	var issuer *auth.TokenIssuer
	if cfg.JWTSecret != "" {
		issuer, err = auth.NewTokenIssuer(cfg.JWTSecret)
		if err != nil {
			logger.Fatal("Failed to create token issuer", zap.Error(err))
		}
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("20M"))

	api.InitRoutes(e, &api.Handler{
		Gateway:         asrGateway,
		DefaultProvider: cfg.DefaultProvider,

		Transcoder:  transcoder,
		Transcriber: transcriber,
		Translator:  gateway,
		Synthesizer: synthesizer,
		Models:      registry,
		Pipeline:    pipelineService,
		Chat:        chatService,
		Hub:         hub,
		Issuer:      issuer,
		Metrics:     m,
		Logger:      logger,
	})

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
