// Package config loads the explicit service configuration injected at
// startup. There is no process-wide key map; everything a component needs is
// passed down from here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend selectors.
const (
	ASRBackendDhruva = "dhruva"
	ASRBackendGoogle = "google"

	TTSBackendDhruva     = "dhruva"
	TTSBackendElevenLabs = "elevenlabs"
)

// Config is the complete service configuration.
type Config struct {
	Port string

	// Inference gateway
	DhruvaBaseURL        string
	DhruvaAPIKey         string
	ASRServiceID         string
	TranslationServiceID string
	TTSServiceID         string

	// LLM providers; unset keys leave the provider unconfigured
	GeminiAPIKey      string
	OpenAIAPIKey      string
	CustomLLMEndpoint string
	CustomLLMAPIKey   string
	DefaultProvider   string

	// ElevenLabs alternate synthesis backend
	ElevenLabsAPIKey string

	// Backend selection
	ASRBackend string
	TTSBackend string

	// Pipeline behavior
	StageTimeout time.Duration

	// Dashboard session tokens; empty disables API auth
	JWTSecret string
}

// Load reads configuration from the environment, after loading a .env file
// when present, and applies defaults.
func Load() (*Config, error) {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 envOr("PORT", "8080"),
		DhruvaBaseURL:        os.Getenv("DHRUVA_BASE_URL"),
		DhruvaAPIKey:         os.Getenv("DHRUVA_API_KEY"),
		ASRServiceID:         os.Getenv("DHRUVA_ASR_SERVICE_ID"),
		TranslationServiceID: os.Getenv("DHRUVA_TRANSLATION_SERVICE_ID"),
		TTSServiceID:         os.Getenv("DHRUVA_TTS_SERVICE_ID"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		CustomLLMEndpoint:    os.Getenv("CUSTOM_LLM_ENDPOINT"),
		CustomLLMAPIKey:      os.Getenv("CUSTOM_LLM_API_KEY"),
		DefaultProvider:      envOr("DEFAULT_PROVIDER", "GEMINI"),
		ElevenLabsAPIKey:     os.Getenv("ELEVEN_LABS_API_KEY"),
		ASRBackend:           envOr("ASR_BACKEND", ASRBackendDhruva),
		TTSBackend:           envOr("TTS_BACKEND", TTSBackendDhruva),
		JWTSecret:            os.Getenv("JWT_SECRET"),
	}

	if cfg.DhruvaBaseURL == "" {
		return nil, fmt.Errorf("DHRUVA_BASE_URL is required")
	}
	if cfg.DhruvaAPIKey == "" {
		return nil, fmt.Errorf("DHRUVA_API_KEY is required")
	}

	switch cfg.ASRBackend {
	case ASRBackendDhruva, ASRBackendGoogle:
	default:
		return nil, fmt.Errorf("unknown ASR_BACKEND %q", cfg.ASRBackend)
	}

	switch cfg.TTSBackend {
	case TTSBackendDhruva, TTSBackendElevenLabs:
	default:
		return nil, fmt.Errorf("unknown TTS_BACKEND %q", cfg.TTSBackend)
	}

	timeoutSeconds := 30
	if raw := os.Getenv("STAGE_TIMEOUT_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid STAGE_TIMEOUT_SECONDS %q", raw)
		}
		timeoutSeconds = parsed
	}
	cfg.StageTimeout = time.Duration(timeoutSeconds) * time.Second

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
